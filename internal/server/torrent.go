package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pastukhov/transmission-mcp/internal/transmission"
)

// defaultTorrentFields is the summary set torrent_get returns when the caller
// does not ask for specific fields.
var defaultTorrentFields = []string{
	"id", "name", "hash_string", "status", "percent_done", "total_size",
	"rate_download", "rate_upload", "upload_ratio", "eta", "download_dir",
	"error", "error_string",
}

func (s *Server) torrentAdd(ctx context.Context, req *mcp.CallToolRequest, args TorrentAddRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("torrent_add", map[string]any{"filename": args.Filename})
	if args.Filename == "" && args.Metainfo == "" {
		return errorResult("torrent_add: either filename or metainfo is required"), nil, nil
	}

	params := map[string]any{}
	if args.Filename != "" {
		params["filename"] = args.Filename
	}
	if args.Metainfo != "" {
		params["metainfo"] = args.Metainfo
	}
	setString(params, "download_dir", args.DownloadDir)
	setBool(params, "paused", args.Paused)
	setInt(params, "peer_limit", args.PeerLimit)
	setInt(params, "bandwidth_priority", args.BandwidthPriority)

	result, err := s.client.Call(ctx, "torrent_add", params)
	if err != nil {
		return s.renderError("torrent_add", err), nil, nil
	}
	return s.jsonResult(transmission.ReconcileMap(result)), nil, nil
}

func (s *Server) torrentGet(ctx context.Context, req *mcp.CallToolRequest, args TorrentGetRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("torrent_get", map[string]any{"ids": args.IDs})

	fields := args.Fields
	if len(fields) == 0 {
		fields = defaultTorrentFields
	}
	params := map[string]any{"fields": fields}
	if ids := transmission.NormalizeIDs(args.IDs); ids != nil {
		params["ids"] = ids
	}

	result, err := s.client.Call(ctx, "torrent_get", params)
	if err != nil {
		return s.renderError("torrent_get", err), nil, nil
	}

	reconciled := transmission.ReconcileMap(result)

	// The summary set maps onto the typed view; custom field lists are
	// returned as reconciled raw records.
	if len(args.Fields) == 0 {
		torrents := transmission.ParseTorrents(reconciled)
		return s.jsonResult(map[string]any{
			"count":    len(torrents),
			"torrents": torrents,
		}), nil, nil
	}

	torrents, _ := reconciled["torrents"].([]any)
	return s.jsonResult(map[string]any{
		"count":    len(torrents),
		"torrents": torrents,
	}), nil, nil
}

func (s *Server) torrentSet(ctx context.Context, req *mcp.CallToolRequest, args TorrentSetRequest) (*mcp.CallToolResult, any, error) {
	params := map[string]any{}
	setInt(params, "download_limit", args.DownloadLimit)
	setBool(params, "download_limited", args.DownloadLimited)
	setInt(params, "upload_limit", args.UploadLimit)
	setBool(params, "upload_limited", args.UploadLimited)
	setBool(params, "honors_session_limits", args.HonorsSessionLimits)
	setInt(params, "queue_position", args.QueuePosition)
	setFloat(params, "seedRatioLimit", args.SeedRatioLimit)
	setInt(params, "seedRatioMode", args.SeedRatioMode)
	if len(args.Labels) > 0 {
		params["labels"] = args.Labels
	}

	s.logToolInvocation("torrent_set", map[string]any{"ids": args.IDs, "settings": len(params)})
	if len(params) == 0 {
		return errorResult("torrent_set: no properties provided"), nil, nil
	}
	if ids := transmission.NormalizeIDs(args.IDs); ids != nil {
		params["ids"] = ids
	}

	if _, err := s.client.Call(ctx, "torrent_set", params); err != nil {
		return s.renderError("torrent_set", err), nil, nil
	}
	return s.jsonResult(map[string]any{"success": true}), nil, nil
}

func (s *Server) torrentRemove(ctx context.Context, req *mcp.CallToolRequest, args TorrentRemoveRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("torrent_remove", map[string]any{"ids": args.IDs})
	if args.IDs == nil {
		return errorResult("torrent_remove: ids is required"), nil, nil
	}

	params := map[string]any{}
	if ids := transmission.NormalizeIDs(args.IDs); ids != nil {
		params["ids"] = ids
	}
	setBool(params, "delete_local_data", args.DeleteLocalData)

	if _, err := s.client.Call(ctx, "torrent_remove", params); err != nil {
		return s.renderError("torrent_remove", err), nil, nil
	}
	return s.jsonResult(map[string]any{"success": true}), nil, nil
}

func (s *Server) torrentSetLocation(ctx context.Context, req *mcp.CallToolRequest, args TorrentSetLocationRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("torrent_set_location", map[string]any{"ids": args.IDs, "location": args.Location})
	if args.IDs == nil {
		return errorResult("torrent_set_location: ids is required"), nil, nil
	}
	if args.Location == "" {
		return errorResult("torrent_set_location: location is required"), nil, nil
	}

	params := map[string]any{"location": args.Location}
	if ids := transmission.NormalizeIDs(args.IDs); ids != nil {
		params["ids"] = ids
	}
	setBool(params, "move", args.Move)

	if _, err := s.client.Call(ctx, "torrent_set_location", params); err != nil {
		return s.renderError("torrent_set_location", err), nil, nil
	}
	return s.jsonResult(map[string]any{"success": true}), nil, nil
}

func (s *Server) torrentStart(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "torrent_start", args)
}

func (s *Server) torrentStop(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "torrent_stop", args)
}

func (s *Server) torrentVerify(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "torrent_verify", args)
}

func (s *Server) torrentReannounce(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "torrent_reannounce", args)
}

// torrentAction handles the selector-only methods: start, stop, verify,
// reannounce and the queue moves.
func (s *Server) torrentAction(ctx context.Context, method string, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation(method, map[string]any{"ids": args.IDs})

	params := map[string]any{}
	if ids := transmission.NormalizeIDs(args.IDs); ids != nil {
		params["ids"] = ids
	}

	if _, err := s.client.Call(ctx, method, params); err != nil {
		return s.renderError(method, err), nil, nil
	}
	return s.jsonResult(map[string]any{"success": true}), nil, nil
}
