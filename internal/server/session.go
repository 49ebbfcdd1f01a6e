package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pastukhov/transmission-mcp/internal/transmission"
)

func (s *Server) sessionGet(ctx context.Context, req *mcp.CallToolRequest, args SessionGetRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("session_get", nil)

	params := map[string]any{}
	if len(args.Fields) > 0 {
		params["fields"] = args.Fields
	}

	result, err := s.client.Call(ctx, "session_get", params)
	if err != nil {
		return s.renderError("session_get", err), nil, nil
	}
	return s.jsonResult(transmission.ReconcileMap(result)), nil, nil
}

func (s *Server) sessionSet(ctx context.Context, req *mcp.CallToolRequest, args SessionSetRequest) (*mcp.CallToolResult, any, error) {
	params := map[string]any{}
	setString(params, "download_dir", args.DownloadDir)
	setString(params, "incomplete_dir", args.IncompleteDir)
	setBool(params, "incomplete_dir_enabled", args.IncompleteDirEnabled)
	setBool(params, "start_added_torrents", args.StartAddedTorrents)
	setInt(params, "speed_limit_down", args.SpeedLimitDown)
	setBool(params, "speed_limit_down_enabled", args.SpeedLimitDownEnabled)
	setInt(params, "speed_limit_up", args.SpeedLimitUp)
	setBool(params, "speed_limit_up_enabled", args.SpeedLimitUpEnabled)
	setInt(params, "alt_speed_down", args.AltSpeedDown)
	setInt(params, "alt_speed_up", args.AltSpeedUp)
	setBool(params, "alt_speed_enabled", args.AltSpeedEnabled)
	setInt(params, "peer_limit_global", args.PeerLimitGlobal)
	setInt(params, "peer_limit_per_torrent", args.PeerLimitPerTorrent)
	setInt(params, "peer_port", args.PeerPort)
	setFloat(params, "seedRatioLimit", args.SeedRatioLimit)
	setBool(params, "seedRatioLimited", args.SeedRatioLimited)

	s.logToolInvocation("session_set", map[string]any{"settings": len(params)})
	if len(params) == 0 {
		return errorResult("session_set: no settings provided"), nil, nil
	}

	if _, err := s.client.Call(ctx, "session_set", params); err != nil {
		return s.renderError("session_set", err), nil, nil
	}
	return s.jsonResult(map[string]any{"success": true, "updated": len(params)}), nil, nil
}

func (s *Server) sessionStats(ctx context.Context, req *mcp.CallToolRequest, args SessionStatsRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("session_stats", nil)

	result, err := s.client.Call(ctx, "session_stats", nil)
	if err != nil {
		return s.renderError("session_stats", err), nil, nil
	}

	stats := transmission.ParseSessionStats(transmission.ReconcileMap(result))
	return s.jsonResult(stats), nil, nil
}

func (s *Server) freeSpace(ctx context.Context, req *mcp.CallToolRequest, args FreeSpaceRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("free_space", map[string]any{"path": args.Path})
	if args.Path == "" {
		return errorResult("free_space: path is required"), nil, nil
	}

	result, err := s.client.Call(ctx, "free_space", map[string]any{"path": args.Path})
	if err != nil {
		return s.renderError("free_space", err), nil, nil
	}
	return s.jsonResult(transmission.ReconcileMap(result)), nil, nil
}

func (s *Server) portTest(ctx context.Context, req *mcp.CallToolRequest, args PortTestRequest) (*mcp.CallToolResult, any, error) {
	s.logToolInvocation("port_test", nil)

	result, err := s.client.Call(ctx, "port_test", nil)
	if err != nil {
		return s.renderError("port_test", err), nil, nil
	}
	return s.jsonResult(transmission.ReconcileMap(result)), nil, nil
}
