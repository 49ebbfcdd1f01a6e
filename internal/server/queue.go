package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) queueMoveTop(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "queue_move_top", args)
}

func (s *Server) queueMoveUp(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "queue_move_up", args)
}

func (s *Server) queueMoveDown(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "queue_move_down", args)
}

func (s *Server) queueMoveBottom(ctx context.Context, req *mcp.CallToolRequest, args TorrentActionRequest) (*mcp.CallToolResult, any, error) {
	return s.torrentAction(ctx, "queue_move_bottom", args)
}
