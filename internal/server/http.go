package server

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPMux wires the three MCP transports: streamable HTTP at /, SSE at /sse
// for older clients, and the WebSocket bridge at /ws.
func (s *Server) HTTPMux(mcpServer *mcp.Server) http.Handler {
	sseHandler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		s.debugf("SSE connection from %s: %s %s", r.RemoteAddr, r.Method, r.URL.Path)
		return mcpServer
	}, nil)

	streamHandler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		JSONResponse: true,
		Stateless:    true,
	})

	s.wsManager = NewWebSocketManager(mcpServer, s.logger, s.debug)

	mux := http.NewServeMux()
	mux.Handle("/sse", sseHandler)
	mux.Handle("/ws", s.wsManager)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.debugf("HTTP %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		streamHandler.ServeHTTP(w, r)
	}))
	return mux
}

// Shutdown closes transport-level resources that outlive individual requests.
func (s *Server) Shutdown() {
	if s.wsManager != nil {
		s.wsManager.CloseAll()
	}
}
