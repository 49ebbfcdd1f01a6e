package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pastukhov/transmission-mcp/internal/transmission"
)

func (s *Server) logToolInvocation(tool string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	s.logger.Printf("[Tool] %s %v", tool, details)
}

func (s *Server) marshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (s *Server) debugf(format string, args ...interface{}) {
	if s.debug {
		s.logger.Printf("[DEBUG] "+format, args...)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (s *Server) jsonResult(v any) *mcp.CallToolResult {
	body, err := s.marshalJSON(v)
	if err != nil {
		return errorResult(fmt.Sprintf("failed to encode result: %v", err))
	}
	return textResult(string(body))
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// renderError turns a client error into a human-readable tool result. Raw
// error objects never reach the caller; transport failures get a guidance
// hint, daemon rejections surface the daemon's own message.
func (s *Server) renderError(tool string, err error) *mcp.CallToolResult {
	s.logger.Printf("[Error] %s: %v", tool, err)

	var rpcErr *transmission.RPCError
	if errors.As(err, &rpcErr) {
		return errorResult(fmt.Sprintf("Transmission rejected %s: %s", tool, rpcErr.Message))
	}

	var transportErr *transmission.TransportError
	if errors.As(err, &transportErr) {
		msg := fmt.Sprintf("Could not reach the Transmission daemon: %v", transportErr.Err)
		if hint := transportHint(transportErr); hint != "" {
			msg += "\n" + hint
		}
		return errorResult(msg)
	}

	return errorResult(fmt.Sprintf("%s failed: %v", tool, err))
}

// transportHint pattern-matches on the error text. There are no structured
// codes below HTTP, so substrings are the best signal available.
func transportHint(err *transmission.TransportError) string {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "connection refused"):
		return "Is transmission-daemon running and is the URL correct?"
	case strings.Contains(text, "no such host"):
		return "The daemon hostname does not resolve; check the configured URL."
	case strings.Contains(text, "context deadline exceeded"), strings.Contains(text, "timeout"):
		return "The daemon did not answer in time; it may be overloaded or unreachable."
	case strings.Contains(text, "status 401"), strings.Contains(text, "status 403"):
		return "The daemon rejected the credentials; check username and password."
	default:
		return ""
	}
}

// The set* helpers copy populated optional fields into an RPC params map.

func setString(params map[string]any, key string, v *string) {
	if v != nil {
		params[key] = *v
	}
}

func setBool(params map[string]any, key string, v *bool) {
	if v != nil {
		params[key] = *v
	}
}

func setInt(params map[string]any, key string, v *int64) {
	if v != nil {
		params[key] = *v
	}
}

func setFloat(params map[string]any, key string, v *float64) {
	if v != nil {
		params[key] = *v
	}
}
