package transmission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultURL is the stock transmission-daemon control address.
	DefaultURL = "http://localhost:9091"

	// sessionHeader carries the daemon's CSRF token in both directions.
	sessionHeader = "X-Transmission-Session-Id"

	rpcPath = "/transmission/rpc"
)

// Options configures a Client. URL is the daemon base address without the
// /transmission/rpc suffix.
type Options struct {
	URL      string
	Username string
	Password string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client speaks to a Transmission daemon over whichever of the two RPC
// dialects it understands. It starts on the modern JSON-RPC-shaped dialect and
// permanently switches to the legacy hyphenated dialect the first time the
// daemon answers "method name not recognized". The session token and the
// dialect flag are the only mutable state; both are guarded by one mutex and
// only Call transitions them.
type Client struct {
	endpoint string
	username string
	password string
	httpc    *http.Client

	mu        sync.Mutex
	sessionID string
	legacy    bool
}

// New creates a client for the daemon at opts.URL. The connection descriptor
// is immutable for the client's lifetime.
func New(opts Options) *Client {
	url := opts.URL
	if url == "" {
		url = DefaultURL
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		endpoint: strings.TrimRight(url, "/") + rpcPath,
		username: opts.Username,
		password: opts.Password,
		httpc:    httpc,
	}
}

// Endpoint returns the resolved RPC endpoint, for diagnostics.
func (c *Client) Endpoint() string { return c.endpoint }

// Call invokes a canonical-named RPC method and returns the unwrapped result
// payload. Daemon-reported failures surface as *RPCError, network and decode
// failures as *TransportError. The legacy fallback and session-token renewal
// are transparent to the caller.
func (c *Client) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	if !c.isLegacy() {
		result, err := c.callModern(ctx, method, params)
		if err == nil {
			return result, nil
		}
		var sig *dialectError
		if !errors.As(err, &sig) {
			return nil, err
		}
		// The daemon does not speak the modern dialect. Switch once, for
		// good, and redo this call the legacy way.
		c.markLegacy()
	}
	return c.callLegacy(ctx, method, params)
}

// modernEnvelope is the response shape of the modern dialect.
type modernEnvelope struct {
	Result    any            `json:"result"`
	Arguments map[string]any `json:"arguments"`
	Error     *modernError   `json:"error"`
}

type modernError struct {
	Message string `json:"message"`
	Data    *struct {
		ErrorString string `json:"errorString"`
	} `json:"data"`
}

func (c *Client) callModern(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	request := map[string]any{
		"method": method,
		"id":     time.Now().UnixMilli(),
	}
	if len(params) > 0 {
		request["params"] = params
	}

	body, err := c.post(ctx, method, request)
	if err != nil {
		// Some daemons reject unknown methods at the transport layer with
		// the recognition phrase in the error text.
		if isMethodNotRecognized(err.Error()) {
			return nil, &dialectError{msg: err.Error()}
		}
		return nil, err
	}

	var env modernEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Op: method, Err: fmt.Errorf("decode response: %w", err)}
	}

	if env.Error != nil {
		msg := env.Error.Message
		if env.Error.Data != nil && env.Error.Data.ErrorString != "" {
			msg = msg + ": " + env.Error.Data.ErrorString
		}
		if isMethodNotRecognized(msg) {
			return nil, &dialectError{msg: msg}
		}
		return nil, &RPCError{Method: method, Message: msg}
	}

	if s, ok := env.Result.(string); ok && isMethodNotRecognized(s) {
		return nil, &dialectError{msg: s}
	}

	if env.Arguments != nil {
		return env.Arguments, nil
	}
	if m, ok := env.Result.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{}, nil
}

// legacyEnvelope is the response shape of the legacy dialect: a literal
// "success" result, anything else is an error message.
type legacyEnvelope struct {
	Result    string         `json:"result"`
	Arguments map[string]any `json:"arguments"`
}

func (c *Client) callLegacy(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	request := map[string]any{
		"method": MethodToWire(method),
	}
	if args := ParamsToWire(params); len(args) > 0 {
		request["arguments"] = args
	}

	body, err := c.post(ctx, method, request)
	if err != nil {
		return nil, err
	}

	var env legacyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Op: method, Err: fmt.Errorf("decode response: %w", err)}
	}
	if env.Result != "success" {
		return nil, &RPCError{Method: method, Message: env.Result}
	}
	if env.Arguments != nil {
		return env.Arguments, nil
	}
	// Older daemons omit arguments on bare acknowledgements; hand back
	// whatever the body held.
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err == nil && raw != nil {
		return raw, nil
	}
	return map[string]any{}, nil
}

// post sends one RPC request, handling auth, the session-token header and at
// most one 409 resend. A 409 on the resend escalates: a token that is stale
// again immediately means something is wrong beyond CSRF rotation.
func (c *Client) post(ctx context.Context, method string, request map[string]any) ([]byte, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, &TransportError{Op: method, Err: fmt.Errorf("encode request: %w", err)}
	}

	body, status, err := c.send(ctx, payload)
	if err != nil {
		return nil, &TransportError{Op: method, Err: err}
	}
	if status == http.StatusConflict {
		body, status, err = c.send(ctx, payload)
		if err != nil {
			return nil, &TransportError{Op: method, Err: err}
		}
		if status == http.StatusConflict {
			return nil, &TransportError{Op: method, Err: fmt.Errorf("session token rejected twice")}
		}
	}
	if status < 200 || status > 299 {
		return nil, &TransportError{Op: method, Err: fmt.Errorf("unexpected HTTP status %d: %s", status, strings.TrimSpace(string(body)))}
	}
	return body, nil
}

func (c *Client) send(ctx context.Context, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.sessionToken(); token != "" {
		req.Header.Set(sessionHeader, token)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if token := resp.Header.Get(sessionHeader); token != "" {
		c.setSessionToken(token)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// isMethodNotRecognized is the single place the dialect sniff lives. The
// legacy daemon has no structured "unsupported method" code, only this phrase
// in an error message or a success-shaped string payload.
func isMethodNotRecognized(s string) bool {
	return strings.Contains(strings.ToLower(s), "method name not recognized")
}

func (c *Client) isLegacy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.legacy
}

func (c *Client) markLegacy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.legacy = true
}

func (c *Client) sessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) setSessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = token
}
