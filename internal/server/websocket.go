package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	wsReadBufferSize  = 4096
	wsWriteBufferSize = 4096
	wsMaxMessageSize  = 1 << 20
	wsPingInterval    = 30 * time.Second
	wsPongWait        = 60 * time.Second
	wsWriteTimeout    = 10 * time.Second
)

// wsEnvelope frames MCP traffic over a WebSocket. A client sends
// {"type":"request","id":...,"request":<json-rpc>} and receives either a
// "response" or an "error" envelope with the same correlation id.
type wsEnvelope struct {
	Type     string          `json:"type"`
	ID       string          `json:"id,omitempty"`
	Request  json.RawMessage `json:"request,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    json.RawMessage `json:"error,omitempty"`
}

// WebSocketManager upgrades HTTP connections and bridges each one onto an
// in-memory MCP session: one transport pair per socket, with the manager
// performing the initialize handshake so envelope clients can send bare tool
// requests immediately.
type WebSocketManager struct {
	upgrader  websocket.Upgrader
	mcpServer *mcp.Server
	logger    interface{ Printf(string, ...interface{}) }
	debug     bool

	mu    sync.RWMutex
	conns map[string]*wsConn
}

type wsConn struct {
	id     string
	sock   *websocket.Conn
	rpc    mcp.Connection
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once

	// pending maps in-flight JSON-RPC request ids to envelope ids.
	mu      sync.Mutex
	pending map[any]string
	nextTag int64
}

func NewWebSocketManager(mcpServer *mcp.Server, logger interface{ Printf(string, ...interface{}) }, debug bool) *WebSocketManager {
	return &WebSocketManager{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  wsReadBufferSize,
			WriteBufferSize: wsWriteBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		mcpServer: mcpServer,
		logger:    logger,
		debug:     debug,
		conns:     make(map[string]*wsConn),
	}
}

func (m *WebSocketManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sock, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Printf("[Error] websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	conn := &wsConn{
		id:      uuid.NewString(),
		sock:    sock,
		send:    make(chan []byte, 256),
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[any]string),
	}

	if err := m.attachSession(conn); err != nil {
		m.logger.Printf("[Error] websocket %s session setup: %v", conn.id, err)
		cancel()
		if conn.rpc != nil {
			conn.rpc.Close()
		}
		sock.Close()
		return
	}

	m.mu.Lock()
	m.conns[conn.id] = conn
	m.mu.Unlock()

	if m.debug {
		m.logger.Printf("[DEBUG] websocket %s connected from %s", conn.id, r.RemoteAddr)
	}

	// Closing the RPC side unblocks rpcLoop's Read once either pump cancels.
	go func() {
		<-conn.ctx.Done()
		conn.rpc.Close()
	}()

	var wg sync.WaitGroup
	wg.Add(3)
	go m.readLoop(conn, &wg)
	go m.writeLoop(conn, &wg)
	go m.rpcLoop(conn, &wg)
	go func() {
		wg.Wait()
		m.drop(conn)
	}()
}

// attachSession connects a dedicated in-memory MCP session for this socket
// and runs the initialize exchange on the client's behalf, so the envelope
// protocol stays a plain request/response surface.
func (m *WebSocketManager) attachSession(conn *wsConn) error {
	clientT, serverT := mcp.NewInMemoryTransports()
	if _, err := m.mcpServer.Connect(conn.ctx, serverT, nil); err != nil {
		return fmt.Errorf("connect server session: %w", err)
	}
	rpc, err := clientT.Connect(conn.ctx)
	if err != nil {
		return fmt.Errorf("connect client transport: %w", err)
	}
	conn.rpc = rpc

	initID, err := jsonrpc.MakeID("init-" + conn.id)
	if err != nil {
		return err
	}
	init := &jsonrpc.Request{ID: initID, Method: "initialize", Params: json.RawMessage(`{}`)}
	if err := rpc.Write(conn.ctx, init); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	msg, err := rpc.Read(conn.ctx)
	if err != nil {
		return fmt.Errorf("initialize reply: %w", err)
	}
	resp, ok := msg.(*jsonrpc.Response)
	if !ok {
		return fmt.Errorf("unexpected %T during initialize", msg)
	}
	if resp.Error != nil {
		return fmt.Errorf("initialize rejected: %w", resp.Error)
	}
	return rpc.Write(conn.ctx, &jsonrpc.Request{Method: "notifications/initialized"})
}

func (m *WebSocketManager) readLoop(conn *wsConn, wg *sync.WaitGroup) {
	defer wg.Done()
	defer conn.cancel()

	conn.sock.SetReadLimit(wsMaxMessageSize)
	conn.sock.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.sock.SetPongHandler(func(string) error {
		return conn.sock.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		msgType, data, err := conn.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Printf("[Error] websocket %s read: %v", conn.id, err)
			}
			return
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		m.handleMessage(conn, data)
	}
}

func (m *WebSocketManager) handleMessage(conn *wsConn, data []byte) {
	var env wsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		m.sendError(conn, "", fmt.Sprintf("invalid message: %v", err))
		return
	}
	if env.Type != "request" {
		if m.debug {
			m.logger.Printf("[DEBUG] websocket %s: ignoring %q envelope", conn.id, env.Type)
		}
		return
	}

	req, err := conn.buildRequest(env.Request)
	if err != nil {
		m.sendError(conn, env.ID, fmt.Sprintf("invalid request: %v", err))
		return
	}

	conn.trackPending(req.ID.Raw(), env.ID)
	if err := conn.rpc.Write(conn.ctx, req); err != nil {
		conn.takePending(req.ID.Raw())
		m.sendError(conn, env.ID, fmt.Sprintf("request failed: %v", err))
	}
}

// buildRequest turns an envelope payload into a JSON-RPC request. The
// envelope id is the real correlation handle, so clients may omit the inner
// request id; one is assigned here to route the session's reply back.
func (conn *wsConn) buildRequest(raw json.RawMessage) (*jsonrpc.Request, error) {
	var frame struct {
		ID     any             `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, err
	}
	if frame.Method == "" {
		return nil, fmt.Errorf("missing method")
	}
	if frame.ID == nil {
		conn.mu.Lock()
		conn.nextTag++
		frame.ID = fmt.Sprintf("%s-%d", conn.id, conn.nextTag)
		conn.mu.Unlock()
	}
	id, err := jsonrpc.MakeID(frame.ID)
	if err != nil {
		return nil, err
	}
	return &jsonrpc.Request{ID: id, Method: frame.Method, Params: frame.Params}, nil
}

// rpcLoop pumps the session's replies back into socket envelopes.
func (m *WebSocketManager) rpcLoop(conn *wsConn, wg *sync.WaitGroup) {
	defer wg.Done()
	defer conn.cancel()

	for {
		msg, err := conn.rpc.Read(conn.ctx)
		if err != nil {
			return
		}
		resp, ok := msg.(*jsonrpc.Response)
		if !ok {
			// Server-initiated requests have no return path over this
			// bridge.
			if m.debug {
				m.logger.Printf("[DEBUG] websocket %s: dropping %T from session", conn.id, msg)
			}
			continue
		}
		data, err := jsonrpc.EncodeMessage(resp)
		if err != nil {
			m.logger.Printf("[Error] websocket %s: encode reply: %v", conn.id, err)
			continue
		}
		m.enqueue(conn, wsEnvelope{Type: "response", ID: conn.takePending(resp.ID.Raw()), Response: data})
	}
}

func (conn *wsConn) trackPending(key any, envID string) {
	conn.mu.Lock()
	conn.pending[key] = envID
	conn.mu.Unlock()
}

func (conn *wsConn) takePending(key any) string {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	envID := conn.pending[key]
	delete(conn.pending, key)
	return envID
}

func (m *WebSocketManager) sendError(conn *wsConn, id, msg string) {
	payload, _ := json.Marshal(map[string]string{"message": msg})
	m.enqueue(conn, wsEnvelope{Type: "error", ID: id, Error: payload})
}

func (m *WebSocketManager) enqueue(conn *wsConn, env wsEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		m.logger.Printf("[Error] websocket %s: encode envelope: %v", conn.id, err)
		return
	}
	select {
	case conn.send <- data:
	case <-conn.ctx.Done():
	}
}

func (m *WebSocketManager) writeLoop(conn *wsConn, wg *sync.WaitGroup) {
	defer wg.Done()
	defer conn.cancel()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-conn.ctx.Done():
			return
		case data := <-conn.send:
			conn.sock.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				m.logger.Printf("[Error] websocket %s write: %v", conn.id, err)
				return
			}
		case <-ping.C:
			conn.sock.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *WebSocketManager) drop(conn *wsConn) {
	m.mu.Lock()
	delete(m.conns, conn.id)
	m.mu.Unlock()

	conn.closeOnce.Do(func() {
		conn.cancel()
		conn.rpc.Close()
		conn.sock.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		conn.sock.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "server closing"))
		conn.sock.Close()
	})

	if m.debug {
		m.logger.Printf("[DEBUG] websocket %s disconnected, %d active", conn.id, m.ActiveConnections())
	}
}

// ActiveConnections reports how many clients are currently attached.
func (m *WebSocketManager) ActiveConnections() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// CloseAll tears down every live connection, for shutdown.
func (m *WebSocketManager) CloseAll() {
	m.mu.RLock()
	snapshot := make([]*wsConn, 0, len(m.conns))
	for _, conn := range m.conns {
		snapshot = append(snapshot, conn)
	}
	m.mu.RUnlock()

	for _, conn := range snapshot {
		m.drop(conn)
	}
}
