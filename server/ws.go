package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql/gqlerrors"

	"scribe/schema"
)

// graphql-transport-ws message types.
const (
	subprotocol = "graphql-transport-ws"

	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgPing           = "ping"
	msgPong           = "pong"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
)

const (
	writeChanCapacity = 16
	writeWait         = 10 * time.Second
)

type wsRequest struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsResponse struct {
	ID      string      `json:"id,omitempty"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// wsConnection multiplexes subscriptions over one socket. Reads happen on
// the handler goroutine, writes on a single writer goroutine.
type wsConnection struct {
	conn     *websocket.Conn
	executor Executor

	ctx    context.Context
	cancel context.CancelFunc
	writes chan wsResponse

	mu   sync.Mutex
	subs map[string]context.CancelFunc
	wg   sync.WaitGroup
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade to websocket connection", "error", err)
		return
	}
	ctx, cancel := context.WithCancel(r.Context())
	c := &wsConnection{
		conn:     conn,
		executor: s.executor,
		ctx:      ctx,
		cancel:   cancel,
		writes:   make(chan wsResponse, writeChanCapacity),
		subs:     make(map[string]context.CancelFunc),
	}
	slog.Debug("websocket connected", "remote", conn.RemoteAddr().String())
	go c.write()
	c.read()
}

func (c *wsConnection) read() {
	defer func() {
		c.cancel()
		c.wg.Wait()
		close(c.writes)
	}()
	for {
		var req wsRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read ended", "error", err)
			}
			return
		}
		switch req.Type {
		case msgConnectionInit:
			c.send(wsResponse{Type: msgConnectionAck})
		case msgPing:
			c.send(wsResponse{Type: msgPong})
		case msgSubscribe:
			c.subscribe(req)
		case msgComplete:
			c.complete(req.ID)
		default:
			c.send(wsResponse{ID: req.ID, Type: msgError, Payload: errorsPayload("unknown message type " + req.Type)})
		}
	}
}

func (c *wsConnection) subscribe(req wsRequest) {
	var op schema.Request
	if err := json.Unmarshal(req.Payload, &op); err != nil {
		c.send(wsResponse{ID: req.ID, Type: msgError, Payload: errorsPayload("invalid payload: " + err.Error())})
		return
	}
	c.mu.Lock()
	if _, dup := c.subs[req.ID]; dup || req.ID == "" {
		c.mu.Unlock()
		c.send(wsResponse{ID: req.ID, Type: msgError, Payload: errorsPayload("subscriber for " + req.ID + " already exists")})
		return
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.subs[req.ID] = cancel
	c.mu.Unlock()

	results := c.executor.Subscribe(ctx, op)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.forget(req.ID)
		for {
			select {
			case <-ctx.Done():
				return
			case res, ok := <-results:
				if !ok {
					c.send(wsResponse{ID: req.ID, Type: msgComplete})
					return
				}
				if res.HasErrors() && res.Data == nil {
					c.send(wsResponse{ID: req.ID, Type: msgError, Payload: res.Errors})
					return
				}
				c.send(wsResponse{ID: req.ID, Type: msgNext, Payload: res})
			}
		}
	}()
}

func (c *wsConnection) complete(id string) {
	c.mu.Lock()
	cancel, ok := c.subs[id]
	c.mu.Unlock()
	if ok {
		cancel()
	}
}

func (c *wsConnection) forget(id string) {
	c.mu.Lock()
	if cancel, ok := c.subs[id]; ok {
		cancel()
		delete(c.subs, id)
	}
	c.mu.Unlock()
}

// send queues a message. Messages for a closed connection are dropped.
func (c *wsConnection) send(resp wsResponse) {
	select {
	case c.writes <- resp:
	case <-c.ctx.Done():
	}
}

func (c *wsConnection) write() {
	defer c.conn.Close()
	for resp := range c.writes {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(resp); err != nil {
			slog.Error("Failed to write response on websocket", "error", err)
			c.cancel()
			// drain so read can close the channel
			for range c.writes {
			}
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func errorsPayload(msg string) []gqlerrors.FormattedError {
	return []gqlerrors.FormattedError{gqlerrors.NewFormattedError(msg)}
}
