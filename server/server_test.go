package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/config"
	"scribe/schema"
)

type fakeExecutor struct {
	mu       sync.Mutex
	requests []schema.Request
	subs     []chan *graphql.Result
	ctxs     []context.Context
}

func (f *fakeExecutor) Execute(_ context.Context, req schema.Request) *graphql.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return &graphql.Result{Data: map[string]interface{}{"query": req.Query, "variables": req.Variables}}
}

func (f *fakeExecutor) Subscribe(ctx context.Context, req schema.Request) chan *graphql.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan *graphql.Result)
	f.requests = append(f.requests, req)
	f.subs = append(f.subs, ch)
	f.ctxs = append(f.ctxs, ctx)
	return ch
}

func (f *fakeExecutor) received() []schema.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]schema.Request(nil), f.requests...)
}

func (f *fakeExecutor) subscription(t *testing.T, i int) (chan *graphql.Result, context.Context) {
	t.Helper()
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.subs) > i
	}, 5*time.Second, 10*time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[i], f.ctxs[i]
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeExecutor) {
	t.Helper()
	exec := &fakeExecutor{}
	srv := httptest.NewServer(New(config.ServerConfig{}, exec).Handler())
	t.Cleanup(srv.Close)
	return srv, exec
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHandleQuery_Post(t *testing.T) {
	srv, exec := newTestServer(t)

	body := `{"query":"{ models { total_count } }","variables":{"first":2}}`
	resp, err := http.Post(srv.URL+GraphQLPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	out := decode(t, resp)

	assert.Equal(t, map[string]interface{}{
		"query":     "{ models { total_count } }",
		"variables": map[string]interface{}{"first": float64(2)},
	}, out["data"])
	require.Len(t, exec.received(), 1)
}

func TestHandleQuery_Get(t *testing.T) {
	srv, exec := newTestServer(t)

	q := url.Values{}
	q.Set("query", "query M($id: ID!) { model(id: $id) { name } }")
	q.Set("variables", `{"id":"Moves"}`)
	resp, err := http.Get(srv.URL + GraphQLPath + "?" + q.Encode())
	require.NoError(t, err)
	decode(t, resp)

	got := exec.received()
	require.Len(t, got, 1)
	assert.Equal(t, "Moves", got[0].Variables["id"])
}

func TestHandleQuery_Rejects(t *testing.T) {
	srv, exec := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"bad json", http.MethodPost, GraphQLPath, "{", http.StatusBadRequest},
		{"missing query", http.MethodPost, GraphQLPath, "{}", http.StatusBadRequest},
		{"bad variables", http.MethodGet, GraphQLPath + "?query=x&variables=%7B", "", http.StatusBadRequest},
		{"method", http.MethodPut, GraphQLPath, "{}", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.target, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
	assert.Empty(t, exec.received())
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + MetricsPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	d := websocket.Dialer{Subprotocols: []string{subprotocol}}
	c, resp, err := d.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+WebsocketPath, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, subprotocol, c.Subprotocol())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func readWS(t *testing.T, c *websocket.Conn) wsRequest {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wsRequest
	require.NoError(t, c.ReadJSON(&msg))
	return msg
}

func TestWebsocket_Subscription(t *testing.T) {
	srv, exec := newTestServer(t)
	c := dialWS(t, srv)

	require.NoError(t, c.WriteJSON(wsResponse{Type: msgConnectionInit}))
	assert.Equal(t, msgConnectionAck, readWS(t, c).Type)
	require.NoError(t, c.WriteJSON(wsResponse{Type: msgPing}))
	assert.Equal(t, msgPong, readWS(t, c).Type)

	require.NoError(t, c.WriteJSON(wsResponse{
		ID:      "1",
		Type:    msgSubscribe,
		Payload: schema.Request{Query: `subscription { entityUpdated { id } }`},
	}))
	results, _ := exec.subscription(t, 0)

	results <- &graphql.Result{Data: map[string]interface{}{"entityUpdated": map[string]interface{}{"id": "0x1"}}}
	msg := readWS(t, c)
	assert.Equal(t, "1", msg.ID)
	assert.Equal(t, msgNext, msg.Type)
	assert.JSONEq(t, `{"data":{"entityUpdated":{"id":"0x1"}}}`, string(msg.Payload))

	close(results)
	msg = readWS(t, c)
	assert.Equal(t, "1", msg.ID)
	assert.Equal(t, msgComplete, msg.Type)
}

func TestWebsocket_ClientComplete(t *testing.T) {
	srv, exec := newTestServer(t)
	c := dialWS(t, srv)

	require.NoError(t, c.WriteJSON(wsResponse{ID: "a", Type: msgSubscribe, Payload: schema.Request{Query: "subscription { modelRegistered { id } }"}}))
	_, ctx := exec.subscription(t, 0)

	require.NoError(t, c.WriteJSON(wsResponse{ID: "a", Type: msgComplete}))
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("subscription context not cancelled")
	}
}

func TestWebsocket_Errors(t *testing.T) {
	srv, exec := newTestServer(t)
	c := dialWS(t, srv)

	require.NoError(t, c.WriteJSON(wsResponse{ID: "x", Type: "bogus"}))
	msg := readWS(t, c)
	assert.Equal(t, msgError, msg.Type)
	assert.Equal(t, "x", msg.ID)

	require.NoError(t, c.WriteJSON(wsResponse{ID: "1", Type: msgSubscribe, Payload: schema.Request{Query: "subscription { a }"}}))
	results, _ := exec.subscription(t, 0)
	require.NoError(t, c.WriteJSON(wsResponse{ID: "1", Type: msgSubscribe, Payload: schema.Request{Query: "subscription { a }"}}))
	msg = readWS(t, c)
	assert.Equal(t, msgError, msg.Type)
	assert.Contains(t, string(msg.Payload), "already exists")

	results <- &graphql.Result{Errors: errorsPayload("boom")}
	msg = readWS(t, c)
	assert.Equal(t, msgError, msg.Type)
	assert.Contains(t, string(msg.Payload), "boom")
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(config.ServerConfig{Addr: "127.0.0.1:0"}, &fakeExecutor{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
