package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scribe/config"
	"scribe/schema"
)

const (
	GraphQLPath   = "/graphql"
	WebsocketPath = "/graphql/ws"
	MetricsPath   = "/metrics"

	maxRequestBytes = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Executor runs GraphQL operations against the current schema.
type Executor interface {
	Execute(ctx context.Context, req schema.Request) *graphql.Result
	Subscribe(ctx context.Context, req schema.Request) chan *graphql.Result
}

// Server exposes queries over HTTP, subscriptions over websockets and the
// process metrics.
type Server struct {
	cfg      config.ServerConfig
	executor Executor
	upgrader websocket.Upgrader
}

func New(cfg config.ServerConfig, executor Executor) *Server {
	return &Server{
		cfg:      cfg,
		executor: executor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{subprotocol},
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(GraphQLPath, s.handleQuery)
	mux.HandleFunc(WebsocketPath, s.handleWebsocket)
	mux.Handle(MetricsPath, promhttp.Handler())
	return mux
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving graphql", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleQuery accepts a JSON body on POST and query parameters on GET.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req schema.Request
	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				http.Error(w, "invalid variables: "+err.Error(), http.StatusBadRequest)
				return
			}
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if req.Query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	res := s.executor.Execute(r.Context(), req)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write graphql response", "error", err)
	}
}
