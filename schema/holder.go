package schema

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"scribe/broker"
	"scribe/interfaces"
	"scribe/model"
)

const notReadyMessage = "schema not built yet"

// Request is a GraphQL operation as posted by clients.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Holder keeps the current schema. Rebuilds swap the pointer, so a request
// runs entirely against the schema that was current when it started.
type Holder struct {
	reader interfaces.Reader
	broker *broker.Server

	current  atomic.Pointer[graphql.Schema]
	requests chan struct{}
	mu       sync.Mutex
}

var _ interfaces.CommitObserver = (*Holder)(nil)

func NewHolder(reader interfaces.Reader, b *broker.Server) *Holder {
	return &Holder{
		reader:   reader,
		broker:   b,
		requests: make(chan struct{}, 1),
	}
}

// Schema returns the current schema, nil before the first build.
func (h *Holder) Schema() *graphql.Schema {
	return h.current.Load()
}

// Rebuild snapshots the registered models and swaps in a new schema. On
// failure the previous schema stays in place.
func (h *Holder) Rebuild(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	models, err := h.reader.Models(ctx)
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}
	s, err := Build(models, h.reader, h.broker)
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	h.current.Store(&s)
	slog.Info("schema rebuilt", "models", len(models))
	return nil
}

// OnCommit requests a rebuild when the block registered or changed models.
func (h *Holder) OnCommit(_ context.Context, summary model.CommitSummary) {
	if len(summary.Models) == 0 {
		return
	}
	select {
	case h.requests <- struct{}{}:
	default:
	}
}

// Run builds the initial schema and serves rebuild requests until ctx is
// done.
func (h *Holder) Run(ctx context.Context) error {
	if err := h.Rebuild(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.requests:
			if err := h.Rebuild(ctx); err != nil {
				slog.Error("schema rebuild failed", "error", err)
			}
		}
	}
}

func (h *Holder) params(ctx context.Context, s *graphql.Schema, req Request) graphql.Params {
	return graphql.Params{
		Schema:         *s,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	}
}

func notReady() *graphql.Result {
	return &graphql.Result{Errors: []gqlerrors.FormattedError{gqlerrors.NewFormattedError(notReadyMessage)}}
}

func (h *Holder) Execute(ctx context.Context, req Request) *graphql.Result {
	s := h.Schema()
	if s == nil {
		return notReady()
	}
	return graphql.Do(h.params(ctx, s, req))
}

// Subscribe starts a subscription operation. The channel is closed when ctx
// is done or the underlying broker subscription ends.
func (h *Holder) Subscribe(ctx context.Context, req Request) chan *graphql.Result {
	s := h.Schema()
	if s == nil {
		out := make(chan *graphql.Result, 1)
		out <- notReady()
		close(out)
		return out
	}
	return graphql.Subscribe(h.params(ctx, s, req))
}
