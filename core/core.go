package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"scribe/config"
	"scribe/events/registry"
	"scribe/interfaces"
	"scribe/model"
)

// Engine replays blocks from a Starknet node through the registered
// processors and commits one block per storage batch.
type Engine struct {
	cfg        config.EngineConfig
	client     interfaces.ChainClient
	world      interfaces.WorldReader
	db         interfaces.Database
	processors *registry.Processors
	observers  []interfaces.CommitObserver
	metrics    *Metrics

	// worldAddress restricts dispatch to events emitted by the world
	// contract. Zero accepts every emitter.
	worldAddress model.Felt

	state atomic.Int32

	mu     sync.Mutex
	cancel context.CancelFunc
}

var _ interfaces.Core = (*Engine)(nil)

type Option func(*Engine)

// WithObservers registers observers notified after every commit, in order.
func WithObservers(observers ...interfaces.CommitObserver) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, observers...)
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func New(cfg config.Config, client interfaces.ChainClient, world interfaces.WorldReader, database interfaces.Database,
	processors *registry.Processors, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:        cfg.Engine,
		client:     client,
		world:      world,
		db:         database,
		processors: processors,
		metrics:    NopMetrics(),
	}
	if cfg.World.Address != "" {
		addr, err := model.ParseFelt(cfg.World.Address)
		if err != nil {
			return nil, fmt.Errorf("world address: %w", err)
		}
		e.worldAddress = addr
	}
	if e.cfg.PollInterval <= 0 {
		e.cfg.PollInterval = config.Default().Engine.PollInterval
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	if old := State(e.state.Swap(int32(s))); old != s {
		slog.Debug("engine state", "from", old, "to", s)
	}
}

// Start follows the chain from the stored cursor until the context is
// cancelled or Stop is called. A block failure stops the loop and is returned
// as is; the cursor stays on the last committed block.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	ctx, e.cancel = context.WithCancel(ctx)
	e.mu.Unlock()

	next, err := e.resume(ctx)
	if err != nil {
		return err
	}
	slog.Info("starting sync", "from", next)
	for {
		next, err = e.SyncToHead(ctx, next)
		if ctx.Err() != nil {
			slog.Info("sync stopped", "next", next)
			return nil
		}
		if err != nil {
			return err
		}
		if e.State() != CaughtUp {
			continue
		}
		select {
		case <-ctx.Done():
			slog.Info("sync stopped", "next", next)
			return nil
		case <-time.After(e.cfg.PollInterval):
		}
	}
}

// resume returns the first block not yet committed.
func (e *Engine) resume(ctx context.Context) (uint64, error) {
	head, found, err := e.db.Head(ctx)
	if err != nil {
		return 0, err
	}
	if !found || head+1 < e.cfg.StartBlock {
		return e.cfg.StartBlock, nil
	}
	e.metrics.Head.Set(float64(head))
	return head + 1, nil
}

// SyncToHead processes every block from from up to the node's current head
// and returns the next block to fetch.
func (e *Engine) SyncToHead(ctx context.Context, from uint64) (uint64, error) {
	e.setState(Fetching)
	head, err := e.client.BlockNumber(ctx)
	if err != nil {
		e.setState(Idle)
		return from, fmt.Errorf("read chain head: %w", err)
	}
	e.metrics.ChainHead.Set(float64(head))
	if from > head {
		e.setState(CaughtUp)
		return from, nil
	}
	return e.run(ctx, from, head)
}

// ProcessRange processes the blocks start..end, bounded by the node's head.
func (e *Engine) ProcessRange(ctx context.Context, start, end uint64) error {
	e.mu.Lock()
	ctx, e.cancel = context.WithCancel(ctx)
	e.mu.Unlock()

	head, err := e.client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("read chain head: %w", err)
	}
	if end > head {
		slog.Warn("range end is past the chain head", "end", end, "head", head)
		end = head
	}
	if start > end {
		return nil
	}
	slog.Info("processing range", "from", start, "to", end)
	_, err = e.run(ctx, start, end)
	return err
}

func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

type fetchedBlock struct {
	block    *model.Block
	receipts []*model.Receipt
}

// run applies start..end in order. The next block is fetched while the
// current one is dispatched and committed. Cancellation is honoured between
// blocks only.
func (e *Engine) run(ctx context.Context, start, end uint64) (uint64, error) {
	fetched := make(chan fetchedBlock, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(fetched)
		for n := start; n <= end; n++ {
			fb, err := e.fetch(gctx, n)
			if err != nil {
				return err
			}
			select {
			case fetched <- fb:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	next := start
	g.Go(func() error {
		for {
			e.setState(Fetching)
			fb, ok := <-fetched
			if !ok {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.applyBlock(ctx, fb); err != nil {
				return err
			}
			next = fb.block.Number + 1
		}
	})

	err := g.Wait()
	if err == nil && next > end {
		e.setState(CaughtUp)
	} else {
		e.setState(Idle)
	}
	return next, err
}

// fetch loads block n with the receipts of all its transactions.
func (e *Engine) fetch(ctx context.Context, n uint64) (fetchedBlock, error) {
	block, err := e.client.BlockWithTxs(ctx, n)
	if err != nil {
		return fetchedBlock{}, fmt.Errorf("fetch block %d: %w", n, err)
	}
	if block.Number != n {
		return fetchedBlock{}, model.NewDecodeError("node returned block %d for %d", block.Number, n)
	}
	hashes := make([]model.Felt, len(block.Transactions))
	for i, tx := range block.Transactions {
		hashes[i] = tx.Hash
	}

	var receipts []*model.Receipt
	if batcher, ok := e.client.(interfaces.ReceiptBatcher); ok && len(hashes) > 0 {
		receipts, err = batcher.TransactionReceipts(ctx, hashes)
		if err != nil {
			return fetchedBlock{}, fmt.Errorf("fetch receipts of block %d: %w", n, err)
		}
	} else {
		receipts = make([]*model.Receipt, 0, len(hashes))
		for _, h := range hashes {
			r, err := e.client.TransactionReceipt(ctx, h)
			if err != nil {
				return fetchedBlock{}, fmt.Errorf("fetch receipt %s: %w", h, err)
			}
			receipts = append(receipts, r)
		}
	}
	if len(receipts) != len(hashes) {
		return fetchedBlock{}, model.NewDecodeError("block %d has %d transactions but %d receipts", n, len(hashes), len(receipts))
	}
	for i, r := range receipts {
		if r == nil || r.TransactionHash != hashes[i] {
			return fetchedBlock{}, model.NewDecodeError("block %d: receipt %d does not match transaction %s", n, i, hashes[i])
		}
	}
	return fetchedBlock{block: block, receipts: receipts}, nil
}
