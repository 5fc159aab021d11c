package core

import (
	"context"
	"log/slog"
	"time"
)

// applyBlock runs every processor for one block inside a single batch and
// commits it. On any error the batch is rolled back and the error returned
// unchanged. Once started, a block runs to completion even if ctx is
// cancelled.
func (e *Engine) applyBlock(ctx context.Context, fb fetchedBlock) (err error) {
	ctx = context.WithoutCancel(ctx)
	block := fb.block
	start := time.Now()

	e.setState(Decoding)
	batch, err := e.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := batch.Rollback(); rbErr != nil {
			slog.Error("rollback failed", "block", block.Number, "error", rbErr)
		}
		e.metrics.Failures.Add(1)
		slog.Error("block failed", "number", block.Number, "error", err)
	}()

	e.setState(Dispatching)
	events := 0
	for i, receipt := range fb.receipts {
		n, err := e.dispatchReceipt(ctx, batch, block, i, receipt)
		if err != nil {
			return err
		}
		events += n
	}
	for _, bp := range e.processors.BlockProcessors() {
		if err = bp.Process(ctx, batch, e.client, block); err != nil {
			return err
		}
	}

	e.setState(Committing)
	summary, err := batch.Commit(ctx, block.Number)
	if err != nil {
		return err
	}
	for _, o := range e.observers {
		o.OnCommit(ctx, summary)
	}

	e.metrics.Head.Set(float64(block.Number))
	e.metrics.Blocks.Add(1)
	e.metrics.Events.Add(float64(events))
	e.metrics.BlockSeconds.Observe(time.Since(start).Seconds())
	slog.Debug("block committed", "number", block.Number, "transactions", len(block.Transactions),
		"events", events, "entities", len(summary.Entities), "models", len(summary.Models))
	return nil
}
