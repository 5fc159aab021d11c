package handlers

import (
	"context"
	"log/slog"
	"sync/atomic"

	"scribe/interfaces"
	"scribe/model"
)

const BlockStatsMeasurement = "BlockStats"

// BlockStatsHandler writes one time series point per indexed block.
type BlockStatsHandler struct {
	Points interfaces.PointWriter
	last   atomic.Uint64
}

func (h *BlockStatsHandler) BlockNumber() uint64 {
	return h.last.Load()
}

func (h *BlockStatsHandler) Process(ctx context.Context, _ interfaces.Storage, _ interfaces.ChainClient, block *model.Block) error {
	fields := map[string]interface{}{
		"block":        block.Number,
		"transactions": len(block.Transactions),
		"timestamp":    int64(block.Timestamp),
	}
	tags := map[string]string{"hash": block.Hash.Hex()}
	if err := h.Points.WritePoint(ctx, BlockStatsMeasurement, tags, fields, block.Time()); err != nil {
		// stats are best effort, they never hold back indexing
		slog.Error("unable to write block stats", "block", block.Number, "error", err)
	}
	h.last.Store(block.Number)
	return nil
}
