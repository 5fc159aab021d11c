//go:generate mockgen -source=eventHandler.go -destination=../mocks/eventHandler.go -package=mocks

package interfaces

import (
	"context"

	"scribe/model"
)

// EventProcessor handles events whose selector matches the one derived from
// EventKey.
type EventProcessor interface {
	EventKey() string
	Process(ctx context.Context, world WorldReader, storage Storage, block *model.Block,
		receipt *model.Receipt, eventID string, event model.Event) error
}

// BlockProcessor runs once per fetched block. BlockNumber reports the last
// block it processed.
type BlockProcessor interface {
	BlockNumber() uint64
	Process(ctx context.Context, storage Storage, client ChainClient, block *model.Block) error
}

// TransactionProcessor runs once per transaction receipt.
type TransactionProcessor interface {
	Process(ctx context.Context, storage Storage, client ChainClient, block *model.Block,
		receipt *model.Receipt) error
}
