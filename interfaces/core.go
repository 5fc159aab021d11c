//go:generate mockgen -source=core.go -destination=../mocks/core.go -package=mocks

package interfaces

import (
	"context"

	"scribe/model"
)

type Core interface {
	Start(ctx context.Context) error
	SyncToHead(ctx context.Context, from uint64) (uint64, error)
	ProcessRange(ctx context.Context, start, end uint64) error
	Stop()
}

// CommitObserver is told about every committed block. Implementations must
// not block the caller for long.
type CommitObserver interface {
	OnCommit(ctx context.Context, summary model.CommitSummary)
}
