//go:generate mockgen -source=databaseHandler.go -destination=../mocks/databaseHandler.go -package=mocks

package interfaces

import (
	"context"
	"time"

	"scribe/model"
)

// Storage is the write view processors get for the block being applied. All
// writes become visible together when the block commits.
type Storage interface {
	RegisterModel(ctx context.Context, m model.Model) error
	SetEntity(ctx context.Context, w model.EntityWrite) error
	SetMetadata(ctx context.Context, resource model.Felt, uri, eventID string, ts time.Time) error
	StoreEvent(ctx context.Context, eventID string, event model.Event, txHash model.Felt, ts time.Time) error
	StoreTransaction(ctx context.Context, block *model.Block, tx model.Transaction) error
	Model(ctx context.Context, name string) (model.Model, error)
}

// Batch is a Storage bound to one block.
type Batch interface {
	Storage
	Commit(ctx context.Context, block uint64) (model.CommitSummary, error)
	Rollback() error
}

// Database hands out write batches one at a time and tracks the cursor.
type Database interface {
	Begin(ctx context.Context) (Batch, error)
	Head(ctx context.Context) (uint64, bool, error)
}

// Reader answers queries. Reads may run while a batch is open.
type Reader interface {
	Head(ctx context.Context) (uint64, bool, error)
	Models(ctx context.Context) ([]model.Model, error)
	Model(ctx context.Context, name string) (model.Model, error)
	Entity(ctx context.Context, id string) (model.Entity, error)
	Entities(ctx context.Context, q model.EntityQuery) (model.Page[model.Entity], error)
	Records(ctx context.Context, modelName string, q model.RecordQuery) (model.Page[model.Record], error)
	Record(ctx context.Context, modelName, entityID string) (model.Record, error)
	EntityRecords(ctx context.Context, e model.Entity) ([]model.Record, error)
	Metadata(ctx context.Context, q model.PageQuery) (model.Page[model.Metadata], error)
	Events(ctx context.Context, keys []model.Felt, q model.PageQuery) (model.Page[model.StoredEvent], error)
}

// PointWriter writes time series points.
type PointWriter interface {
	WritePoint(ctx context.Context, measurement string, tags map[string]string, fields map[string]interface{}, ts time.Time) error
	Close()
}
