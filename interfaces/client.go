//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

package interfaces

import (
	"context"

	"github.com/autonity/autonity/rpc"

	"scribe/model"
)

// ChainClient defines the methods needed from the chain node.
// Repeated calls for the same block must be safe.
type ChainClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	BlockWithTxs(ctx context.Context, number uint64) (*model.Block, error)
	TransactionReceipt(ctx context.Context, hash model.Felt) (*model.Receipt, error)
}

// ReceiptBatcher is implemented by clients able to fetch many receipts in one
// round trip.
type ReceiptBatcher interface {
	TransactionReceipts(ctx context.Context, hashes []model.Felt) ([]*model.Receipt, error)
}

// WorldReader resolves the declared shape of a model.
type WorldReader interface {
	ModelSchema(ctx context.Context, name string, classHash model.Felt) (model.Ty, error)
}

// RPCClient defines the methods needed from a rpc.Client.
type RPCClient interface {
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}
