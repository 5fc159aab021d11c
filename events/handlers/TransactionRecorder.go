package handlers

import (
	"context"

	"scribe/interfaces"
	"scribe/model"
)

// TransactionRecorder stores every transaction of an indexed block.
type TransactionRecorder struct{}

func (r *TransactionRecorder) Process(ctx context.Context, storage interfaces.Storage, _ interfaces.ChainClient,
	block *model.Block, receipt *model.Receipt) error {
	tx, ok := block.Transaction(receipt.TransactionHash)
	if !ok {
		return model.NewDecodeError("receipt %s has no transaction in block %d", receipt.TransactionHash.Hex(), block.Number)
	}
	return storage.StoreTransaction(ctx, block, tx)
}
