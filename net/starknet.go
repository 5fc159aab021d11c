package net

import (
	"context"
	"fmt"

	"github.com/autonity/autonity/rpc"

	"scribe/interfaces"
	"scribe/model"
)

const (
	methodBlockNumber   = "starknet_blockNumber"
	methodBlockWithTxs  = "starknet_getBlockWithTxs"
	methodGetTxReceipt  = "starknet_getTransactionReceipt"
	receiptBatchMaxSize = 100
)

// StarknetClient reads blocks and receipts over the pooled JSON-RPC
// connections.
type StarknetClient struct {
	cp ConnectionProvider
}

var (
	_ interfaces.ChainClient    = (*StarknetClient)(nil)
	_ interfaces.ReceiptBatcher = (*StarknetClient)(nil)
)

func NewStarknetClient(cp ConnectionProvider) *StarknetClient {
	return &StarknetClient{cp: cp}
}

type blockID struct {
	BlockNumber uint64 `json:"block_number"`
}

func (c *StarknetClient) client() (interfaces.RPCClient, error) {
	con := c.cp.GetRPCConnection()
	if con == nil {
		return nil, ErrNoConnection
	}
	return con.Client, nil
}

func (c *StarknetClient) BlockNumber(ctx context.Context) (uint64, error) {
	cl, err := c.client()
	if err != nil {
		return 0, err
	}
	var n uint64
	if err := cl.CallContext(ctx, &n, methodBlockNumber); err != nil {
		return 0, fmt.Errorf("%s: %w", methodBlockNumber, err)
	}
	return n, nil
}

func (c *StarknetClient) BlockWithTxs(ctx context.Context, number uint64) (*model.Block, error) {
	cl, err := c.client()
	if err != nil {
		return nil, err
	}
	var block model.Block
	if err := cl.CallContext(ctx, &block, methodBlockWithTxs, blockID{BlockNumber: number}); err != nil {
		return nil, fmt.Errorf("%s(%d): %w", methodBlockWithTxs, number, err)
	}
	return &block, nil
}

func (c *StarknetClient) TransactionReceipt(ctx context.Context, hash model.Felt) (*model.Receipt, error) {
	cl, err := c.client()
	if err != nil {
		return nil, err
	}
	var receipt model.Receipt
	if err := cl.CallContext(ctx, &receipt, methodGetTxReceipt, hash.Hex()); err != nil {
		return nil, fmt.Errorf("%s(%s): %w", methodGetTxReceipt, hash.Hex(), err)
	}
	return &receipt, nil
}

// TransactionReceipts fetches receipts in batch calls, in the order of hashes.
func (c *StarknetClient) TransactionReceipts(ctx context.Context, hashes []model.Felt) ([]*model.Receipt, error) {
	cl, err := c.client()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Receipt, 0, len(hashes))
	for start := 0; start < len(hashes); start += receiptBatchMaxSize {
		end := min(start+receiptBatchMaxSize, len(hashes))
		requests := make([]rpc.BatchElem, 0, end-start)
		for _, h := range hashes[start:end] {
			requests = append(requests, rpc.BatchElem{
				Method: methodGetTxReceipt,
				Args:   []interface{}{h.Hex()},
				Result: new(model.Receipt),
			})
		}
		if err := cl.BatchCallContext(ctx, requests); err != nil {
			return nil, fmt.Errorf("receipt batch: %w", err)
		}
		for i, req := range requests {
			if req.Error != nil {
				return nil, fmt.Errorf("%s(%s): %w", methodGetTxReceipt, hashes[start+i].Hex(), req.Error)
			}
			out = append(out, req.Result.(*model.Receipt))
		}
	}
	return out, nil
}
