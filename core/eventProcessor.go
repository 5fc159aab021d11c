package core

import (
	"context"

	"scribe/interfaces"
	"scribe/model"
)

// dispatchReceipt stores and processes the world events of one receipt in
// emission order, then hands the receipt to the transaction processors. It
// returns the number of events dispatched. txIndex is the transaction's
// position in the block.
func (e *Engine) dispatchReceipt(ctx context.Context, storage interfaces.Storage, block *model.Block,
	txIndex int, receipt *model.Receipt) (int, error) {
	dispatched := 0
	for i, event := range receipt.Events {
		if !e.worldAddress.IsZero() && event.FromAddress != e.worldAddress {
			continue
		}
		selector, ok := event.Selector()
		if !ok {
			continue
		}
		processors := e.processors.EventProcessors(selector)
		if len(processors) == 0 {
			continue
		}
		eventID := model.EventID(block.Number, txIndex, receipt.TransactionHash, i)
		if err := storage.StoreEvent(ctx, eventID, event, receipt.TransactionHash, block.Time()); err != nil {
			return dispatched, err
		}
		for _, p := range processors {
			if err := p.Process(ctx, e.world, storage, block, receipt, eventID, event); err != nil {
				return dispatched, err
			}
		}
		dispatched++
	}
	for _, tp := range e.processors.TransactionProcessors() {
		if err := tp.Process(ctx, storage, e.client, block, receipt); err != nil {
			return dispatched, err
		}
	}
	return dispatched, nil
}
