package registry

import (
	"fmt"
	"reflect"

	"scribe/events/handlers"
	"scribe/helper"
	"scribe/interfaces"
	"scribe/model"
)

// Processors is the fixed set of processors the engine dispatches to. It is
// built once and never mutated, so it is safe for concurrent use.
type Processors struct {
	events       []interfaces.EventProcessor
	blocks       []interfaces.BlockProcessor
	transactions []interfaces.TransactionProcessor
	bySelector   map[model.Felt][]interfaces.EventProcessor
}

// New indexes event processors by the selector of their event key. Event
// keys must be unique and no processor may be registered twice.
func New(events []interfaces.EventProcessor, blocks []interfaces.BlockProcessor,
	transactions []interfaces.TransactionProcessor) (*Processors, error) {
	p := &Processors{
		events:       append([]interfaces.EventProcessor(nil), events...),
		blocks:       append([]interfaces.BlockProcessor(nil), blocks...),
		transactions: append([]interfaces.TransactionProcessor(nil), transactions...),
		bySelector:   make(map[model.Felt][]interfaces.EventProcessor, len(events)),
	}
	keys := make(map[string]struct{}, len(events))
	for _, ep := range events {
		key := ep.EventKey()
		if _, dup := keys[key]; dup {
			return nil, fmt.Errorf("duplicate event processor for %q", key)
		}
		keys[key] = struct{}{}
		sel := helper.Selector(key)
		p.bySelector[sel] = append(p.bySelector[sel], ep)
	}
	if err := unique(blocks); err != nil {
		return nil, fmt.Errorf("block processors: %w", err)
	}
	if err := unique(transactions); err != nil {
		return nil, fmt.Errorf("transaction processors: %w", err)
	}
	return p, nil
}

func unique[T any](ps []T) error {
	for i := range ps {
		t := reflect.TypeOf(ps[i])
		if t == nil {
			return fmt.Errorf("nil processor at %d", i)
		}
		if !t.Comparable() {
			continue
		}
		for j := i + 1; j < len(ps); j++ {
			if any(ps[i]) == any(ps[j]) {
				return fmt.Errorf("%T registered twice", ps[i])
			}
		}
	}
	return nil
}

// EventProcessors returns the processors for selector in registration order.
func (p *Processors) EventProcessors(selector model.Felt) []interfaces.EventProcessor {
	return p.bySelector[selector]
}

func (p *Processors) Handles(selector model.Felt) bool {
	_, ok := p.bySelector[selector]
	return ok
}

func (p *Processors) BlockProcessors() []interfaces.BlockProcessor {
	return p.blocks
}

func (p *Processors) TransactionProcessors() []interfaces.TransactionProcessor {
	return p.transactions
}

// EventKeys lists the registered event names.
func (p *Processors) EventKeys() []string {
	out := make([]string, len(p.events))
	for i, ep := range p.events {
		out[i] = ep.EventKey()
	}
	return out
}

type Options struct {
	// Points enables per block statistics when set.
	Points interfaces.PointWriter
}

// Default wires the built in handlers.
func Default(opts Options) (*Processors, error) {
	events := []interfaces.EventProcessor{
		&handlers.ModelRegisteredHandler{},
		&handlers.StoreSetRecordHandler{},
		&handlers.MetadataUpdateHandler{},
	}
	var blocks []interfaces.BlockProcessor
	if opts.Points != nil {
		blocks = append(blocks, &handlers.BlockStatsHandler{Points: opts.Points})
	}
	txs := []interfaces.TransactionProcessor{&handlers.TransactionRecorder{}}
	return New(events, blocks, txs)
}
