package broker

import (
	"scribe/helper"
	"scribe/model"
)

type Kind int

const (
	// AnyUpdate matches every update.
	AnyUpdate Kind = iota
	EntityUpdated
	ModelRegistered
)

func (k Kind) String() string {
	switch k {
	case EntityUpdated:
		return "entity_updated"
	case ModelRegistered:
		return "model_registered"
	}
	return "any"
}

// Update is one committed change pushed to subscribers.
type Update struct {
	Kind  Kind
	Block uint64

	// Set for EntityUpdated.
	Entity model.Entity
	Record model.Record

	// Set for ModelRegistered.
	Model model.Model
}

// Filter selects updates. Empty fields match anything. Model accepts a model
// name or its id.
type Filter struct {
	Kind     Kind
	EntityID string
	Model    string
}

func (f Filter) Matches(u Update) bool {
	if f.Kind != AnyUpdate && f.Kind != u.Kind {
		return false
	}
	switch u.Kind {
	case EntityUpdated:
		if f.EntityID != "" && f.EntityID != u.Entity.ID {
			return false
		}
		return matchModel(f.Model, u.Record.Model)
	case ModelRegistered:
		if f.EntityID != "" {
			return false
		}
		return matchModel(f.Model, u.Model.Name)
	}
	return false
}

func matchModel(want, name string) bool {
	return want == "" || want == name || want == helper.Selector(name).Hex()
}

// updates flattens a commit into model registrations followed by entity
// writes, each in commit order.
func updates(summary model.CommitSummary) []Update {
	out := make([]Update, 0, len(summary.Models)+len(summary.Entities))
	for _, m := range summary.Models {
		out = append(out, Update{Kind: ModelRegistered, Block: summary.Block, Model: m})
	}
	for _, e := range summary.Entities {
		out = append(out, Update{Kind: EntityUpdated, Block: summary.Block, Entity: e.Entity, Record: e.Record})
	}
	return out
}
