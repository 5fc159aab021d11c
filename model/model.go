package model

import (
	"fmt"
	"time"
)

// Model is a registered, versioned struct shape. Version starts at 1 and grows
// each time the model is re-registered with a different class hash.
type Model struct {
	Name      string
	ClassHash Felt
	Version   int
	Schema    Ty
	EventID   string
	CreatedAt time.Time
}

// Struct returns the model's root struct.
func (m Model) Struct() (*Struct, error) {
	if m.Schema.Kind != KindStruct || m.Schema.Struct == nil {
		return nil, fmt.Errorf("model %s: schema is a %s, expected struct", m.Name, m.Schema.Kind)
	}
	return m.Schema.Struct, nil
}

// Validate checks the model name matches its schema and the shape is well formed.
func (m Model) Validate() error {
	s, err := m.Struct()
	if err != nil {
		return err
	}
	if s.Name != m.Name {
		return fmt.Errorf("model %s: schema declares struct %s", m.Name, s.Name)
	}
	if len(s.Keys()) == 0 {
		return fmt.Errorf("model %s has no key members", m.Name)
	}
	return m.Schema.Validate()
}

// Entity aggregates the models written under one key tuple.
type Entity struct {
	ID         string
	Keys       []Felt
	ModelNames []string
	EventID    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Record is one model's latest value for an entity. Value is a populated
// clone of the model schema.
type Record struct {
	Model     string
	EntityID  string
	Keys      []Felt
	Value     Ty
	EventID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntityWrite is a decoded record write, ready to be applied.
type EntityWrite struct {
	Model     string
	Keys      []Felt
	Value     Ty
	EventID   string
	Timestamp time.Time
}

// EntityUpdate is a committed write together with the entity it touched.
type EntityUpdate struct {
	Entity Entity
	Record Record
}

// Metadata is a resource's off-chain metadata pointer.
type Metadata struct {
	ID        string
	URI       string
	EventID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoredEvent is a dispatched event as kept by storage.
type StoredEvent struct {
	ID              string
	Keys            []Felt
	Data            []Felt
	TransactionHash Felt
	CreatedAt       time.Time
}

// CommitSummary describes what a committed block changed. Models holds the
// registrations that created or changed a model, in commit order; Entities the
// record writes that were applied.
type CommitSummary struct {
	Block    uint64
	Models   []Model
	Entities []EntityUpdate
}

// Page is one page of a cursor-paginated listing.
type Page[T any] struct {
	TotalCount int64
	Items      []T
	Cursors    []string
}

// Filter compares a top-level member against a value. Op is one of
// EQ, NEQ, GT, GTE, LT, LTE.
type Filter struct {
	Member string
	Op     string
	Value  string
}

type RecordQuery struct {
	Where []Filter
	First int
	After string
}

type EntityQuery struct {
	Keys  []Felt
	First int
	After string
}

type PageQuery struct {
	First int
	After string
}
