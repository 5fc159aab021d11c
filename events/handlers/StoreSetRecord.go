package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scribe/interfaces"
	"scribe/model"
)

// StoreSetRecordHandler decodes a record write against a registered model.
// Data layout: [model_name, keys_len, keys..., offset, values_len, values...].
// Only full writes are supported, offset must be zero.
type StoreSetRecordHandler struct{}

func (h *StoreSetRecordHandler) EventKey() string {
	return StoreSetRecord
}

func (h *StoreSetRecordHandler) Process(ctx context.Context, _ interfaces.WorldReader, storage interfaces.Storage,
	block *model.Block, _ *model.Receipt, eventID string, event model.Event) error {
	cd := newCalldata(StoreSetRecord, event.Data)
	nameFelt, err := cd.next("model_name")
	if err != nil {
		return err
	}
	keys, err := cd.span("keys")
	if err != nil {
		return err
	}
	offset, err := cd.next("offset")
	if err != nil {
		return err
	}
	if !offset.IsZero() {
		return model.NewDecodeError("%s: partial write at offset %s", StoreSetRecord, offset.Hex())
	}
	values, err := cd.span("values")
	if err != nil {
		return err
	}

	name := nameFelt.ShortString()
	m, err := storage.Model(ctx, name)
	if errors.Is(err, model.ErrModelNotFound) {
		return fmt.Errorf("%w: %s", model.ErrUnknownModel, name)
	}
	if err != nil {
		return err
	}
	value, err := decodeRecord(m, keys, values)
	if err != nil {
		return err
	}
	slog.Debug("set record", "model", name, "keys", len(keys), "block", block.Number)
	return storage.SetEntity(ctx, model.EntityWrite{
		Model:     name,
		Keys:      append([]model.Felt(nil), keys...),
		Value:     value,
		EventID:   eventID,
		Timestamp: block.Time(),
	})
}

// decodeRecord fills the key members from keys and the remaining members
// from values, each in declaration order.
func decodeRecord(m model.Model, keys, values []model.Felt) (model.Ty, error) {
	value := m.Schema.Clone()
	if value.Kind != model.KindStruct {
		return value, fmt.Errorf("model %s is not a struct", m.Name)
	}
	s := value.Struct
	var err error
	rest := keys
	for _, k := range s.Keys() {
		if rest, err = k.Ty.Deserialize(rest); err != nil {
			return value, err
		}
	}
	if len(rest) != 0 {
		return value, model.NewDecodeError("%s: %d unused key felts", m.Name, len(rest))
	}
	rest = values
	for _, v := range s.Values() {
		if rest, err = v.Ty.Deserialize(rest); err != nil {
			return value, err
		}
	}
	if len(rest) != 0 {
		return value, model.NewDecodeError("%s: %d unused value felts", m.Name, len(rest))
	}
	return value, nil
}
