package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"scribe/interfaces"
	"scribe/model"
)

// ModelRegisteredHandler registers a model whose shape is resolved through the
// world reader. Data layout: [name, class_hash, ...].
type ModelRegisteredHandler struct{}

func (h *ModelRegisteredHandler) EventKey() string {
	return ModelRegistered
}

func (h *ModelRegisteredHandler) Process(ctx context.Context, world interfaces.WorldReader, storage interfaces.Storage,
	block *model.Block, _ *model.Receipt, eventID string, event model.Event) error {
	cd := newCalldata(ModelRegistered, event.Data)
	nameFelt, err := cd.next("name")
	if err != nil {
		return err
	}
	classHash, err := cd.next("class_hash")
	if err != nil {
		return err
	}
	name := nameFelt.ShortString()
	if !model.ValidIdent(name) {
		return model.NewDecodeError("%s: invalid model name %q", ModelRegistered, name)
	}

	schema, err := world.ModelSchema(ctx, name, classHash)
	if err != nil {
		return fmt.Errorf("resolve schema of %s: %w", name, err)
	}
	if schema.Kind != model.KindStruct || schema.Struct.Name != name {
		return fmt.Errorf("model %s: world declares %s", name, schema.Name())
	}
	slog.Debug("registering model", "name", name, "class_hash", classHash.Hex(), "block", block.Number)
	return storage.RegisterModel(ctx, model.Model{
		Name:      name,
		ClassHash: classHash,
		Schema:    schema,
		EventID:   eventID,
		CreatedAt: block.Time(),
	})
}
