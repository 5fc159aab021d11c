package handlers

import (
	"context"

	"scribe/helper"
	"scribe/interfaces"
	"scribe/model"
)

// MetadataUpdateHandler records the metadata uri of a world resource.
// Data layout: [resource, uri_len, uri_parts...].
type MetadataUpdateHandler struct{}

func (h *MetadataUpdateHandler) EventKey() string {
	return MetadataUpdate
}

func (h *MetadataUpdateHandler) Process(ctx context.Context, _ interfaces.WorldReader, storage interfaces.Storage,
	block *model.Block, _ *model.Receipt, eventID string, event model.Event) error {
	cd := newCalldata(MetadataUpdate, event.Data)
	resource, err := cd.next("resource")
	if err != nil {
		return err
	}
	parts, err := cd.span("uri")
	if err != nil {
		return err
	}
	return storage.SetMetadata(ctx, resource, helper.SplitShortStrings(parts), eventID, block.Time())
}
