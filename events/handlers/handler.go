package handlers

import (
	"scribe/model"
)

// Note: stick to this naming convention for handlers
// EventName + Handler

const (
	ModelRegistered = "ModelRegistered"
	StoreSetRecord  = "StoreSetRecord"
	MetadataUpdate  = "MetadataUpdate"
)

// calldata walks event data front to back.
type calldata struct {
	event string
	data  []model.Felt
	pos   int
}

func newCalldata(event string, data []model.Felt) *calldata {
	return &calldata{event: event, data: data}
}

func (c *calldata) next(field string) (model.Felt, error) {
	if c.pos >= len(c.data) {
		return model.Felt{}, model.NewDecodeError("%s: missing %s at offset %d", c.event, field, c.pos)
	}
	f := c.data[c.pos]
	c.pos++
	return f, nil
}

// span reads a length prefixed run of felts.
func (c *calldata) span(field string) ([]model.Felt, error) {
	n, err := c.next(field + "_len")
	if err != nil {
		return nil, err
	}
	size := n.Big()
	if !size.IsUint64() || size.Uint64() > uint64(len(c.data)-c.pos) {
		return nil, model.NewDecodeError("%s: %s length %s exceeds remaining %d felts", c.event, field, size, len(c.data)-c.pos)
	}
	out := c.data[c.pos : c.pos+int(size.Uint64())]
	c.pos += len(out)
	return out, nil
}
