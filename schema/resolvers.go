package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"scribe/broker"
	"scribe/model"
)

func (bd *builder) resolveEntities(p graphql.ResolveParams) (interface{}, error) {
	keys, err := keysArg(p)
	if err != nil {
		return nil, err
	}
	page, err := bd.reader.Entities(p.Context, model.EntityQuery{
		Keys:  keys,
		First: intArg(p, "first"),
		After: stringArg(p, "after"),
	})
	if err != nil {
		return nil, err
	}
	return connectionValue(page, func(e model.Entity) interface{} { return entityNode(e, nil) }), nil
}

func (bd *builder) resolveEntity(p graphql.ResolveParams) (interface{}, error) {
	e, err := bd.reader.Entity(p.Context, stringArg(p, "id"))
	if err != nil {
		return nil, err
	}
	return entityNode(e, nil), nil
}

// resolveEntityModels renders every record of the entity whose model is part
// of this schema.
func (bd *builder) resolveEntityModels(p graphql.ResolveParams) (interface{}, error) {
	src, _ := p.Source.(map[string]interface{})
	e, ok := src[entityKey].(model.Entity)
	if !ok {
		return nil, nil
	}
	records, err := bd.reader.EntityRecords(p.Context, e)
	if err != nil {
		return nil, err
	}
	if override, ok := src[recordsKey].([]model.Record); ok {
		for _, o := range override {
			replaced := false
			for i := range records {
				if records[i].Model == o.Model {
					records[i] = o
					replaced = true
				}
			}
			if !replaced {
				records = append(records, o)
			}
		}
	}
	nodes := make([]interface{}, 0, len(records))
	for _, r := range records {
		if _, ok := bd.objects[r.Model]; ok {
			nodes = append(nodes, recordNode(r))
		}
	}
	return nodes, nil
}

func (bd *builder) resolveRecordEntity(p graphql.ResolveParams) (interface{}, error) {
	src, _ := p.Source.(map[string]interface{})
	r, ok := src[recordKey].(model.Record)
	if !ok {
		return nil, nil
	}
	e, err := bd.reader.Entity(p.Context, r.EntityID)
	if err != nil {
		return nil, err
	}
	return entityNode(e, nil), nil
}

func (bd *builder) resolveRecords(name string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		q := model.RecordQuery{First: intArg(p, "first"), After: stringArg(p, "after")}
		if where, ok := p.Args["where"].(map[string]interface{}); ok {
			known := bd.whereFields[name]
			for _, field := range sortedKeys(where) {
				ff, ok := known[field]
				if !ok || where[field] == nil {
					continue
				}
				q.Where = append(q.Where, model.Filter{Member: ff.member, Op: ff.op, Value: argString(where[field])})
			}
		}
		page, err := bd.reader.Records(p.Context, name, q)
		if err != nil {
			return nil, err
		}
		return connectionValue(page, func(r model.Record) interface{} { return recordNode(r) }), nil
	}
}

func argString(v interface{}) string {
	if s, ok := parseString(v).(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (bd *builder) resolveModels(p graphql.ResolveParams) (interface{}, error) {
	models, err := bd.reader.Models(p.Context)
	if err != nil {
		return nil, err
	}
	page := model.Page[model.Model]{TotalCount: int64(len(models)), Items: models, Cursors: make([]string, len(models))}
	for i, m := range models {
		page.Cursors[i] = modelID(m.Name)
	}
	return connectionValue(page, func(m model.Model) interface{} { return modelNode(m) }), nil
}

// resolveModel accepts a model id or name.
func (bd *builder) resolveModel(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")
	models, err := bd.reader.Models(p.Context)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if m.Name == id || modelID(m.Name) == id {
			return modelNode(m), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", model.ErrModelNotFound, id)
}

func (bd *builder) resolveMetadata(p graphql.ResolveParams) (interface{}, error) {
	page, err := bd.reader.Metadata(p.Context, model.PageQuery{First: intArg(p, "first"), After: stringArg(p, "after")})
	if err != nil {
		return nil, err
	}
	return connectionValue(page, metadataNode), nil
}

func (bd *builder) resolveEvents(p graphql.ResolveParams) (interface{}, error) {
	keys, err := keysArg(p)
	if err != nil {
		return nil, err
	}
	page, err := bd.reader.Events(p.Context, keys, model.PageQuery{First: intArg(p, "first"), After: stringArg(p, "after")})
	if err != nil {
		return nil, err
	}
	return connectionValue(page, eventNode), nil
}

func (bd *builder) subscribeEntities(p graphql.ResolveParams) (interface{}, error) {
	f := broker.Filter{Kind: broker.EntityUpdated, EntityID: stringArg(p, "id"), Model: stringArg(p, "model")}
	return bd.subscribe(p, f, func(u broker.Update) interface{} {
		return entityNode(u.Entity, []model.Record{u.Record})
	})
}

func (bd *builder) subscribeModels(p graphql.ResolveParams) (interface{}, error) {
	f := broker.Filter{Kind: broker.ModelRegistered, Model: stringArg(p, "id")}
	return bd.subscribe(p, f, func(u broker.Update) interface{} { return modelNode(u.Model) })
}

// subscribe bridges a broker subscription to the channel the executor
// reads. Both end with the request context.
func (bd *builder) subscribe(p graphql.ResolveParams, f broker.Filter, node func(broker.Update) interface{}) (interface{}, error) {
	ctx := p.Context
	sub, err := bd.broker.Subscribe(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make(chan interface{})
	go func() {
		defer close(out)
		defer sub.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-sub.Out():
				if !ok {
					return
				}
				select {
				case out <- node(u):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
