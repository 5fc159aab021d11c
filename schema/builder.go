package schema

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/graphql-go/graphql"

	"scribe/broker"
	"scribe/interfaces"
	"scribe/model"
)

type builder struct {
	reader interfaces.Reader
	broker *broker.Server

	types       map[string]graphql.Type
	objects     map[string]*graphql.Object
	connections map[string]*graphql.Object
	wheres      map[string]*graphql.InputObject
	whereFields map[string]map[string]filterField

	entity       *graphql.Object
	entityConn   *graphql.Object
	modelObj     *graphql.Object
	modelConn    *graphql.Object
	metadataConn *graphql.Object
	eventConn    *graphql.Object
	union        *graphql.Union
}

// Build generates the query surface for models. Models whose names clash with
// the built in types are left out with a warning. Subscription fields are
// only present when b is set.
func Build(models []model.Model, reader interfaces.Reader, b *broker.Server) (graphql.Schema, error) {
	bd := &builder{
		reader:      reader,
		broker:      b,
		types:       make(map[string]graphql.Type),
		objects:     make(map[string]*graphql.Object),
		connections: make(map[string]*graphql.Object),
		wheres:      make(map[string]*graphql.InputObject),
		whereFields: make(map[string]map[string]filterField),
	}
	for name := range scalarNames() {
		bd.types[name] = nil
	}
	for _, name := range []string{"Query", "Subscription", "ModelUnion"} {
		bd.types[name] = nil
	}
	if err := bd.sharedTypes(); err != nil {
		return graphql.Schema{}, err
	}

	sorted := append([]model.Model(nil), models...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, m := range sorted {
		if err := bd.addModel(m); err != nil {
			slog.Warn("model left out of schema", "model", m.Name, "error", err)
		}
	}
	if len(bd.objects) > 0 {
		types := make([]*graphql.Object, 0, len(bd.objects))
		for _, name := range sortedKeys(bd.objects) {
			types = append(types, bd.objects[name])
		}
		bd.union = graphql.NewUnion(graphql.UnionConfig{
			Name:        "ModelUnion",
			Types:       types,
			ResolveType: bd.resolveModelType,
		})
	}

	cfg := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: bd.queryFields()}),
	}
	if b != nil {
		cfg.Subscription = bd.subscriptionType()
	}
	return graphql.NewSchema(cfg)
}

func (bd *builder) sharedTypes() error {
	felts := graphql.NewList(scalars[model.Felt252])

	// Entity fields refer to the model union, which exists only once every
	// model has been added.
	bd.entity = graphql.NewObject(graphql.ObjectConfig{
		Name: "Entity",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			fields := graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"keys":        &graphql.Field{Type: felts},
				"model_names": &graphql.Field{Type: graphql.String},
				"event_id":    &graphql.Field{Type: graphql.String},
				"created_at":  &graphql.Field{Type: graphql.String},
				"updated_at":  &graphql.Field{Type: graphql.String},
			}
			if bd.union != nil {
				fields["models"] = &graphql.Field{Type: graphql.NewList(bd.union), Resolve: bd.resolveEntityModels}
			}
			return fields
		}),
	})
	bd.modelObj = graphql.NewObject(graphql.ObjectConfig{
		Name: "Model",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":       &graphql.Field{Type: graphql.String},
			"class_hash": &graphql.Field{Type: scalars[model.ClassHash]},
			"version":    &graphql.Field{Type: graphql.Int},
			"event_id":   &graphql.Field{Type: graphql.String},
			"created_at": &graphql.Field{Type: graphql.String},
		},
	})
	metadata := graphql.NewObject(graphql.ObjectConfig{
		Name: "Metadata",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"uri":        &graphql.Field{Type: graphql.String},
			"event_id":   &graphql.Field{Type: graphql.String},
			"created_at": &graphql.Field{Type: graphql.String},
			"updated_at": &graphql.Field{Type: graphql.String},
		},
	})
	event := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"keys":             &graphql.Field{Type: felts},
			"data":             &graphql.Field{Type: felts},
			"transaction_hash": &graphql.Field{Type: scalars[model.Felt252]},
			"created_at":       &graphql.Field{Type: graphql.String},
		},
	})
	for _, obj := range []*graphql.Object{bd.entity, bd.modelObj, metadata, event} {
		if err := bd.register(obj); err != nil {
			return err
		}
	}

	var err error
	if bd.entityConn, err = bd.connection("Entity", bd.entity); err != nil {
		return err
	}
	if bd.modelConn, err = bd.connection("Model", bd.modelObj); err != nil {
		return err
	}
	if bd.metadataConn, err = bd.connection("Metadata", metadata); err != nil {
		return err
	}
	if bd.eventConn, err = bd.connection("Event", event); err != nil {
		return err
	}
	return nil
}

func pageArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"first": &graphql.ArgumentConfig{Type: graphql.Int},
		"after": &graphql.ArgumentConfig{Type: Cursor},
	}
}

func keyedPageArgs() graphql.FieldConfigArgument {
	args := pageArgs()
	args["keys"] = &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)}
	return args
}

func (bd *builder) queryFields() graphql.Fields {
	fields := graphql.Fields{
		"entities": &graphql.Field{
			Type:    bd.entityConn,
			Args:    keyedPageArgs(),
			Resolve: bd.resolveEntities,
		},
		"entity": &graphql.Field{
			Type:    bd.entity,
			Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
			Resolve: bd.resolveEntity,
		},
		"models": &graphql.Field{
			Type:    bd.modelConn,
			Resolve: bd.resolveModels,
		},
		"model": &graphql.Field{
			Type:    bd.modelObj,
			Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
			Resolve: bd.resolveModel,
		},
		"metadatas": &graphql.Field{
			Type:    bd.metadataConn,
			Args:    pageArgs(),
			Resolve: bd.resolveMetadata,
		},
		"events": &graphql.Field{
			Type:    bd.eventConn,
			Args:    keyedPageArgs(),
			Resolve: bd.resolveEvents,
		},
	}
	for _, name := range sortedKeys(bd.objects) {
		field := lowerFirst(name) + "Models"
		if _, clash := fields[field]; clash {
			slog.Warn("model query field clashes, skipped", "model", name, "field", field)
			continue
		}
		args := pageArgs()
		if where, ok := bd.wheres[name]; ok {
			args["where"] = &graphql.ArgumentConfig{Type: where}
		}
		fields[field] = &graphql.Field{
			Type:    bd.connections[name],
			Args:    args,
			Resolve: bd.resolveRecords(name),
		}
	}
	return fields
}

func (bd *builder) subscriptionType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"entityUpdated": &graphql.Field{
				Type: bd.entity,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.ID},
					"model": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Subscribe: bd.subscribeEntities,
				Resolve:   passSource,
			},
			"modelRegistered": &graphql.Field{
				Type: bd.modelObj,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Subscribe: bd.subscribeModels,
				Resolve:   passSource,
			},
		},
	})
}

func (bd *builder) resolveModelType(p graphql.ResolveTypeParams) *graphql.Object {
	node, ok := p.Value.(map[string]interface{})
	if !ok {
		return nil
	}
	r, ok := node[recordKey].(model.Record)
	if !ok {
		return nil
	}
	return bd.objects[r.Model]
}

func passSource(p graphql.ResolveParams) (interface{}, error) {
	return p.Source, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func intArg(p graphql.ResolveParams, name string) int {
	n, _ := p.Args[name].(int)
	return n
}

func keysArg(p graphql.ResolveParams) ([]model.Felt, error) {
	raw, _ := p.Args["keys"].([]interface{})
	keys := make([]model.Felt, 0, len(raw))
	for _, k := range raw {
		s, _ := k.(string)
		f, err := model.ParseFelt(s)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		keys = append(keys, f)
	}
	return keys, nil
}
