package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/graphql-go/graphql"

	"scribe/helper"
	"scribe/model"
)

const (
	entityField = "entity"
	optionField = "option"

	// hidden source keys carried next to rendered values
	entityKey  = "__entity"
	recordKey  = "__record"
	recordsKey = "__records"
)

type filterField struct {
	member string
	op     string
}

var filterOps = []struct{ suffix, op string }{
	{"", "EQ"},
	{"NEQ", "NEQ"},
	{"GT", "GT"},
	{"GTE", "GTE"},
	{"LT", "LT"},
	{"LTE", "LTE"},
}

// register claims a type name, failing when it is taken.
func (bd *builder) register(t graphql.Type) error {
	if _, taken := bd.types[t.Name()]; taken {
		return fmt.Errorf("type name %s is taken", t.Name())
	}
	bd.types[t.Name()] = t
	return nil
}

func (bd *builder) available(names ...string) error {
	for _, n := range names {
		if _, taken := bd.types[n]; taken {
			return fmt.Errorf("type name %s is taken", n)
		}
	}
	return nil
}

// addModel creates the object, where input and connection of one model.
func (bd *builder) addModel(m model.Model) error {
	s, err := m.Struct()
	if err != nil {
		return err
	}
	if err := bd.available(m.Name, m.Name+"Connection", m.Name+"Edge", m.Name+"WhereInput"); err != nil {
		return err
	}

	if _, clash := s.Member(entityField); clash {
		return fmt.Errorf("%s.%s: member shadows the entity field", m.Name, entityField)
	}

	fields := graphql.Fields{}
	for _, member := range s.Children {
		if member.Ty.IsUnit() {
			continue
		}
		t, err := bd.outputType(m.Name, member.Name, member.Ty)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", m.Name, member.Name, err)
		}
		fields[member.Name] = &graphql.Field{Type: t}
	}
	fields[entityField] = &graphql.Field{Type: bd.entity, Resolve: bd.resolveRecordEntity}
	obj := graphql.NewObject(graphql.ObjectConfig{Name: m.Name, Fields: fields})
	if err := bd.register(obj); err != nil {
		return err
	}
	conn, err := bd.connection(m.Name, obj)
	if err != nil {
		return err
	}
	bd.objects[m.Name] = obj
	bd.connections[m.Name] = conn
	bd.addWhere(m.Name, s)
	return nil
}

// outputType maps a member shape to its GraphQL type. Named types nested in
// a model are prefixed with the model name.
func (bd *builder) outputType(prefix, path string, t model.Ty) (graphql.Output, error) {
	switch t.Kind {
	case model.KindPrimitive:
		return scalars[t.Primitive.Type], nil
	case model.KindStruct:
		name := prefix + "_" + t.Struct.Name
		if existing, ok := bd.types[name].(graphql.Output); ok {
			return existing, nil
		}
		fields := graphql.Fields{}
		for _, c := range t.Struct.Children {
			if c.Ty.IsUnit() {
				continue
			}
			ft, err := bd.outputType(prefix, path+"_"+c.Name, c.Ty)
			if err != nil {
				return nil, err
			}
			fields[c.Name] = &graphql.Field{Type: ft}
		}
		if len(fields) == 0 {
			return nil, fmt.Errorf("struct %s has no fields", t.Struct.Name)
		}
		obj := graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
		return obj, bd.register(obj)
	case model.KindEnum:
		name := prefix + "_" + t.Enum.Name
		if existing, ok := bd.types[name].(graphql.Output); ok {
			return existing, nil
		}
		if t.Enum.IsUnitOnly() {
			values := graphql.EnumValueConfigMap{}
			for _, o := range t.Enum.Options {
				values[o.Name] = &graphql.EnumValueConfig{Value: o.Name}
			}
			e := graphql.NewEnum(graphql.EnumConfig{Name: name, Values: values})
			return e, bd.register(e)
		}
		fields := graphql.Fields{}
		for _, o := range t.Enum.Options {
			if o.Ty.IsUnit() {
				continue
			}
			ft, err := bd.outputType(prefix, path+"_"+o.Name, o.Ty)
			if err != nil {
				return nil, err
			}
			fields[o.Name] = &graphql.Field{Type: ft}
		}
		fields[optionField] = &graphql.Field{Type: graphql.String}
		obj := graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
		return obj, bd.register(obj)
	case model.KindTuple:
		if len(t.Tuple) == 0 {
			return nil, fmt.Errorf("empty tuple")
		}
		name := prefix + "_" + path
		fields := graphql.Fields{}
		for i, e := range t.Tuple {
			if e.IsUnit() {
				continue
			}
			ft, err := bd.outputType(prefix, path+"_"+strconv.Itoa(i), e)
			if err != nil {
				return nil, err
			}
			fields[model.TupleField(i)] = &graphql.Field{Type: ft}
		}
		if len(fields) == 0 {
			return nil, fmt.Errorf("tuple %s has no fields", path)
		}
		obj := graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
		return obj, bd.register(obj)
	}
	return nil, fmt.Errorf("unsupported kind %s", t.Kind)
}

// addWhere builds the filter input over top level primitives and enums.
func (bd *builder) addWhere(modelName string, s *model.Struct) {
	fields := graphql.InputObjectConfigFieldMap{}
	known := make(map[string]filterField)
	for _, member := range s.Children {
		var in graphql.Input
		switch member.Ty.Kind {
		case model.KindPrimitive:
			in = scalars[member.Ty.Primitive.Type]
		case model.KindEnum:
			if e, ok := bd.types[modelName+"_"+member.Ty.Enum.Name].(*graphql.Enum); ok {
				in = e
			} else {
				in = graphql.String
			}
		default:
			continue
		}
		for _, op := range filterOps {
			name := member.Name + op.suffix
			fields[name] = &graphql.InputObjectFieldConfig{Type: in}
			known[name] = filterField{member: member.Name, op: op.op}
		}
	}
	if len(fields) == 0 {
		return
	}
	input := graphql.NewInputObject(graphql.InputObjectConfig{Name: modelName + "WhereInput", Fields: fields})
	bd.types[input.Name()] = input
	bd.wheres[modelName] = input
	bd.whereFields[modelName] = known
}

// connection builds {name}Connection{total_count, edges} and {name}Edge{node, cursor}.
func (bd *builder) connection(name string, node graphql.Output) (*graphql.Object, error) {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"node":   &graphql.Field{Type: node},
			"cursor": &graphql.Field{Type: Cursor},
		},
	})
	conn := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"total_count": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"edges":       &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(edge))},
		},
	})
	if err := bd.register(edge); err != nil {
		return nil, err
	}
	return conn, bd.register(conn)
}

func connectionValue[T any](page model.Page[T], node func(T) interface{}) map[string]interface{} {
	edges := make([]map[string]interface{}, len(page.Items))
	for i, item := range page.Items {
		edges[i] = map[string]interface{}{"node": node(item), "cursor": page.Cursors[i]}
	}
	return map[string]interface{}{"total_count": page.TotalCount, "edges": edges}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func hexes(felts []model.Felt) []string {
	out := make([]string, len(felts))
	for i, f := range felts {
		out[i] = f.Hex()
	}
	return out
}

// entityNode renders an entity. records, when set, replace the stored
// values of their models.
func entityNode(e model.Entity, records []model.Record) map[string]interface{} {
	node := map[string]interface{}{
		"id":          e.ID,
		"keys":        hexes(e.Keys),
		"model_names": strings.Join(e.ModelNames, ","),
		"event_id":    e.EventID,
		"created_at":  formatTime(e.CreatedAt),
		"updated_at":  formatTime(e.UpdatedAt),
		entityKey:     e,
	}
	if records != nil {
		node[recordsKey] = records
	}
	return node
}

func recordNode(r model.Record) map[string]interface{} {
	node, _ := r.Value.Value().(map[string]interface{})
	if node == nil {
		node = make(map[string]interface{})
	}
	node[recordKey] = r
	return node
}

func modelID(name string) string {
	return helper.Selector(name).Hex()
}

func modelNode(m model.Model) map[string]interface{} {
	return map[string]interface{}{
		"id":         modelID(m.Name),
		"name":       m.Name,
		"class_hash": m.ClassHash.Hex(),
		"version":    m.Version,
		"event_id":   m.EventID,
		"created_at": formatTime(m.CreatedAt),
	}
}

func metadataNode(m model.Metadata) interface{} {
	return map[string]interface{}{
		"id":         m.ID,
		"uri":        m.URI,
		"event_id":   m.EventID,
		"created_at": formatTime(m.CreatedAt),
		"updated_at": formatTime(m.UpdatedAt),
	}
}

func eventNode(e model.StoredEvent) interface{} {
	return map[string]interface{}{
		"id":               e.ID,
		"keys":             hexes(e.Keys),
		"data":             hexes(e.Data),
		"transaction_hash": e.TransactionHash.Hex(),
		"created_at":       formatTime(e.CreatedAt),
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
