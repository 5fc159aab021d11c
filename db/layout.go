package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"scribe/model"
)

const internalPrefix = "internal_"

const (
	colEntityID  = "internal_entity_id"
	colEventID   = "internal_event_id"
	colCreatedAt = "internal_created_at"
	colUpdatedAt = "internal_updated_at"
)

var internalColumns = []string{colEntityID, colEventID, colCreatedAt, colUpdatedAt}

// column is one flattened leaf of a model table: a primitive, or the option
// name of an enum.
type column struct {
	name string
	ty   model.Ty
}

func (c column) sqlType() string {
	if c.ty.Kind == model.KindPrimitive && c.ty.Primitive.Type.IsInteger() {
		return "INTEGER"
	}
	return "TEXT"
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// walk visits the leaves of t in declaration order. Struct members extend the
// path with their name, tuple elements with their index, enum options with the
// option name after the enum's own tag column.
func walk(prefix string, t model.Ty, fn func(name string, leaf model.Ty) error) error {
	switch t.Kind {
	case model.KindPrimitive:
		return fn(prefix, t)
	case model.KindStruct:
		for _, m := range t.Struct.Children {
			if err := walk(joinPath(prefix, m.Name), m.Ty, fn); err != nil {
				return err
			}
		}
	case model.KindEnum:
		if err := fn(prefix, t); err != nil {
			return err
		}
		for _, o := range t.Enum.Options {
			if err := walk(joinPath(prefix, o.Name), o.Ty, fn); err != nil {
				return err
			}
		}
	case model.KindTuple:
		for i, e := range t.Tuple {
			if err := walk(joinPath(prefix, strconv.Itoa(i)), e, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func columns(schema model.Ty) []column {
	var cols []column
	_ = walk("", schema, func(name string, leaf model.Ty) error {
		cols = append(cols, column{name: name, ty: leaf})
		return nil
	})
	return cols
}

// checkReserved rejects top level members that would shadow internal columns.
func checkReserved(s *model.Struct) error {
	for _, m := range s.Children {
		if strings.HasPrefix(m.Name, internalPrefix) {
			return fmt.Errorf("member %q uses the reserved %s prefix", m.Name, internalPrefix)
		}
	}
	return nil
}

func createTableSQL(name string, cols []column) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE IF NOT EXISTS %s (", quote(name))
	fmt.Fprintf(&sb, "%s TEXT PRIMARY KEY, %s TEXT NOT NULL, %s TEXT NOT NULL, %s TEXT NOT NULL",
		colEntityID, colEventID, colCreatedAt, colUpdatedAt)
	for _, c := range cols {
		fmt.Fprintf(&sb, ", %s %s", quote(c.name), c.sqlType())
	}
	sb.WriteString(")")
	return sb.String()
}

// addedColumns returns the columns of next missing from prev.
func addedColumns(prev, next model.Ty) []column {
	have := make(map[string]struct{})
	for _, c := range columns(prev) {
		have[c.name] = struct{}{}
	}
	var out []column
	for _, c := range columns(next) {
		if _, ok := have[c.name]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// encode returns the stored form of a populated leaf, nil when unset.
func encode(leaf model.Ty) any {
	switch leaf.Kind {
	case model.KindPrimitive:
		p := leaf.Primitive
		if p.Value == nil {
			return nil
		}
		if p.Type.IsInteger() {
			return int64(p.Uint64())
		}
		return p.Padded()
	case model.KindEnum:
		if sel, ok := leaf.Enum.Selected(); ok {
			return sel.Name
		}
	}
	return nil
}

// decode populates a leaf from its stored form.
func decode(leaf model.Ty, v sql.NullString) error {
	if !v.Valid {
		return nil
	}
	switch leaf.Kind {
	case model.KindPrimitive:
		return leaf.Primitive.Parse(v.String)
	case model.KindEnum:
		return leaf.Enum.Select(v.String)
	}
	return nil
}

// rowValues flattens a populated value in column order.
func rowValues(value model.Ty) []any {
	var out []any
	_ = walk("", value, func(_ string, leaf model.Ty) error {
		out = append(out, encode(leaf))
		return nil
	})
	return out
}

// scanValue rebuilds a populated clone of schema from stored leaves given in
// column order.
func scanValue(schema model.Ty, stored []sql.NullString) (model.Ty, error) {
	value := schema.Clone()
	i := 0
	err := walk("", value, func(name string, leaf model.Ty) error {
		if i >= len(stored) {
			return fmt.Errorf("column %s missing from row", name)
		}
		if err := decode(leaf, stored[i]); err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
		i++
		return nil
	})
	return value, err
}

// filterValue converts a user supplied comparison value to its stored form.
func filterValue(leaf model.Ty, raw string) (any, error) {
	switch leaf.Kind {
	case model.KindPrimitive:
		p := model.PrimitiveTy(leaf.Primitive.Type)
		if err := p.Primitive.Parse(raw); err != nil {
			return nil, err
		}
		return encode(p), nil
	case model.KindEnum:
		for _, o := range leaf.Enum.Options {
			if o.Name == raw {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("enum %s has no option %q", leaf.Enum.Name, raw)
	}
	return nil, fmt.Errorf("%s members cannot be filtered", leaf.Kind)
}
