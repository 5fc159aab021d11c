package model

import "strconv"

// Value renders a populated t as plain values for JSON and GraphQL. Structs
// become maps keyed by member name and tuples maps keyed "_0", "_1"... Enums
// with only unit options render as the option name, other enums as
// {"option": name, name: payload}. Unset leaves are nil.
func (t Ty) Value() any {
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.value()
	case KindStruct:
		out := make(map[string]any, len(t.Struct.Children))
		for _, m := range t.Struct.Children {
			out[m.Name] = m.Ty.Value()
		}
		return out
	case KindEnum:
		sel, ok := t.Enum.Selected()
		if !ok {
			return nil
		}
		if t.Enum.IsUnitOnly() {
			return sel.Name
		}
		out := map[string]any{"option": sel.Name}
		if !sel.Ty.IsUnit() {
			out[sel.Name] = sel.Ty.Value()
		}
		return out
	case KindTuple:
		out := make(map[string]any, len(t.Tuple))
		for i, e := range t.Tuple {
			out[TupleField(i)] = e.Value()
		}
		return out
	}
	return nil
}

// TupleField names the i-th tuple element in rendered values.
func TupleField(i int) string {
	return "_" + strconv.Itoa(i)
}

func (p *Primitive) value() any {
	if p.Value == nil {
		return nil
	}
	switch p.Type {
	case Bool:
		return p.Bool()
	case U8, U16, U32, USize, U64:
		return p.Value.Uint64()
	}
	return "0x" + p.Value.Text(16)
}
