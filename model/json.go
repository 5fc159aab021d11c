package model

import (
	"encoding/json"
	"fmt"
)

// JSON form of a shape:
//
//	{"primitive":"u8"}
//	{"struct":{"name":"Vec2","children":[{"name":"x","key":false,"ty":{...}}]}}
//	{"enum":{"name":"Direction","options":[{"name":"Up","ty":{"tuple":[]}}]}}
//	{"tuple":[{...},{...}]}
//
// Values are not encoded, only the shape.

type tyJSON struct {
	Primitive string      `json:"primitive,omitempty"`
	Struct    *structJSON `json:"struct,omitempty"`
	Enum      *enumJSON   `json:"enum,omitempty"`
	Tuple     *[]Ty       `json:"tuple,omitempty"`
}

type structJSON struct {
	Name     string       `json:"name"`
	Children []memberJSON `json:"children"`
}

type memberJSON struct {
	Name string `json:"name"`
	Key  bool   `json:"key"`
	Ty   Ty     `json:"ty"`
}

type enumJSON struct {
	Name    string       `json:"name"`
	Options []optionJSON `json:"options"`
}

type optionJSON struct {
	Name string `json:"name"`
	Ty   Ty     `json:"ty"`
}

func (t Ty) MarshalJSON() ([]byte, error) {
	var out tyJSON
	switch t.Kind {
	case KindPrimitive:
		out.Primitive = t.Primitive.Type.String()
	case KindStruct:
		s := &structJSON{Name: t.Struct.Name, Children: make([]memberJSON, len(t.Struct.Children))}
		for i, m := range t.Struct.Children {
			s.Children[i] = memberJSON{Name: m.Name, Key: m.Key, Ty: m.Ty}
		}
		out.Struct = s
	case KindEnum:
		e := &enumJSON{Name: t.Enum.Name, Options: make([]optionJSON, len(t.Enum.Options))}
		for i, o := range t.Enum.Options {
			e.Options[i] = optionJSON{Name: o.Name, Ty: o.Ty}
		}
		out.Enum = e
	case KindTuple:
		elems := t.Tuple
		if elems == nil {
			elems = []Ty{}
		}
		out.Tuple = &elems
	default:
		return nil, fmt.Errorf("cannot encode ty of kind %d", t.Kind)
	}
	return json.Marshal(out)
}

func (t *Ty) UnmarshalJSON(data []byte) error {
	var in tyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	set := 0
	if in.Primitive != "" {
		set++
		pt, err := ParsePrimitiveType(in.Primitive)
		if err != nil {
			return err
		}
		*t = PrimitiveTy(pt)
	}
	if in.Struct != nil {
		set++
		children := make([]Member, len(in.Struct.Children))
		for i, m := range in.Struct.Children {
			children[i] = Member{Name: m.Name, Key: m.Key, Ty: m.Ty}
		}
		*t = StructTy(in.Struct.Name, children...)
	}
	if in.Enum != nil {
		set++
		options := make([]EnumOption, len(in.Enum.Options))
		for i, o := range in.Enum.Options {
			options[i] = EnumOption{Name: o.Name, Ty: o.Ty}
		}
		*t = EnumTy(in.Enum.Name, options...)
	}
	if in.Tuple != nil {
		set++
		*t = TupleTy(*in.Tuple...)
	}
	if set != 1 {
		return fmt.Errorf("ty must have exactly one of primitive, struct, enum, tuple; got %d", set)
	}
	return nil
}
