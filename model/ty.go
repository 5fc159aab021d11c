package model

import (
	"fmt"
	"regexp"
	"strings"
)

type Kind uint8

const (
	KindPrimitive Kind = iota + 1
	KindStruct
	KindEnum
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindTuple:
		return "tuple"
	}
	return "invalid"
}

// Ty describes the shape of a model field and, once populated, its value.
// Exactly one of Primitive, Struct, Enum or Tuple is meaningful, selected by Kind.
type Ty struct {
	Kind      Kind
	Primitive *Primitive
	Struct    *Struct
	Enum      *Enum
	Tuple     []Ty
}

type Member struct {
	Name string
	Key  bool
	Ty   Ty
}

type Struct struct {
	Name     string
	Children []Member
}

type EnumOption struct {
	Name string
	Ty   Ty
}

// Enum holds the index of the selected option in Option once populated.
type Enum struct {
	Name    string
	Options []EnumOption
	Option  *int
}

func PrimitiveTy(t PrimitiveType) Ty {
	return Ty{Kind: KindPrimitive, Primitive: &Primitive{Type: t}}
}

func StructTy(name string, children ...Member) Ty {
	return Ty{Kind: KindStruct, Struct: &Struct{Name: name, Children: children}}
}

func EnumTy(name string, options ...EnumOption) Ty {
	return Ty{Kind: KindEnum, Enum: &Enum{Name: name, Options: options}}
}

// UnitEnumTy builds an enum whose options carry no payload.
func UnitEnumTy(name string, options ...string) Ty {
	opts := make([]EnumOption, len(options))
	for i, o := range options {
		opts[i] = EnumOption{Name: o, Ty: TupleTy()}
	}
	return EnumTy(name, opts...)
}

func TupleTy(elems ...Ty) Ty {
	if elems == nil {
		elems = []Ty{}
	}
	return Ty{Kind: KindTuple, Tuple: elems}
}

func (t Ty) Name() string {
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.Type.String()
	case KindStruct:
		return t.Struct.Name
	case KindEnum:
		return t.Enum.Name
	case KindTuple:
		names := make([]string, len(t.Tuple))
		for i, e := range t.Tuple {
			names[i] = e.Name()
		}
		return "(" + strings.Join(names, ", ") + ")"
	}
	return ""
}

// IsUnit reports whether t is the empty tuple.
func (t Ty) IsUnit() bool {
	return t.Kind == KindTuple && len(t.Tuple) == 0
}

func (t Ty) Clone() Ty {
	c := Ty{Kind: t.Kind}
	switch t.Kind {
	case KindPrimitive:
		c.Primitive = t.Primitive.clone()
	case KindStruct:
		s := &Struct{Name: t.Struct.Name, Children: make([]Member, len(t.Struct.Children))}
		for i, m := range t.Struct.Children {
			s.Children[i] = Member{Name: m.Name, Key: m.Key, Ty: m.Ty.Clone()}
		}
		c.Struct = s
	case KindEnum:
		e := &Enum{Name: t.Enum.Name, Options: make([]EnumOption, len(t.Enum.Options))}
		for i, o := range t.Enum.Options {
			e.Options[i] = EnumOption{Name: o.Name, Ty: o.Ty.Clone()}
		}
		if t.Enum.Option != nil {
			sel := *t.Enum.Option
			e.Option = &sel
		}
		c.Enum = e
	case KindTuple:
		c.Tuple = make([]Ty, len(t.Tuple))
		for i, e := range t.Tuple {
			c.Tuple[i] = e.Clone()
		}
	}
	return c
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether s can name a model, member or option.
func ValidIdent(s string) bool {
	return identRe.MatchString(s)
}

// Validate checks names are well formed and unique within their container.
func (t Ty) Validate() error {
	switch t.Kind {
	case KindPrimitive:
		if t.Primitive == nil || primitiveNames[t.Primitive.Type] == "" {
			return fmt.Errorf("invalid primitive")
		}
	case KindStruct:
		if t.Struct == nil || !ValidIdent(t.Struct.Name) {
			return fmt.Errorf("invalid struct name")
		}
		seen := make(map[string]struct{}, len(t.Struct.Children))
		for _, m := range t.Struct.Children {
			if !ValidIdent(m.Name) {
				return fmt.Errorf("struct %s: invalid member name %q", t.Struct.Name, m.Name)
			}
			if _, dup := seen[m.Name]; dup {
				return fmt.Errorf("struct %s: duplicate member %q", t.Struct.Name, m.Name)
			}
			seen[m.Name] = struct{}{}
			if err := m.Ty.Validate(); err != nil {
				return fmt.Errorf("%s.%s: %w", t.Struct.Name, m.Name, err)
			}
		}
	case KindEnum:
		if t.Enum == nil || !ValidIdent(t.Enum.Name) {
			return fmt.Errorf("invalid enum name")
		}
		if len(t.Enum.Options) == 0 {
			return fmt.Errorf("enum %s has no options", t.Enum.Name)
		}
		seen := make(map[string]struct{}, len(t.Enum.Options))
		for _, o := range t.Enum.Options {
			if !ValidIdent(o.Name) {
				return fmt.Errorf("enum %s: invalid option name %q", t.Enum.Name, o.Name)
			}
			if _, dup := seen[o.Name]; dup {
				return fmt.Errorf("enum %s: duplicate option %q", t.Enum.Name, o.Name)
			}
			seen[o.Name] = struct{}{}
			if err := o.Ty.Validate(); err != nil {
				return fmt.Errorf("%s::%s: %w", t.Enum.Name, o.Name, err)
			}
		}
	case KindTuple:
		for i, e := range t.Tuple {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("tuple element %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("invalid ty kind %d", t.Kind)
	}
	return nil
}

// Deserialize populates t from felts in Cairo Serde order and returns the
// unconsumed remainder.
func (t Ty) Deserialize(felts []Felt) ([]Felt, error) {
	var err error
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.deserialize(felts)
	case KindStruct:
		for _, m := range t.Struct.Children {
			if felts, err = m.Ty.Deserialize(felts); err != nil {
				return nil, err
			}
		}
	case KindEnum:
		if len(felts) == 0 {
			return nil, decodeErrorf("enum %s: missing variant index", t.Enum.Name)
		}
		idx := felts[0].Big()
		if !idx.IsUint64() || idx.Uint64() >= uint64(len(t.Enum.Options)) {
			return nil, decodeErrorf("enum %s: variant index %s out of range", t.Enum.Name, idx)
		}
		sel := int(idx.Uint64())
		t.Enum.Option = &sel
		return t.Enum.Options[sel].Ty.Deserialize(felts[1:])
	case KindTuple:
		for _, e := range t.Tuple {
			if felts, err = e.Deserialize(felts); err != nil {
				return nil, err
			}
		}
	}
	return felts, nil
}

// Serialize appends the Serde encoding of a populated t to out.
func (t Ty) Serialize(out []Felt) ([]Felt, error) {
	var err error
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.serialize(out)
	case KindStruct:
		for _, m := range t.Struct.Children {
			if out, err = m.Ty.Serialize(out); err != nil {
				return nil, err
			}
		}
	case KindEnum:
		if t.Enum.Option == nil {
			return nil, fmt.Errorf("enum %s has no selected option", t.Enum.Name)
		}
		out = append(out, FeltFromUint64(uint64(*t.Enum.Option)))
		return t.Enum.Options[*t.Enum.Option].Ty.Serialize(out)
	case KindTuple:
		for _, e := range t.Tuple {
			if out, err = e.Serialize(out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Keys returns the key members of a struct in declaration order.
func (s *Struct) Keys() []Member {
	var out []Member
	for _, m := range s.Children {
		if m.Key {
			out = append(out, m)
		}
	}
	return out
}

// Values returns the non-key members of a struct in declaration order.
func (s *Struct) Values() []Member {
	var out []Member
	for _, m := range s.Children {
		if !m.Key {
			out = append(out, m)
		}
	}
	return out
}

func (s *Struct) Member(name string) (Member, bool) {
	for _, m := range s.Children {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Selected returns the selected option, if any.
func (e *Enum) Selected() (EnumOption, bool) {
	if e.Option == nil || *e.Option < 0 || *e.Option >= len(e.Options) {
		return EnumOption{}, false
	}
	return e.Options[*e.Option], true
}

// Select marks the option called name as selected.
func (e *Enum) Select(name string) error {
	for i, o := range e.Options {
		if o.Name == name {
			e.Option = &i
			return nil
		}
	}
	return fmt.Errorf("enum %s has no option %q", e.Name, name)
}

// IsUnitOnly reports whether no option carries a payload.
func (e *Enum) IsUnitOnly() bool {
	for _, o := range e.Options {
		if !o.Ty.IsUnit() {
			return false
		}
	}
	return true
}
