package model

import (
	"fmt"
	"math/big"
)

type PrimitiveType uint8

const (
	U8 PrimitiveType = iota + 1
	U16
	U32
	U64
	U128
	U256
	USize
	Bool
	Felt252
	ClassHash
	ContractAddress
)

var primitiveNames = map[PrimitiveType]string{
	U8:              "u8",
	U16:             "u16",
	U32:             "u32",
	U64:             "u64",
	U128:            "u128",
	U256:            "u256",
	USize:           "usize",
	Bool:            "bool",
	Felt252:         "felt252",
	ClassHash:       "ClassHash",
	ContractAddress: "ContractAddress",
}

// PrimitiveTypes lists every primitive in declaration order.
var PrimitiveTypes = []PrimitiveType{U8, U16, U32, U64, U128, U256, USize, Bool, Felt252, ClassHash, ContractAddress}

func (t PrimitiveType) String() string {
	if n, ok := primitiveNames[t]; ok {
		return n
	}
	return fmt.Sprintf("PrimitiveType(%d)", uint8(t))
}

func ParsePrimitiveType(s string) (PrimitiveType, error) {
	for t, n := range primitiveNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown primitive type %q", s)
}

// bits returns the value width, 0 meaning bounded by the field prime.
func (t PrimitiveType) bits() uint {
	switch t {
	case U8:
		return 8
	case U16:
		return 16
	case U32, USize:
		return 32
	case U64:
		return 64
	case U128:
		return 128
	case U256:
		return 256
	case Bool:
		return 1
	}
	return 0
}

// FeltCount is the number of felts the type occupies in serialized form.
func (t PrimitiveType) FeltCount() int {
	if t == U256 {
		return 2
	}
	return 1
}

// IsInteger reports whether values are stored as SQL integers rather than
// padded hex text.
func (t PrimitiveType) IsInteger() bool {
	switch t {
	case U8, U16, U32, USize, Bool:
		return true
	}
	return false
}

// Primitive is a scalar leaf. Value is nil until populated.
type Primitive struct {
	Type  PrimitiveType
	Value *big.Int
}

func (p *Primitive) clone() *Primitive {
	c := &Primitive{Type: p.Type}
	if p.Value != nil {
		c.Value = new(big.Int).Set(p.Value)
	}
	return c
}

// Set validates v against the type range before storing it.
func (p *Primitive) Set(v *big.Int) error {
	if v.Sign() < 0 {
		return fmt.Errorf("negative value for %s", p.Type)
	}
	if b := p.Type.bits(); b > 0 {
		if v.BitLen() > int(b) {
			return fmt.Errorf("value %s overflows %s", v, p.Type)
		}
	} else if v.Cmp(FieldPrime) >= 0 {
		return fmt.Errorf("value %s out of field range for %s", v, p.Type)
	}
	p.Value = new(big.Int).Set(v)
	return nil
}

func (p *Primitive) SetUint64(v uint64) error {
	return p.Set(new(big.Int).SetUint64(v))
}

// Parse sets the value from a decimal or 0x hex string.
func (p *Primitive) Parse(s string) error {
	v, err := parseBig(s)
	if err != nil {
		return err
	}
	return p.Set(v)
}

func (p *Primitive) Uint64() uint64 {
	if p.Value == nil {
		return 0
	}
	return p.Value.Uint64()
}

func (p *Primitive) Bool() bool {
	return p.Value != nil && p.Value.Sign() != 0
}

// Padded renders the value as 0x followed by 64 hex digits.
func (p *Primitive) Padded() string {
	if p.Value == nil {
		return ""
	}
	return fmt.Sprintf("0x%064x", p.Value)
}

func (p *Primitive) deserialize(felts []Felt) ([]Felt, error) {
	n := p.Type.FeltCount()
	if len(felts) < n {
		return nil, decodeErrorf("%s needs %d felts, %d left", p.Type, n, len(felts))
	}
	v := felts[0].Big()
	if p.Type == U256 {
		high := felts[1].Big()
		if v.BitLen() > 128 || high.BitLen() > 128 {
			return nil, decodeErrorf("u256 limb exceeds 128 bits")
		}
		v = new(big.Int).Or(new(big.Int).Lsh(high, 128), v)
	}
	if err := p.Set(v); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return felts[n:], nil
}

func (p *Primitive) serialize(out []Felt) ([]Felt, error) {
	if p.Value == nil {
		return nil, fmt.Errorf("%s has no value", p.Type)
	}
	if p.Type == U256 {
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
		low := new(big.Int).And(p.Value, mask)
		high := new(big.Int).Rsh(p.Value, 128)
		return append(out, FeltFromBig(low), FeltFromBig(high)), nil
	}
	return append(out, FeltFromBig(p.Value)), nil
}
