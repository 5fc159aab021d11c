package model

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/common/hexutil"
)

// FieldPrime is the order of the Stark field, 2^251 + 17*2^192 + 1.
var FieldPrime, _ = new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)

// Felt is a field element as carried in event keys and data.
type Felt [32]byte

var (
	FeltZero = Felt{}
	FeltOne  = FeltFromUint64(1)
)

func FeltFromUint64(v uint64) Felt {
	return FeltFromBig(new(big.Int).SetUint64(v))
}

// FeltFromBig truncates values that do not fit in 32 bytes, callers that need
// range validation should use ParseFelt.
func FeltFromBig(v *big.Int) Felt {
	return Felt(common.BigToHash(v))
}

// ParseFelt accepts 0x-prefixed hex (padded or minimal) or a decimal string.
func ParseFelt(s string) (Felt, error) {
	v, err := parseBig(s)
	if err != nil {
		return Felt{}, err
	}
	if v.Sign() < 0 || v.Cmp(FieldPrime) >= 0 {
		return Felt{}, fmt.Errorf("felt %q out of range", s)
	}
	return FeltFromBig(v), nil
}

func MustParseFelt(s string) Felt {
	f, err := ParseFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

func parseBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	if digits == "" {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func (f Felt) Big() *big.Int {
	return new(big.Int).SetBytes(f[:])
}

func (f Felt) Uint64() uint64 {
	return f.Big().Uint64()
}

func (f Felt) IsZero() bool {
	return f == FeltZero
}

// Hex returns the minimal 0x form, "0x0" for zero.
func (f Felt) Hex() string {
	return hexutil.EncodeBig(f.Big())
}

// Padded returns the 64 digit form used for stored values so that lexical order
// matches numeric order.
func (f Felt) Padded() string {
	return fmt.Sprintf("0x%064x", f.Big())
}

func (f Felt) String() string {
	return f.Hex()
}

// ShortString decodes a Cairo short string (up to 31 ASCII bytes, big endian).
func (f Felt) ShortString() string {
	b := f[:]
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return string(b)
}

func FeltFromShortString(s string) (Felt, error) {
	if len(s) > 31 {
		return Felt{}, fmt.Errorf("short string %q longer than 31 bytes", s)
	}
	var f Felt
	copy(f[32-len(s):], s)
	return f, nil
}

func MustShortString(s string) Felt {
	f, err := FeltFromShortString(s)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Hex())
}

func (f *Felt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("felt must be a string: %w", err)
	}
	v, err := ParseFelt(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// JoinFelts renders felts as "0x1/0x2/", the stored form of entity keys.
func JoinFelts(felts []Felt) string {
	var sb strings.Builder
	for _, f := range felts {
		sb.WriteString(f.Hex())
		sb.WriteByte('/')
	}
	return sb.String()
}

func SplitFelts(s string) ([]Felt, error) {
	parts := strings.Split(strings.TrimSuffix(s, "/"), "/")
	out := make([]Felt, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		f, err := ParseFelt(p)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
