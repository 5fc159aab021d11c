package model

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bigComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func movesTy() Ty {
	return StructTy("Moves",
		Member{Name: "player", Key: true, Ty: PrimitiveTy(ContractAddress)},
		Member{Name: "remaining", Ty: PrimitiveTy(U8)},
		Member{Name: "last_direction", Ty: UnitEnumTy("Direction", "None", "Left", "Right", "Up", "Down")},
	)
}

func TestTy_DeserializeSerialize(t *testing.T) {
	ty := StructTy("Record",
		Member{Name: "id", Key: true, Ty: PrimitiveTy(U32)},
		Member{Name: "big", Ty: PrimitiveTy(U256)},
		Member{Name: "flag", Ty: PrimitiveTy(Bool)},
		Member{Name: "pair", Ty: TupleTy(PrimitiveTy(U8), PrimitiveTy(Felt252))},
		Member{Name: "choice", Ty: EnumTy("Choice",
			EnumOption{Name: "Empty", Ty: TupleTy()},
			EnumOption{Name: "Point", Ty: StructTy("Vec2",
				Member{Name: "x", Ty: PrimitiveTy(U32)},
				Member{Name: "y", Ty: PrimitiveTy(U32)},
			)},
		)},
	)
	felts := []Felt{
		FeltFromUint64(7),
		FeltFromUint64(5), FeltFromUint64(1), // u256 low, high
		FeltFromUint64(1),
		FeltFromUint64(200), MustParseFelt("0xabc"),
		FeltFromUint64(1), FeltFromUint64(3), FeltFromUint64(4),
		FeltFromUint64(99), // trailing
	}

	rest, err := ty.Deserialize(felts)
	require.NoError(t, err)
	assert.Equal(t, []Felt{FeltFromUint64(99)}, rest)

	s := ty.Struct
	big256 := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(5))
	assert.Equal(t, 0, s.Children[1].Ty.Primitive.Value.Cmp(big256))
	assert.True(t, s.Children[2].Ty.Primitive.Bool())
	sel, ok := s.Children[4].Ty.Enum.Selected()
	require.True(t, ok)
	assert.Equal(t, "Point", sel.Name)
	assert.Equal(t, uint64(4), sel.Ty.Struct.Children[1].Ty.Primitive.Uint64())

	out, err := ty.Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, felts[:len(felts)-1], out)
}

func TestTy_DeserializeErrors(t *testing.T) {
	cases := map[string]struct {
		ty    Ty
		felts []Felt
	}{
		"u8 overflow":      {PrimitiveTy(U8), []Felt{FeltFromUint64(256)}},
		"bool not binary":  {PrimitiveTy(Bool), []Felt{FeltFromUint64(2)}},
		"missing felts":    {PrimitiveTy(U256), []Felt{FeltFromUint64(1)}},
		"enum index range": {UnitEnumTy("D", "A", "B"), []Felt{FeltFromUint64(2)}},
		"enum no index":    {UnitEnumTy("D", "A"), nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tc.ty.Deserialize(tc.felts)
			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr), "expected decode error, got %v", err)
		})
	}
}

func TestTy_CloneIsDeep(t *testing.T) {
	ty := movesTy()
	_, err := ty.Deserialize([]Felt{FeltOne, FeltFromUint64(10), FeltFromUint64(3)})
	require.NoError(t, err)

	c := ty.Clone()
	require.Empty(t, cmp.Diff(ty, c, bigComparer))

	require.NoError(t, c.Struct.Children[1].Ty.Primitive.SetUint64(9))
	require.NoError(t, c.Struct.Children[2].Ty.Enum.Select("Down"))
	assert.Equal(t, uint64(10), ty.Struct.Children[1].Ty.Primitive.Uint64())
	sel, _ := ty.Struct.Children[2].Ty.Enum.Selected()
	assert.Equal(t, "Up", sel.Name)
}

func TestTy_Validate(t *testing.T) {
	require.NoError(t, movesTy().Validate())

	dup := StructTy("Dup",
		Member{Name: "a", Ty: PrimitiveTy(U8)},
		Member{Name: "a", Ty: PrimitiveTy(U16)},
	)
	assert.ErrorContains(t, dup.Validate(), "duplicate member")

	dupOpt := UnitEnumTy("E", "X", "X")
	assert.ErrorContains(t, dupOpt.Validate(), "duplicate option")

	bad := StructTy("Bad", Member{Name: "has space", Ty: PrimitiveTy(U8)})
	assert.Error(t, bad.Validate())
}

func TestTy_JSONRoundTripKeepsShape(t *testing.T) {
	ty := StructTy("Position",
		Member{Name: "player", Key: true, Ty: PrimitiveTy(ContractAddress)},
		Member{Name: "vec", Ty: StructTy("Vec2",
			Member{Name: "x", Ty: PrimitiveTy(U32)},
			Member{Name: "y", Ty: PrimitiveTy(U32)},
		)},
		Member{Name: "dir", Ty: UnitEnumTy("Direction", "Left", "Right")},
		Member{Name: "t", Ty: TupleTy(PrimitiveTy(Bool), PrimitiveTy(U128))},
	)
	data, err := json.Marshal(ty)
	require.NoError(t, err)

	var back Ty
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Empty(t, cmp.Diff(ty, back, bigComparer))
	assert.True(t, back.Struct.Children[2].Ty.Enum.Options[0].Ty.IsUnit())
}

func TestTy_UnmarshalRejectsAmbiguous(t *testing.T) {
	var ty Ty
	assert.Error(t, json.Unmarshal([]byte(`{"primitive":"u8","tuple":[]}`), &ty))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &ty))
	assert.Error(t, json.Unmarshal([]byte(`{"primitive":"u7"}`), &ty))
}

func TestCompatible(t *testing.T) {
	base := movesTy()

	grown := movesTy()
	grown.Struct.Children = append(grown.Struct.Children, Member{Name: "can_move", Ty: PrimitiveTy(Bool)})
	grown.Struct.Children[2].Ty.Enum.Options = append(grown.Struct.Children[2].Ty.Enum.Options, EnumOption{Name: "Teleport", Ty: TupleTy()})
	assert.NoError(t, Compatible(base, grown))

	removed := movesTy()
	removed.Struct.Children = removed.Struct.Children[:2]
	assert.ErrorIs(t, Compatible(base, removed), ErrIncompatibleModel)

	retyped := movesTy()
	retyped.Struct.Children[1].Ty = PrimitiveTy(U16)
	assert.ErrorIs(t, Compatible(base, retyped), ErrIncompatibleModel)

	rekeyed := movesTy()
	rekeyed.Struct.Children[1].Key = true
	assert.ErrorIs(t, Compatible(base, rekeyed), ErrIncompatibleModel)

	newKey := movesTy()
	newKey.Struct.Children = append(newKey.Struct.Children, Member{Name: "game", Key: true, Ty: PrimitiveTy(U32)})
	assert.ErrorIs(t, Compatible(base, newKey), ErrIncompatibleModel)

	dropped := movesTy()
	dropped.Struct.Children[2].Ty.Enum.Options = dropped.Struct.Children[2].Ty.Enum.Options[1:]
	assert.ErrorIs(t, Compatible(base, dropped), ErrIncompatibleModel)
}

func TestModel_Validate(t *testing.T) {
	m := Model{Name: "Moves", Schema: movesTy()}
	require.NoError(t, m.Validate())

	m.Name = "Other"
	assert.Error(t, m.Validate())

	noKeys := Model{Name: "NoKeys", Schema: StructTy("NoKeys", Member{Name: "v", Ty: PrimitiveTy(U8)})}
	assert.ErrorContains(t, noKeys.Validate(), "no key members")
}

func TestTy_Value(t *testing.T) {
	schema := StructTy("Player",
		Member{Name: "id", Key: true, Ty: PrimitiveTy(ContractAddress)},
		Member{Name: "alive", Ty: PrimitiveTy(Bool)},
		Member{Name: "dir", Ty: UnitEnumTy("Direction", "None", "Left")},
		Member{Name: "pos", Ty: TupleTy(PrimitiveTy(U32), PrimitiveTy(U32))},
		Member{Name: "weapon", Ty: EnumTy("Weapon",
			EnumOption{Name: "Fists", Ty: TupleTy()},
			EnumOption{Name: "Sword", Ty: PrimitiveTy(U8)},
		)},
	)
	v := schema.Clone()
	rest, err := v.Deserialize([]Felt{
		FeltFromUint64(0xab), FeltFromUint64(1), FeltFromUint64(1),
		FeltFromUint64(3), FeltFromUint64(4),
		FeltFromUint64(1), FeltFromUint64(9),
	})
	require.NoError(t, err)
	require.Empty(t, rest)

	assert.Equal(t, map[string]any{
		"id":     "0xab",
		"alive":  true,
		"dir":    "Left",
		"pos":    map[string]any{"_0": uint64(3), "_1": uint64(4)},
		"weapon": map[string]any{"option": "Sword", "Sword": uint64(9)},
	}, v.Value())
	assert.Nil(t, schema.Clone().Struct.Children[2].Ty.Value())
}
