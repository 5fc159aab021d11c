package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFelt(t *testing.T) {
	f, err := ParseFelt("0x1")
	require.NoError(t, err)
	assert.Equal(t, FeltOne, f)

	padded, err := ParseFelt("0x0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, f, padded)

	dec, err := ParseFelt("255")
	require.NoError(t, err)
	assert.Equal(t, "0xff", dec.Hex())

	_, err = ParseFelt("0x")
	assert.Error(t, err)
	_, err = ParseFelt("0x800000000000011000000000000000000000000000000000000000000000001")
	assert.Error(t, err, "the field prime itself is out of range")
}

func TestFelt_Formats(t *testing.T) {
	assert.Equal(t, "0x0", FeltZero.Hex())
	assert.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000000a", FeltFromUint64(10).Padded())
}

func TestFelt_ShortString(t *testing.T) {
	f, err := FeltFromShortString("Moves")
	require.NoError(t, err)
	assert.Equal(t, "Moves", f.ShortString())
	assert.Equal(t, "0x4d6f766573", f.Hex())

	_, err = FeltFromShortString("this string is definitely longer than 31")
	assert.Error(t, err)
}

func TestFelt_JSON(t *testing.T) {
	var got struct {
		Keys []Felt `json:"keys"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"keys":["0x1","0x02"]}`), &got))
	assert.Equal(t, []Felt{FeltOne, FeltFromUint64(2)}, got.Keys)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keys":["0x1","0x2"]}`, string(out))
}

func TestJoinSplitFelts(t *testing.T) {
	keys := []Felt{FeltOne, FeltFromUint64(0x2a)}
	joined := JoinFelts(keys)
	assert.Equal(t, "0x1/0x2a/", joined)

	back, err := SplitFelts(joined)
	require.NoError(t, err)
	assert.Equal(t, keys, back)
}

func TestEventID_Ordering(t *testing.T) {
	tx := FeltFromUint64(0xbeef)
	a := EventID(9, 7, tx, 3)
	b := EventID(10, 0, tx, 0)
	assert.Less(t, a, b)

	// position in the block wins over the transaction hash
	first := EventID(2, 0, FeltFromUint64(0xbbbb), 0)
	second := EventID(2, 1, FeltFromUint64(0xaaaa), 0)
	assert.Less(t, first, second)
	assert.Less(t, EventID(2, 1, tx, 1), EventID(2, 1, tx, 2))
	assert.Less(t, EventID(2, 9, tx, 0), EventID(2, 10, tx, 0))

	n, err := EventBlock(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), n)
}

func TestBlock_UnmarshalAcceptsHexNumbers(t *testing.T) {
	var b Block
	require.NoError(t, json.Unmarshal([]byte(`{"block_number":"0x10","timestamp":1700000000,"block_hash":"0x1","parent_hash":"0x0","transactions":[]}`), &b))
	assert.Equal(t, uint64(16), b.Number)
	assert.Equal(t, uint64(1700000000), b.Timestamp)
	assert.Equal(t, FeltOne, b.Hash)
}
