package helper

import (
	"math/big"
	"strings"

	"github.com/autonity/autonity/crypto"

	"scribe/model"
)

var mask250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

// Selector returns the event/function selector for name: keccak256 of the
// ASCII name truncated to 250 bits.
func Selector(name string) model.Felt {
	return snKeccak([]byte(name))
}

func snKeccak(data []byte) model.Felt {
	h := new(big.Int).SetBytes(crypto.Keccak256(data))
	return model.FeltFromBig(h.And(h, mask250))
}

// EntityID derives a stable entity identifier from its key tuple.
func EntityID(keys []model.Felt) string {
	buf := make([]byte, 0, 32*len(keys))
	for _, k := range keys {
		buf = append(buf, k[:]...)
	}
	return snKeccak(buf).Hex()
}

// SplitShortStrings decodes a run of short string felts into one string.
func SplitShortStrings(parts []model.Felt) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.ShortString())
	}
	return sb.String()
}
