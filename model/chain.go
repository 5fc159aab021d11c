package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Block is a block with its transactions, as returned by starknet_getBlockWithTxs.
type Block struct {
	Number       uint64        `json:"block_number"`
	Hash         Felt          `json:"block_hash"`
	ParentHash   Felt          `json:"parent_hash"`
	Timestamp    uint64        `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
}

// Time returns the block timestamp.
func (b *Block) Time() time.Time {
	return time.Unix(int64(b.Timestamp), 0).UTC()
}

// Transaction returns the transaction with the given hash.
func (b *Block) Transaction(hash Felt) (Transaction, bool) {
	for _, tx := range b.Transactions {
		if tx.Hash == hash {
			return tx, true
		}
	}
	return Transaction{}, false
}

type Transaction struct {
	Hash          Felt   `json:"transaction_hash"`
	Type          string `json:"type"`
	SenderAddress Felt   `json:"sender_address"`
	Calldata      []Felt `json:"calldata"`
}

type Receipt struct {
	TransactionHash Felt    `json:"transaction_hash"`
	Type            string  `json:"type"`
	ExecutionStatus string  `json:"execution_status"`
	Events          []Event `json:"events"`
}

// Event is an emitted event. Keys[0] is the selector.
type Event struct {
	FromAddress Felt   `json:"from_address"`
	Keys        []Felt `json:"keys"`
	Data        []Felt `json:"data"`
}

func (e Event) Selector() (Felt, bool) {
	if len(e.Keys) == 0 {
		return Felt{}, false
	}
	return e.Keys[0], true
}

// EventID orders events by block, then the transaction's position in the
// block, then the event's position in the receipt. The transaction hash is
// carried for display only.
func EventID(block uint64, txIndex int, txHash Felt, index int) string {
	return fmt.Sprintf("0x%016x:0x%08x:%s:0x%04x", block, txIndex, txHash.Padded(), index)
}

// EventBlock extracts the block number from an id produced by EventID.
func EventBlock(id string) (uint64, error) {
	head, _, ok := strings.Cut(id, ":")
	if !ok {
		return 0, fmt.Errorf("malformed event id %q", id)
	}
	return strconv.ParseUint(strings.TrimPrefix(head, "0x"), 16, 64)
}

// UnmarshalJSON tolerates both numeric and hex encoded numbers, nodes differ.
func (b *Block) UnmarshalJSON(data []byte) error {
	type plain Block
	var aux struct {
		plain
		Number    json.RawMessage `json:"block_number"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Block(aux.plain)
	var err error
	if b.Number, err = flexUint(aux.Number); err != nil {
		return fmt.Errorf("block_number: %w", err)
	}
	if b.Timestamp, err = flexUint(aux.Timestamp); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	return nil
}

func flexUint(raw json.RawMessage) (uint64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	v, err := parseBig(s)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%s overflows uint64", s)
	}
	return v.Uint64(), nil
}
