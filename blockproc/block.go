// Package blockproc applies blocks of signed actions to the world state.
//
// A block arrives already ordered by consensus: its Atropos identifies it and
// seeds every action's random source, its transactions run strictly in order.
// A transaction whose action fails is skipped. Its index is recorded in
// Result.SkippedTxs and the state it saw is carried to the next transaction
// unchanged.
package blockproc

import (
	"bytes"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/rony4d/go-opera-adventure/actions"
)

// Tx is a signed action payload. Signature checking happens before a
// transaction reaches a block, so only the recovered signer is kept.
type Tx struct {
	Signer  common.Address
	Payload []byte
}

// Hash identifies the transaction and seeds its action's random source.
func (tx Tx) Hash() common.Hash {
	return crypto.Keccak256Hash(tx.Signer.Bytes(), tx.Payload)
}

// Txs implements types.DerivableList.
type Txs []Tx

func (txs Txs) Len() int { return len(txs) }

func (txs Txs) EncodeIndex(i int, w *bytes.Buffer) {
	if err := rlp.Encode(w, txs[i]); err != nil {
		panic(err)
	}
}

// Block is a consensus-ordered batch of transactions.
type Block struct {
	Index   idx.Block
	Atropos hash.Event
	Txs     Txs
}

// TxRoot is the Merkle root of the block's transactions.
func (b *Block) TxRoot() common.Hash {
	if len(b.Txs) == 0 {
		return types.EmptyRootHash
	}
	return types.DeriveSha(b.Txs, trie.NewStackTrie(nil))
}

// EstimateSize returns an approximate size of the block in bytes.
func (b *Block) EstimateSize() int {
	size := 8 + 32
	for _, tx := range b.Txs {
		size += common.AddressLength + len(tx.Payload)
	}
	return size
}

// Receipt is the outcome of one transaction.
type Receipt struct {
	TxHash  common.Hash
	Index   uint32
	TypeID  string
	GasUsed uint64
	// Err is nil for an applied transaction.
	Err error
}

// Succeeded reports whether the transaction changed the state.
func (r Receipt) Succeeded() bool {
	return r.Err == nil
}

// Status is "ok", the failure kind, or "error" for a fault outside the
// failure taxonomy.
func (r Receipt) Status() string {
	if r.Err == nil {
		return "ok"
	}
	if kind, ok := actions.KindOf(r.Err); ok {
		return kind.String()
	}
	return "error"
}

// Result summarises a processed block.
type Result struct {
	Index   idx.Block
	Atropos hash.Event
	TxRoot  common.Hash
	// Root is the state root after the block.
	Root common.Hash
	// SkippedTxs are the ascending indexes of failed transactions.
	SkippedTxs []uint32
	// Applied are the transactions that changed the state, in block order.
	Applied  Txs
	Receipts []Receipt
	GasUsed  uint64
	Size     int
}

// FilterSkippedTxs drops the transactions listed in skippedTxs, which must be
// ascending.
func FilterSkippedTxs(txs Txs, skippedTxs []uint32) Txs {
	if len(skippedTxs) == 0 {
		return txs
	}
	skipCount := 0
	filtered := make(Txs, 0, len(txs))
	for i, tx := range txs {
		if skipCount < len(skippedTxs) && skippedTxs[skipCount] == uint32(i) {
			skipCount++
		} else {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
