// Package detrand is the deterministic random source handed to actions.
//
// The algorithm is fixed so that any implementation reproduces the same draws:
//
//	seed   = Keccak256(blockHash || txHash)
//	word_k = BigEndianUint64(Keccak256(seed || BigEndianUint64(k))[0:8])   k = 0, 1, 2, ...
//
// Next(lo, hi) with n = hi - lo > 0 rejects words below (2^64 - n) mod n and
// returns lo + word mod n for the first accepted word. Every word drawn,
// accepted or not, advances k.
package detrand

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Source yields integers in [lo, hi).
type Source interface {
	Next(lo, hi int) int
}

// Keccak is the counter-mode generator described in the package doc.
type Keccak struct {
	seed  common.Hash
	draws uint64
}

// Seed derives the generator seed from the block and transaction hashes.
func Seed(block hash.Event, tx common.Hash) common.Hash {
	return crypto.Keccak256Hash(block.Bytes(), tx.Bytes())
}

// New returns a generator positioned at k = 0.
func New(seed common.Hash) *Keccak {
	return &Keccak{seed: seed}
}

// Word returns the next raw 64-bit word.
func (k *Keccak) Word() uint64 {
	out := crypto.Keccak256(k.seed.Bytes(), bigendian.Uint64ToBytes(k.draws))
	k.draws++
	return bigendian.BytesToUint64(out[:8])
}

// Next returns an integer in [lo, hi). hi == lo returns lo; hi < lo panics.
func (k *Keccak) Next(lo, hi int) int {
	if hi < lo {
		panic("detrand: hi < lo")
	}
	if hi == lo {
		return lo
	}
	n := uint64(hi - lo)
	threshold := -n % n
	for {
		w := k.Word()
		if w >= threshold {
			return lo + int(w%n)
		}
	}
}

// Draws is the number of words consumed so far.
func (k *Keccak) Draws() uint64 {
	return k.draws
}

// Seed returns the seed the generator was created with.
func (k *Keccak) Seed() common.Hash {
	return k.seed
}
