// Package actions executes signed game actions against a world state.
//
// An action is a pure function of (context, previous state): it either
// returns a new state with all of its writes, or the previous state together
// with a *Failure. Nothing an action does depends on wall-clock time, I/O or
// map iteration order.
package actions

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-opera-adventure/opera"
	"github.com/rony4d/go-opera-adventure/tables"
	"github.com/rony4d/go-opera-adventure/utils/detrand"
)

// Context is the block environment of one action.
type Context struct {
	BlockIndex idx.Block
	// BlockHash is the Atropos of the block carrying the action.
	BlockHash hash.Event
	TxHash    common.Hash
	Signer    common.Address
	GasLimit  uint64

	Rules  opera.AdventureRules
	Tables *tables.Registry

	gasUsed uint64
	random  detrand.Source
}

// UseGas charges n units. Going over GasLimit fails with GasExhausted and
// leaves the meter unchanged.
func (c *Context) UseGas(n uint64) error {
	if c.gasUsed+n < c.gasUsed || c.gasUsed+n > c.GasLimit {
		return fail(GasExhausted, "used %d + %d over limit %d", c.gasUsed, n, c.GasLimit)
	}
	c.gasUsed += n
	return nil
}

// GasUsed is the gas charged so far.
func (c *Context) GasUsed() uint64 {
	return c.gasUsed
}

// Random returns the action's random source, seeded from BlockHash and
// TxHash on first use. Draws are positional: the n-th call to Next gets
// the same value on every node.
func (c *Context) Random() detrand.Source {
	if c.random == nil {
		c.random = detrand.New(detrand.Seed(c.BlockHash, c.TxHash))
	}
	return c.random
}

// SetRandom replaces the random source.
func (c *Context) SetRandom(src detrand.Source) {
	c.random = src
}
