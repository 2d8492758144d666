package blockproc

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-opera-adventure/actions"
	"github.com/rony4d/go-opera-adventure/opera"
	"github.com/rony4d/go-opera-adventure/tables"
	"github.com/rony4d/go-opera-adventure/world"
)

// ErrBlockOrder is returned for a block that does not follow the last one.
var ErrBlockOrder = errors.New("blockproc: block index must increase")

// Processor applies blocks on top of a world state. It is not safe for
// concurrent use.
type Processor struct {
	rules  opera.Rules
	tables *tables.Registry

	state world.State
	last  idx.Block
}

// NewProcessor starts from the genesis state, which counts as block 0.
func NewProcessor(rules opera.Rules, reg *tables.Registry, genesis world.State) *Processor {
	return &Processor{
		rules:  rules,
		tables: reg,
		state:  genesis,
	}
}

// State is the state after the last processed block.
func (p *Processor) State() world.State {
	return p.state
}

// LastBlock is the index of the last processed block.
func (p *Processor) LastBlock() idx.Block {
	return p.last
}

// Process applies b. Failed transactions are skipped; the only error is a
// block out of order, which leaves the processor unchanged.
func (p *Processor) Process(b *Block) (*Result, error) {
	if b.Index <= p.last {
		return nil, fmt.Errorf("%w: got %d after %d", ErrBlockOrder, b.Index, p.last)
	}

	res := &Result{
		Index:   b.Index,
		Atropos: b.Atropos,
		TxRoot:  b.TxRoot(),
	}
	st := p.state
	for i, tx := range b.Txs {
		var rec Receipt
		st, rec = p.applyTx(b, uint32(i), tx, st)
		if !rec.Succeeded() {
			res.SkippedTxs = append(res.SkippedTxs, rec.Index)
			log.Debug("Skipped transaction", "block", b.Index, "index", i, "tx", rec.TxHash, "status", rec.Status(), "err", rec.Err)
		}
		res.GasUsed += rec.GasUsed
		res.Receipts = append(res.Receipts, rec)
	}

	if m, ok := st.(*world.Memory); ok {
		st = m.Flatten()
	}
	res.Root = st.Root()
	res.Applied = FilterSkippedTxs(b.Txs, res.SkippedTxs)
	res.Size = b.EstimateSize()
	p.state, p.last = st, b.Index

	log.Info("Processed block", "index", b.Index, "txs", len(b.Txs), "skipped", len(res.SkippedTxs), "gas", res.GasUsed, "size", res.Size, "root", res.Root)
	return res, nil
}

func (p *Processor) applyTx(b *Block, i uint32, tx Tx, st world.State) (world.State, Receipt) {
	rec := Receipt{TxHash: tx.Hash(), Index: i}
	a, err := actions.Decode(tx.Payload)
	if err != nil {
		rec.Err = err
		return st, rec
	}
	rec.TypeID = a.TypeID()

	ctx := &actions.Context{
		BlockIndex: b.Index,
		BlockHash:  b.Atropos,
		TxHash:     rec.TxHash,
		Signer:     tx.Signer,
		GasLimit:   p.rules.Execution.MaxActionGas,
		Rules:      p.rules.Adventure,
		Tables:     p.tables,
	}
	next, err := a.Execute(ctx, st)
	rec.GasUsed = ctx.GasUsed()
	if err != nil {
		rec.Err = err
		return st, rec
	}
	return next, rec
}
