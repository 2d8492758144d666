package integration

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-opera-adventure/blockproc"
	"github.com/rony4d/go-opera-adventure/opera"
	"github.com/rony4d/go-opera-adventure/opera/genesis"
	"github.com/rony4d/go-opera-adventure/tables"
)

// ErrNoGenesis is returned for a network without a built-in fake genesis when
// no genesis file is given.
var ErrNoGenesis = errors.New("integration: network needs a genesis file")

// Config selects the network and its genesis.
type Config struct {
	Preset Preset
	// GenesisPath overrides the preset's fake genesis.
	GenesisPath string
}

// Engine is an assembled, ready to run network.
type Engine struct {
	Rules     opera.Rules
	Genesis   *genesis.Genesis
	Tables    *tables.Registry
	Processor *blockproc.Processor
}

// MakeEngine validates the rules, loads the genesis and its sheets and
// applies the genesis state.
func MakeEngine(cfg Config) (*Engine, error) {
	rules := cfg.Preset.Rules
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("network %s: %w", rules.Name, err)
	}

	var g *genesis.Genesis
	switch {
	case cfg.GenesisPath != "":
		var err error
		if g, err = genesis.Load(cfg.GenesisPath); err != nil {
			return nil, err
		}
	case cfg.Preset.FakeAccounts > 0:
		g = genesis.FakeGenesis(cfg.Preset.FakeAccounts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoGenesis, rules.Name)
	}

	reg, err := g.Registry()
	if err != nil {
		return nil, err
	}
	st, err := blockproc.ApplyGenesis(g, rules)
	if err != nil {
		return nil, err
	}
	log.Info("Assembled network", "network", rules.Name, "bosses", reg.AdventureBoss.Len())
	log.Debug("Network rules", "rules", rules.String())
	return &Engine{
		Rules:     rules,
		Genesis:   g,
		Tables:    reg,
		Processor: blockproc.NewProcessor(rules, reg, st),
	}, nil
}

// Run processes blocks in order and stops at the first out-of-order block.
func (e *Engine) Run(blocks []*blockproc.Block) ([]*blockproc.Result, error) {
	results := make([]*blockproc.Result, 0, len(blocks))
	for _, b := range blocks {
		res, err := e.Processor.Process(b)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
