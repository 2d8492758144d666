// Package genesis describes the initial ledger of a network: the gold
// currency, funded accounts, stakes, avatars and the static sheets.
//
// A genesis file is YAML:
//
//	network: fake
//	gold: {ticker: NCG, decimal_places: 2}
//	balances:
//	  - {address: "0x...", amount: 1000000}
//	stakes:
//	  - {address: "0x...", amount: 500000}
//	avatars:
//	  - {agent: "0x...", slot: 0, name: Alice}
//	tables: ./sheets         # directory of <SheetName>.csv, relative to the file
//	sheets:                  # inline sheets, override files of the same name
//	  AdventureBossSheet: |
//	    id,boss_id,explore_ap
//	    1,900001,2
//
// Amounts are whole units of the gold currency.
package genesis

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-opera-adventure/inter/assets"
	"github.com/rony4d/go-opera-adventure/opera"
	"github.com/rony4d/go-opera-adventure/tables"
)

var (
	ErrNoGold       = errors.New("genesis: gold currency ticker is empty")
	ErrBadAmount    = errors.New("genesis: amounts must not be negative")
	ErrBadSlot      = errors.New("genesis: avatar slot out of range")
	ErrDuplicateKey = errors.New("genesis: duplicate entry")
)

// Currency is the YAML form of assets.Currency.
type Currency struct {
	Ticker        string `yaml:"ticker"`
	DecimalPlaces uint8  `yaml:"decimal_places"`
}

// Allocation credits Amount whole gold units to Address.
type Allocation struct {
	Address common.Address `yaml:"address"`
	Amount  int64          `yaml:"amount"`
}

// Avatar registers an avatar in one of the agent's slots.
type Avatar struct {
	Agent common.Address `yaml:"agent"`
	Slot  uint8          `yaml:"slot"`
	Name  string         `yaml:"name"`
}

// Genesis is the parsed genesis file.
type Genesis struct {
	Network  string            `yaml:"network"`
	Gold     Currency          `yaml:"gold"`
	Balances []Allocation      `yaml:"balances"`
	Stakes   []Allocation      `yaml:"stakes"`
	Avatars  []Avatar          `yaml:"avatars"`
	Tables   string            `yaml:"tables,omitempty"`
	Sheets   map[string]string `yaml:"sheets,omitempty"`

	// dir resolves Tables; it is the genesis file's directory.
	dir string
}

// GoldCurrency returns the native currency.
func (g *Genesis) GoldCurrency() assets.Currency {
	return assets.Currency{Ticker: g.Gold.Ticker, DecimalPlaces: g.Gold.DecimalPlaces}
}

// Parse decodes a genesis document. Relative table paths resolve against dir.
func Parse(data []byte, dir string) (*Genesis, error) {
	g := &Genesis{}
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("genesis: %w", err)
	}
	g.dir = dir
	return g, nil
}

// Load reads and parses a genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Dir(path))
}

// Marshal encodes g as YAML.
func (g *Genesis) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

// Validate checks g against the network rules.
func (g *Genesis) Validate(rules opera.Rules) error {
	if g.Gold.Ticker == "" {
		return ErrNoGold
	}
	if g.Network != "" && g.Network != rules.Name {
		return fmt.Errorf("genesis: file is for network %q, rules are %q", g.Network, rules.Name)
	}
	for _, list := range [][]Allocation{g.Balances, g.Stakes} {
		seen := map[common.Address]bool{}
		for _, a := range list {
			if a.Amount < 0 {
				return fmt.Errorf("%w: %s has %d", ErrBadAmount, a.Address, a.Amount)
			}
			if seen[a.Address] {
				return fmt.Errorf("%w: %s", ErrDuplicateKey, a.Address)
			}
			seen[a.Address] = true
		}
	}
	type slot struct {
		agent common.Address
		slot  uint8
	}
	seen := map[slot]bool{}
	for _, a := range g.Avatars {
		if a.Slot >= rules.Adventure.AvatarSlots {
			return fmt.Errorf("%w: agent %s slot %d, network has %d", ErrBadSlot, a.Agent, a.Slot, rules.Adventure.AvatarSlots)
		}
		if seen[slot{a.Agent, a.Slot}] {
			return fmt.Errorf("%w: avatar %s/%d", ErrDuplicateKey, a.Agent, a.Slot)
		}
		seen[slot{a.Agent, a.Slot}] = true
	}
	return nil
}

// Registry loads the sheets named by the genesis: files under Tables first,
// then the inline Sheets.
func (g *Genesis) Registry() (*tables.Registry, error) {
	srcs := map[string]string{}
	if g.Tables != "" {
		dir := g.Tables
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(g.dir, dir)
		}
		var err error
		if srcs, err = tables.ReadDir(dir); err != nil {
			return nil, err
		}
	}
	for name, src := range g.Sheets {
		srcs[name] = src
	}
	return tables.LoadRegistry(srcs)
}
