package integration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rony4d/go-opera-adventure/blockproc"
	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/opera/genesis"
)

// TestGetPresetByName verifies every network name and alias resolves to the
// preset with the matching rules.
func TestGetPresetByName(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		fakeAccs uint32
	}{
		{"main", "main", 0},
		{"mainnet", "main", 0},
		{"test", "test", 0},
		{"testnet", "test", 0},
		{"fake", "fake", DefaultFakeAccounts},
		{"fakenet", "fake", DefaultFakeAccounts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := GetPresetByName(tt.name)
			if err != nil {
				t.Fatalf("GetPresetByName(%q) error: %v", tt.name, err)
			}
			if p.Name != tt.want || p.Rules.Name != tt.want {
				t.Fatalf("preset = %q rules = %q, want %q", p.Name, p.Rules.Name, tt.want)
			}
			if p.FakeAccounts != tt.fakeAccs {
				t.Fatalf("FakeAccounts = %d, want %d", p.FakeAccounts, tt.fakeAccs)
			}
		})
	}

	if _, err := GetPresetByName("nonexistent"); err == nil {
		t.Fatal("GetPresetByName(nonexistent) should return an error")
	}
}

// TestFakePreset_defaultsAccounts guards the zero value: a fake network always
// has someone to play.
func TestFakePreset_defaultsAccounts(t *testing.T) {
	if got := FakePreset(0).FakeAccounts; got != DefaultFakeAccounts {
		t.Fatalf("FakePreset(0).FakeAccounts = %d, want %d", got, DefaultFakeAccounts)
	}
	if got := FakePreset(7).FakeAccounts; got != 7 {
		t.Fatalf("FakePreset(7).FakeAccounts = %d, want 7", got)
	}
}

func TestMakeEngine_realNetworkNeedsGenesis(t *testing.T) {
	_, err := MakeEngine(Config{Preset: MainPreset()})
	if !errors.Is(err, ErrNoGenesis) {
		t.Fatalf("MakeEngine(main) error = %v, want ErrNoGenesis", err)
	}
}

func TestMakeEngine_rejectsBrokenRules(t *testing.T) {
	p := FakePreset(1)
	p.Rules.Adventure.ActivePeriod = 0
	if _, err := MakeEngine(Config{Preset: p}); err == nil {
		t.Fatal("MakeEngine should reject a zero active period")
	}
}

// TestMakeEngine_genesisFile runs a bounty through a network started from a
// genesis file on disk.
func TestMakeEngine_genesisFile(t *testing.T) {
	dir := t.TempDir()
	g := genesis.FakeGenesis(2)
	g.Network = "test"
	data, err := g.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(dir, "genesis.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write genesis: %v", err)
	}

	engine, err := MakeEngine(Config{Preset: TestPreset(), GenesisPath: path})
	if err != nil {
		t.Fatalf("MakeEngine: %v", err)
	}
	if engine.Tables.AdventureBoss.Len() != 3 {
		t.Fatalf("bosses = %d, want 3", engine.Tables.AdventureBoss.Len())
	}

	agent := genesis.FakeAddress(1)
	src := fmt.Sprintf(`
blocks:
  - index: 10
    txs:
      - signer: %q
        wanted: {season: 1, bounty: 100, avatar: %q}
`, agent.Hex(), adventure.DeriveAvatarAddress(agent, 0).Hex())
	blocks, err := blockproc.ParseBlocks([]byte(src), engine.Genesis.GoldCurrency())
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	results, err := engine.Run(blocks)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || len(results[0].SkippedTxs) != 0 {
		t.Fatalf("results = %+v, want one block without skipped txs", results)
	}

	info, ok, err := engine.Processor.State().SeasonInfo(1)
	if err != nil || !ok {
		t.Fatalf("SeasonInfo(1) = %v, %v, %v", info, ok, err)
	}
	if info.StartBlock != 10 || info.EndBlock != 10+engine.Rules.Adventure.ActivePeriod {
		t.Fatalf("season 1 = %s, want start 10", info)
	}
}

func TestEngineRun_stopsOnBlockOrder(t *testing.T) {
	engine, err := MakeEngine(Config{Preset: FakePreset(1)})
	if err != nil {
		t.Fatalf("MakeEngine: %v", err)
	}
	blocks := []*blockproc.Block{{Index: 2}, {Index: 1}, {Index: 3}}
	results, err := engine.Run(blocks)
	if !errors.Is(err, blockproc.ErrBlockOrder) {
		t.Fatalf("Run error = %v, want ErrBlockOrder", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
}
