// Package integration assembles the pieces a runnable network needs: rules,
// genesis, sheets and a block processor.
//
// Presets bundle the rules of a known network with where its genesis comes
// from, so operators can select a network by name:
//
//	preset, err := integration.GetPresetByName("fake")
//	engine, err := integration.MakeEngine(integration.Config{Preset: preset})
package integration

import (
	"fmt"

	"github.com/rony4d/go-opera-adventure/opera"
)

// DefaultFakeAccounts is how many accounts a fake network funds by default.
const DefaultFakeAccounts = 3

// Preset is a named network profile.
type Preset struct {
	Name  string
	Rules opera.Rules
	// FakeAccounts > 0 lets the network start from the built-in fake
	// genesis; real networks require a genesis file.
	FakeAccounts uint32
}

// MainPreset is mainnet.
func MainPreset() Preset {
	return Preset{Name: "main", Rules: opera.MainNetRules()}
}

// TestPreset is testnet.
func TestPreset() Preset {
	return Preset{Name: "test", Rules: opera.TestNetRules()}
}

// FakePreset is a local network with accounts funded fake accounts.
func FakePreset(accounts uint32) Preset {
	if accounts == 0 {
		accounts = DefaultFakeAccounts
	}
	return Preset{Name: "fake", Rules: opera.FakeNetRules(), FakeAccounts: accounts}
}

// GetPresetByName looks a preset up by network name or alias.
func GetPresetByName(name string) (Preset, error) {
	rules, err := opera.RulesByName(name)
	if err != nil {
		return Preset{}, fmt.Errorf("unknown network preset: %q (valid: main, test, fake)", name)
	}
	if rules.NetworkID == opera.FakeNetworkID {
		return FakePreset(DefaultFakeAccounts), nil
	}
	return Preset{Name: rules.Name, Rules: rules}, nil
}
