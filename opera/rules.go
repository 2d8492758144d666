// Package opera defines the network rules that action execution depends on.
//
// Rules are consensus-critical: every node on a network must run the same
// values, so they are selected by network preset and never read from local
// configuration files.
package opera

import (
	"encoding/json"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
)

// Network identification constants
const (
	MainNetworkID uint64 = 0xfa
	TestNetworkID uint64 = 0xfa2
	FakeNetworkID uint64 = 0xfa3
)

// Rules describes a network.
type Rules struct {
	Name      string
	NetworkID uint64

	// Execution bounds the work of one action.
	Execution ExecutionRules

	// Adventure holds the adventure-boss season parameters.
	Adventure AdventureRules
}

// ExecutionRules are per-action budgets.
type ExecutionRules struct {
	// MaxActionGas is the gas limit given to each action. An action that
	// uses more is rejected without side effects.
	MaxActionGas uint64
}

// AdventureRules parameterise the wanted action and the season lifecycle.
type AdventureRules struct {
	// MinBounty is the smallest bounty, in whole units of the gold currency.
	MinBounty int64

	// RequiredStakingLevel selects the MonsterCollectionSheet row whose
	// RequiredGold the bounty placer's agent must have staked.
	RequiredStakingLevel int

	// WantedGas is charged by every wanted action before validation.
	WantedGas uint64

	// ActivePeriod is the number of blocks a season accepts bounties after
	// its start block.
	ActivePeriod idx.Block

	// InactivePeriod separates the end of a season from the earliest start
	// of the next one.
	InactivePeriod idx.Block

	// AvatarSlots is how many avatar addresses an agent derives.
	AvatarSlots uint8
}

// DefaultAdventureRules are the mainnet adventure parameters.
func DefaultAdventureRules() AdventureRules {
	return AdventureRules{
		MinBounty:            100,
		RequiredStakingLevel: 5,
		WantedGas:            1,
		ActivePeriod:         10000,
		InactivePeriod:       10000,
		AvatarSlots:          3,
	}
}

// FakeNetAdventureRules shorten seasons for local testing.
func FakeNetAdventureRules() AdventureRules {
	cfg := DefaultAdventureRules()
	cfg.ActivePeriod = 100
	cfg.InactivePeriod = 50
	return cfg
}

// DefaultExecutionRules are shared by all presets.
func DefaultExecutionRules() ExecutionRules {
	return ExecutionRules{MaxActionGas: 1}
}

// MainNetRules returns the mainnet rules.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Execution: DefaultExecutionRules(),
		Adventure: DefaultAdventureRules(),
	}
}

// TestNetRules mirror mainnet under a different network id.
func TestNetRules() Rules {
	return Rules{
		Name:      "test",
		NetworkID: TestNetworkID,
		Execution: DefaultExecutionRules(),
		Adventure: DefaultAdventureRules(),
	}
}

// FakeNetRules returns rules for local networks.
func FakeNetRules() Rules {
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Execution: DefaultExecutionRules(),
		Adventure: FakeNetAdventureRules(),
	}
}

// RulesByName resolves a preset name ("main", "test", "fake").
func RulesByName(name string) (Rules, error) {
	switch name {
	case "main", "mainnet":
		return MainNetRules(), nil
	case "test", "testnet":
		return TestNetRules(), nil
	case "fake", "fakenet":
		return FakeNetRules(), nil
	}
	return Rules{}, fmt.Errorf("unknown network %q", name)
}

// Validate rejects rule sets no network could run with.
func (r Rules) Validate() error {
	a := r.Adventure
	switch {
	case a.MinBounty <= 0:
		return fmt.Errorf("adventure: MinBounty must be positive, got %d", a.MinBounty)
	case a.ActivePeriod == 0:
		return fmt.Errorf("adventure: ActivePeriod must be positive")
	case a.InactivePeriod == 0:
		// a season must be closed before the next one may open
		return fmt.Errorf("adventure: InactivePeriod must be positive")
	case a.AvatarSlots == 0:
		return fmt.Errorf("adventure: AvatarSlots must be positive")
	case r.Execution.MaxActionGas < a.WantedGas:
		return fmt.Errorf("execution: MaxActionGas %d below WantedGas %d", r.Execution.MaxActionGas, a.WantedGas)
	}
	return nil
}

// String returns the rules as JSON.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
