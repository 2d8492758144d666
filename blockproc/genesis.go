package blockproc

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
	"github.com/rony4d/go-opera-adventure/opera"
	"github.com/rony4d/go-opera-adventure/opera/genesis"
	"github.com/rony4d/go-opera-adventure/world"
)

// ApplyGenesis builds the block-0 state: balances, stakes and avatars.
func ApplyGenesis(g *genesis.Genesis, rules opera.Rules) (*world.Memory, error) {
	if err := g.Validate(rules); err != nil {
		return nil, err
	}
	gold := g.GoldCurrency()

	var st world.State = world.NewMemory(gold)
	var err error
	for _, a := range g.Balances {
		if st, err = st.MintAsset(a.Address, assets.Units(gold, a.Amount)); err != nil {
			return nil, fmt.Errorf("genesis balance %s: %w", a.Address, err)
		}
	}
	for _, a := range g.Stakes {
		if st, err = st.MintAsset(adventure.StakeAddress(a.Address), assets.Units(gold, a.Amount)); err != nil {
			return nil, fmt.Errorf("genesis stake %s: %w", a.Address, err)
		}
	}
	for _, a := range g.Avatars {
		addr := adventure.DeriveAvatarAddress(a.Agent, a.Slot)
		avatar := world.AvatarState{Agent: a.Agent, Name: a.Name, Index: a.Slot}
		if st, err = st.SetAvatar(addr, avatar); err != nil {
			return nil, fmt.Errorf("genesis avatar %s: %w", addr, err)
		}
	}

	m := st.(*world.Memory).Flatten()
	log.Info("Applied genesis", "network", rules.Name, "gold", gold, "accounts", len(g.Balances), "avatars", len(g.Avatars), "root", m.Root())
	return m, nil
}

// MustApplyGenesis is ApplyGenesis that stops the process on error.
func MustApplyGenesis(g *genesis.Genesis, rules opera.Rules) *world.Memory {
	m, err := ApplyGenesis(g, rules)
	if err != nil {
		log.Crit("ApplyGenesis", "err", err)
	}
	return m
}
