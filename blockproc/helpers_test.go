package blockproc

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-opera-adventure/actions"
	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
	"github.com/rony4d/go-opera-adventure/opera"
	"github.com/rony4d/go-opera-adventure/opera/genesis"
)

var (
	rules = opera.FakeNetRules()

	alice       = genesis.FakeAddress(0)
	aliceAvatar = adventure.DeriveAvatarAddress(alice, 0)
	bob         = genesis.FakeAddress(1)
	bobAvatar   = adventure.DeriveAvatarAddress(bob, 0)
)

func fakeGold() assets.Currency {
	return genesis.FakeGenesis(0).GoldCurrency()
}

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	g := genesis.FakeGenesis(2)
	st, err := ApplyGenesis(g, rules)
	require.NoError(t, err)
	reg, err := g.Registry()
	require.NoError(t, err)
	return NewProcessor(rules, reg, st)
}

func wantedTx(t *testing.T, signer common.Address, season, bounty int64, avatar common.Address) Tx {
	t.Helper()
	payload, err := actions.Marshal(&actions.Wanted{
		Season:        season,
		Bounty:        assets.Units(fakeGold(), bounty),
		AvatarAddress: avatar,
	})
	require.NoError(t, err)
	return Tx{Signer: signer, Payload: payload}
}

func block(index idx.Block, txs ...Tx) *Block {
	return &Block{Index: index, Atropos: FakeAtropos(index), Txs: txs}
}
