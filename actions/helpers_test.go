package actions

import (
	"math/big"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
	"github.com/rony4d/go-opera-adventure/opera"
	"github.com/rony4d/go-opera-adventure/tables"
	"github.com/rony4d/go-opera-adventure/world"
)

var (
	gold    = assets.Currency{Ticker: "NCG", DecimalPlaces: 2}
	agent   = common.HexToAddress("0xa9e47")
	avatarA = adventure.DeriveAvatarAddress(agent, 0)

	other       = common.HexToAddress("0x07e4")
	otherAvatar = adventure.DeriveAvatarAddress(other, 0)
)

var testSheets = map[string]string{
	tables.MonsterCollectionSheetName: "level,required_gold,reward_id\n" +
		"1,500,1\n" +
		"5,500000,5\n",
	tables.AdventureBossSheetName: "id,boss_id,explore_ap\n" +
		"1,900001,2\n" +
		"2,900002,2\n",
	tables.AdventureBossWantedRewardSheetName: "id,adventure_boss_id,fixed_type,fixed_id,type,id,ratio\n" +
		"1,1,Material,600201,Rune,30001,50,Material,600202,50\n" +
		"2,2,Rune,30002,Material,600203,1\n",
	tables.AdventureBossContributionRewardSheetName: "id,adventure_boss_id,fixed_type,fixed_id,type,id,ratio\n" +
		"1,1,Material,600301,Rune,30003,100\n" +
		"2,2,Material,600302,Rune,30004,60,Material,600303,40\n",
}

func testRegistry(t *testing.T) *tables.Registry {
	t.Helper()
	r, err := tables.LoadRegistry(testSheets)
	require.NoError(t, err)
	return r
}

func gld(n int64) assets.Amount {
	return assets.Units(gold, n)
}

// genesis funds agent and other with 1,000,000 gold each, stakes the level 5
// requirement for both and registers their first avatar.
func genesis(t *testing.T) world.State {
	t.Helper()
	var st world.State = world.NewMemory(gold)
	var err error
	for _, who := range []struct {
		agent  common.Address
		avatar common.Address
		name   string
	}{{agent, avatarA, "Alice"}, {other, otherAvatar, "Oscar"}} {
		st, err = st.MintAsset(who.agent, gld(1_000_000))
		require.NoError(t, err)
		st, err = st.MintAsset(adventure.StakeAddress(who.agent), gld(500_000))
		require.NoError(t, err)
		st, err = st.SetAvatar(who.avatar, world.AvatarState{Agent: who.agent, Name: who.name})
		require.NoError(t, err)
	}
	return st
}

func newContext(t *testing.T, block idx.Block, signer common.Address) *Context {
	return &Context{
		BlockIndex: block,
		BlockHash:  hash.Event(crypto.Keccak256Hash(big.NewInt(int64(block)).Bytes())),
		TxHash:     crypto.Keccak256Hash(signer.Bytes(), big.NewInt(int64(block)).Bytes()),
		Signer:     signer,
		GasLimit:   1,
		Rules:      opera.DefaultAdventureRules(),
		Tables:     testRegistry(t),
	}
}

func wanted(season int64, bounty int64, avatar common.Address) *Wanted {
	return &Wanted{Season: season, Bounty: gld(bounty), AvatarAddress: avatar}
}

// run executes w and fails the test on error.
func run(t *testing.T, ctx *Context, st world.State, w *Wanted) world.State {
	t.Helper()
	next, err := w.Execute(ctx, st)
	require.NoError(t, err)
	return next
}

// scripted is a random source with fixed outputs that records requests.
type scripted struct {
	draws  []int
	ranges [][2]int
}

func (s *scripted) Next(lo, hi int) int {
	s.ranges = append(s.ranges, [2]int{lo, hi})
	if len(s.draws) == 0 {
		panic("scripted: out of draws")
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
