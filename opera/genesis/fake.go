package genesis

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rony4d/go-opera-adventure/tables"
)

// Fake network allocations, in whole gold units.
const (
	FakeBalance = 1_000_000
	FakeStake   = 500_000
)

// FakeGold is the gold currency of fake networks.
var FakeGold = Currency{Ticker: "NCG", DecimalPlaces: 2}

// FakeSheets are the sheets of fake networks.
var FakeSheets = map[string]string{
	tables.MonsterCollectionSheetName: `level,required_gold,reward_id
1,500,1
2,1800,2
3,7200,3
4,54000,4
5,270000,5
6,480000,6
7,1500000,7
`,
	tables.AdventureBossSheetName: `id,boss_id,explore_ap
1,900001,2
2,900002,2
3,900003,3
`,
	tables.AdventureBossWantedRewardSheetName: `id,adventure_boss_id,fixed_type,fixed_id,type,id,ratio,type,id,ratio,type,id,ratio
1,1,Material,600201,Rune,30001,35,Rune,30002,35,Material,600202,30
2,2,Material,600201,Rune,30003,50,Material,600203,50
3,3,Rune,30004,Material,600204,100
`,
	tables.AdventureBossContributionRewardSheetName: `id,adventure_boss_id,fixed_type,fixed_id,type,id,ratio,type,id,ratio
1,1,Material,600301,Rune,30001,60,Material,600302,40
2,2,Material,600301,Rune,30003,100
3,3,Rune,30004,Material,600303,20,Material,600304,80
`,
}

// FakeKey returns the deterministic private key of fake account n.
func FakeKey(n uint32) *ecdsa.PrivateKey {
	seed := crypto.Keccak256([]byte("opera-adventure fake key"), bigendian.Uint32ToBytes(n))
	key, err := crypto.ToECDSA(seed)
	if err != nil {
		panic(err)
	}
	return key
}

// FakeAddress is the address of FakeKey(n).
func FakeAddress(n uint32) common.Address {
	return crypto.PubkeyToAddress(FakeKey(n).PublicKey)
}

// FakeGenesis funds and stakes accounts fake accounts, each with an avatar
// in slot 0.
func FakeGenesis(accounts uint32) *Genesis {
	g := &Genesis{
		Network: "fake",
		Gold:    FakeGold,
		Sheets:  map[string]string{},
	}
	for name, src := range FakeSheets {
		g.Sheets[name] = src
	}
	for i := uint32(0); i < accounts; i++ {
		addr := FakeAddress(i)
		g.Balances = append(g.Balances, Allocation{Address: addr, Amount: FakeBalance})
		g.Stakes = append(g.Stakes, Allocation{Address: addr, Amount: FakeStake})
		g.Avatars = append(g.Avatars, Avatar{Agent: addr, Slot: 0, Name: fmt.Sprintf("Avatar%d", i)})
	}
	return g
}
