package world

import (
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
)

// State keys are Keccak256(namespace || parts...), so every record lives
// under a fixed-width trie key.
var (
	nsGold         = []byte("gold-currency")
	nsLatestSeason = []byte("latest-season")
	nsSeason       = []byte("season")
	nsBountyBoard  = []byte("bounty-board")
	nsExploreBoard = []byte("explore-board")
	nsBalance      = []byte("balance")
	nsAvatar       = []byte("avatar")
)

func key(ns []byte, parts ...[]byte) common.Hash {
	return crypto.Keccak256Hash(append([][]byte{ns}, parts...)...)
}

func seasonKey(ns []byte, season int64) common.Hash {
	return key(ns, new(big.Int).SetInt64(season).Bytes())
}

func balanceKey(addr common.Address, c assets.Currency) common.Hash {
	return key(nsBalance, addr.Bytes(), c.Hash().Bytes())
}

type currencyRecord struct {
	Ticker        string
	DecimalPlaces uint8
}

type seasonRecord struct {
	Season         uint64
	BossID         uint64
	StartBlock     uint64
	EndBlock       uint64
	NextStartBlock uint64
}

func toSeasonRecord(s adventure.SeasonInfo) seasonRecord {
	return seasonRecord{
		Season:         uint64(s.Season),
		BossID:         uint64(s.BossID),
		StartBlock:     uint64(s.StartBlock),
		EndBlock:       uint64(s.EndBlock),
		NextStartBlock: uint64(s.NextStartBlock),
	}
}

func (r seasonRecord) info() adventure.SeasonInfo {
	return adventure.SeasonInfo{
		Season:         int64(r.Season),
		BossID:         int64(r.BossID),
		StartBlock:     idx.Block(r.StartBlock),
		EndBlock:       idx.Block(r.EndBlock),
		NextStartBlock: idx.Block(r.NextStartBlock),
	}
}

type rewardRecord struct {
	ItemType string
	ItemID   uint64
}

func toRewardRecord(r adventure.Reward) rewardRecord {
	return rewardRecord{ItemType: r.ItemType, ItemID: uint64(r.ItemID)}
}

func (r rewardRecord) reward() adventure.Reward {
	return adventure.Reward{ItemType: r.ItemType, ItemID: int64(r.ItemID)}
}

type investorRecord struct {
	AvatarAddress common.Address
	Name          string
	Currency      currencyRecord
	Price         *big.Int
	Count         uint64
}

type bountyBoardRecord struct {
	Season       uint64
	Investors    []investorRecord
	FixedReward  rewardRecord
	RandomReward rewardRecord
}

func encodeBountyBoard(b *adventure.BountyBoard) ([]byte, error) {
	rec := bountyBoardRecord{
		Season:       uint64(b.Season),
		Investors:    make([]investorRecord, len(b.Investors)),
		FixedReward:  toRewardRecord(b.FixedReward),
		RandomReward: toRewardRecord(b.RandomReward),
	}
	for i, inv := range b.Investors {
		if inv.Price.Sign() < 0 {
			return nil, ErrNegativeAmount
		}
		rec.Investors[i] = investorRecord{
			AvatarAddress: inv.AvatarAddress,
			Name:          inv.Name,
			Currency:      currencyRecord(inv.Price.Currency),
			Price:         inv.Price.Copy().Raw,
			Count:         inv.Count,
		}
	}
	return rlp.EncodeToBytes(&rec)
}

func decodeBountyBoard(raw []byte) (*adventure.BountyBoard, error) {
	var rec bountyBoardRecord
	if err := rlp.DecodeBytes(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: bounty board: %v", ErrCorruptRecord, err)
	}
	b := &adventure.BountyBoard{
		Season:       int64(rec.Season),
		FixedReward:  rec.FixedReward.reward(),
		RandomReward: rec.RandomReward.reward(),
	}
	for _, inv := range rec.Investors {
		b.Investors = append(b.Investors, adventure.Investor{
			AvatarAddress: inv.AvatarAddress,
			Name:          inv.Name,
			Price:         assets.Amount{Currency: assets.Currency(inv.Currency), Raw: inv.Price},
			Count:         inv.Count,
		})
	}
	return b, nil
}

type exploreBoardRecord struct {
	Season       uint64
	FixedReward  rewardRecord
	RandomReward rewardRecord
}

type avatarRecord struct {
	Agent common.Address
	Name  string
	Index uint8
}
