package adventure

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-opera-adventure/inter/assets"
	"github.com/rony4d/go-opera-adventure/tables"
	"github.com/rony4d/go-opera-adventure/utils/detrand"
)

// Reward is one reward item. The zero value means no reward.
type Reward struct {
	ItemType string
	ItemID   int64
}

// IsZero reports whether r is the empty reward.
func (r Reward) IsZero() bool {
	return r.ItemType == "" && r.ItemID == 0
}

// Investor is one avatar's accumulated contribution to a bounty board.
type Investor struct {
	AvatarAddress common.Address
	Name          string
	Price         assets.Amount
	Count         uint64
}

// BountyBoard collects the bounties of one season. Investors keep the order
// of their first contribution and an avatar appears at most once.
type BountyBoard struct {
	Season       int64
	Investors    []Investor
	FixedReward  Reward
	RandomReward Reward
}

// NewBountyBoard returns an empty board.
func NewBountyBoard(season int64) *BountyBoard {
	return &BountyBoard{Season: season}
}

// Contains reports whether avatar has contributed to the board.
func (b *BountyBoard) Contains(avatar common.Address) bool {
	return b.index(avatar) >= 0
}

func (b *BountyBoard) index(avatar common.Address) int {
	for i, inv := range b.Investors {
		if inv.AvatarAddress == avatar {
			return i
		}
	}
	return -1
}

// Investor returns the entry of avatar.
func (b *BountyBoard) Investor(avatar common.Address) (Investor, bool) {
	i := b.index(avatar)
	if i < 0 {
		return Investor{}, false
	}
	return b.Investors[i], true
}

// AddOrUpdate adds price to the avatar's entry, creating it if needed. An
// existing entry keeps its position and name; its Price grows by price and
// its Count by one.
func (b *BountyBoard) AddOrUpdate(avatar common.Address, name string, price assets.Amount) error {
	if i := b.index(avatar); i >= 0 {
		sum, err := b.Investors[i].Price.Add(price)
		if err != nil {
			return err
		}
		b.Investors[i].Price = sum
		b.Investors[i].Count++
		return nil
	}
	b.Investors = append(b.Investors, Investor{
		AvatarAddress: avatar,
		Name:          name,
		Price:         price.Copy(),
		Count:         1,
	})
	return nil
}

// TotalBounty sums every investor's price in currency c.
func (b *BountyBoard) TotalBounty(c assets.Currency) (assets.Amount, error) {
	total := assets.Zero(c)
	for _, inv := range b.Investors {
		var err error
		if total, err = total.Add(inv.Price); err != nil {
			return assets.Amount{}, err
		}
	}
	return total, nil
}

// SetReward assigns the season's wanted reward from row.
func (b *BountyBoard) SetReward(row tables.RewardRow, rnd detrand.Source) {
	b.FixedReward, b.RandomReward = pickReward(row, rnd)
}

// Copy returns a board that shares no memory with b.
func (b *BountyBoard) Copy() *BountyBoard {
	cp := *b
	cp.Investors = make([]Investor, len(b.Investors))
	for i, inv := range b.Investors {
		inv.Price = inv.Price.Copy()
		cp.Investors[i] = inv
	}
	return &cp
}

// ExploreBoard carries the contribution reward of one season.
type ExploreBoard struct {
	Season       int64
	FixedReward  Reward
	RandomReward Reward
}

// NewExploreBoard returns an empty board.
func NewExploreBoard(season int64) *ExploreBoard {
	return &ExploreBoard{Season: season}
}

// SetReward assigns the season's contribution reward from row.
func (b *ExploreBoard) SetReward(row tables.RewardRow, rnd detrand.Source) {
	b.FixedReward, b.RandomReward = pickReward(row, rnd)
}

// pickReward copies the fixed reward and draws once over the random
// candidates, weighted by ratio, in row order.
func pickReward(row tables.RewardRow, rnd detrand.Source) (fixed, random Reward) {
	fixed = Reward{ItemType: row.Fixed.ItemType, ItemID: row.Fixed.ItemID}
	target := int64(rnd.Next(0, int(row.TotalRatio())))
	var acc int64
	for _, item := range row.Random {
		acc += item.Ratio
		if target < acc {
			return fixed, Reward{ItemType: item.ItemType, ItemID: item.ItemID}
		}
	}
	return fixed, Reward{}
}
