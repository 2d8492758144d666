package tables

import (
	"fmt"
	"math"
)

// Sheet names, also used as CSV file stems.
const (
	MonsterCollectionSheetName               = "MonsterCollectionSheet"
	AdventureBossSheetName                   = "AdventureBossSheet"
	AdventureBossWantedRewardSheetName       = "AdventureBossWantedRewardSheet"
	AdventureBossContributionRewardSheetName = "AdventureBossContributionRewardSheet"
)

// Reward item types.
const (
	ItemTypeMaterial = "Material"
	ItemTypeRune     = "Rune"
)

// MonsterCollectionRow: level, required_gold, reward_id.
type MonsterCollectionRow struct {
	Level        int64
	RequiredGold int64
	RewardID     int64
}

func (r *MonsterCollectionRow) Key() int64 { return r.Level }

func (r *MonsterCollectionRow) Set(fields []string) error {
	f := fieldReader{fields: fields}
	r.Level = f.int()
	r.RequiredGold = f.int()
	r.RewardID = f.int()
	return f.err
}

// MonsterCollectionSheet lists staking levels.
type MonsterCollectionSheet struct{ *Sheet }

func NewMonsterCollectionSheet() *MonsterCollectionSheet {
	return &MonsterCollectionSheet{newSheet(MonsterCollectionSheetName, func() Row { return &MonsterCollectionRow{} })}
}

// ByLevel returns the row of the given staking level.
func (s *MonsterCollectionSheet) ByLevel(level int64) (MonsterCollectionRow, bool) {
	row, ok := s.Get(level)
	if !ok {
		return MonsterCollectionRow{}, false
	}
	return *row.(*MonsterCollectionRow), true
}

// AdventureBossRow: id, boss_id, explore_ap.
type AdventureBossRow struct {
	ID        int64
	BossID    int64
	ExploreAP int64
}

func (r *AdventureBossRow) Key() int64 { return r.ID }

func (r *AdventureBossRow) Set(fields []string) error {
	f := fieldReader{fields: fields}
	r.ID = f.int()
	r.BossID = f.int()
	r.ExploreAP = f.int()
	return f.err
}

// AdventureBossSheet lists the bosses a season can draw.
type AdventureBossSheet struct{ *Sheet }

func NewAdventureBossSheet() *AdventureBossSheet {
	return &AdventureBossSheet{newSheet(AdventureBossSheetName, func() Row { return &AdventureBossRow{} })}
}

// Boss returns the i-th boss in key order.
func (s *AdventureBossSheet) Boss(i int) AdventureBossRow {
	return *s.At(i).(*AdventureBossRow)
}

// RewardItem is a fixed reward.
type RewardItem struct {
	ItemType string
	ItemID   int64
}

// WeightedItem is a random reward candidate; Ratio is its relative weight.
type WeightedItem struct {
	RewardItem
	Ratio int64
}

// MaxTotalRatio bounds the sum of a reward row's random weights, so a draw
// over the total fits an int on every platform.
const MaxTotalRatio = math.MaxInt32

// RewardRow: id, adventure_boss_id, fixed_type, fixed_id, then any number of
// (type, id, ratio) triples.
type RewardRow struct {
	ID              int64
	AdventureBossID int64
	Fixed           RewardItem
	Random          []WeightedItem
}

func (r *RewardRow) Key() int64 { return r.ID }

func (r *RewardRow) Set(fields []string) error {
	f := fieldReader{fields: fields}
	r.ID = f.int()
	r.AdventureBossID = f.int()
	r.Fixed = RewardItem{ItemType: f.text(), ItemID: f.int()}
	if f.err != nil {
		return f.err
	}
	if err := checkItemType(r.Fixed.ItemType); err != nil {
		return err
	}
	if f.remaining()%3 != 0 {
		return fmt.Errorf("%w: random rewards come in (type, id, ratio) triples", ErrMissingField)
	}
	r.Random = nil
	var total int64
	for f.remaining() > 0 {
		item := WeightedItem{RewardItem: RewardItem{ItemType: f.text(), ItemID: f.int()}, Ratio: f.int()}
		if f.err != nil {
			return f.err
		}
		if err := checkItemType(item.ItemType); err != nil {
			return err
		}
		if item.Ratio <= 0 {
			return fmt.Errorf("%w: ratio must be positive, got %d", ErrBadField, item.Ratio)
		}
		if item.Ratio > MaxTotalRatio-total {
			return fmt.Errorf("%w: ratios sum past %d", ErrBadField, MaxTotalRatio)
		}
		total += item.Ratio
		r.Random = append(r.Random, item)
	}
	return nil
}

// TotalRatio sums the random reward weights.
func (r RewardRow) TotalRatio() int64 {
	var total int64
	for _, item := range r.Random {
		total += item.Ratio
	}
	return total
}

func checkItemType(t string) error {
	switch t {
	case ItemTypeMaterial, ItemTypeRune:
		return nil
	}
	return fmt.Errorf("%w: unknown item type %q", ErrBadField, t)
}

// RewardSheet backs both the wanted and the contribution reward sheets.
type RewardSheet struct{ *Sheet }

func newRewardSheet(name string) *RewardSheet {
	return &RewardSheet{newSheet(name, func() Row { return &RewardRow{} })}
}

func NewWantedRewardSheet() *RewardSheet {
	return newRewardSheet(AdventureBossWantedRewardSheetName)
}

func NewContributionRewardSheet() *RewardSheet {
	return newRewardSheet(AdventureBossContributionRewardSheetName)
}

// ForBoss returns the first row, in key order, for an AdventureBossSheet id.
func (s *RewardSheet) ForBoss(adventureBossID int64) (RewardRow, bool) {
	for i := 0; i < s.Len(); i++ {
		row := s.At(i).(*RewardRow)
		if row.AdventureBossID == adventureBossID {
			return *row, true
		}
	}
	return RewardRow{}, false
}
