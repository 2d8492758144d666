// Package adventure holds the adventure-boss season records: the season
// schedule, the bounty board that collects wanted bounties, and the explore
// board that carries contribution rewards.
package adventure

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/rony4d/go-opera-adventure/opera"
)

// SeasonInfo is the schedule of one season. The zero value stands for
// "no season created yet".
type SeasonInfo struct {
	Season         int64
	BossID         int64
	StartBlock     idx.Block
	EndBlock       idx.Block
	NextStartBlock idx.Block
}

// NewSeasonInfo schedules a season starting at start. The season accepts
// bounties up to and including EndBlock; the next one may start at
// NextStartBlock.
func NewSeasonInfo(season int64, start idx.Block, rules opera.AdventureRules) SeasonInfo {
	end := start + rules.ActivePeriod
	return SeasonInfo{
		Season:         season,
		StartBlock:     start,
		EndBlock:       end,
		NextStartBlock: end + rules.InactivePeriod,
	}
}

// Active reports whether block lies within [StartBlock, EndBlock].
func (s SeasonInfo) Active(block idx.Block) bool {
	return s.Season > 0 && block >= s.StartBlock && block <= s.EndBlock
}

func (s SeasonInfo) String() string {
	return fmt.Sprintf("season %d boss=%d blocks=[%d,%d] next=%d", s.Season, s.BossID, s.StartBlock, s.EndBlock, s.NextStartBlock)
}
