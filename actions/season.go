package actions

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/world"
)

// needsNewSeason reports whether an action at block must open a season.
func needsNewSeason(latest adventure.SeasonInfo, block idx.Block) bool {
	return latest.Season == 0 || block >= latest.NextStartBlock
}

// seasonBoard returns the bounty board the action contributes to, opening
// the season first when needed.
func seasonBoard(ctx *Context, st world.State, latest adventure.SeasonInfo, season int64) (world.State, *adventure.BountyBoard, error) {
	if needsNewSeason(latest, ctx.BlockIndex) {
		return openSeason(ctx, st, season)
	}
	board, ok, err := st.BountyBoard(season)
	if err != nil {
		return st, nil, err
	}
	if !ok {
		return st, nil, fmt.Errorf("actions: season %d has no bounty board", season)
	}
	return st, board, nil
}

// openSeason creates the SeasonInfo and both boards of season. Random draws
// happen in a fixed order: boss, wanted reward, contribution reward.
func openSeason(ctx *Context, st world.State, season int64) (world.State, *adventure.BountyBoard, error) {
	info := adventure.NewSeasonInfo(season, ctx.BlockIndex, ctx.Rules)
	bounty := adventure.NewBountyBoard(season)
	explore := adventure.NewExploreBoard(season)

	bosses := ctx.Tables.AdventureBoss
	if bosses.Len() == 0 {
		return st, nil, fmt.Errorf("%w: %s is empty", ErrMissingTableRow, bosses.Name())
	}
	rnd := ctx.Random()
	boss := bosses.Boss(rnd.Next(0, bosses.Len()))
	info.BossID = boss.BossID

	wanted, ok := ctx.Tables.WantedReward.ForBoss(boss.ID)
	if !ok {
		return st, nil, fmt.Errorf("%w: %s for adventure boss %d", ErrMissingTableRow, ctx.Tables.WantedReward.Name(), boss.ID)
	}
	bounty.SetReward(wanted, rnd)

	contrib, ok := ctx.Tables.ContributionReward.ForBoss(boss.ID)
	if !ok {
		return st, nil, fmt.Errorf("%w: %s for adventure boss %d", ErrMissingTableRow, ctx.Tables.ContributionReward.Name(), boss.ID)
	}
	explore.SetReward(contrib, rnd)

	next, err := st.SetSeasonInfo(info)
	if err != nil {
		return st, nil, err
	}
	if next, err = next.SetLatestSeason(info); err != nil {
		return st, nil, err
	}
	if next, err = next.SetBountyBoard(bounty); err != nil {
		return st, nil, err
	}
	if next, err = next.SetExploreBoard(explore); err != nil {
		return st, nil, err
	}

	log.Info("Adventure season opened", "season", season, "boss", info.BossID,
		"start", info.StartBlock, "end", info.EndBlock, "next", info.NextStartBlock)
	return next, bounty, nil
}
