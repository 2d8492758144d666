package actions

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
	"github.com/rony4d/go-opera-adventure/world"
)

// wantedEnv is what the checks of one wanted action share. Later checks may
// rely on fields earlier checks filled in.
type wantedEnv struct {
	ctx    *Context
	state  world.State
	action *Wanted

	gold   assets.Currency
	latest adventure.SeasonInfo
	avatar world.AvatarState
}

type wantedCheck struct {
	name string
	run  func(e *wantedEnv) error
}

// wantedChecks run in this order and stop at the first error.
var wantedChecks = []wantedCheck{
	{"currency", checkCurrency},
	{"minimum bounty", checkMinimumBounty},
	{"balance", checkBalance},
	{"season window", checkSeasonWindow},
	{"consecutive season", checkConsecutiveSeason},
	{"avatar owner", checkAvatarOwner},
	{"staking", checkStaking},
}

func (a *Wanted) validate(ctx *Context, st world.State) (*wantedEnv, error) {
	latest, err := st.LatestSeason()
	if err != nil {
		return nil, err
	}
	e := &wantedEnv{
		ctx:    ctx,
		state:  st,
		action: a,
		gold:   st.GoldCurrency(),
		latest: latest,
	}
	for _, c := range wantedChecks {
		if err := c.run(e); err != nil {
			log.Trace("Wanted check failed", "check", c.name, "err", err)
			return nil, err
		}
	}
	return e, nil
}

func checkCurrency(e *wantedEnv) error {
	if e.action.Bounty.Currency != e.gold {
		return fail(CurrencyMismatch, "bounty in %s, ledger gold is %s", e.action.Bounty.Currency, e.gold)
	}
	return nil
}

func checkMinimumBounty(e *wantedEnv) error {
	floor := assets.Units(e.gold, e.ctx.Rules.MinBounty)
	if e.action.Bounty.Less(floor) {
		return fail(BelowMinimumBounty, "bounty %s below %s", e.action.Bounty, floor)
	}
	return nil
}

func checkBalance(e *wantedEnv) error {
	balance := e.state.Balance(e.ctx.Signer, e.gold)
	if balance.Less(e.action.Bounty) {
		return fail(InsufficientBalance, "%s holds %s, bounty is %s", e.ctx.Signer, balance, e.action.Bounty)
	}
	return nil
}

// checkSeasonWindow accepts the latest season while it is open, and the next
// season once the current one has reached its NextStartBlock.
func checkSeasonWindow(e *wantedEnv) error {
	season, latest, block := e.action.Season, e.latest, e.ctx.BlockIndex
	switch {
	case season <= 0,
		season > latest.Season+1,
		season < latest.Season,
		season == latest.Season && !latest.Active(block),
		season == latest.Season+1 && block < latest.NextStartBlock:
		return fail(InvalidSeasonWindow, "season %d at block %d, latest is %s", season, block, latest)
	}
	return nil
}

// checkConsecutiveSeason rejects avatars that contributed to the previous
// season. A previous season without a board counts as empty.
func checkConsecutiveSeason(e *wantedEnv) error {
	if e.action.Season <= 1 {
		return nil
	}
	prev, ok, err := e.state.BountyBoard(e.action.Season - 1)
	if err != nil {
		return err
	}
	if ok && prev.Contains(e.action.AvatarAddress) {
		return fail(RepeatedConsecutiveSeasonContribution, "avatar %s contributed to season %d", e.action.AvatarAddress, e.action.Season-1)
	}
	return nil
}

// checkAvatarOwner requires the avatar address to be one of the signer's
// derived slots and the stored avatar to name the signer as its agent.
func checkAvatarOwner(e *wantedEnv) error {
	signer, addr := e.ctx.Signer, e.action.AvatarAddress
	if _, ok := adventure.AvatarSlot(signer, addr, e.ctx.Rules.AvatarSlots); !ok {
		return fail(UnauthorizedAvatar, "%s is not an avatar slot of %s", addr, signer)
	}
	avatar, ok, err := e.state.Avatar(addr)
	if err != nil {
		return err
	}
	if !ok || avatar.Agent != signer {
		return fail(UnauthorizedAvatar, "avatar %s is not owned by %s", addr, signer)
	}
	e.avatar = avatar
	return nil
}

func checkStaking(e *wantedEnv) error {
	level := int64(e.ctx.Rules.RequiredStakingLevel)
	row, ok := e.ctx.Tables.MonsterCollection.ByLevel(level)
	if !ok {
		return fmt.Errorf("%w: %s level %d", ErrMissingTableRow, e.ctx.Tables.MonsterCollection.Name(), level)
	}
	required := assets.Units(e.gold, row.RequiredGold)
	staked := e.state.StakedAmount(e.avatar.Agent)
	if staked.Less(required) {
		return fail(InsufficientStaking, "agent %s staked %s, level %d requires %s", e.avatar.Agent, staked, level, required)
	}
	return nil
}
