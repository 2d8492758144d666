package actions

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
	"github.com/rony4d/go-opera-adventure/inter/plain"
	"github.com/rony4d/go-opera-adventure/world"
)

// WantedTypeID is the type_id of the wanted action.
const WantedTypeID = "wanted"

// Wanted places a bounty on a season's adventure boss for an avatar.
type Wanted struct {
	Season        int64
	Bounty        assets.Amount
	AvatarAddress common.Address
}

var _ Action = (*Wanted)(nil)

func (a *Wanted) TypeID() string {
	return WantedTypeID
}

// PlainValue is {"type_id": "wanted", "values": [season, bounty, avatar]}.
func (a *Wanted) PlainValue() plain.Value {
	return plain.Dict{
		"type_id": plain.Text(WantedTypeID),
		"values": plain.List{
			plain.NewInteger(a.Season),
			a.Bounty.PlainValue(),
			plain.Binary(a.AvatarAddress.Bytes()),
		},
	}
}

// LoadPlainValue reads the "values" list of the action payload.
func (a *Wanted) LoadPlainValue(values plain.List) error {
	if len(values) < 3 {
		return fail(MalformedPayload, "wanted needs 3 values, got %d", len(values))
	}
	season, ok := values[0].(plain.Integer)
	if !ok {
		return fail(MalformedPayload, "season is %T", values[0])
	}
	s, fits := season.Int64()
	if !fits {
		return fail(MalformedPayload, "season out of range")
	}
	bounty, err := assets.AmountFromPlain(values[1])
	if err != nil {
		return fail(MalformedPayload, "bounty: %v", err)
	}
	avatar, ok := values[2].(plain.Binary)
	if !ok || len(avatar) != common.AddressLength {
		return fail(MalformedPayload, "avatar address is not %d bytes", common.AddressLength)
	}
	a.Season = s
	a.Bounty = bounty
	a.AvatarAddress = common.BytesToAddress(avatar)
	return nil
}

// Execute charges gas, validates, opens a season if due, then moves the
// bounty into the season's escrow and records it on the bounty board. On
// any error prev is returned unchanged.
func (a *Wanted) Execute(ctx *Context, prev world.State) (world.State, error) {
	if err := ctx.UseGas(ctx.Rules.WantedGas); err != nil {
		return prev, err
	}
	next, err := a.execute(ctx, prev)
	if err != nil {
		log.Debug("Wanted rejected", "signer", ctx.Signer, "season", a.Season, "avatar", a.AvatarAddress, "err", err)
		return prev, err
	}
	log.Debug("Wanted applied", "signer", ctx.Signer, "season", a.Season, "avatar", a.AvatarAddress, "bounty", a.Bounty)
	return next, nil
}

func (a *Wanted) execute(ctx *Context, st world.State) (world.State, error) {
	env, err := a.validate(ctx, st)
	if err != nil {
		return nil, err
	}

	st, board, err := seasonBoard(ctx, st, env.latest, a.Season)
	if err != nil {
		return nil, err
	}
	if st, err = st.TransferAsset(ctx.Signer, adventure.BountyBoardAddress(a.Season), a.Bounty); err != nil {
		return nil, err
	}
	if err = board.AddOrUpdate(a.AvatarAddress, env.avatar.Name, a.Bounty); err != nil {
		return nil, err
	}
	return st.SetBountyBoard(board)
}
