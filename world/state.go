// Package world is the ledger view that actions read and write.
//
// A State is a value: every setter returns a new State and leaves the
// receiver untouched. An action threads the returned states forward and
// hands back only the last one on success, so a failed action never leaves
// partial writes behind.
package world

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
)

var (
	ErrInsufficientBalance = errors.New("world: insufficient balance")
	ErrNegativeAmount      = errors.New("world: negative amount")
	ErrCorruptRecord       = errors.New("world: corrupt record")
)

// AvatarState is the part of an avatar actions need.
type AvatarState struct {
	Agent common.Address
	Name  string
	Index uint8
}

// State is a versioned ledger snapshot.
type State interface {
	// GoldCurrency is the native currency of the ledger.
	GoldCurrency() assets.Currency

	// LatestSeason returns the most recently created season, or the zero
	// SeasonInfo if there is none.
	LatestSeason() (adventure.SeasonInfo, error)
	SetLatestSeason(info adventure.SeasonInfo) (State, error)

	SeasonInfo(season int64) (adventure.SeasonInfo, bool, error)
	SetSeasonInfo(info adventure.SeasonInfo) (State, error)

	// BountyBoard returns a copy the caller may modify.
	BountyBoard(season int64) (*adventure.BountyBoard, bool, error)
	SetBountyBoard(board *adventure.BountyBoard) (State, error)

	ExploreBoard(season int64) (*adventure.ExploreBoard, bool, error)
	SetExploreBoard(board *adventure.ExploreBoard) (State, error)

	Balance(addr common.Address, c assets.Currency) assets.Amount
	TransferAsset(from, to common.Address, amount assets.Amount) (State, error)
	// MintAsset creates amount out of nothing. Only genesis uses it.
	MintAsset(to common.Address, amount assets.Amount) (State, error)

	Avatar(addr common.Address) (AvatarState, bool, error)
	SetAvatar(addr common.Address, avatar AvatarState) (State, error)

	// StakedAmount is the gold held at the agent's stake address.
	StakedAmount(agent common.Address) assets.Amount

	// Root commits to every record of the state.
	Root() common.Hash
}
