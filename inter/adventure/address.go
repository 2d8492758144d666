package adventure

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Base addresses that per-season and per-agent addresses derive from.
var (
	BountyBoardBase = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

// DeriveAddress returns the last 20 bytes of Keccak256(base || key).
func DeriveAddress(base common.Address, key []byte) common.Address {
	return common.BytesToAddress(crypto.Keccak256(base.Bytes(), key))
}

// SeasonAddress is the season number in address form.
func SeasonAddress(season int64) common.Address {
	return common.BigToAddress(big.NewInt(season))
}

// BountyBoardAddress is the escrow account that holds a season's bounties.
func BountyBoardAddress(season int64) common.Address {
	return DeriveAddress(BountyBoardBase, SeasonAddress(season).Bytes())
}

// DeriveAvatarAddress returns the address of an agent's avatar slot.
func DeriveAvatarAddress(agent common.Address, slot uint8) common.Address {
	return DeriveAddress(agent, []byte(fmt.Sprintf("avatar-state-%d", slot)))
}

// StakeAddress is the account holding an agent's staked gold.
func StakeAddress(agent common.Address) common.Address {
	return DeriveAddress(agent, []byte("stake"))
}

// AvatarSlot returns the slot of avatar among the first slots addresses of
// agent.
func AvatarSlot(agent, avatar common.Address, slots uint8) (uint8, bool) {
	for i := uint8(0); i < slots; i++ {
		if DeriveAvatarAddress(agent, i) == avatar {
			return i, true
		}
	}
	return 0, false
}
