package world

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/inter/assets"
)

// Memory is an in-memory State. Each write adds an immutable layer on top of
// its parent, so older versions stay readable and unchanged.
type Memory struct {
	parent  *Memory
	entries map[common.Hash][]byte
	gold    assets.Currency
	depth   int
}

var _ State = (*Memory)(nil)

// NewMemory returns an empty ledger whose native currency is gold.
func NewMemory(gold assets.Currency) *Memory {
	raw, err := rlp.EncodeToBytes(currencyRecord(gold))
	if err != nil {
		panic(err)
	}
	return &Memory{
		entries: map[common.Hash][]byte{key(nsGold): raw},
		gold:    gold,
	}
}

func (m *Memory) get(k common.Hash) ([]byte, bool) {
	for l := m; l != nil; l = l.parent {
		if v, ok := l.entries[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func (m *Memory) with(kv map[common.Hash][]byte) *Memory {
	return &Memory{parent: m, entries: kv, gold: m.gold, depth: m.depth + 1}
}

func (m *Memory) put(k common.Hash, v interface{}) (*Memory, error) {
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		return m, err
	}
	return m.with(map[common.Hash][]byte{k: raw}), nil
}

// Depth is the number of layers above the base.
func (m *Memory) Depth() int {
	return m.depth
}

// Flatten squashes all layers into one. The result has the same content and
// root as m.
func (m *Memory) Flatten() *Memory {
	entries := m.collect()
	log.Trace("Flattened world state", "layers", m.depth, "records", len(entries))
	return &Memory{entries: entries, gold: m.gold}
}

func (m *Memory) collect() map[common.Hash][]byte {
	var chain []*Memory
	for l := m; l != nil; l = l.parent {
		chain = append(chain, l)
	}
	entries := make(map[common.Hash][]byte)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].entries {
			entries[k] = v
		}
	}
	return entries
}

// Root hashes all records, in key order, into a Merkle Patricia trie.
func (m *Memory) Root() common.Hash {
	entries := m.collect()
	keys := make([]common.Hash, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })

	st := trie.NewStackTrie(nil)
	for _, k := range keys {
		st.Update(k[:], entries[k])
	}
	return st.Hash()
}

func (m *Memory) GoldCurrency() assets.Currency {
	return m.gold
}

func (m *Memory) LatestSeason() (adventure.SeasonInfo, error) {
	raw, ok := m.get(key(nsLatestSeason))
	if !ok {
		return adventure.SeasonInfo{}, nil
	}
	return decodeSeason(raw)
}

func (m *Memory) SetLatestSeason(info adventure.SeasonInfo) (State, error) {
	return m.put(key(nsLatestSeason), toSeasonRecord(info))
}

func (m *Memory) SeasonInfo(season int64) (adventure.SeasonInfo, bool, error) {
	raw, ok := m.get(seasonKey(nsSeason, season))
	if !ok {
		return adventure.SeasonInfo{}, false, nil
	}
	info, err := decodeSeason(raw)
	return info, err == nil, err
}

func (m *Memory) SetSeasonInfo(info adventure.SeasonInfo) (State, error) {
	return m.put(seasonKey(nsSeason, info.Season), toSeasonRecord(info))
}

func decodeSeason(raw []byte) (adventure.SeasonInfo, error) {
	var rec seasonRecord
	if err := rlp.DecodeBytes(raw, &rec); err != nil {
		return adventure.SeasonInfo{}, fmt.Errorf("%w: season: %v", ErrCorruptRecord, err)
	}
	return rec.info(), nil
}

func (m *Memory) BountyBoard(season int64) (*adventure.BountyBoard, bool, error) {
	raw, ok := m.get(seasonKey(nsBountyBoard, season))
	if !ok {
		return nil, false, nil
	}
	b, err := decodeBountyBoard(raw)
	return b, err == nil, err
}

func (m *Memory) SetBountyBoard(board *adventure.BountyBoard) (State, error) {
	raw, err := encodeBountyBoard(board)
	if err != nil {
		return m, err
	}
	return m.with(map[common.Hash][]byte{seasonKey(nsBountyBoard, board.Season): raw}), nil
}

func (m *Memory) ExploreBoard(season int64) (*adventure.ExploreBoard, bool, error) {
	raw, ok := m.get(seasonKey(nsExploreBoard, season))
	if !ok {
		return nil, false, nil
	}
	var rec exploreBoardRecord
	if err := rlp.DecodeBytes(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("%w: explore board: %v", ErrCorruptRecord, err)
	}
	return &adventure.ExploreBoard{
		Season:       int64(rec.Season),
		FixedReward:  rec.FixedReward.reward(),
		RandomReward: rec.RandomReward.reward(),
	}, true, nil
}

func (m *Memory) SetExploreBoard(board *adventure.ExploreBoard) (State, error) {
	return m.put(seasonKey(nsExploreBoard, board.Season), exploreBoardRecord{
		Season:       uint64(board.Season),
		FixedReward:  toRewardRecord(board.FixedReward),
		RandomReward: toRewardRecord(board.RandomReward),
	})
}

// Balance returns zero for unknown accounts. Records are written by this
// type only, so a balance that fails to decode is a programming error.
func (m *Memory) Balance(addr common.Address, c assets.Currency) assets.Amount {
	raw, ok := m.get(balanceKey(addr, c))
	if !ok {
		return assets.Zero(c)
	}
	v := new(big.Int)
	if err := rlp.DecodeBytes(raw, v); err != nil {
		panic(fmt.Errorf("%w: balance of %s: %v", ErrCorruptRecord, addr, err))
	}
	return assets.Amount{Currency: c, Raw: v}
}

func (m *Memory) TransferAsset(from, to common.Address, amount assets.Amount) (State, error) {
	if amount.Sign() < 0 {
		return m, ErrNegativeAmount
	}
	src := m.Balance(from, amount.Currency)
	if src.Less(amount) {
		return m, fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from, src, amount)
	}
	src, _ = src.Sub(amount)
	kv := map[common.Hash][]byte{}
	if err := putBalance(kv, from, src); err != nil {
		return m, err
	}
	// read the destination after debiting so a self-transfer is a no-op
	next := m.with(kv)
	dst, _ := next.Balance(to, amount.Currency).Add(amount)
	if err := putBalance(kv, to, dst); err != nil {
		return m, err
	}
	return next, nil
}

func (m *Memory) MintAsset(to common.Address, amount assets.Amount) (State, error) {
	if amount.Sign() < 0 {
		return m, ErrNegativeAmount
	}
	dst, _ := m.Balance(to, amount.Currency).Add(amount)
	kv := map[common.Hash][]byte{}
	if err := putBalance(kv, to, dst); err != nil {
		return m, err
	}
	return m.with(kv), nil
}

func putBalance(kv map[common.Hash][]byte, addr common.Address, a assets.Amount) error {
	raw, err := rlp.EncodeToBytes(a.Raw)
	if err != nil {
		return err
	}
	kv[balanceKey(addr, a.Currency)] = raw
	return nil
}

func (m *Memory) Avatar(addr common.Address) (AvatarState, bool, error) {
	raw, ok := m.get(key(nsAvatar, addr.Bytes()))
	if !ok {
		return AvatarState{}, false, nil
	}
	var rec avatarRecord
	if err := rlp.DecodeBytes(raw, &rec); err != nil {
		return AvatarState{}, false, fmt.Errorf("%w: avatar %s: %v", ErrCorruptRecord, addr, err)
	}
	return AvatarState(rec), true, nil
}

func (m *Memory) SetAvatar(addr common.Address, avatar AvatarState) (State, error) {
	return m.put(key(nsAvatar, addr.Bytes()), avatarRecord(avatar))
}

func (m *Memory) StakedAmount(agent common.Address) assets.Amount {
	return m.Balance(adventure.StakeAddress(agent), m.gold)
}
