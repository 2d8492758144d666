package blockproc

import (
	"errors"
	"fmt"
	"os"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-opera-adventure/actions"
	"github.com/rony4d/go-opera-adventure/inter/assets"
)

// ErrBadTx is returned for a block-file transaction with neither or both of
// payload and wanted.
var ErrBadTx = errors.New("blockproc: transaction needs exactly one of payload or wanted")

// blockFile is the YAML form of a block sequence:
//
//	blocks:
//	  - index: 1
//	    atropos: "0x..."        # optional
//	    txs:
//	      - signer: "0x..."
//	        payload: "0x..."    # encoded action
//	      - signer: "0x..."
//	        wanted: {season: 1, bounty: 100, avatar: "0x..."}
type blockFile struct {
	Blocks []blockEntry `yaml:"blocks"`
}

type blockEntry struct {
	Index   uint64      `yaml:"index"`
	Atropos common.Hash `yaml:"atropos,omitempty"`
	Txs     []txEntry   `yaml:"txs"`
}

type txEntry struct {
	Signer  common.Address `yaml:"signer"`
	Payload hexutil.Bytes  `yaml:"payload,omitempty"`
	Wanted  *wantedEntry   `yaml:"wanted,omitempty"`
}

// wantedEntry is a wanted action with the bounty in whole gold units.
type wantedEntry struct {
	Season int64          `yaml:"season"`
	Bounty int64          `yaml:"bounty"`
	Avatar common.Address `yaml:"avatar"`
}

// FakeAtropos is the block hash used when a block file omits one.
func FakeAtropos(index idx.Block) hash.Event {
	return hash.Event(crypto.Keccak256Hash([]byte("atropos"), bigendian.Uint64ToBytes(uint64(index))))
}

// ParseBlocks decodes a YAML block file. Wanted shorthands are encoded with
// gold as the bounty currency.
func ParseBlocks(data []byte, gold assets.Currency) ([]*Block, error) {
	var f blockFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}
	blocks := make([]*Block, 0, len(f.Blocks))
	for _, e := range f.Blocks {
		b := &Block{
			Index:   idx.Block(e.Index),
			Atropos: hash.Event(e.Atropos),
		}
		if e.Atropos == (common.Hash{}) {
			b.Atropos = FakeAtropos(b.Index)
		}
		for i, t := range e.Txs {
			tx, err := t.tx(gold)
			if err != nil {
				return nil, fmt.Errorf("block %d tx %d: %w", e.Index, i, err)
			}
			b.Txs = append(b.Txs, tx)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (t txEntry) tx(gold assets.Currency) (Tx, error) {
	if (t.Payload == nil) == (t.Wanted == nil) {
		return Tx{}, ErrBadTx
	}
	if t.Payload != nil {
		return Tx{Signer: t.Signer, Payload: t.Payload}, nil
	}
	payload, err := actions.Marshal(&actions.Wanted{
		Season:        t.Wanted.Season,
		Bounty:        assets.Units(gold, t.Wanted.Bounty),
		AvatarAddress: t.Wanted.Avatar,
	})
	if err != nil {
		return Tx{}, err
	}
	return Tx{Signer: t.Signer, Payload: payload}, nil
}

// LoadBlocks reads a YAML block file.
func LoadBlocks(path string, gold assets.Currency) ([]*Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBlocks(data, gold)
}
