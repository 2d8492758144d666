package launcher

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-opera-adventure/actions"
	"github.com/rony4d/go-opera-adventure/flags"
	"github.com/rony4d/go-opera-adventure/inter/assets"
)

func wantedEncodeAction(ctx *cli.Context) error {
	decimals := ctx.Int(flags.DecimalsFlag.Name)
	if decimals < 0 || decimals > 0xff {
		return fmt.Errorf("%w: %d decimal places", ErrBadConfig, decimals)
	}
	gold := assets.Currency{Ticker: ctx.String(flags.TickerFlag.Name), DecimalPlaces: uint8(decimals)}
	bounty, err := assets.ParseAmount(gold, ctx.String(flags.BountyFlag.Name))
	if err != nil {
		return err
	}
	avatar := ctx.String(flags.AvatarFlag.Name)
	if !common.IsHexAddress(avatar) {
		return fmt.Errorf("%w: avatar %q is not an address", ErrBadConfig, avatar)
	}

	payload, err := actions.Marshal(&actions.Wanted{
		Season:        ctx.Int64(flags.SeasonFlag.Name),
		Bounty:        bounty,
		AvatarAddress: common.HexToAddress(avatar),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(payload))
	return nil
}

func wantedDecodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("wanted decode takes exactly one hex payload")
	}
	raw, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return err
	}
	w, err := actions.DecodeWanted(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "season=%d bounty=%s avatar=%s\n", w.Season, w.Bounty, w.AvatarAddress.Hex())
	return nil
}
