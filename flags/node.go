package flags

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	BlocksFlag = cli.StringFlag{
		Name:  "blocks",
		Usage: "YAML file of blocks to apply",
	}
	ReceiptsFlag = cli.BoolFlag{
		Name:  "receipts",
		Usage: "Print a line per transaction",
	}

	SeasonFlag = cli.Int64Flag{
		Name:  "season",
		Usage: "Season the bounty is placed on",
	}
	BountyFlag = cli.StringFlag{
		Name:  "bounty",
		Usage: "Bounty in gold, e.g. 100 or 100.50",
	}
	AvatarFlag = cli.StringFlag{
		Name:  "avatar",
		Usage: "Avatar address",
	}
	TickerFlag = cli.StringFlag{
		Name:  "currency.ticker",
		Usage: "Gold currency ticker",
		Value: "NCG",
	}
	DecimalsFlag = cli.IntFlag{
		Name:  "currency.decimals",
		Usage: "Gold currency decimal places",
		Value: 2,
	}
)

// RunFlags configure block execution.
func RunFlags() []cli.Flag {
	return []cli.Flag{
		BlocksFlag,
		ReceiptsFlag,
	}
}

// WantedFlags describe a wanted payload.
func WantedFlags() []cli.Flag {
	return []cli.Flag{
		SeasonFlag,
		BountyFlag,
		AvatarFlag,
		TickerFlag,
		DecimalsFlag,
	}
}
