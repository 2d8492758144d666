// Package launcher is the opera-adventure command line: it layers the
// configuration, sets up logging and runs blocks or converts payloads.
package launcher

import (
	"fmt"
	"io"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-opera-adventure/blockproc"
	"github.com/rony4d/go-opera-adventure/flags"
	"github.com/rony4d/go-opera-adventure/integration"
	"github.com/rony4d/go-opera-adventure/inter/adventure"
	"github.com/rony4d/go-opera-adventure/world"
)

// gitCommit is set by the linker.
var gitCommit = ""

// NewApp builds the command tree.
func NewApp() *cli.App {
	app := flags.NewApp(gitCommit, "adventure-boss action executor")
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Apply a block file on top of the genesis and print the state roots",
			Flags:  flags.RunFlags(),
			Action: runAction,
		},
		{
			Name:   "genesis",
			Usage:  "Print the genesis of the selected network and its state root",
			Action: genesisAction,
		},
		{
			Name:  "wanted",
			Usage: "Encode or decode wanted payloads",
			Subcommands: []cli.Command{
				{
					Name:   "encode",
					Usage:  "Print the hex payload of a wanted action",
					Flags:  flags.WantedFlags(),
					Action: wantedEncodeAction,
				},
				{
					Name:      "decode",
					Usage:     "Print the fields of a hex wanted payload",
					ArgsUsage: "<hex>",
					Action:    wantedDecodeAction,
				},
			},
		},
	}
	return app
}

// Launch runs the command line.
func Launch(args []string) error {
	return NewApp().Run(args)
}

// makeEngine configures logging and assembles the selected network.
func makeEngine(ctx *cli.Context) (Config, *integration.Engine, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := setupLogging(cfg.Logging, ctx.App.ErrWriter)
	if err != nil {
		return cfg, nil, err
	}
	ecfg, err := cfg.EngineConfig()
	if err != nil {
		return cfg, nil, err
	}
	engine, err := integration.MakeEngine(ecfg)
	if err != nil {
		logger.WithError(err).Error("Failed to assemble network")
		return cfg, nil, err
	}
	return cfg, engine, nil
}

func runAction(ctx *cli.Context) error {
	cfg, engine, err := makeEngine(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "genesis network=%s root=%s\n", engine.Rules.Name, engine.Processor.State().Root().Hex())
	if cfg.Run.Blocks == "" {
		return nil
	}

	blocks, err := blockproc.LoadBlocks(cfg.Run.Blocks, engine.Genesis.GoldCurrency())
	if err != nil {
		return err
	}
	results, err := engine.Run(blocks)
	for _, res := range results {
		fmt.Fprintf(w, "block %d txs=%d applied=%d skipped=%v gas=%d size=%d root=%s\n",
			res.Index, len(res.Receipts), len(res.Applied), res.SkippedTxs, res.GasUsed, res.Size, res.Root.Hex())
		if !cfg.Run.Receipts {
			continue
		}
		for _, r := range res.Receipts {
			fmt.Fprintf(w, "  tx %d %s %s %s gas=%d", r.Index, r.TxHash.Hex(), r.TypeID, r.Status(), r.GasUsed)
			if r.Err != nil {
				fmt.Fprintf(w, " err=%q", r.Err.Error())
			}
			fmt.Fprintln(w)
		}
	}
	if err != nil {
		return err
	}
	return printSeason(w, engine.Processor.State())
}

// printSeason reports the latest season and the bounty collected for it.
func printSeason(w io.Writer, st world.State) error {
	latest, err := st.LatestSeason()
	if err != nil || latest.Season == 0 {
		return err
	}
	board, ok, err := st.BountyBoard(latest.Season)
	if err != nil {
		return err
	}
	if !ok {
		board = adventure.NewBountyBoard(latest.Season)
	}
	total, err := board.TotalBounty(st.GoldCurrency())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s investors=%d bounty=%s\n", latest, len(board.Investors), total)
	return nil
}

func genesisAction(ctx *cli.Context) error {
	_, engine, err := makeEngine(ctx)
	if err != nil {
		return err
	}
	data, err := engine.Genesis.Marshal()
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "# root: %s\n", engine.Processor.State().Root().Hex())
	_, err = w.Write(data)
	return err
}
