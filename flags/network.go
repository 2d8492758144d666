package flags

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	NetworkFlag = cli.StringFlag{
		Name:  "network",
		Usage: "Network preset (main|test|fake)",
		Value: "fake",
	}
	FakeNetFlag = cli.IntFlag{
		Name:  "fakenet",
		Usage: "Run a fake network with this many funded accounts",
	}
	GenesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "Genesis YAML file (required for main and test)",
	}
)

// NetworkFlags select the network and its genesis.
func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		NetworkFlag,
		FakeNetFlag,
		GenesisFlag,
	}
}
