package launcher

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-opera-adventure/flags"
	"github.com/rony4d/go-opera-adventure/integration"
)

var ErrBadConfig = errors.New("launcher: invalid config")

// Config aggregates everything the launcher needs.
type Config struct {
	Network NetworkConfig `yaml:"network" envPrefix:"NETWORK_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Run     RunConfig     `yaml:"run" envPrefix:"RUN_"`
}

type NetworkConfig struct {
	Name string `yaml:"name" env:"NAME"`
	// FakeAccounts is the size of the built-in fake genesis.
	FakeAccounts uint32 `yaml:"fake_accounts" env:"FAKE_ACCOUNTS"`
	Genesis      string `yaml:"genesis" env:"GENESIS"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity" env:"VERBOSITY"`
	Format    string `yaml:"format" env:"FORMAT"`
	Color     bool   `yaml:"color" env:"COLOR"`
	SentryDSN string `yaml:"sentry_dsn" env:"SENTRY_DSN"`
}

type RunConfig struct {
	Blocks   string `yaml:"blocks" env:"BLOCKS"`
	Receipts bool   `yaml:"receipts" env:"RECEIPTS"`
}

// MakeAllConfigs merges, in increasing priority, the defaults, the config
// file, the environment and the command-line flags.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := DefaultConfig()

	if file := flags.String(ctx, flags.ConfigFileFlag.Name); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	applyCLIOverrides(ctx, &cfg)

	return cfg, cfg.Validate()
}

func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if flags.IsSet(ctx, flags.NetworkFlag.Name) {
		cfg.Network.Name = flags.String(ctx, flags.NetworkFlag.Name)
	}
	if flags.IsSet(ctx, flags.FakeNetFlag.Name) {
		cfg.Network.Name = "fake"
		cfg.Network.FakeAccounts = uint32(flags.Int(ctx, flags.FakeNetFlag.Name))
	}
	if flags.IsSet(ctx, flags.GenesisFlag.Name) {
		cfg.Network.Genesis = flags.String(ctx, flags.GenesisFlag.Name)
	}

	if flags.IsSet(ctx, flags.LogFormatFlag.Name) {
		cfg.Logging.Format = flags.String(ctx, flags.LogFormatFlag.Name)
	}
	if flags.IsSet(ctx, flags.LogVerbosityFlag.Name) {
		cfg.Logging.Verbosity = flags.Int(ctx, flags.LogVerbosityFlag.Name)
	}
	if flags.IsSet(ctx, flags.LogColorFlag.Name) {
		cfg.Logging.Color = flags.Bool(ctx, flags.LogColorFlag.Name)
	}
	if flags.IsSet(ctx, flags.SentryDSNFlag.Name) {
		cfg.Logging.SentryDSN = flags.String(ctx, flags.SentryDSNFlag.Name)
	}

	if flags.IsSet(ctx, flags.BlocksFlag.Name) {
		cfg.Run.Blocks = flags.String(ctx, flags.BlocksFlag.Name)
	}
	if flags.IsSet(ctx, flags.ReceiptsFlag.Name) {
		cfg.Run.Receipts = flags.Bool(ctx, flags.ReceiptsFlag.Name)
	}
}

// Validate rejects values no command can work with.
func (c Config) Validate() error {
	switch {
	case c.Logging.Format != "text" && c.Logging.Format != "json":
		return fmt.Errorf("%w: log format %q", ErrBadConfig, c.Logging.Format)
	case c.Logging.Verbosity < 0 || c.Logging.Verbosity > 5:
		return fmt.Errorf("%w: log verbosity %d", ErrBadConfig, c.Logging.Verbosity)
	}
	_, err := c.Preset()
	return err
}

// Preset resolves the network section.
func (c Config) Preset() (integration.Preset, error) {
	p, err := integration.GetPresetByName(c.Network.Name)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if p.FakeAccounts > 0 && c.Network.FakeAccounts > 0 {
		p = integration.FakePreset(c.Network.FakeAccounts)
	}
	return p, nil
}

// EngineConfig is the assembly input of the run command.
func (c Config) EngineConfig() (integration.Config, error) {
	p, err := c.Preset()
	if err != nil {
		return integration.Config{}, err
	}
	return integration.Config{Preset: p, GenesisPath: c.Network.Genesis}, nil
}
