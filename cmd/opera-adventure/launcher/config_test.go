package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-opera-adventure/flags"
)

// runConfigFromArgs runs MakeAllConfigs under a synthetic CLI context.
func runConfigFromArgs(t *testing.T, args []string) (Config, error) {
	t.Helper()

	app := cli.NewApp()
	app.HideHelp = true
	app.HideVersion = true
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)
	app.Flags = append(app.Flags, flags.RunFlags()...)

	var (
		got    Config
		cfgErr error
	)
	app.Action = func(c *cli.Context) error {
		got, cfgErr = MakeAllConfigs(c)
		return nil
	}
	if err := app.Run(append([]string{"opera-adventure"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return got, cfgErr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestMakeAllConfigs_layers checks each source overrides the ones below it:
// defaults < config file < environment < flags.
func TestMakeAllConfigs_layers(t *testing.T) {
	file := writeFile(t, "config.yaml", `
network:
  name: test
  genesis: /etc/genesis.yaml
logging:
  verbosity: 4
  format: json
run:
  blocks: file-blocks.yaml
`)

	tests := []struct {
		name string
		env  map[string]string
		args []string
		want func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			want: func(t *testing.T, cfg Config) {
				if cfg.Network.Name != "fake" || cfg.Logging.Verbosity != 3 || cfg.Logging.Format != "text" {
					t.Fatalf("defaults = %+v", cfg)
				}
			},
		},
		{
			name: "config file",
			args: []string{"--config", file},
			want: func(t *testing.T, cfg Config) {
				if cfg.Network.Name != "test" || cfg.Network.Genesis != "/etc/genesis.yaml" {
					t.Fatalf("Network = %+v, want values from file", cfg.Network)
				}
				if cfg.Logging.Verbosity != 4 || cfg.Logging.Format != "json" {
					t.Fatalf("Logging = %+v, want values from file", cfg.Logging)
				}
				if cfg.Run.Blocks != "file-blocks.yaml" {
					t.Fatalf("Run.Blocks = %q", cfg.Run.Blocks)
				}
			},
		},
		{
			name: "environment over file",
			env: map[string]string{
				EnvPrefix + "LOG_VERBOSITY":  "5",
				EnvPrefix + "LOG_SENTRY_DSN": "https://key@sentry.example/1",
				EnvPrefix + "RUN_RECEIPTS":   "true",
			},
			args: []string{"--config", file},
			want: func(t *testing.T, cfg Config) {
				if cfg.Logging.Verbosity != 5 {
					t.Fatalf("Verbosity = %d, want 5 from env", cfg.Logging.Verbosity)
				}
				if cfg.Logging.SentryDSN != "https://key@sentry.example/1" {
					t.Fatalf("SentryDSN = %q", cfg.Logging.SentryDSN)
				}
				if !cfg.Run.Receipts {
					t.Fatal("Receipts should be enabled from env")
				}
				if cfg.Logging.Format != "json" {
					t.Fatalf("Format = %q, unset env must keep the file value", cfg.Logging.Format)
				}
			},
		},
		{
			name: "flags over environment",
			env:  map[string]string{EnvPrefix + "NETWORK_NAME": "main"},
			args: []string{"--config", file, "--network", "testnet", "--log.verbosity", "2", "--blocks", "cli.yaml"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Network.Name != "testnet" {
					t.Fatalf("Network.Name = %q, want flag value", cfg.Network.Name)
				}
				if cfg.Logging.Verbosity != 2 || cfg.Run.Blocks != "cli.yaml" {
					t.Fatalf("cfg = %+v, want flag values", cfg)
				}
			},
		},
		{
			name: "fakenet",
			args: []string{"--network", "main", "--fakenet", "5"},
			want: func(t *testing.T, cfg Config) {
				p, err := cfg.Preset()
				if err != nil {
					t.Fatalf("Preset: %v", err)
				}
				if p.Name != "fake" || p.FakeAccounts != 5 {
					t.Fatalf("preset = %s with %d accounts, want fake with 5", p.Name, p.FakeAccounts)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			cfg, err := runConfigFromArgs(t, test.args)
			if err != nil {
				t.Fatalf("MakeAllConfigs: %v", err)
			}
			test.want(t, cfg)
		})
	}
}

func TestMakeAllConfigs_rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log format", []string{"--log.format", "xml"}},
		{"verbosity", []string{"--log.verbosity", "9"}},
		{"network", []string{"--network", "moon"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := runConfigFromArgs(t, test.args)
			if !errors.Is(err, ErrBadConfig) {
				t.Fatalf("err = %v, want ErrBadConfig", err)
			}
		})
	}

	unknown := writeFile(t, "config.yaml", "network:\n  nmae: fake\n")
	if _, err := runConfigFromArgs(t, []string{"--config", unknown}); err == nil {
		t.Fatal("unknown config keys should be rejected")
	}
}
