package launcher

// EnvPrefix prefixes every environment variable the launcher reads, e.g.
// OPERA_ADVENTURE_NETWORK_NAME or OPERA_ADVENTURE_LOG_SENTRY_DSN.
const EnvPrefix = "OPERA_ADVENTURE_"

// DefaultConfig is the configuration before the config file, the
// environment and the flags are applied.
func DefaultConfig() Config {
	return Config{
		Network: NetworkConfig{
			Name: "fake",
		},
		Logging: LoggingConfig{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
