package launcher

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// sentryLevels are forwarded to Sentry when a DSN is configured.
var sentryLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

// newLogger builds the logrus logger described by cfg.
func newLogger(cfg LoggingConfig, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	}
	logger.SetLevel(logrusLevel(log.Lvl(cfg.Verbosity)))

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, sentryLevels)
		if err != nil {
			return nil, fmt.Errorf("sentry: %w", err)
		}
		hook.StacktraceConfiguration.Enable = true
		logger.AddHook(hook)
	}
	return logger, nil
}

// setupLogging routes the go-ethereum root logger, which the core packages
// write to, into logrus.
func setupLogging(cfg LoggingConfig, w io.Writer) (*logrus.Logger, error) {
	logger, err := newLogger(cfg, w)
	if err != nil {
		return nil, err
	}
	handler := log.LvlFilterHandler(log.Lvl(cfg.Verbosity), logrusHandler(logger))
	log.Root().SetHandler(handler)
	return logger, nil
}

// logrusHandler converts go-ethereum records into logrus entries.
func logrusHandler(logger *logrus.Logger) log.Handler {
	return log.FuncHandler(func(r *log.Record) error {
		fields := logrus.Fields{}
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			key, ok := r.Ctx[i].(string)
			if !ok {
				key = fmt.Sprint(r.Ctx[i])
			}
			fields[key] = formatValue(r.Ctx[i+1])
		}
		entry := logger.WithFields(fields).WithTime(r.Time)
		switch r.Lvl {
		case log.LvlCrit, log.LvlError:
			entry.Error(r.Msg)
		case log.LvlWarn:
			entry.Warn(r.Msg)
		case log.LvlInfo:
			entry.Info(r.Msg)
		case log.LvlDebug:
			entry.Debug(r.Msg)
		default:
			entry.Trace(r.Msg)
		}
		return nil
	})
}

// formatValue renders values the way the go-ethereum terminal format does,
// so hashes and addresses stay hex in JSON output.
func formatValue(v interface{}) interface{} {
	switch v := v.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}
	return v
}

func logrusLevel(lvl log.Lvl) logrus.Level {
	switch lvl {
	case log.LvlCrit, log.LvlError:
		return logrus.ErrorLevel
	case log.LvlWarn:
		return logrus.WarnLevel
	case log.LvlInfo:
		return logrus.InfoLevel
	case log.LvlDebug:
		return logrus.DebugLevel
	}
	return logrus.TraceLevel
}
