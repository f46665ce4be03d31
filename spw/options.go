package spw

import "fmt"

// Logger is a leveled sink for diagnostics. *logrus.Logger and
// *logrus.Entry satisfy it.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type config struct {
	logger  Logger
	verbose bool
}

func defaultConfig() config {
	return config{}
}

// Option configures an operation of this package.
type Option func(*config) error

// WithLogger forwards each call's report to l: warnings to Warnf, failures
// to Errorf and, with WithVerbose, notes to Infof.
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return fmt.Errorf("spw: logger must not be nil")
		}

		cfg.logger = l

		return nil
	}
}

// WithVerbose also forwards informational notes to the logger.
func WithVerbose(v bool) Option {
	return func(cfg *config) error {
		cfg.verbose = v
		return nil
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// emit forwards r to the configured logger.
func (c config) emit(op string, r *Report) {
	if c.logger == nil {
		return
	}

	for _, e := range r.entries {
		switch e.level {
		case levelError:
			c.logger.Errorf("%s: %s", op, e.text)
		case levelWarn:
			c.logger.Warnf("%s: %s", op, e.text)
		default:
			if c.verbose {
				c.logger.Infof("%s: %s", op, e.text)
			}
		}
	}
}
