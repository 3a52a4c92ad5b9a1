package heat

import (
	"io"
	"log/slog"
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicStrategyInvalid = "heat: WithStrategy: unknown strategy"
	panicLoggerNil       = "heat: WithLogger: logger must not be nil"
)

// Option configures a Simulation. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*options)

// options is the resolved configuration of a Simulation.
type options struct {
	strategy Strategy
	logger   *slog.Logger
}

// defaultOptions returns the zero-configuration: DefaultStrategy and a
// logger that discards everything.
func defaultOptions() options {
	return options{
		strategy: DefaultStrategy,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithStrategy sets the strategy used by Step.
// Panics when s is not a defined Strategy.
func WithStrategy(s Strategy) Option {
	if !s.Valid() {
		panic(panicStrategyInvalid)
	}

	return func(o *options) { o.strategy = s }
}

// WithLogger routes run lifecycle logs (reset, geometry changes, device
// failures) to l. Per-step logs are emitted at Debug level.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
