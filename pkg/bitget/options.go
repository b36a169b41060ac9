package bitget

import (
	"time"

	"github.com/rs/zerolog"
)

// Option is a functional option for configuring a Client or WSClient.
type Option func(*Options)

// Options holds construction-time settings that do not belong in core.Config.
type Options struct {
	Logger zerolog.Logger
	// Clock supplies the local time used for request timestamps.
	Clock func() time.Time
	// HTTPTimeout overrides Config.Timeout when non-zero.
	HTTPTimeout time.Duration
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithClock replaces time.Now as the source of request timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Clock = now
	}
}

// WithHTTPTimeout overrides the per-request timeout from the config.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HTTPTimeout = d
	}
}

func applyOptions(opts ...Option) *Options {
	o := &Options{
		Logger: zerolog.Nop(),
		Clock:  time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}
