package lshindex

import (
	"log/slog"

	"github.com/pstable/lshindex/internal/randsrc"
	"github.com/pstable/lshindex/telemetry"
)

// Options configures an Index at construction time, following the
// functional-options pattern every teacher constructor uses
// (flat.New, hnsw.New): a struct of defaults plus Option funcs that
// mutate it.
type Options struct {
	Logger   *slog.Logger
	Counters telemetry.Counters
	Seed     int64
	Source   randsrc.Source // overrides the seed-derived default when set
}

// DefaultOptions returns the zero-configuration defaults: a discard
// logger, no-op counters, and seed 0.
func DefaultOptions() Options {
	return Options{
		Logger:   nil,
		Counters: telemetry.NoopCounters{},
		Seed:     0,
	}
}

// Option mutates an Options value.
type Option func(*Options)

// WithLogger sets the *slog.Logger an Index logs build/insert/query
// events to.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithCounters sets the telemetry.Counters an Index reports to.
func WithCounters(c telemetry.Counters) Option {
	return func(o *Options) { o.Counters = c }
}

// WithSeed sets the seed the projection family and shared U-hash
// coefficients are drawn from. Two indices built with the same seed
// and the same Parameters produce bit-identical families.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithRandSource overrides the random source entirely, bypassing Seed.
// Mainly useful for tests that need to inject a fixed sequence.
func WithRandSource(src randsrc.Source) Option {
	return func(o *Options) { o.Source = src }
}

func (o Options) source() randsrc.Source {
	if o.Source != nil {
		return o.Source
	}
	return randsrc.NewMathRand(o.Seed)
}

func (o Options) counters() telemetry.Counters {
	if o.Counters != nil {
		return o.Counters
	}
	return telemetry.NoopCounters{}
}
