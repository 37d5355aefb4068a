package matching

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/suffixtree/tree"
)

// Sentinel errors for matching.
var (
	// ErrTreeNil is returned if a nil tree pointer is passed.
	ErrTreeNil = errors.New("matching: tree is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("matching: invalid option supplied")
)

// Stat is the matching statistic of one query position: the length of the
// longest substring ending there that occurs in the indexed sequences, and
// where that substring ends in the tree.
//
// Length == 0 comes with the root position.
type Stat struct {
	Length   int
	Position tree.Position
}

// Option configures Batch via functional arguments.
// If an Option is invalid (e.g. zero concurrency), it will be recorded
// internally and surfaced as ErrOptionViolation when Batch is invoked.
type Option func(*Options)

// Options holds Batch parameters.
type Options struct {
	// Concurrency bounds the number of queries matched at once.
	Concurrency int

	// TracerProvider and MeterProvider receive the batch span and metrics.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	// Logger receives a debug-level summary per batch.
	Logger *slog.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Concurrency = GOMAXPROCS
//   - the global OpenTelemetry providers
//   - slog.Default() as Logger.
func DefaultOptions() Options {
	return Options{
		Concurrency:    runtime.GOMAXPROCS(0),
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
		Logger:         slog.Default(),
	}
}

// WithConcurrency bounds parallel queries.
//
//	n > 0:  at most n queries at once
//	n <= 0: invalid option → ErrOptionViolation
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: Concurrency must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.Concurrency = n
	}
}

// WithTracerProvider overrides the global tracer provider. Nil is ignored.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		if tp != nil {
			o.TracerProvider = tp
		}
	}
}

// WithMeterProvider overrides the global meter provider. Nil is ignored.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) {
		if mp != nil {
			o.MeterProvider = mp
		}
	}
}

// WithLogger sets the batch logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
