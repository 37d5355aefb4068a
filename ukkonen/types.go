// Package ukkonen provides tunable options and error definitions
// for the online suffix tree builder.
package ukkonen

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Sentinel errors for Builder construction and use.
var (
	// ErrTreeNil is returned if a nil tree pointer is passed.
	ErrTreeNil = errors.New("ukkonen: tree is nil")

	// ErrSealed is returned by Append and Extend once the live sequence is sealed.
	// Call NextSequence to continue with a fresh sequence.
	ErrSealed = errors.New("ukkonen: sequence is sealed")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("ukkonen: invalid option supplied")

	// ErrTooLong is returned by Append when the live sequence already holds
	// MaxLength glyphs. The builder stays usable.
	ErrTooLong = errors.New("ukkonen: sequence too long")
)

// MaxSequenceLength is the longest sequence the tree arena can address: edge
// bounds are int32 and the terminal takes one more index.
const MaxSequenceLength = math.MaxInt32 - 1

// Option configures a Builder via functional arguments.
// If an Option is invalid (e.g. negative capacity), it will be recorded
// internally and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds Builder parameters.
type Options struct {
	// Logger receives debug-level summaries when a sequence is sealed.
	Logger *slog.Logger

	// InitialCapacity pre-sizes the tree arena for this many glyphs.
	// 0 means no reservation.
	InitialCapacity int

	// MaxLength caps the glyph count of every sequence.
	MaxLength int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - slog.Default() as Logger
//   - no arena reservation
//   - MaxSequenceLength as MaxLength.
func DefaultOptions() Options {
	return Options{
		Logger:          slog.Default(),
		InitialCapacity: 0,
		MaxLength:       MaxSequenceLength,
	}
}

// WithLogger sets the logger used for build summaries. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithInitialCapacity reserves arena room for n glyphs.
//
//	n > 0: reserve
//	n == 0: no reservation
//	n < 0: invalid option → ErrOptionViolation
func WithInitialCapacity(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: InitialCapacity cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.InitialCapacity = n
	}
}

// WithMaxLength caps every sequence at n glyphs; Append past the cap returns
// ErrTooLong. n must be in [1, MaxSequenceLength].
func WithMaxLength(n int) Option {
	return func(o *Options) {
		if n < 1 || n > MaxSequenceLength {
			o.err = fmt.Errorf("%w: MaxLength %d outside [1, %d]", ErrOptionViolation, n, MaxSequenceLength)
			return
		}
		o.MaxLength = n
	}
}

// BuildStats counts what the builder did so far, across all sequences.
type BuildStats struct {
	Phases      int // one per appended glyph or terminal
	Leaves      int // rule 2 extensions
	Splits      int // edges split to make room for a leaf
	Rule3       int // phases ended early because the suffix was already present
	LinkFollows int // suffix-link traversals of the active node
	Sequences   int // sequences started, including the live one
}
