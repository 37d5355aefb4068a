// SPDX-License-Identifier: MIT

package word

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrOutOfRange indicates an index outside the current bounds of a Word or Substring.
	ErrOutOfRange = errors.New("word: index out of range")

	// ErrInvalidRange indicates a [begin, end) range that is reversed or exceeds the Word.
	ErrInvalidRange = errors.New("word: invalid range")
)

// Word is an append-only sequence of glyphs.
//
// Indices are stable: once At(i) succeeds it returns the same glyph for the
// lifetime of the Word.
type Word[G any] struct {
	glyphs []G
}

// New returns an empty Word.
func New[G any]() *Word[G] {
	return &Word[G]{}
}

// Of returns a Word pre-filled with glyphs. The slice is copied.
func Of[G any](glyphs ...G) *Word[G] {
	w := &Word[G]{glyphs: make([]G, len(glyphs))}
	copy(w.glyphs, glyphs)

	return w
}

// Append adds g at the end of the Word.
// Complexity: amortized O(1).
func (w *Word[G]) Append(g G) {
	w.glyphs = append(w.glyphs, g)
}

// Length reports the number of glyphs appended so far.
func (w *Word[G]) Length() int {
	return len(w.glyphs)
}

// At returns the glyph at index i, or ErrOutOfRange.
func (w *Word[G]) At(i int) (G, error) {
	if i < 0 || i >= len(w.glyphs) {
		var zero G
		return zero, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, len(w.glyphs))
	}

	return w.glyphs[i], nil
}

// Substring returns a view of [begin, end).
// The view references the Word, so later appends do not invalidate it.
func (w *Word[G]) Substring(begin, end int) (Substring[G], error) {
	if begin < 0 || begin > end || end > len(w.glyphs) {
		return Substring[G]{}, fmt.Errorf("%w: [%d,%d) with length %d", ErrInvalidRange, begin, end, len(w.glyphs))
	}

	return Substring[G]{word: w, begin: begin, end: end}, nil
}

// All iterates over (index, glyph) pairs present when iteration starts.
func (w *Word[G]) All() iter.Seq2[int, G] {
	return func(yield func(int, G) bool) {
		n := len(w.glyphs)
		for i := 0; i < n; i++ {
			if !yield(i, w.glyphs[i]) {
				return
			}
		}
	}
}

// glyph is the unchecked accessor used by Substring after its own bounds check.
func (w *Word[G]) glyph(i int) G {
	return w.glyphs[i]
}
