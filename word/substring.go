// SPDX-License-Identifier: MIT

package word

import (
	"fmt"
	"iter"
)

// Substring is a read-only view [begin, end) over a Word.
// The zero value is an empty view that belongs to no Word.
type Substring[G any] struct {
	word       *Word[G]
	begin, end int
}

// Begin returns the first index of the view in its Word.
func (s Substring[G]) Begin() int { return s.begin }

// End returns the index one past the last glyph of the view.
func (s Substring[G]) End() int { return s.end }

// Len returns the number of glyphs in the view.
func (s Substring[G]) Len() int { return s.end - s.begin }

// At returns the i-th glyph of the view, or ErrOutOfRange.
func (s Substring[G]) At(i int) (G, error) {
	if i < 0 || i >= s.Len() {
		var zero G
		return zero, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, s.Len())
	}

	return s.word.glyph(s.begin + i), nil
}

// All iterates the glyphs of the view in order.
func (s Substring[G]) All() iter.Seq[G] {
	return func(yield func(G) bool) {
		for i := s.begin; i < s.end; i++ {
			if !yield(s.word.glyph(i)) {
				return
			}
		}
	}
}

// Glyphs returns a copy of the glyphs in the view.
func (s Substring[G]) Glyphs() []G {
	out := make([]G, 0, s.Len())
	for g := range s.All() {
		out = append(out, g)
	}

	return out
}
