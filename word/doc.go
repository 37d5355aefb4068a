// Package word provides the append-only symbol sequence that a suffix tree
// indexes, together with lightweight Substring views over it.
//
// What:
//
//   - Word[G]: an ordered, growable sequence of glyphs. Glyphs are only ever
//     appended; existing positions never move and never change.
//   - Substring[G]: a half-open view [begin, end) that keeps its Word alive and
//     stays valid while the Word keeps growing.
//
// Why:
//
//	Suffix-tree edges do not copy their labels. They store (sequence, begin,
//	end) triples that point back into a Word, so the Word must guarantee that
//	an index handed out once keeps meaning the same glyph forever.
//
// Complexity:
//
//   - Append: amortized O(1).
//   - Length, At, Substring: O(1).
//   - Substring.Glyphs: O(end-begin) (copy).
//
// Errors:
//
//   - ErrOutOfRange    index outside [0, Length()).
//   - ErrInvalidRange  begin < 0, begin > end, or end > Length().
//
// Concurrency:
//
//	A Word is not synchronized. Appends must not race with reads; the tree
//	and builder packages document the single-writer contract.
package word
