// Package ukkonen builds a generalized suffix tree online, one glyph at a
// time, in amortized constant time per glyph.
//
// What:
//
//   - Builder.Append: one Ukkonen phase for a new glyph of the live sequence.
//     Open leaf edges grow implicitly (rule 1), missing continuations get a new
//     leaf (rule 2, splitting an edge when needed), and a phase stops as soon as
//     the new suffix is already present (rule 3).
//   - Builder.Seal: appends the unique terminal of the live sequence so that
//     every suffix becomes a leaf.
//   - Builder.NextSequence: seals and starts another sequence in the same tree.
//
// Why:
//   - Index a stream whose end is not known in advance
//   - Share one index between several sequences (generalized suffix tree)
//   - Serve as the index behind package matching
//
// Complexity:
//
//   - Append:  amortized O(1) time (hash-map child lookup), O(1) new nodes
//   - Seal:    amortized O(1) per suffix still implicit
//   - Memory:  at most 2n nodes and 2n edges for n indexed symbols
//
// Errors:
//
//   - ErrTreeNil              tree pointer is nil
//   - ErrOptionViolation      invalid Option
//   - ErrSealed               Append after Seal without NextSequence
//   - ErrTooLong              Append past the per-sequence length cap (WithMaxLength)
//   - tree.ErrSequenceOpen    another sequence of the tree is still unsealed
//   - tree.ErrInvariantViolation
//     internal inconsistency; the Builder stays failed and every later call
//     returns the same error
//
// Concurrency:
//
//   - A Builder must be the only writer of its tree. Readers (package matching)
//     may run concurrently once appends have stopped.
package ukkonen
