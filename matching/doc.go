// Package matching computes matching statistics of a query against a suffix
// tree: for every query position i, the length of the longest substring of
// the query ending at i that occurs in any indexed sequence, plus the tree
// position where that substring ends.
//
// The running match is kept as a tree.Position. When the next query symbol
// cannot extend it, the match drops its first symbol through a suffix link
// (with a skip/count rescan for a partial edge) until it can be extended or
// becomes empty. Each query symbol therefore costs amortized O(1).
//
// Entry points:
//
//   - New / Engine.Next   pull-based, one position per call
//   - Statistics          lazy iter.Seq2 over (Stat, error)
//   - Lengths             lengths only, collected into a slice
//   - Occurrences         where the matched substring of a Stat occurs
//   - Batch               many queries concurrently, traced and metered
//
// All of them only read the tree; run them once the builder has stopped
// appending. Any number may share one tree concurrently.
package matching
