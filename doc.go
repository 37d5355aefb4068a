// Package suffixtree is an in-memory generalized suffix tree built online,
// one symbol at a time, with matching statistics on top.
//
// What is in the box:
//
//	word/      append-only glyph sequences (Word) and Substring views
//	tree/      the node/edge arena: edges, suffix links, leaves, locator walks
//	ukkonen/   the online builder; several sequences may share one tree
//	matching/  matching statistics: pull Engine, lazy iterator, concurrent Batch
//	cmd/mstat  command-line front end
//
// A typical session:
//
//	t := tree.New[byte]()
//	b, _ := ukkonen.New(t)
//	_ = b.Extend(slices.Values(reference))
//	_ = b.Seal()
//	lengths, _ := matching.Lengths(t, query)
//
// Glyphs are any comparable type. Each sequence is closed by a unique virtual
// terminal when sealed, so suffixes of different sequences never hide inside
// each other's edges.
//
// The tree has one writer (the builder) and any number of readers once writes
// have stopped; nothing takes locks.
package suffixtree
