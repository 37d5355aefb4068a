// Package tree holds the node/edge graph of a generalized suffix tree.
//
// The tree is an arena: nodes and edges are slice entries addressed by NodeID
// and EdgeID, never freed while the Tree lives. Edge labels are not copied;
// an edge stores (sequence, begin, end) into a registered word.Word, and an end
// of Open tracks the live end of that sequence, so leaves grow for free while
// the sequence is being appended to.
//
// Several Words can share one Tree. Each is registered with AddSequence and,
// once complete, sealed with Seal, which appends a virtual terminal symbol
// unique to that sequence (Symbol.Terminal == seq+1). Terminals keep the
// suffixes of one sequence from hiding inside the edge labels of another.
//
// Mutation primitives (used by package ukkonen):
//
//	CreateEdge(n, seq, begin, end)  new edge + head node, keyed by its first symbol
//	SplitEdge(e, length)            insert an internal node inside an edge
//	SetSuffixLink(n, target)        auxiliary link, no ownership
//	MarkLeaf(n, label)              occurrence payload (sequence, start)
//
// Read side (used by package matching and by callers):
//
//	EdgeFrom, Edges, Edge, EdgeLength, EdgeSymbol, EdgeLabel
//	Advance, Rescan, Find            locator arithmetic over Position
//	Leaves(p)                        lazy occurrence recovery below a locator
//	Stats, String                    diagnostics
//
// Errors:
//
//	ErrInvariantViolation (and ErrDuplicateSymbol, ErrInvalidSplit wrapping it)
//	report states only a broken builder can produce. ErrUnknownNode,
//	ErrUnknownEdge, ErrUnknownSequence, ErrSequenceOpen, ErrNotLeaf and
//	ErrNilWord report bad references.
//
// Concurrency:
//
//	A Tree has no internal locking. Exactly one goroutine may mutate it; any
//	number may read it concurrently while no mutation is in progress.
package tree
