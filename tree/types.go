// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: identifiers, symbols, edge records, locators and sentinel errors.

package tree

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree operations.
var (
	// ErrInvariantViolation marks a state that can only be produced by a defect
	// in the code that drives the tree (normally the Ukkonen builder).
	// It is never the consequence of bad caller input.
	ErrInvariantViolation = errors.New("tree: internal invariant violation")

	// ErrDuplicateSymbol is returned by CreateEdge when the tail node already has
	// an outgoing edge for the leading symbol. Wraps ErrInvariantViolation.
	ErrDuplicateSymbol = fmt.Errorf("%w: duplicate leading symbol", ErrInvariantViolation)

	// ErrInvalidSplit is returned by SplitEdge when the split length is not
	// strictly inside the edge label. Wraps ErrInvariantViolation.
	ErrInvalidSplit = fmt.Errorf("%w: split length outside edge label", ErrInvariantViolation)

	// ErrUnknownNode indicates a NodeID that is not allocated in this tree.
	ErrUnknownNode = errors.New("tree: unknown node")

	// ErrUnknownEdge indicates an EdgeID that is not allocated in this tree.
	ErrUnknownEdge = errors.New("tree: unknown edge")

	// ErrUnknownSequence indicates a sequence id that was never registered.
	ErrUnknownSequence = errors.New("tree: unknown sequence")

	// ErrSequenceOpen is returned by AddSequence while a previously registered
	// sequence is still unsealed.
	ErrSequenceOpen = errors.New("tree: previous sequence is not sealed")

	// ErrNotLeaf is returned by MarkLeaf for a node that has outgoing edges.
	ErrNotLeaf = errors.New("tree: node is not a leaf")
)

// NodeID references a node inside the tree arena.
type NodeID int32

// EdgeID references an edge inside the tree arena.
type EdgeID int32

const (
	// NoNode is the absent node reference.
	NoNode NodeID = -1

	// NoEdge is the absent edge reference; a Position with NoEdge sits on its Node.
	NoEdge EdgeID = -1

	// Open is the End value of an edge that tracks the live end of its sequence.
	Open = -1
)

// Symbol is the unit edges are keyed and compared by.
//
// Terminal == 0 means Glyph is an ordinary glyph. Terminal == seq+1 is the
// unique end marker of sequence seq; two terminals never compare equal to
// each other or to any glyph.
type Symbol[G comparable] struct {
	Glyph    G
	Terminal int
}

// GlyphSymbol wraps an ordinary glyph.
func GlyphSymbol[G comparable](g G) Symbol[G] {
	return Symbol[G]{Glyph: g}
}

// IsTerminal reports whether s is a sequence end marker.
func (s Symbol[G]) IsTerminal() bool { return s.Terminal != 0 }

// String renders terminals as $<seq>, rune and byte glyphs as characters and
// any other glyph with %v.
func (s Symbol[G]) String() string {
	if s.IsTerminal() {
		return fmt.Sprintf("$%d", s.Terminal-1)
	}
	switch g := any(s.Glyph).(type) {
	case rune:
		return string(g)
	case byte:
		return string(rune(g))
	}

	return fmt.Sprintf("%v", s.Glyph)
}

// Label is the occurrence payload of a leaf: the suffix spelled by the path
// from the root to the leaf starts at Start in sequence Sequence.
type Label struct {
	Sequence int
	Start    int
}

// Edge is a read-only copy of an edge record.
//
// The label is [Begin, End) of sequence Sequence. End == Open means the label
// runs to the current effective end of that sequence.
type Edge struct {
	Sequence int
	Begin    int
	End      int
	Head     NodeID
}

// IsOpen reports whether the edge tracks the live end of its sequence.
func (e Edge) IsOpen() bool { return e.End == Open }

// Position is a locator: either exactly on Node (Edge == NoEdge, Offset == 0),
// or Offset symbols along Edge, which leaves Node.
//
// Offset may equal the full label length only when Edge leads to a leaf;
// positions never rest on a leaf node itself, because leaves carry no suffix link.
type Position struct {
	Node   NodeID
	Edge   EdgeID
	Offset int
}

// OnNode reports whether p sits exactly on p.Node.
func (p Position) OnNode() bool { return p.Edge == NoEdge }

// Stats is a snapshot of tree size counters.
type Stats struct {
	Nodes        int
	Internal     int
	Leaves       int
	Edges        int
	SuffixLinks  int
	Sequences    int
	SealedCount  int
	IndexedGlyph int
}

// node is an arena entry.
type node[G comparable] struct {
	children map[Symbol[G]]EdgeID
	order    []EdgeID // insertion order, for deterministic walks
	link     NodeID
	leaf     Label
	isLeaf   bool
}

// edge is an arena entry.
type edge struct {
	seq   int32
	begin int32
	end   int32
	head  NodeID
}
