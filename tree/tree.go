// SPDX-License-Identifier: MIT
//
// File: tree.go
// Role: arena-backed node/edge graph, sequence registry and the mutation
//       primitives (CreateEdge, SplitEdge, SetSuffixLink, MarkLeaf) that the
//       Ukkonen builder drives.
// Concurrency:
//   - No locks. One writer at a time; concurrent readers only while no writer runs.

package tree

import (
	"errors"
	"fmt"
	"iter"

	"github.com/katalvlaran/suffixtree/word"
)

// ErrNilWord is returned by AddSequence for a nil Word.
var ErrNilWord = errors.New("tree: word is nil")

// root is always the first arena entry.
const root NodeID = 0

// sequence is one registered Word plus its terminal state.
// Once sealed, the glyph count is frozen at sealedLen; later appends to the
// Word are not indexed.
type sequence[G comparable] struct {
	word      *word.Word[G]
	sealed    bool
	sealedLen int
}

// length is the number of indexed glyphs of s.
func (s sequence[G]) length() int {
	if s.sealed {
		return s.sealedLen
	}

	return s.word.Length()
}

// Tree is a generalized suffix tree over one or more Words.
//
// Nodes and edges are arena entries addressed by NodeID and EdgeID; they are
// never deleted. Suffix links are plain NodeID fields.
type Tree[G comparable] struct {
	nodes []node[G]
	edges []edge
	seqs  []sequence[G]
	links int
}

// New returns a Tree holding only the root. The root's suffix link is the root.
// Complexity: O(1).
func New[G comparable]() *Tree[G] {
	t := &Tree[G]{}
	t.nodes = append(t.nodes, node[G]{link: root})
	t.links = 1

	return t
}

// Grow reserves arena room for roughly n more indexed glyphs
// (a suffix tree over n symbols has at most 2n nodes and 2n-1 edges).
func (t *Tree[G]) Grow(n int) {
	if n <= 0 {
		return
	}
	if free := cap(t.nodes) - len(t.nodes); free < 2*n {
		nodes := make([]node[G], len(t.nodes), len(t.nodes)+2*n)
		copy(nodes, t.nodes)
		t.nodes = nodes
	}
	if free := cap(t.edges) - len(t.edges); free < 2*n {
		edges := make([]edge, len(t.edges), len(t.edges)+2*n)
		copy(edges, t.edges)
		t.edges = edges
	}
}

// Root returns the root node.
func (t *Tree[G]) Root() NodeID { return root }

// NodeCount returns the number of allocated nodes, root included.
func (t *Tree[G]) NodeCount() int { return len(t.nodes) }

// EdgeCount returns the number of allocated edges.
func (t *Tree[G]) EdgeCount() int { return len(t.edges) }

// ----------------------------------------------------------------------------
// Sequences
// ----------------------------------------------------------------------------

// AddSequence registers w and returns its sequence id.
// All previously registered sequences must be sealed, otherwise ErrSequenceOpen.
func (t *Tree[G]) AddSequence(w *word.Word[G]) (int, error) {
	if w == nil {
		return -1, ErrNilWord
	}
	for i := range t.seqs {
		if !t.seqs[i].sealed {
			return -1, fmt.Errorf("%w: sequence %d", ErrSequenceOpen, i)
		}
	}
	t.seqs = append(t.seqs, sequence[G]{word: w})

	return len(t.seqs) - 1, nil
}

// Seal appends the virtual terminal of seq. Sealing twice is a no-op.
func (t *Tree[G]) Seal(seq int) error {
	if !t.validSeq(seq) {
		return fmt.Errorf("%w: %d", ErrUnknownSequence, seq)
	}
	if !t.seqs[seq].sealed {
		t.seqs[seq].sealedLen = t.seqs[seq].word.Length()
		t.seqs[seq].sealed = true
	}

	return nil
}

// Sealed reports whether seq carries its terminal.
func (t *Tree[G]) Sealed(seq int) bool {
	return t.validSeq(seq) && t.seqs[seq].sealed
}

// Sequences returns the number of registered sequences.
func (t *Tree[G]) Sequences() int { return len(t.seqs) }

// Sequence returns the Word registered as seq.
func (t *Tree[G]) Sequence(seq int) (*word.Word[G], error) {
	if !t.validSeq(seq) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSequence, seq)
	}

	return t.seqs[seq].word, nil
}

// EffectiveLength is the glyph count of seq plus one once it is sealed.
// Open edges of seq end here.
func (t *Tree[G]) EffectiveLength(seq int) int {
	if !t.validSeq(seq) {
		return 0
	}
	s := t.seqs[seq]
	if s.sealed {
		return s.sealedLen + 1
	}

	return s.word.Length()
}

// SymbolAt returns the symbol at index i of seq; index Length() is the
// terminal when seq is sealed.
func (t *Tree[G]) SymbolAt(seq, i int) (Symbol[G], bool) {
	if !t.validSeq(seq) || i < 0 {
		return Symbol[G]{}, false
	}
	s := t.seqs[seq]
	n := s.length()
	if i < n {
		g, err := s.word.At(i)
		if err != nil {
			return Symbol[G]{}, false
		}
		return Symbol[G]{Glyph: g}, true
	}
	if i == n && s.sealed {
		return Symbol[G]{Terminal: seq + 1}, true
	}

	return Symbol[G]{}, false
}

// ----------------------------------------------------------------------------
// Edges
// ----------------------------------------------------------------------------

// EdgeFrom returns the edge leaving n whose label starts with sym.
// Complexity: O(1) expected.
func (t *Tree[G]) EdgeFrom(n NodeID, sym Symbol[G]) (EdgeID, bool) {
	if !t.validNode(n) {
		return NoEdge, false
	}
	eid, ok := t.nodes[n].children[sym]
	if !ok {
		return NoEdge, false
	}

	return eid, true
}

// Edges iterates the outgoing edges of n in creation order.
func (t *Tree[G]) Edges(n NodeID) iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		if !t.validNode(n) {
			return
		}
		for _, eid := range t.nodes[n].order {
			if !yield(eid) {
				return
			}
		}
	}
}

// Edge returns a copy of the edge record.
func (t *Tree[G]) Edge(id EdgeID) (Edge, bool) {
	if !t.validEdge(id) {
		return Edge{}, false
	}
	e := t.edges[id]

	return Edge{Sequence: int(e.seq), Begin: int(e.begin), End: int(e.end), Head: e.head}, true
}

// EdgeHead returns the node the edge leads to, or NoNode.
func (t *Tree[G]) EdgeHead(id EdgeID) NodeID {
	if !t.validEdge(id) {
		return NoNode
	}

	return t.edges[id].head
}

// EdgeLength returns the current label length of the edge (0 for an unknown id).
// Open edges are resolved against the effective length of their sequence.
func (t *Tree[G]) EdgeLength(id EdgeID) int {
	if !t.validEdge(id) {
		return 0
	}

	return t.edgeLen(id)
}

// EdgeSymbol returns the symbol at offset within the label of id.
func (t *Tree[G]) EdgeSymbol(id EdgeID, offset int) (Symbol[G], bool) {
	if !t.validEdge(id) || offset < 0 || offset >= t.edgeLen(id) {
		return Symbol[G]{}, false
	}
	e := t.edges[id]

	return t.SymbolAt(int(e.seq), int(e.begin)+offset)
}

// EdgeLabel returns a copy of the full current label of id.
func (t *Tree[G]) EdgeLabel(id EdgeID) []Symbol[G] {
	if !t.validEdge(id) {
		return nil
	}
	n := t.edgeLen(id)
	out := make([]Symbol[G], 0, n)
	for i := 0; i < n; i++ {
		s, ok := t.EdgeSymbol(id, i)
		if !ok {
			break
		}
		out = append(out, s)
	}

	return out
}

// CreateEdge adds an edge from n labelled [begin, end) of seq (end may be Open)
// leading to a freshly allocated node, and returns it. The key at n is the
// symbol at begin.
//
// Errors:
//   - ErrUnknownNode, ErrUnknownSequence for bad references.
//   - ErrDuplicateSymbol if n already has an edge for that symbol.
//   - ErrInvariantViolation for an empty or out-of-bounds label, or a leaf tail.
func (t *Tree[G]) CreateEdge(n NodeID, seq, begin, end int) (EdgeID, error) {
	if !t.validNode(n) {
		return NoEdge, fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	if !t.validSeq(seq) {
		return NoEdge, fmt.Errorf("%w: %d", ErrUnknownSequence, seq)
	}
	limit := t.EffectiveLength(seq)
	if begin < 0 || begin >= limit || (end != Open && (end <= begin || end > limit)) {
		return NoEdge, fmt.Errorf("%w: label [%d,%d) of sequence %d (effective length %d)",
			ErrInvariantViolation, begin, end, seq, limit)
	}
	if t.nodes[n].isLeaf {
		return NoEdge, fmt.Errorf("%w: edge from leaf %d", ErrInvariantViolation, n)
	}
	sym, _ := t.SymbolAt(seq, begin)
	if _, dup := t.nodes[n].children[sym]; dup {
		return NoEdge, fmt.Errorf("%w: %v at node %d", ErrDuplicateSymbol, sym, n)
	}

	head := t.newNode()
	eid := t.newEdge(seq, begin, end, head)
	t.attach(n, sym, eid)

	return eid, nil
}

// SplitEdge shortens id to length symbols, inserts a new internal node at the
// split point and hangs the rest of the original label (and the original head)
// below it. The new node has no suffix link yet.
//
// Errors: ErrUnknownEdge, or ErrInvalidSplit unless 0 < length < EdgeLength(id).
func (t *Tree[G]) SplitEdge(id EdgeID, length int) (NodeID, error) {
	if !t.validEdge(id) {
		return NoNode, fmt.Errorf("%w: %d", ErrUnknownEdge, id)
	}
	if l := t.edgeLen(id); length <= 0 || length >= l {
		return NoNode, fmt.Errorf("%w: length %d, edge %d has %d", ErrInvalidSplit, length, id, l)
	}

	old := t.edges[id]
	mid := t.newNode()
	cut := int(old.begin) + length
	rest := t.newEdge(int(old.seq), cut, int(old.end), old.head)
	sym, _ := t.SymbolAt(int(old.seq), cut)
	t.attach(mid, sym, rest)

	t.edges[id].end = int32(cut)
	t.edges[id].head = mid

	return mid, nil
}

// ----------------------------------------------------------------------------
// Nodes
// ----------------------------------------------------------------------------

// SetSuffixLink points n's suffix link at target.
// The root may only link to itself and leaves never carry links.
func (t *Tree[G]) SetSuffixLink(n, target NodeID) error {
	if !t.validNode(n) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	if !t.validNode(target) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, target)
	}
	if n == root && target != root {
		return fmt.Errorf("%w: root suffix link must be the root", ErrInvariantViolation)
	}
	if t.nodes[n].isLeaf || t.nodes[target].isLeaf {
		return fmt.Errorf("%w: suffix link %d -> %d touches a leaf", ErrInvariantViolation, n, target)
	}
	if t.nodes[n].link == NoNode {
		t.links++
	}
	t.nodes[n].link = target

	return nil
}

// SuffixLink returns n's suffix link, if set.
func (t *Tree[G]) SuffixLink(n NodeID) (NodeID, bool) {
	if !t.validNode(n) || t.nodes[n].link == NoNode {
		return NoNode, false
	}

	return t.nodes[n].link, true
}

// MarkLeaf attaches the occurrence label to a childless node.
func (t *Tree[G]) MarkLeaf(n NodeID, l Label) error {
	if !t.validNode(n) || n == root {
		return fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	if len(t.nodes[n].order) > 0 {
		return fmt.Errorf("%w: %d has %d edges", ErrNotLeaf, n, len(t.nodes[n].order))
	}
	if !t.validSeq(l.Sequence) {
		return fmt.Errorf("%w: %d", ErrUnknownSequence, l.Sequence)
	}
	t.nodes[n].leaf = l
	t.nodes[n].isLeaf = true

	return nil
}

// Leaf returns the occurrence label of n if it is a marked leaf.
func (t *Tree[G]) Leaf(n NodeID) (Label, bool) {
	if !t.validNode(n) || !t.nodes[n].isLeaf {
		return Label{}, false
	}

	return t.nodes[n].leaf, true
}

// IsLeaf reports whether n is a marked leaf.
func (t *Tree[G]) IsLeaf(n NodeID) bool {
	return t.validNode(n) && t.nodes[n].isLeaf
}

// Stats returns size counters. Complexity: O(V).
func (t *Tree[G]) Stats() Stats {
	s := Stats{
		Nodes:       len(t.nodes),
		Edges:       len(t.edges),
		SuffixLinks: t.links,
		Sequences:   len(t.seqs),
	}
	for i := range t.nodes {
		switch {
		case t.nodes[i].isLeaf:
			s.Leaves++
		case NodeID(i) != root:
			s.Internal++
		}
	}
	for i := range t.seqs {
		if t.seqs[i].sealed {
			s.SealedCount++
		}
		s.IndexedGlyph += t.seqs[i].length()
	}

	return s
}

// ----------------------------------------------------------------------------
// internals
// ----------------------------------------------------------------------------

func (t *Tree[G]) newNode() NodeID {
	t.nodes = append(t.nodes, node[G]{link: NoNode})

	return NodeID(len(t.nodes) - 1)
}

func (t *Tree[G]) newEdge(seq, begin, end int, head NodeID) EdgeID {
	t.edges = append(t.edges, edge{seq: int32(seq), begin: int32(begin), end: int32(end), head: head})

	return EdgeID(len(t.edges) - 1)
}

func (t *Tree[G]) attach(n NodeID, sym Symbol[G], eid EdgeID) {
	nd := &t.nodes[n]
	if nd.children == nil {
		nd.children = make(map[Symbol[G]]EdgeID, 2)
	}
	nd.children[sym] = eid
	nd.order = append(nd.order, eid)
}

func (t *Tree[G]) edgeLen(id EdgeID) int {
	e := t.edges[id]
	if e.end == Open {
		return t.EffectiveLength(int(e.seq)) - int(e.begin)
	}

	return int(e.end - e.begin)
}

func (t *Tree[G]) validNode(n NodeID) bool { return n >= 0 && int(n) < len(t.nodes) }
func (t *Tree[G]) validEdge(e EdgeID) bool { return e >= 0 && int(e) < len(t.edges) }
func (t *Tree[G]) validSeq(s int) bool     { return s >= 0 && s < len(t.seqs) }
