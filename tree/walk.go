// SPDX-License-Identifier: MIT
//
// File: walk.go
// Role: read-only locator arithmetic (Advance, Rescan, Find) and occurrence
//       recovery (Leaves). None of these mutate the tree.

package tree

import (
	"fmt"
	"iter"
)

// RootPosition is the locator of the empty string.
func (t *Tree[G]) RootPosition() Position {
	return Position{Node: root, Edge: NoEdge}
}

// Advance extends p by one symbol.
// It returns the new position and true, or p unchanged and false when the
// path spelled by p cannot be followed by sym.
// Complexity: O(1).
func (t *Tree[G]) Advance(p Position, sym Symbol[G]) (Position, bool) {
	if p.OnNode() {
		eid, ok := t.EdgeFrom(p.Node, sym)
		if !ok {
			return p, false
		}
		return t.canonical(Position{Node: p.Node, Edge: eid, Offset: 1}), true
	}
	next, ok := t.EdgeSymbol(p.Edge, p.Offset)
	if !ok || next != sym {
		return p, false
	}

	return t.canonical(Position{Node: p.Node, Edge: p.Edge, Offset: p.Offset + 1}), true
}

// Rescan descends from node from along length symbols of seq starting at begin,
// using skip/count: only the first symbol of every edge is compared, so the
// label must be known to exist below from.
//
// Errors: ErrInvariantViolation if the label leaves the tree.
// Complexity: O(number of edges crossed).
func (t *Tree[G]) Rescan(from NodeID, seq, begin, length int) (Position, error) {
	if !t.validNode(from) {
		return Position{}, fmt.Errorf("%w: %d", ErrUnknownNode, from)
	}
	cur := from
	for length > 0 {
		sym, ok := t.SymbolAt(seq, begin)
		if !ok {
			return Position{}, fmt.Errorf("%w: rescan index %d of sequence %d", ErrInvariantViolation, begin, seq)
		}
		eid, ok := t.EdgeFrom(cur, sym)
		if !ok {
			return Position{}, fmt.Errorf("%w: rescan found no edge for %v at node %d", ErrInvariantViolation, sym, cur)
		}
		l := t.edgeLen(eid)
		if length <= l {
			return t.canonical(Position{Node: cur, Edge: eid, Offset: length}), nil
		}
		head := t.edges[eid].head
		if t.nodes[head].isLeaf {
			return Position{}, fmt.Errorf("%w: rescan runs past leaf %d", ErrInvariantViolation, head)
		}
		cur = head
		begin += l
		length -= l
	}

	return Position{Node: cur, Edge: NoEdge}, nil
}

// Find locates pattern from the root. The empty pattern is found at the root.
// Complexity: O(len(pattern)).
func (t *Tree[G]) Find(pattern []G) (Position, bool) {
	p := t.RootPosition()
	for _, g := range pattern {
		var ok bool
		if p, ok = t.Advance(p, Symbol[G]{Glyph: g}); !ok {
			return t.RootPosition(), false
		}
	}

	return p, true
}

// Leaves lazily enumerates the occurrence labels of every leaf at or below p.
// Each label marks one place where the string spelled by p occurs.
//
// Leaves of the sequence still being built cover explicit suffixes only;
// seal the sequence to make every occurrence explicit.
func (t *Tree[G]) Leaves(p Position) iter.Seq[Label] {
	return func(yield func(Label) bool) {
		start := p.Node
		if !p.OnNode() {
			start = t.EdgeHead(p.Edge)
		}
		if !t.validNode(start) {
			return
		}

		stack := []NodeID{start}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			nd := &t.nodes[n]
			if nd.isLeaf {
				if !yield(nd.leaf) {
					return
				}
				continue
			}
			// push in reverse so children pop in creation order
			for i := len(nd.order) - 1; i >= 0; i-- {
				stack = append(stack, t.edges[nd.order[i]].head)
			}
		}
	}
}

// Depth returns the string depth of p (number of symbols from the root).
// Complexity: O(depth in edges); tree nodes keep no parent pointers, so the
// walk re-descends from the root along the label of p.
func (t *Tree[G]) Depth(p Position) int {
	depth := p.Offset
	target := p.Node
	if target == root {
		return depth
	}

	// Any leaf below target spells path(target) as a prefix of its suffix.
	var lab Label
	found := false
	for l := range t.Leaves(Position{Node: target, Edge: NoEdge}) {
		lab, found = l, true
		break
	}
	if !found {
		return -1
	}
	cur, d := root, 0
	for cur != target {
		sym, ok := t.SymbolAt(lab.Sequence, lab.Start+d)
		if !ok {
			return -1
		}
		eid, ok := t.EdgeFrom(cur, sym)
		if !ok {
			return -1
		}
		d += t.edgeLen(eid)
		cur = t.edges[eid].head
	}

	return d + depth
}

// canonical moves a position that sits at the very end of an edge onto the
// edge head, unless that head is a leaf.
func (t *Tree[G]) canonical(p Position) Position {
	if p.OnNode() || p.Offset < t.edgeLen(p.Edge) {
		return p
	}
	head := t.edges[p.Edge].head
	if t.nodes[head].isLeaf {
		return p
	}

	return Position{Node: head, Edge: NoEdge}
}
