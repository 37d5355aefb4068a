// SPDX-License-Identifier: MIT

package matching

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/suffixtree/tree"
)

// matcher carries the running match: pos spells the last length query
// symbols.
type matcher[G comparable] struct {
	t      *tree.Tree[G]
	pos    tree.Position
	length int
}

func newMatcher[G comparable](t *tree.Tree[G]) matcher[G] {
	return matcher[G]{t: t, pos: t.RootPosition()}
}

// step consumes one query glyph and returns its statistic.
// Amortized O(1): every fallback shortens the match by one and every
// extension lengthens it by one.
func (m *matcher[G]) step(g G) (Stat, error) {
	sym := tree.GlyphSymbol(g)
	for {
		if next, ok := m.t.Advance(m.pos, sym); ok {
			m.pos = next
			m.length++
			return Stat{Length: m.length, Position: m.pos}, nil
		}
		if m.length == 0 {
			return Stat{Length: 0, Position: m.pos}, nil
		}
		if err := m.fallback(); err != nil {
			return Stat{}, err
		}
	}
}

// fallback drops the first symbol of the current match:
//   - on a node: follow its suffix link;
//   - inside an edge below the root: rescan the partial label without its
//     first symbol;
//   - inside an edge below any other node: follow the tail's suffix link and
//     rescan the partial label from there.
func (m *matcher[G]) fallback() error {
	root := m.t.Root()
	p := m.pos

	if p.OnNode() {
		if p.Node == root {
			return fmt.Errorf("%w: fallback from the root with length %d", tree.ErrInvariantViolation, m.length)
		}
		link, ok := m.t.SuffixLink(p.Node)
		if !ok {
			return fmt.Errorf("%w: node %d has no suffix link", tree.ErrInvariantViolation, p.Node)
		}
		m.pos = tree.Position{Node: link, Edge: tree.NoEdge}
		m.length--
		return nil
	}

	e, ok := m.t.Edge(p.Edge)
	if !ok {
		return fmt.Errorf("%w: %d", tree.ErrUnknownEdge, p.Edge)
	}
	var (
		next tree.Position
		err  error
	)
	if p.Node == root {
		next, err = m.t.Rescan(root, e.Sequence, e.Begin+1, p.Offset-1)
	} else {
		link, ok := m.t.SuffixLink(p.Node)
		if !ok {
			return fmt.Errorf("%w: node %d has no suffix link", tree.ErrInvariantViolation, p.Node)
		}
		next, err = m.t.Rescan(link, e.Sequence, e.Begin, p.Offset)
	}
	if err != nil {
		return err
	}
	m.pos = next
	m.length--

	return nil
}

// Engine computes matching statistics of a query against a tree one position
// at a time, pulling query glyphs only as results are requested.
//
// Usage follows bufio.Scanner:
//
//	e := matching.New(t, query)
//	defer e.Stop()
//	for {
//		st, ok := e.Next()
//		if !ok {
//			break
//		}
//		...
//	}
//	if err := e.Err(); err != nil { ... }
//
// The tree must not be mutated while an Engine is in use.
type Engine[G comparable] struct {
	m    matcher[G]
	next func() (G, bool)
	stop func()
	err  error
	done bool
}

// New returns an Engine over query. The query is consumed lazily; call Stop
// when abandoning the Engine before exhaustion.
func New[G comparable](t *tree.Tree[G], query iter.Seq[G]) *Engine[G] {
	if t == nil {
		return &Engine[G]{err: ErrTreeNil, done: true}
	}
	next, stop := iter.Pull(query)

	return &Engine[G]{m: newMatcher(t), next: next, stop: stop}
}

// Next returns the statistic of the next query position, or false once the
// query is exhausted or an error occurred.
func (e *Engine[G]) Next() (Stat, bool) {
	if e.done {
		return Stat{}, false
	}
	g, ok := e.next()
	if !ok {
		e.Stop()
		return Stat{}, false
	}
	st, err := e.m.step(g)
	if err != nil {
		e.err = err
		e.Stop()
		return Stat{}, false
	}

	return st, true
}

// Err returns the first error met by Next, if any.
func (e *Engine[G]) Err() error { return e.err }

// Stop releases the query iterator. Safe to call more than once.
func (e *Engine[G]) Stop() {
	if e.done {
		return
	}
	e.done = true
	e.stop()
}

// Statistics returns the matching statistics of query as a lazy sequence.
// No work is done beyond the last position consumed. An error is yielded once,
// as the final element.
func Statistics[G comparable](t *tree.Tree[G], query iter.Seq[G]) iter.Seq2[Stat, error] {
	return func(yield func(Stat, error) bool) {
		if t == nil {
			yield(Stat{}, ErrTreeNil)
			return
		}
		m := newMatcher(t)
		for g := range query {
			st, err := m.step(g)
			if err != nil {
				yield(Stat{}, err)
				return
			}
			if !yield(st, nil) {
				return
			}
		}
	}
}

// Lengths returns only the match lengths of query.
func Lengths[G comparable](t *tree.Tree[G], query []G) ([]int, error) {
	if t == nil {
		return nil, ErrTreeNil
	}
	out := make([]int, 0, len(query))
	m := newMatcher(t)
	for _, g := range query {
		st, err := m.step(g)
		if err != nil {
			return nil, err
		}
		out = append(out, st.Length)
	}

	return out, nil
}

// Occurrences lists up to limit places where the substring of st occurs, as
// leaf labels whose Start is the first index of the occurrence. limit <= 0
// means no limit. A zero-length statistic has no occurrences.
//
// Only sealed sequences have a leaf for every suffix; occurrences inside a
// sequence that is still being built may be missing.
func Occurrences[G comparable](t *tree.Tree[G], st Stat, limit int) []tree.Label {
	if t == nil || st.Length == 0 {
		return nil
	}
	var out []tree.Label
	for l := range t.Leaves(st.Position) {
		out = append(out, l)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out
}
