// SPDX-License-Identifier: MIT

package ukkonen

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/katalvlaran/suffixtree/tree"
	"github.com/katalvlaran/suffixtree/word"
)

// Builder grows a generalized suffix tree one glyph at a time.
//
// The active point (activeNode, activeEdge, activeLength) marks where the
// longest suffix that is still implicit ends; remainder counts the suffixes
// that still have to be made explicit. activeEdge is an index into the live
// Word, so the active edge is the one leaving activeNode keyed by that symbol.
// Between phases the active point is canonical: activeLength is shorter than
// the active edge unless that edge leads to a leaf.
//
// A Builder is not safe for concurrent use and must be the only writer of its tree.
type Builder[G comparable] struct {
	t   *tree.Tree[G]
	w   *word.Word[G]
	seq int

	activeNode   tree.NodeID
	activeEdge   int
	activeLength int
	remainder    int
	needLink     tree.NodeID

	// closed is set once Seal ran the terminal phase of the live sequence.
	closed bool
	maxLen int

	stats BuildStats
	log   *slog.Logger
	err   error
}

// New registers a fresh Word in t and returns a Builder appending to it.
// Returns ErrTreeNil, ErrOptionViolation, or tree.ErrSequenceOpen when t still
// has an unsealed sequence.
func New[G comparable](t *tree.Tree[G], opts ...Option) (*Builder[G], error) {
	if t == nil {
		return nil, ErrTreeNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	t.Grow(o.InitialCapacity)

	b := &Builder[G]{t: t, log: o.Logger, maxLen: o.MaxLength}
	if err := b.start(); err != nil {
		return nil, err
	}

	return b, nil
}

// Append adds g to the live sequence and runs one phase, after which the tree
// is the suffix tree of the sequence so far (some suffixes may be implicit
// until Seal).
// Returns ErrSealed after Seal and ErrTooLong at the length cap; neither
// touches the tree.
// Complexity: amortized O(1).
func (b *Builder[G]) Append(g G) error {
	if b.err != nil {
		return b.err
	}
	if b.t.Sealed(b.seq) {
		return fmt.Errorf("%w: sequence %d", ErrSealed, b.seq)
	}
	if b.w.Length() >= b.maxLen {
		return fmt.Errorf("%w: sequence %d holds %d glyphs", ErrTooLong, b.seq, b.maxLen)
	}
	b.w.Append(g)

	return b.phase(b.w.Length() - 1)
}

// Extend appends every glyph of glyphs, stopping at the first error.
func (b *Builder[G]) Extend(glyphs iter.Seq[G]) error {
	for g := range glyphs {
		if err := b.Append(g); err != nil {
			return err
		}
	}

	return b.err
}

// Seal terminates the live sequence with its unique terminal symbol and runs
// the final phase, so every suffix ends at a leaf. Sealing twice is a no-op.
// An empty sequence is marked sealed without touching the tree.
//
// The live sequence must be sealed through the builder: if tree.Seal already
// closed a non-empty one, the terminal phase can no longer run and Seal fails
// with tree.ErrInvariantViolation.
func (b *Builder[G]) Seal() error {
	if b.err != nil {
		return b.err
	}
	if b.closed {
		return nil
	}
	n := b.w.Length()
	if b.t.Sealed(b.seq) && n > 0 {
		return b.fail(fmt.Errorf("%w: sequence %d was sealed behind the builder, %d suffixes implicit",
			tree.ErrInvariantViolation, b.seq, b.remainder))
	}
	if err := b.t.Seal(b.seq); err != nil {
		return b.fail(err)
	}
	if n > 0 {
		if err := b.phase(n); err != nil {
			return err
		}
	}
	if b.remainder != 0 {
		return b.fail(fmt.Errorf("%w: %d suffixes left after sealing sequence %d",
			tree.ErrInvariantViolation, b.remainder, b.seq))
	}
	b.closed = true

	b.log.Debug("ukkonen: sequence sealed",
		slog.Int("sequence", b.seq),
		slog.Int("length", n),
		slog.Int("nodes", b.t.NodeCount()),
		slog.Int("splits", b.stats.Splits),
		slog.Int("leaves", b.stats.Leaves))

	return nil
}

// NextSequence seals the live sequence, registers a new empty Word and
// returns its sequence id. The active point restarts at the root.
func (b *Builder[G]) NextSequence() (int, error) {
	if err := b.Seal(); err != nil {
		return -1, err
	}
	if err := b.start(); err != nil {
		return -1, err
	}
	b.log.Debug("ukkonen: sequence started", slog.Int("sequence", b.seq))

	return b.seq, nil
}

// Word returns the live Word. Appending to it directly bypasses the builder
// and corrupts the tree; use Append.
func (b *Builder[G]) Word() *word.Word[G] { return b.w }

// Sequence returns the id of the live sequence.
func (b *Builder[G]) Sequence() int { return b.seq }

// Active returns the active point: the end of the longest suffix of the live
// sequence that is still implicit. Its depth is the number of implicit
// suffixes, zero right after Seal.
func (b *Builder[G]) Active() tree.Position {
	if b.activeLength == 0 {
		return tree.Position{Node: b.activeNode, Edge: tree.NoEdge}
	}
	key, _ := b.t.SymbolAt(b.seq, b.activeEdge)
	eid, _ := b.t.EdgeFrom(b.activeNode, key)

	return tree.Position{Node: b.activeNode, Edge: eid, Offset: b.activeLength}
}

// Tree returns the tree being built.
func (b *Builder[G]) Tree() *tree.Tree[G] { return b.t }

// Stats returns build counters.
func (b *Builder[G]) Stats() BuildStats { return b.stats }

// Err returns the error that stopped the builder, if any.
func (b *Builder[G]) Err() error { return b.err }

// start registers a fresh Word and resets the active point.
func (b *Builder[G]) start() error {
	w := word.New[G]()
	seq, err := b.t.AddSequence(w)
	if err != nil {
		return err
	}
	b.w, b.seq = w, seq
	b.activeNode = b.t.Root()
	b.activeEdge = 0
	b.activeLength = 0
	b.remainder = 0
	b.needLink = tree.NoNode
	b.closed = false
	b.stats.Sequences++

	return nil
}

// phase inserts the symbol at index i of the live sequence (the terminal when
// i equals the sealed length).
//
// Steps, repeated while suffixes remain:
//  1. If the active length is zero, the active edge starts at i.
//  2. No edge for the active symbol: hang a leaf off the active node (rule 2).
//  3. Active length covers the whole edge: walk down and retry.
//  4. Next symbol on the edge equals the new one: it is already present,
//     record it in the active point and stop the phase (rule 3).
//  5. Otherwise split the edge and hang a leaf off the split node (rule 2).
//  6. One suffix done: shorten at the root or follow the suffix link.
//
// The phase ends by walking the active point down to canonical form.
func (b *Builder[G]) phase(i int) error {
	cur, ok := b.t.SymbolAt(b.seq, i)
	if !ok {
		return b.fail(fmt.Errorf("%w: no symbol at %d of sequence %d", tree.ErrInvariantViolation, i, b.seq))
	}
	b.stats.Phases++
	b.needLink = tree.NoNode
	b.remainder++

	for b.remainder > 0 {
		if b.activeLength == 0 {
			b.activeEdge = i
		}
		key, ok := b.t.SymbolAt(b.seq, b.activeEdge)
		if !ok {
			return b.fail(fmt.Errorf("%w: active edge %d outside sequence %d",
				tree.ErrInvariantViolation, b.activeEdge, b.seq))
		}

		eid, ok := b.t.EdgeFrom(b.activeNode, key)
		if !ok {
			if err := b.addLeaf(b.activeNode, i); err != nil {
				return err
			}
			if err := b.addLink(b.activeNode); err != nil {
				return err
			}
		} else {
			if l := b.t.EdgeLength(eid); b.activeLength >= l {
				b.activeEdge += l
				b.activeLength -= l
				b.activeNode = b.t.EdgeHead(eid)
				continue
			}
			next, _ := b.t.EdgeSymbol(eid, b.activeLength)
			if next == cur {
				b.activeLength++
				b.stats.Rule3++
				if err := b.addLink(b.activeNode); err != nil {
					return err
				}
				break
			}
			mid, err := b.t.SplitEdge(eid, b.activeLength)
			if err != nil {
				return b.fail(err)
			}
			b.stats.Splits++
			if err := b.addLeaf(mid, i); err != nil {
				return err
			}
			if err := b.addLink(mid); err != nil {
				return err
			}
		}

		b.remainder--
		root := b.t.Root()
		switch {
		case b.activeNode == root && b.activeLength > 0:
			b.activeLength--
			b.activeEdge = i - b.remainder + 1
		case b.activeNode != root:
			link, ok := b.t.SuffixLink(b.activeNode)
			if !ok {
				return b.fail(fmt.Errorf("%w: node %d has no suffix link", tree.ErrInvariantViolation, b.activeNode))
			}
			b.activeNode = link
			b.stats.LinkFollows++
		}
	}

	return b.canonicalize()
}

// canonicalize walks the active point down while activeLength covers the whole
// active edge. It stops at the end of a leaf edge, which has nothing below.
func (b *Builder[G]) canonicalize() error {
	for b.activeLength > 0 {
		key, ok := b.t.SymbolAt(b.seq, b.activeEdge)
		if !ok {
			return b.fail(fmt.Errorf("%w: active edge %d outside sequence %d",
				tree.ErrInvariantViolation, b.activeEdge, b.seq))
		}
		eid, ok := b.t.EdgeFrom(b.activeNode, key)
		if !ok {
			return b.fail(fmt.Errorf("%w: no edge under active node %d", tree.ErrInvariantViolation, b.activeNode))
		}
		l, head := b.t.EdgeLength(eid), b.t.EdgeHead(eid)
		if b.activeLength < l || b.t.IsLeaf(head) {
			return nil
		}
		b.activeEdge += l
		b.activeLength -= l
		b.activeNode = head
	}

	return nil
}

// addLeaf hangs an open leaf edge starting at i off n; the leaf is the suffix
// that starts remainder-1 symbols before i.
func (b *Builder[G]) addLeaf(n tree.NodeID, i int) error {
	eid, err := b.t.CreateEdge(n, b.seq, i, tree.Open)
	if err != nil {
		return b.fail(err)
	}
	label := tree.Label{Sequence: b.seq, Start: i - b.remainder + 1}
	if err = b.t.MarkLeaf(b.t.EdgeHead(eid), label); err != nil {
		return b.fail(err)
	}
	b.stats.Leaves++

	return nil
}

// addLink resolves the pending suffix link to n and makes n pending, unless n
// is the root (whose link is fixed).
func (b *Builder[G]) addLink(n tree.NodeID) error {
	if b.needLink != tree.NoNode {
		if err := b.t.SetSuffixLink(b.needLink, n); err != nil {
			return b.fail(err)
		}
	}
	if n == b.t.Root() {
		b.needLink = tree.NoNode
	} else {
		b.needLink = n
	}

	return nil
}

// fail records err as the sticky builder error. Errors that do not already
// report an invariant violation are wrapped so callers can match one sentinel.
func (b *Builder[G]) fail(err error) error {
	if !errors.Is(err, tree.ErrInvariantViolation) {
		err = fmt.Errorf("%w: %w", tree.ErrInvariantViolation, err)
	}
	b.err = err
	b.log.Error("ukkonen: builder failed", slog.Int("sequence", b.seq), slog.Any("err", err))

	return err
}
