package ukkonen_test

import (
	"bytes"
	"log/slog"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/suffixtree/tree"
	"github.com/katalvlaran/suffixtree/ukkonen"
)

// build indexes every input as its own sealed sequence of one tree.
func build(t *testing.T, inputs ...string) (*tree.Tree[rune], *ukkonen.Builder[rune]) {
	t.Helper()
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr)
	require.NoError(t, err)
	for i, s := range inputs {
		if i > 0 {
			_, err = b.NextSequence()
			require.NoError(t, err)
		}
		require.NoError(t, b.Extend(slices.Values([]rune(s))))
	}
	require.NoError(t, b.Seal())

	return tr, b
}

// pathLeaf is one root-to-leaf path: its symbols and the leaf payload.
type pathLeaf struct {
	path  []tree.Symbol[rune]
	label tree.Label
}

// collectLeaves walks every root-to-leaf path.
func collectLeaves(tr *tree.Tree[rune]) []pathLeaf {
	var out []pathLeaf
	var walk func(n tree.NodeID, prefix []tree.Symbol[rune])
	walk = func(n tree.NodeID, prefix []tree.Symbol[rune]) {
		if lab, ok := tr.Leaf(n); ok {
			out = append(out, pathLeaf{path: slices.Clone(prefix), label: lab})
			return
		}
		for eid := range tr.Edges(n) {
			walk(tr.EdgeHead(eid), append(prefix, tr.EdgeLabel(eid)...))
		}
	}
	walk(tr.Root(), nil)

	return out
}

// glyphs strips the trailing terminal from a leaf path.
func glyphs(path []tree.Symbol[rune]) (string, tree.Symbol[rune]) {
	rs := make([]rune, 0, len(path))
	for _, s := range path[:len(path)-1] {
		rs = append(rs, s.Glyph)
	}

	return string(rs), path[len(path)-1]
}

// requireComplete checks that the leaves of tr spell exactly the suffixes
// (empty suffix included) of every input, each with the right label.
func requireComplete(t *testing.T, tr *tree.Tree[rune], inputs ...string) {
	t.Helper()
	seen := make(map[tree.Label]bool)
	for _, pl := range collectLeaves(tr) {
		require.NotEmpty(t, pl.path)
		s, term := glyphs(pl.path)
		require.True(t, term.IsTerminal(), "leaf %v does not end with a terminal", pl.label)
		assert.Equal(t, pl.label.Sequence+1, term.Terminal)

		src := []rune(inputs[pl.label.Sequence])
		require.LessOrEqual(t, pl.label.Start, len(src))
		assert.Equal(t, string(src[pl.label.Start:]), s, "label %v", pl.label)
		assert.False(t, seen[pl.label], "duplicate leaf %v", pl.label)
		seen[pl.label] = true
	}
	want := 0
	for _, s := range inputs {
		if n := len([]rune(s)); n > 0 {
			want += n + 1
		}
	}
	assert.Len(t, seen, want)
}

// requireLinks checks that every internal node links to the node spelling its
// path without the first symbol.
func requireLinks(t *testing.T, tr *tree.Tree[rune]) {
	t.Helper()
	paths := map[tree.NodeID][]tree.Symbol[rune]{tr.Root(): nil}
	var walk func(n tree.NodeID, prefix []tree.Symbol[rune])
	walk = func(n tree.NodeID, prefix []tree.Symbol[rune]) {
		for eid := range tr.Edges(n) {
			head := tr.EdgeHead(eid)
			if tr.IsLeaf(head) {
				continue
			}
			p := append(slices.Clone(prefix), tr.EdgeLabel(eid)...)
			paths[head] = p
			walk(head, p)
		}
	}
	walk(tr.Root(), nil)

	for n, p := range paths {
		link, ok := tr.SuffixLink(n)
		require.True(t, ok, "node %d (%v) has no suffix link", n, p)
		if n == tr.Root() {
			assert.Equal(t, tr.Root(), link)
			continue
		}
		assert.True(t, slices.Equal(p[1:], paths[link]), "link of %v leads to %v", p, paths[link])
	}
}

func TestNew_NilTree(t *testing.T) {
	b, err := ukkonen.New[rune](nil)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ukkonen.ErrTreeNil)
}

func TestNew_NegativeCapacity(t *testing.T) {
	b, err := ukkonen.New(tree.New[byte](), ukkonen.WithInitialCapacity(-1))
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ukkonen.ErrOptionViolation)
}

func TestNew_TreeWithOpenSequence(t *testing.T) {
	tr := tree.New[rune]()
	_, err := ukkonen.New(tr)
	require.NoError(t, err)

	_, err = ukkonen.New(tr)
	assert.ErrorIs(t, err, tree.ErrSequenceOpen)
}

func TestBuilder_Completeness(t *testing.T) {
	cases := []string{
		"a",
		"ab",
		"aa",
		"aaaa",
		"banana",
		"mississippi",
		"abcabxabcd",
		"abababab",
		"xabxac",
		"cdddcdc",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			tr, _ := build(t, s)
			requireComplete(t, tr, s)
			requireLinks(t, tr)
		})
	}
}

func TestBuilder_Generalized(t *testing.T) {
	inputs := []string{"banana", "ananas", "nab", "a", "banana"}
	tr, b := build(t, inputs...)

	assert.Equal(t, len(inputs), tr.Sequences())
	assert.Equal(t, len(inputs), b.Stats().Sequences)
	requireComplete(t, tr, inputs...)
	requireLinks(t, tr)
}

func TestBuilder_RandomCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const alphabet = "abc"
	for round := 0; round < 50; round++ {
		inputs := make([]string, 1+rng.Intn(3))
		for i := range inputs {
			rs := make([]byte, rng.Intn(40))
			for j := range rs {
				rs[j] = alphabet[rng.Intn(len(alphabet))]
			}
			inputs[i] = string(rs)
		}
		tr, _ := build(t, inputs...)
		requireComplete(t, tr, inputs...)
		requireLinks(t, tr)
	}
}

func TestBuilder_LinksAfterEveryAppend(t *testing.T) {
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr)
	require.NoError(t, err)
	for _, r := range "abcabxabcdabcabx" {
		require.NoError(t, b.Append(r))
		requireLinks(t, tr)
	}
}

func TestBuilder_EmptySequence(t *testing.T) {
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr)
	require.NoError(t, err)
	require.NoError(t, b.Seal())

	assert.Equal(t, 1, tr.NodeCount())
	assert.Equal(t, 0, tr.EdgeCount())
	assert.True(t, tr.Sealed(b.Sequence()))
}

func TestBuilder_AppendAfterSeal(t *testing.T) {
	_, b := build(t, "ab")

	err := b.Append('c')
	assert.ErrorIs(t, err, ukkonen.ErrSealed)
	// a sealed-sequence error is a usage error, not a failure
	assert.NoError(t, b.Err())

	seq, err := b.NextSequence()
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
	assert.NoError(t, b.Append('c'))
}

func TestBuilder_SealTwice(t *testing.T) {
	tr, b := build(t, "abc")
	nodes := tr.NodeCount()

	require.NoError(t, b.Seal())
	assert.Equal(t, nodes, tr.NodeCount())
}

func TestBuilder_StickyFailure(t *testing.T) {
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr)
	require.NoError(t, err)

	// Plant an internal node without a suffix link where the builder will
	// walk into it.
	b.Word().Append('a')
	_, err = tr.CreateEdge(tr.Root(), b.Sequence(), 0, 1)
	require.NoError(t, err)
	require.NoError(t, b.Append('a'))

	err = b.Append('b')
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrInvariantViolation)
	assert.ErrorIs(t, b.Err(), tree.ErrInvariantViolation)
	assert.ErrorIs(t, b.Append('c'), tree.ErrInvariantViolation)
	assert.ErrorIs(t, b.Seal(), tree.ErrInvariantViolation)
	_, err = b.NextSequence()
	assert.ErrorIs(t, err, tree.ErrInvariantViolation)
}

func TestBuilder_Stats(t *testing.T) {
	_, b := build(t, "banana")
	st := b.Stats()

	assert.Equal(t, 7, st.Phases)
	assert.Equal(t, 7, st.Leaves)
	assert.Equal(t, 1, st.Sequences)
	assert.Positive(t, st.Splits)
	assert.Positive(t, st.Rule3)
}

func TestBuilder_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr := tree.New[rune]()
	b, err := ukkonen.New(tr, ukkonen.WithLogger(logger), ukkonen.WithInitialCapacity(16))
	require.NoError(t, err)
	require.NoError(t, b.Extend(slices.Values([]rune("abc"))))
	_, err = b.NextSequence()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sequence sealed")
	assert.Contains(t, out, "sequence=0")
	assert.Contains(t, out, "sequence started")
	assert.Contains(t, out, "sequence=1")
}

func TestBuilder_ActivePointCanonical(t *testing.T) {
	const s = "abcabxabcdabcabxabcabxaab"
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr)
	require.NoError(t, err)

	rs := []rune(s)
	for n := 1; n <= len(rs); n++ {
		require.NoError(t, b.Append(rs[n-1]))

		// longest suffix of the prefix that also occurs earlier
		k := n - 1
		for k > 0 && !strings.Contains(string(rs[:n-1]), string(rs[n-k:n])) {
			k--
		}
		want, ok := tr.Find(rs[n-k : n])
		require.True(t, ok)

		got := b.Active()
		assert.Equal(t, want, got, "prefix %q", string(rs[:n]))
		assert.Equal(t, k, tr.Depth(got), "prefix %q", string(rs[:n]))
		if !got.OnNode() && !tr.IsLeaf(tr.EdgeHead(got.Edge)) {
			assert.Less(t, got.Offset, tr.EdgeLength(got.Edge), "prefix %q", string(rs[:n]))
		}
	}
	require.NoError(t, b.Seal())
	assert.Equal(t, tr.RootPosition(), b.Active())
}

func TestBuilder_SealedBehindBuilder(t *testing.T) {
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr)
	require.NoError(t, err)
	require.NoError(t, b.Extend(slices.Values([]rune("aa"))))

	require.NoError(t, tr.Seal(b.Sequence()))
	err = b.Seal()
	assert.ErrorIs(t, err, tree.ErrInvariantViolation)
	assert.ErrorIs(t, b.Err(), tree.ErrInvariantViolation)
}

func TestBuilder_EmptySequenceSealedByTree(t *testing.T) {
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr)
	require.NoError(t, err)

	require.NoError(t, tr.Seal(b.Sequence()))
	require.NoError(t, b.Seal())
	_, err = b.NextSequence()
	assert.NoError(t, err)
}

func TestBuilder_MaxLength(t *testing.T) {
	tr := tree.New[rune]()
	b, err := ukkonen.New(tr, ukkonen.WithMaxLength(3))
	require.NoError(t, err)

	err = b.Extend(slices.Values([]rune("abcd")))
	assert.ErrorIs(t, err, ukkonen.ErrTooLong)
	assert.NoError(t, b.Err())
	assert.Equal(t, 3, b.Word().Length())

	require.NoError(t, b.Seal())
	requireComplete(t, tr, "abc")

	// the cap applies per sequence
	_, err = b.NextSequence()
	require.NoError(t, err)
	assert.NoError(t, b.Extend(slices.Values([]rune("xyz"))))
}

func TestWithMaxLength_Invalid(t *testing.T) {
	for _, n := range []int{0, -1, ukkonen.MaxSequenceLength + 1} {
		b, err := ukkonen.New(tree.New[rune](), ukkonen.WithMaxLength(n))
		assert.Nil(t, b)
		assert.ErrorIs(t, err, ukkonen.ErrOptionViolation, "n=%d", n)
	}
}
