package word_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/suffixtree/word"
)

func TestWord_AppendAndAt(t *testing.T) {
	w := word.New[rune]()
	assert.Equal(t, 0, w.Length())

	for _, r := range "banana" {
		w.Append(r)
	}
	require.Equal(t, 6, w.Length())

	g, err := w.At(0)
	require.NoError(t, err)
	assert.Equal(t, 'b', g)

	g, err = w.At(5)
	require.NoError(t, err)
	assert.Equal(t, 'a', g)
}

func TestWord_AtOutOfRange(t *testing.T) {
	w := word.Of('a', 'b')

	_, err := w.At(2)
	assert.ErrorIs(t, err, word.ErrOutOfRange)

	_, err = w.At(-1)
	assert.ErrorIs(t, err, word.ErrOutOfRange)
}

func TestWord_OfCopiesInput(t *testing.T) {
	src := []byte("abc")
	w := word.Of(src...)
	src[0] = 'z'

	g, err := w.At(0)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), g)
}

func TestWord_SubstringRanges(t *testing.T) {
	w := word.Of([]rune("banana")...)

	cases := []struct {
		name       string
		begin, end int
		want       string
		err        error
	}{
		{"full", 0, 6, "banana", nil},
		{"middle", 1, 4, "ana", nil},
		{"empty", 3, 3, "", nil},
		{"reversed", 4, 2, "", word.ErrInvalidRange},
		{"past end", 2, 7, "", word.ErrInvalidRange},
		{"negative", -1, 2, "", word.ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := w.Substring(tc.begin, tc.end)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(s.Glyphs()))
			assert.Equal(t, len([]rune(tc.want)), s.Len())
			assert.Equal(t, tc.begin, s.Begin())
			assert.Equal(t, tc.end, s.End())
		})
	}
}

func TestSubstring_SurvivesAppend(t *testing.T) {
	w := word.Of('a', 'b')
	s, err := w.Substring(0, 2)
	require.NoError(t, err)

	// force several reallocations of the backing slice
	for i := 0; i < 1024; i++ {
		w.Append('x')
	}

	assert.Equal(t, "ab", string(s.Glyphs()))
	g, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, 'b', g)

	_, err = s.At(2)
	assert.ErrorIs(t, err, word.ErrOutOfRange)
}

func TestWord_AllStopsEarly(t *testing.T) {
	w := word.Of(1, 2, 3, 4)
	var seen []int
	for i, g := range w.All() {
		if i == 2 {
			break
		}
		seen = append(seen, g)
	}
	assert.Equal(t, []int{1, 2}, seen)
}
