// Package bruteforce answers suffix-tree queries by naive scanning.
// It is the reference the tree-based answers are checked against.
package bruteforce

import (
	"slices"

	"github.com/katalvlaran/suffixtree/tree"
)

// Contains reports whether pattern occurs in any of indexed.
func Contains[G comparable](indexed [][]G, pattern []G) bool {
	if len(pattern) == 0 {
		return true
	}
	for _, s := range indexed {
		for i := 0; i+len(pattern) <= len(s); i++ {
			if slices.Equal(s[i:i+len(pattern)], pattern) {
				return true
			}
		}
	}

	return false
}

// MatchingLengths returns, for every position i of query, the length of the
// longest substring of query ending at i that occurs in indexed.
// Complexity: O(|query| * |indexed| * L) for match length L.
func MatchingLengths[G comparable](indexed [][]G, query []G) []int {
	out := make([]int, len(query))
	prev := 0
	for i := range query {
		// ms[i] <= ms[i-1]+1
		l := prev + 1
		for l > 0 && !Contains(indexed, query[i-l+1:i+1]) {
			l--
		}
		out[i] = l
		prev = l
	}

	return out
}

// Occurrences lists every (sequence, start) where pattern occurs, in
// sequence then start order. The empty pattern has no occurrences.
func Occurrences[G comparable](indexed [][]G, pattern []G) []tree.Label {
	if len(pattern) == 0 {
		return nil
	}
	var out []tree.Label
	for seq, s := range indexed {
		for i := 0; i+len(pattern) <= len(s); i++ {
			if slices.Equal(s[i:i+len(pattern)], pattern) {
				out = append(out, tree.Label{Sequence: seq, Start: i})
			}
		}
	}

	return out
}
