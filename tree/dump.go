package tree

import (
	"fmt"
	"strings"
)

// String renders the tree as an indented edge list, one edge per line:
//
//	* "a" -> n3 (link n0)
//	  * "na$0" -> n4 [0:1]
//
// Intended for debugging and examples; the output is deterministic.
func (t *Tree[G]) String() string {
	type item struct {
		e      EdgeID
		indent int
	}
	var (
		b     strings.Builder
		stack []item
	)
	push := func(n NodeID, indent int) {
		order := t.nodes[n].order
		for i := len(order) - 1; i >= 0; i-- {
			stack = append(stack, item{e: order[i], indent: indent})
		}
	}

	push(root, 0)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		head := t.edges[it.e].head
		b.WriteString(strings.Repeat("  ", it.indent))
		fmt.Fprintf(&b, "* %q -> n%d", t.labelString(it.e), head)
		if lab, ok := t.Leaf(head); ok {
			fmt.Fprintf(&b, " [%d:%d]", lab.Sequence, lab.Start)
		} else if link, ok := t.SuffixLink(head); ok {
			fmt.Fprintf(&b, " (link n%d)", link)
		}
		b.WriteByte('\n')
		push(head, it.indent+1)
	}

	return b.String()
}

func (t *Tree[G]) labelString(eid EdgeID) string {
	var b strings.Builder
	for _, s := range t.EdgeLabel(eid) {
		b.WriteString(s.String())
	}

	return b.String()
}
