package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/suffixtree/tree"
	"github.com/katalvlaran/suffixtree/ukkonen"
)

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Index the references and print tree statistics",
		Args:  cobra.NoArgs,
		RunE:  a.runStats,
	}
	a.addInputFlags(cmd)

	return cmd
}

func (a *app) runStats(cmd *cobra.Command, _ []string) error {
	if len(a.cfg.Refs) == 0 {
		return fmt.Errorf("%w: no --ref given", ErrNoInput)
	}
	in := &inputs{stdin: cmd.InOrStdin()}
	refs, err := in.read(a.cfg.Refs)
	if err != nil {
		return err
	}

	var (
		ts tree.Stats
		bs ukkonen.BuildStats
	)
	switch a.cfg.Unit {
	case UnitByte:
		ts, bs, err = indexStats(a, split(refs, octets))
	case UnitToken:
		ts, bs, err = indexStats(a, split(refs, tokens))
	default:
		ts, bs, err = indexStats(a, split(refs, runes))
	}
	if err != nil {
		return err
	}

	return printStats(cmd.OutOrStdout(), ts, bs)
}

func indexStats[G comparable](a *app, refs [][]G) (tree.Stats, ukkonen.BuildStats, error) {
	t, bs, err := buildTree(a.log, refs)
	if err != nil {
		return tree.Stats{}, bs, err
	}

	return t.Stats(), bs, nil
}

func printStats(w io.Writer, ts tree.Stats, bs ukkonen.BuildStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := []struct {
		name  string
		value int
	}{
		{"sequences", ts.Sequences},
		{"glyphs", ts.IndexedGlyph},
		{"nodes", ts.Nodes},
		{"internal", ts.Internal},
		{"leaves", ts.Leaves},
		{"edges", ts.Edges},
		{"suffix_links", ts.SuffixLinks},
		{"phases", bs.Phases},
		{"splits", bs.Splits},
		{"rule3_stops", bs.Rule3},
		{"link_follows", bs.LinkFollows},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", r.name, r.value)
	}

	return tw.Flush()
}
