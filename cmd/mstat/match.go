package main

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/suffixtree/internal/bruteforce"
	"github.com/katalvlaran/suffixtree/matching"
	"github.com/katalvlaran/suffixtree/tree"
)

// ErrVerify is returned when --verify finds a length the brute-force scan disagrees with.
var ErrVerify = errors.New("mstat: verification failed")

func newMatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Print the matching statistics of queries against the references",
		Long: `match prints one TSV row per query position:

  query  pos  glyph  length  occurrences

length is the longest substring of the query ending at pos that occurs in a
reference; occurrences lists up to --occurrences places (ref:start) where it does.`,
		Args: cobra.NoArgs,
		RunE: a.runMatch,
	}
	a.addInputFlags(cmd)
	cmd.Flags().StringSliceVar(&a.flags.queries, "query", nil, "query file, - for stdin (repeatable)")
	cmd.Flags().IntVar(&a.flags.workers, "workers", 0, "concurrent queries (default GOMAXPROCS)")
	cmd.Flags().IntVar(&a.flags.occurrences, "occurrences", 0, "occurrence locations to print per position")
	cmd.Flags().BoolVar(&a.flags.verify, "verify", false, "cross-check lengths against a brute-force scan")

	return cmd
}

func (a *app) runMatch(cmd *cobra.Command, _ []string) error {
	if len(a.cfg.Refs) == 0 {
		return fmt.Errorf("%w: no --ref given", ErrNoInput)
	}
	if len(a.cfg.Queries) == 0 {
		return fmt.Errorf("%w: no --query given", ErrNoInput)
	}
	in := &inputs{stdin: cmd.InOrStdin()}
	refs, err := in.read(a.cfg.Refs)
	if err != nil {
		return err
	}
	queries, err := in.read(a.cfg.Queries)
	if err != nil {
		return err
	}

	ctx, out := cmd.Context(), cmd.OutOrStdout()
	switch a.cfg.Unit {
	case UnitByte:
		return match(ctx, a, out, split(refs, octets), split(queries, octets))
	case UnitToken:
		return match(ctx, a, out, split(refs, tokens), split(queries, tokens))
	default:
		return match(ctx, a, out, split(refs, runes), split(queries, runes))
	}
}

func match[G comparable](ctx context.Context, a *app, w io.Writer, refs, queries [][]G) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t, _, err := buildTree(a.log, refs)
	if err != nil {
		return err
	}
	stats, err := matching.Batch(ctx, t, queries,
		matching.WithConcurrency(a.cfg.Workers),
		matching.WithLogger(a.log),
	)
	if err != nil {
		return err
	}
	if a.cfg.Verify {
		if err = verify(refs, queries, stats, a.cfg.Queries); err != nil {
			return err
		}
		a.log.Info("lengths verified", slog.Int("queries", len(queries)))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "query\tpos\tglyph\tlength\toccurrences")
	for i, q := range queries {
		for j, st := range stats[i] {
			occ := occurrenceColumn(t, st, a.cfg.Occurrences, a.cfg.Refs)
			fmt.Fprintf(bw, "%s\t%d\t%q\t%d\t%s\n", a.cfg.Queries[i], j, q[j], st.Length, occ)
		}
	}

	return bw.Flush()
}

// occurrenceColumn renders up to limit locations of st as ref:start, or "-"
// when limit is 0 or st matched nothing.
func occurrenceColumn[G comparable](t *tree.Tree[G], st matching.Stat, limit int, refs []string) string {
	if limit == 0 {
		return "-"
	}
	labels := matching.Occurrences(t, st, limit)
	slices.SortFunc(labels, func(x, y tree.Label) int {
		if c := cmp.Compare(x.Sequence, y.Sequence); c != 0 {
			return c
		}
		return cmp.Compare(x.Start, y.Start)
	})

	return formatLabels(labels, refs)
}

func verify[G comparable](refs, queries [][]G, stats [][]matching.Stat, names []string) error {
	for i, q := range queries {
		want := bruteforce.MatchingLengths(refs, q)
		for j, st := range stats[i] {
			if st.Length != want[j] {
				return fmt.Errorf("%w: %s position %d: tree %d, scan %d", ErrVerify, names[i], j, st.Length, want[j])
			}
		}
	}

	return nil
}

func formatLabels(labels []tree.Label, refs []string) string {
	if len(labels) == 0 {
		return "-"
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s:%d", refs[l.Sequence], l.Start)
	}

	return strings.Join(parts, ",")
}
