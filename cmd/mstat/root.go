package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/suffixtree/tree"
	"github.com/katalvlaran/suffixtree/ukkonen"
)

// ErrNoInput is returned when a command has no file to work on.
var ErrNoInput = errors.New("mstat: no input files")

// flagValues holds the raw command-line values; only flags the user set
// override the configuration file.
type flagValues struct {
	refs        []string
	queries     []string
	unit        string
	workers     int
	occurrences int
	verify      bool
}

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string
	flags      flagValues

	cfg Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mstat",
		Short: "Matching statistics over a generalized suffix tree",
		Long: `mstat indexes reference files into one generalized suffix tree and reports,
for every position of a query, the longest substring ending there that occurs
in any reference.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newMatchCmd(a), newStatsCmd(a))

	return root
}

// setup loads the configuration, applies flag overrides, validates the result
// and installs the logger. It runs before any work.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if f.Changed("ref") {
		cfg.Refs = a.flags.refs
	}
	if f.Changed("query") {
		cfg.Queries = a.flags.queries
	}
	if f.Changed("unit") {
		cfg.Unit = a.flags.unit
	}
	if f.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
	if f.Changed("occurrences") {
		cfg.Occurrences = a.flags.occurrences
	}
	if f.Changed("verify") {
		cfg.Verify = a.flags.verify
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	level, _ := parseLevel(cfg.LogLevel)
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.log.Debug("configuration loaded",
		slog.String("unit", cfg.Unit),
		slog.Int("refs", len(cfg.Refs)),
		slog.Int("queries", len(cfg.Queries)),
		slog.Int("workers", cfg.Workers))

	return nil
}

// addInputFlags registers the flags shared by commands that read references.
func (a *app) addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&a.flags.refs, "ref", nil, "reference file to index (repeatable)")
	cmd.Flags().StringVar(&a.flags.unit, "unit", UnitRune, "glyph unit: rune, byte or token")
}

// inputs reads input files; "-" is stdin, read once and shared by every "-"
// of the invocation.
type inputs struct {
	stdin  io.Reader
	data   []byte
	loaded bool
}

func (in *inputs) read(paths []string) ([][]byte, error) {
	out := make([][]byte, 0, len(paths))
	for _, p := range paths {
		var (
			data []byte
			err  error
		)
		if p == "-" {
			data, err = in.readStdin()
		} else {
			data, err = os.ReadFile(p)
		}
		if err != nil {
			return nil, fmt.Errorf("mstat: read %s: %w", p, err)
		}
		out = append(out, data)
	}

	return out, nil
}

func (in *inputs) readStdin() ([]byte, error) {
	if !in.loaded {
		data, err := io.ReadAll(in.stdin)
		if err != nil {
			return nil, err
		}
		in.data, in.loaded = data, true
	}

	return in.data, nil
}

// Glyph splitters, one per unit.
func runes(b []byte) []rune    { return []rune(string(b)) }
func octets(b []byte) []byte   { return b }
func tokens(b []byte) []string { return strings.Fields(string(b)) }

func split[G any](files [][]byte, unit func([]byte) []G) [][]G {
	out := make([][]G, len(files))
	for i, f := range files {
		out[i] = unit(f)
	}

	return out
}

// buildTree indexes every ref as its own sequence of one tree.
func buildTree[G comparable](log *slog.Logger, refs [][]G) (*tree.Tree[G], ukkonen.BuildStats, error) {
	total := 0
	for _, r := range refs {
		total += len(r) + 1
	}
	t := tree.New[G]()
	b, err := ukkonen.New(t, ukkonen.WithLogger(log), ukkonen.WithInitialCapacity(total))
	if err != nil {
		return nil, ukkonen.BuildStats{}, err
	}
	for i, r := range refs {
		if i > 0 {
			if _, err = b.NextSequence(); err != nil {
				return nil, b.Stats(), err
			}
		}
		if err = b.Extend(slices.Values(r)); err != nil {
			return nil, b.Stats(), err
		}
	}
	if err = b.Seal(); err != nil {
		return nil, b.Stats(), err
	}
	log.Info("index built",
		slog.Int("sequences", t.Sequences()),
		slog.Int("glyphs", total-len(refs)),
		slog.Int("nodes", t.NodeCount()))

	return t, b.Stats(), nil
}
