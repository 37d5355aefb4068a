package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates name with content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

// run executes mstat with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "mstat.yaml", `
unit: byte
refs: [a.txt, b.txt]
workers: 3
occurrences: 2
verify: true
log_level: debug
`)

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Unit:        UnitByte,
		Refs:        []string{"a.txt", "b.txt"},
		Workers:     3,
		Occurrences: 2,
		Verify:      true,
		LogLevel:    "debug",
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	p := writeFile(t, t.TempDir(), "partial.yaml", "occurrences: 4\n")
	cfg, err = LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, UnitRune, cfg.Unit)
	assert.Equal(t, 4, cfg.Occurrences)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, t.TempDir(), "bad.yaml", "workers: [1, 2\n")
	_, err = LoadConfig(p)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*Config){
		"unit":        func(c *Config) { c.Unit = "word" },
		"workers":     func(c *Config) { c.Workers = 0 },
		"occurrences": func(c *Config) { c.Occurrences = -1 },
		"log level":   func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.txt", "banana")
	query := writeFile(t, dir, "query.txt", "xana")

	out, _, err := run(t, "", "match", "--ref", ref, "--query", query, "--occurrences", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "query\tpos\tglyph\tlength\toccurrences", lines[0])
	assert.Equal(t, query+"\t0\t'x'\t0\t-", lines[1])
	assert.Equal(t, query+"\t2\t'n'\t2\t"+ref+":1,"+ref+":3", lines[3])
	assert.Equal(t, query+"\t3\t'a'\t3\t"+ref+":1,"+ref+":3", lines[4])
}

func TestMatch_StdinAndVerify(t *testing.T) {
	dir := t.TempDir()
	r1 := writeFile(t, dir, "r1.txt", "abracadabra")
	r2 := writeFile(t, dir, "r2.txt", "cabbage")

	out, errOut, err := run(t, "cabra", "match", "--ref", r1, "--ref", r2, "--query", "-", "--verify", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, errOut, "lengths verified")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "-\t4\t'a'\t4\t-", lines[5])
}

func TestMatch_StdinSharedByRefAndQuery(t *testing.T) {
	out, _, err := run(t, "banana", "match", "--ref", "-", "--query", "-", "--verify")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	for i, line := range lines[1:] {
		f := strings.Split(line, "\t")
		require.Len(t, f, 5)
		assert.Equal(t, strconv.Itoa(i+1), f[3], line)
	}
}

func TestMatch_TokensFromConfig(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.txt", "the quick brown fox")
	query := writeFile(t, dir, "query.txt", "a quick brown dog")
	cfg := writeFile(t, dir, "mstat.yaml", "unit: token\nlog_level: warn\nrefs: ["+ref+"]\nqueries: ["+query+"]\n")

	out, errOut, err := run(t, "", "match", "--config", cfg)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, query+"\t2\t\"brown\"\t2\t-")

	// flags override the file
	out, _, err = run(t, "", "match", "--config", cfg, "--unit", "rune")
	require.NoError(t, err)
	assert.Contains(t, out, query+"\t0\t'a'\t0\t-")
}

func TestMatch_Errors(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.txt", "banana")

	_, _, err := run(t, "", "match", "--query", ref)
	assert.ErrorIs(t, err, ErrNoInput)

	_, _, err = run(t, "", "match", "--ref", ref)
	assert.ErrorIs(t, err, ErrNoInput)

	_, _, err = run(t, "", "match", "--ref", ref, "--query", ref, "--unit", "glyph")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, _, err = run(t, "", "match", "--ref", ref, "--query", ref, "--log-level", "loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, _, err = run(t, "", "match", "--ref", filepath.Join(dir, "missing"), "--query", ref)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	r1 := writeFile(t, dir, "r1.txt", "banana")
	r2 := writeFile(t, dir, "r2.txt", "ananas")

	out, _, err := run(t, "", "stats", "--ref", r1, "--ref", r2, "--unit", "byte")
	require.NoError(t, err)

	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		f := strings.Fields(line)
		require.Len(t, f, 2)
		fields[f[0]] = f[1]
	}
	assert.Equal(t, "2", fields["sequences"])
	assert.Equal(t, "12", fields["glyphs"])
	assert.Equal(t, "14", fields["leaves"])
	assert.Equal(t, "14", fields["phases"])
}
