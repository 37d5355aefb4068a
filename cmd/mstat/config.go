package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration value is rejected.
var ErrInvalidConfig = errors.New("mstat: invalid configuration")

// Glyph units a file can be split into.
const (
	UnitRune  = "rune"
	UnitByte  = "byte"
	UnitToken = "token"
)

// Config is the mstat configuration, read from YAML and overridden by flags.
type Config struct {
	// Unit selects how files are split into glyphs: rune, byte or token
	// (whitespace-separated words).
	Unit string `yaml:"unit"`

	// Refs are the files indexed into the tree, one sequence each.
	Refs []string `yaml:"refs"`

	// Queries are matched against the tree. "-" reads standard input.
	Queries []string `yaml:"queries"`

	// Workers bounds concurrent queries.
	Workers int `yaml:"workers"`

	// Occurrences is how many occurrence locations to print per position;
	// 0 prints none.
	Occurrences int `yaml:"occurrences"`

	// Verify cross-checks every length against a brute-force scan.
	Verify bool `yaml:"verify"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Unit:        UnitRune,
		Workers:     runtime.GOMAXPROCS(0),
		Occurrences: 0,
		LogLevel:    "info",
	}
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// Validate reports the first rejected value.
func (c Config) Validate() error {
	switch c.Unit {
	case UnitRune, UnitByte, UnitToken:
	default:
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidConfig, c.Unit)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive (%d)", ErrInvalidConfig, c.Workers)
	}
	if c.Occurrences < 0 {
		return fmt.Errorf("%w: occurrences cannot be negative (%d)", ErrInvalidConfig, c.Occurrences)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}

	return l, nil
}
