// Package config loads the engine's ambient settings from a TOML file:
// read the whole file, then toml.Unmarshal, no partial/streaming parse.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// SortAlgorithm names the specificity sort strategy. Only "insertion" is
// implemented: the comparator can suspend on a host question mid-sort,
// which ordinary library sorts can't accommodate. The field exists so a
// config file can be explicit about it and so a future algorithm has
// somewhere to be selected from without a breaking config change.
type SortAlgorithm string

const InsertionSort SortAlgorithm = "insertion"

// Config is the engine's ambient configuration, independent of any
// loaded policy or ruleset.
type Config struct {
	LogLevel string `toml:"log_level"`

	Sort struct {
		Algorithm SortAlgorithm `toml:"algorithm"`
	} `toml:"sort"`

	// MaxTrieDepth bounds the arity Registry.Insert will accept a rule
	// for (wired in through oso.WithMaxArity), guarding against
	// pathological policies rather than any real limit in the trie itself.
	MaxTrieDepth int `toml:"max_trie_depth"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	c := Config{LogLevel: "warn", MaxTrieDepth: 64}
	c.Sort.Algorithm = InsertionSort
	return c
}

// Load reads and parses a TOML config file at path, applying Default()
// for any field the file leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config file")
	}
	if cfg.Sort.Algorithm == "" {
		cfg.Sort.Algorithm = InsertionSort
	}
	return cfg, nil
}

// Validate reports configuration values that would make the engine
// behave unexpectedly rather than simply failing to load a policy.
func (c Config) Validate() error {
	if c.Sort.Algorithm != InsertionSort {
		return errors.Errorf("unsupported sort algorithm %q", c.Sort.Algorithm)
	}
	if c.MaxTrieDepth <= 0 {
		return errors.Errorf("max_trie_depth must be positive, got %d", c.MaxTrieDepth)
	}
	return nil
}
