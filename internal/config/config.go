// Package config loads the optional darch-list settings file. Every field is
// optional; a nil pointer means "not set" so command-line defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKeys is returned alongside a usable Config when the file contains
// keys this version does not recognize.
var ErrUnknownKeys = errors.New("unknown config keys")

// Config mirrors config.toml.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Filter   FilterConfig   `toml:"filter"`
}

// DefaultsConfig supplies values for flags left off the command line.
type DefaultsConfig struct {
	HexStyle *string `toml:"hex_style"`
	Digest   *bool   `toml:"digest"`
	Summary  *bool   `toml:"summary"`
}

// FilterConfig rules are appended after command-line and --filter rules, so
// they only decide entries nothing earlier matched. Sizes apply when the
// matching flag is absent.
type FilterConfig struct {
	MinSize *string  `toml:"min_size"`
	MaxSize *string  `toml:"max_size"`
	Exclude []string `toml:"exclude"`
	Include []string `toml:"include"`
}

// Path returns $XDG_CONFIG_HOME/darch/config.toml, falling back to
// ~/.config. It returns "" when no home directory can be found.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "darch", "config.toml")
}

// Load reads the file at Path.
func Load() (Config, error) {
	p := Path()
	if p == "" {
		return Config{}, nil
	}
	return LoadFile(p)
}

// LoadFile reads the config at path. A missing file is not an error and
// yields a zero Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Config{}, nil
	case err != nil:
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}
	return cfg, nil
}
