// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package config loads the reasoning pipeline's runtime configuration
// from layered sources: built-in defaults, an optional YAML file, and
// command-line flags, in that priority order.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/lojban-nesy/lojbanesy/internal/xdg"
)

// Config is the full set of tunables the pipeline's stages read at
// startup. Each field's koanf struct tag is its YAML/flag key verbatim
// (snake_case, e.g. max_parse_depth), since koanf unmarshals by tag.
type Config struct {
	// MaxParseDepth bounds recursive-descent recursion (tanru chains,
	// nested relative clauses, nested abstractions) before the parser
	// reports a depth-exceeded diagnostic instead of recursing further.
	MaxParseDepth int `koanf:"max_parse_depth"`
	// MaxSaturationSteps bounds one reasoning-core saturation run.
	MaxSaturationSteps int `koanf:"max_saturation_steps"`
	// DefaultArity is loaded like the other settings, but no pipeline
	// stage reads it: the semantic compiler always uses
	// predicate.DefaultArity (2) for a predicate with no dictionary entry.
	DefaultArity int `koanf:"default_arity"`
	// StrictMode reports every warning an Execute call raised, including
	// unknown-predicate and unresolved-anaphor diagnostics, as an error.
	// The promotion happens after the call's assert or query has run; it
	// does not stop compilation or reasoning.
	StrictMode bool `koanf:"strict_mode"`
	// XorloMode selects xorlo descriptor semantics (lo always claims
	// existence) over the naive-descriptor fallback when the
	// distinction affects Skolemization; reserved for the semantic
	// compiler's descriptor handling.
	XorloMode bool `koanf:"xorlo_mode"`
}

// Default returns the configuration used when no file or flags
// override it.
func Default() Config {
	return Config{
		MaxParseDepth:      256,
		MaxSaturationSteps: 100,
		DefaultArity:       2,
		StrictMode:         false,
		XorloMode:          true,
	}
}

// DefaultPath returns the config file path Load checks when no
// explicit path is given: $XDG_CONFIG_HOME/lojbanesy/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigDir(), "config.yaml")
}

// Load builds a Config by layering, lowest priority first: built-in
// defaults, the YAML file at path (skipped if path is "" or the file
// doesn't exist), and flags bound into fs (skipped if fs is nil).
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return Config{}, oops.Code("CONFIG_DEFAULTS").Wrapf(err, "load built-in defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, oops.Code("CONFIG_FILE").With("path", path).Wrapf(err, "load config file")
			}
		} else if !os.IsNotExist(err) {
			return Config{}, oops.Code("CONFIG_FILE").With("path", path).Wrapf(err, "stat config file")
		}
	}

	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS").Wrapf(err, "load command-line flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_UNMARSHAL").Wrapf(err, "unmarshal config")
	}
	return cfg, nil
}

func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"max_parse_depth":      d.MaxParseDepth,
		"max_saturation_steps": d.MaxSaturationSteps,
		"default_arity":        d.DefaultArity,
		"strict_mode":          d.StrictMode,
		"xorlo_mode":           d.XorloMode,
	}
}

// RegisterFlags adds the pipeline's overridable settings to fs, for
// cmd/lojban to bind before calling Load. Flag names use underscores,
// matching the Config struct's koanf tags exactly, since
// providers/posflag keys a flag's value by its literal flag name with
// no hyphen/underscore translation.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int("max_parse_depth", d.MaxParseDepth, "maximum parser recursion depth")
	fs.Int("max_saturation_steps", d.MaxSaturationSteps, "maximum reasoning saturation steps per query")
	fs.Int("default_arity", d.DefaultArity, "default place count (loaded; the compiler uses a fixed 2 for unknown predicates)")
	fs.Bool("strict_mode", d.StrictMode, "treat unknown-predicate and unresolved-anaphor diagnostics as errors")
	fs.Bool("xorlo_mode", d.XorloMode, "use xorlo descriptor existence semantics")
}
