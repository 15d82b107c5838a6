// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/rs/zerolog"
	"github.com/walteh/unpin/pkg/discover"
	"github.com/walteh/unpin/pkg/patch"
	"github.com/walteh/unpin/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is read when present; its absence is not an error
const DefaultFile = ".unpinrc.yaml"

// 🩹 Patch configures the single-file substitution run after the bulk pass
type Patch struct {
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	Old  string `json:"old,omitempty" yaml:"old,omitempty"`
	New  string `json:"new,omitempty" yaml:"new,omitempty"`
	Skip bool   `json:"skip,omitempty" yaml:"skip,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root     string   `json:"root,omitempty" yaml:"root,omitempty"`         // Directory patterns and the patch file are resolved against
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"` // Recursive globs selecting files to rewrite
	Packages []string `json:"packages,omitempty" yaml:"packages,omitempty"` // Packages collapsed to their bare name in a final pass
	Patch    *Patch   `json:"patch,omitempty" yaml:"patch,omitempty"`
	Jobs     int      `json:"jobs,omitempty" yaml:"jobs,omitempty"` // Files rewritten concurrently
	Debug    bool     `json:"debug,omitempty" yaml:"debug,omitempty"`

	location string
}

// 🏭 Default returns the built-in configuration: every TS/JS file under src/
// and postcss.config.js in the working directory
func Default() *Config {
	return &Config{
		Root:     ".",
		Patterns: append([]string(nil), discover.DefaultPatterns...),
		Packages: append([]string(nil), text.DefaultPackages...),
		Patch: &Patch{
			File: patch.DefaultFile,
			Old:  patch.DefaultOld,
			New:  patch.DefaultNew,
		},
		Jobs: 1,
	}
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes. Unset fields stay zero.
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// Path of the config file
	Path string
	// Required makes a missing config file an error
	Required bool
	// Flags holds command line overrides; zero fields are ignored
	Flags *Config
}

// 🎯 Load builds the configuration from defaults, then the config file, then
// UNPIN_* environment variables, then flags, and validates the result
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	cfg := Default()

	if opts.Path != "" {
		fileCfg, err := loadFile(ctx, opts.Path)
		switch {
		case err == nil:
			if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
				return nil, errors.Errorf("merging config file: %w", err)
			}
			cfg.location = opts.Path
		case errors.Is(err, fs.ErrNotExist) && !opts.Required:
			logger.Debug().Str("path", opts.Path).Msg("no config file, using defaults")
		default:
			return nil, err
		}
	}

	envCfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(cfg, envCfg, mergo.WithOverride); err != nil {
		return nil, errors.Errorf("merging environment: %w", err)
	}

	if opts.Flags != nil {
		if err := mergo.Merge(cfg, opts.Flags, mergo.WithOverride); err != nil {
			return nil, errors.Errorf("merging flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("loaded configuration")
	return cfg, nil
}

func loadFile(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}

	cfg, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if len(cfg.Patterns) == 0 {
		return errors.Errorf("at least one pattern is required")
	}
	if err := discover.ValidatePatterns(cfg.Patterns); err != nil {
		return err
	}
	if cfg.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}
	if cfg.PatchEnabled() && cfg.Patch.Old == "" {
		return errors.Errorf("patch.old is required when patch.file is set")
	}

	return nil
}

// PatchEnabled reports whether the configuration-file patch should run
func (cfg *Config) PatchEnabled() bool {
	return cfg.Patch != nil && !cfg.Patch.Skip && cfg.Patch.File != ""
}

// Location is the config file the configuration was read from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	patchFile := "none"
	if cfg.PatchEnabled() {
		patchFile = cfg.Patch.File
	}
	return fmt.Sprintf("%s [%s] patch=%s jobs=%d", cfg.Root, strings.Join(cfg.Patterns, ","), patchFile, cfg.Jobs)
}
