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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/unpin/pkg/discover"
	"github.com/walteh/unpin/pkg/patch"
	"github.com/walteh/unpin/pkg/text"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, discover.DefaultPatterns, cfg.Patterns)
	assert.Equal(t, text.DefaultPackages, cfg.Packages)
	assert.Equal(t, 1, cfg.Jobs)
	assert.True(t, cfg.PatchEnabled())
	assert.Equal(t, patch.DefaultFile, cfg.Patch.File)
	assert.Equal(t, "module.exports = {", cfg.Patch.Old)
	assert.Equal(t, "export default {", cfg.Patch.New)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_overrides",
			file: ".unpinrc.yaml",
			config: `
root: web
patterns:
  - app/**/*.ts
jobs: 4
patch:
  file: postcss.config.mjs
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "web", cfg.Root)
				assert.Equal(t, []string{"app/**/*.ts"}, cfg.Patterns)
				assert.Equal(t, text.DefaultPackages, cfg.Packages, "packages should keep default")
				assert.Equal(t, 4, cfg.Jobs)
				assert.Equal(t, "postcss.config.mjs", cfg.Patch.File)
				assert.Equal(t, patch.DefaultOld, cfg.Patch.Old, "patch old should keep default")
			},
		},
		{
			name:   "empty_yaml_keeps_defaults",
			file:   ".unpinrc.yml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default().Patterns, cfg.Patterns)
				assert.True(t, cfg.PatchEnabled())
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        ".unpinrc.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name: "json_overrides",
			file: "unpin.json",
			config: `{
				"packages": ["lucide-react"],
				"patch": {"skip": true}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"lucide-react"}, cfg.Packages)
				assert.False(t, cfg.PatchEnabled())
			},
		},
		{
			name:        "json_unknown_field",
			file:        "unpin.json",
			config:      `{"provider": {}}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name: "hcl_overrides",
			file: "unpin.hcl",
			config: `
root     = "frontend"
patterns = ["src/**/*.tsx"]
debug    = true

patch {
  file = "vite.config.js"
  old  = "module.exports ="
  new  = "export default"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "frontend", cfg.Root)
				assert.Equal(t, []string{"src/**/*.tsx"}, cfg.Patterns)
				assert.True(t, cfg.Debug)
				assert.Equal(t, "vite.config.js", cfg.Patch.File)
				assert.Equal(t, "module.exports =", cfg.Patch.Old)
				assert.Equal(t, "export default", cfg.Patch.New)
			},
		},
		{
			name:        "hcl_syntax_error",
			file:        "unpin.hcl",
			config:      `root = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "bad_pattern",
			file:        ".unpinrc.yaml",
			config:      "patterns: [\"src/[*.ts\"]\n",
			wantErr:     true,
			errContains: "invalid pattern",
		},
		{
			name:        "bad_jobs",
			file:        ".unpinrc.yaml",
			config:      "jobs: -2\n",
			wantErr:     true,
			errContains: "jobs must be at least 1",
		},
		{
			name:        "unsupported_extension",
			file:        "unpin.toml",
			config:      "root = 'x'",
			wantErr:     true,
			errContains: "unsupported file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.config)

			cfg, err := Load(testContext(t), LoadOptions{Path: path, Required: true})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			tt.check(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	cfg, err := Load(testContext(t), LoadOptions{Path: path})
	require.NoError(t, err, "missing optional config should fall back to defaults")
	assert.Equal(t, Default().Patterns, cfg.Patterns)
	assert.Empty(t, cfg.Location())

	_, err = Load(testContext(t), LoadOptions{Path: path, Required: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, ".unpinrc.yaml", "root: from-file\njobs: 2\n")

	t.Setenv("UNPIN_ROOT", "from-env")
	t.Setenv("UNPIN_JOBS", "3")

	cfg, err := Load(testContext(t), LoadOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Root)
	assert.Equal(t, 3, cfg.Jobs)

	cfg, err = Load(testContext(t), LoadOptions{
		Path:  path,
		Flags: &Config{Root: "from-flag"},
	})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Root)
	assert.Equal(t, 3, cfg.Jobs)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("UNPIN_JOBS", "many")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment")
}
