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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		args        func(root string) []string
		wantErr     bool
		errContains string
		validate    func(t *testing.T, root, stdout string)
	}{
		{
			name: "explicit_config_missing",
			files: map[string]string{
				"src/App.tsx":       "import { Moon } from \"lucide-react@0.487.0\";\n",
				"postcss.config.js": "module.exports = {\n  plugins: {},\n}\n",
			},
			args: func(root string) []string {
				return []string{"--root", root, "--config", filepath.Join(root, ".unpinrc.yaml")}
			},
			wantErr:     true,
			errContains: "reading config file",
		},
		{
			name: "default_config_optional",
			files: map[string]string{
				"src/App.tsx":       "import { Moon } from \"lucide-react@0.487.0\";\n",
				"postcss.config.js": "module.exports = {\n  plugins: {},\n}\n",
			},
			args: func(root string) []string {
				return []string{"--root", root}
			},
			validate: func(t *testing.T, root, stdout string) {
				assert.Equal(t, "Fixed: src/App.tsx\n\nFixed 1 out of 1 files.\nFixed PostCSS config: "+
					filepath.Join(root, "postcss.config.js")+"\n", stdout)

				got, err := os.ReadFile(filepath.Join(root, "src", "App.tsx"))
				require.NoError(t, err)
				assert.Equal(t, "import { Moon } from \"lucide-react\";\n", string(got))

				got, err = os.ReadFile(filepath.Join(root, "postcss.config.js"))
				require.NoError(t, err)
				assert.Equal(t, "export default {\n  plugins: {},\n}\n", string(got))
			},
		},
		{
			name: "fix_subcommand_with_config_file",
			files: map[string]string{
				"app/main.ts":    "import { cva } from \"class-variance-authority@0.7.1\";\n",
				"src/ignored.ts": "import { cva } from \"class-variance-authority@0.7.1\";\n",
				"unpin.hcl":      "patterns = [\"app/**/*.ts\"]\n\npatch {\n  skip = true\n}\n",
			},
			args: func(root string) []string {
				return []string{"fix", "--root", root, "--config", filepath.Join(root, "unpin.hcl"), "--jobs", "2"}
			},
			validate: func(t *testing.T, root, stdout string) {
				assert.Equal(t, "Fixed: app/main.ts\n\nFixed 1 out of 1 files.\n", stdout)

				got, err := os.ReadFile(filepath.Join(root, "src", "ignored.ts"))
				require.NoError(t, err)
				assert.Contains(t, string(got), "@0.7.1", "files outside the patterns stay untouched")
			},
		},
		{
			name:  "no_files",
			files: map[string]string{"README.md": "hello"},
			args: func(root string) []string {
				return []string{"--root", root}
			},
			validate: func(t *testing.T, root, stdout string) {
				assert.Equal(t, "\nFixed 0 out of 0 files.\n", stdout)
			},
		},
		{
			name:  "rejects_arguments",
			files: map[string]string{},
			args: func(root string) []string {
				return []string{"--root", root, "extra"}
			},
			wantErr: true,
		},
		{
			name:  "rules_command",
			files: map[string]string{},
			args: func(root string) []string {
				return []string{"rules", "--root", root}
			},
			validate: func(t *testing.T, root, stdout string) {
				assert.Contains(t, stdout, "radix-ui")
				assert.Contains(t, stdout, "package:next-themes")
				assert.Contains(t, stdout, "module.exports = {")
			},
		},
		{
			name:  "version_command",
			files: map[string]string{},
			args: func(root string) []string {
				return []string{"version"}
			},
			validate: func(t *testing.T, root, stdout string) {
				assert.Contains(t, stdout, "unpin")
				assert.Contains(t, stdout, runtime.Version())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			stdout, _, err := execute(t, tt.args(root)...)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			tt.validate(t, root, stdout)
		})
	}
}
