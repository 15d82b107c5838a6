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

// Package patch rewrites a single named configuration file if it exists.
package patch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/unpin/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Defaults convert a CommonJS PostCSS config to an ES module.
const (
	DefaultFile = "postcss.config.js"
	DefaultOld  = "module.exports = {"
	DefaultNew  = "export default {"
)

// 📋 Result describes what happened to the configuration file
type Result struct {
	Path         string
	Skipped      bool // file not present
	Replacements int
}

// 🩹 Patcher applies one literal substitution to one file
type Patcher struct {
	root string
	file string
	rule text.Rule
}

// 🏭 New creates a patcher for file (relative to root) replacing from with to
func New(root, file, from, to string) *Patcher {
	return &Patcher{
		root: root,
		file: file,
		rule: text.NewLiteralRule("config-patch", from, to),
	}
}

// Rule returns the substitution this patcher applies
func (p *Patcher) Rule() text.Rule {
	return p.rule
}

// Label names the file in console output: "PostCSS config" for any
// postcss.config.* file, otherwise the file's base name
func (p *Patcher) Label() string {
	base := filepath.Base(p.file)
	if strings.HasPrefix(base, "postcss.config.") {
		return "PostCSS config"
	}
	return base
}

// Patch rewrites the file. A missing file is skipped without error.
func (p *Patcher) Patch(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("patching config file: %w", err)
	}

	path := filepath.Join(p.root, p.file)
	result := &Result{Path: path}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Skipped = true
			return result, nil
		}
		return nil, errors.Errorf("checking config file: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	patched, n := p.rule.Apply(string(content))
	result.Replacements = n

	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil {
		return nil, errors.Errorf("writing config file: %w", err)
	}
	return result, nil
}
