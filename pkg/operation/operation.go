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

// Package operation runs a complete unpin pass: discover candidate files,
// rewrite each one, report the tally, then patch the configuration file.
package operation

import (
	"context"
	"os"

	"github.com/walteh/unpin/pkg/config"
	"github.com/walteh/unpin/pkg/discover"
	"github.com/walteh/unpin/pkg/patch"
	"github.com/walteh/unpin/pkg/rewrite"
	"github.com/walteh/unpin/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Discoverer lists candidate files
type Discoverer interface {
	Discover(ctx context.Context) ([]string, error)
}

// ✏️ FileRewriter rewrites a single file in place
type FileRewriter interface {
	RewriteFile(ctx context.Context, path string) (*text.Result, error)
}

// 🩹 ConfigPatcher patches the configuration file after the bulk pass
type ConfigPatcher interface {
	// Label names the file in console output
	Label() string
	Patch(ctx context.Context) (*patch.Result, error)
}

// 🔧 Options contains the collaborators of a runner
type Options struct {
	Discoverer Discoverer
	Rewriter   FileRewriter
	// Patcher is optional; nil skips the configuration-file step
	Patcher ConfigPatcher
	// Jobs bounds concurrent rewrites; values below 2 run files one at a time
	Jobs int
}

// 📊 Summary is the outcome of a run
type Summary struct {
	Fixed int // files read and written back
	Total int // files attempted

	Patch    *patch.Result // nil when no patch ran or it failed
	PatchErr error
}

// 🏭 New creates a runner from explicit collaborators
func New(opts Options) (*Runner, error) {
	if opts.Discoverer == nil {
		return nil, errors.Errorf("discoverer is required")
	}
	if opts.Rewriter == nil {
		return nil, errors.Errorf("rewriter is required")
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{
		discoverer: opts.Discoverer,
		rewriter:   opts.Rewriter,
		patcher:    opts.Patcher,
		jobs:       jobs,
	}, nil
}

// 🏭 NewFromConfig wires the filesystem-backed discoverer, rewriter and
// patcher described by cfg
func NewFromConfig(cfg *config.Config) (*Runner, error) {
	opts := Options{
		Discoverer: discover.New(os.DirFS(cfg.Root), cfg.Patterns),
		Rewriter:   rewrite.New(cfg.Root, text.NewImportReplacer(cfg.Packages)),
		Jobs:       cfg.Jobs,
	}
	if cfg.PatchEnabled() {
		opts.Patcher = patch.New(cfg.Root, cfg.Patch.File, cfg.Patch.Old, cfg.Patch.New)
	}
	return New(opts)
}
