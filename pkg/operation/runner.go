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

package operation

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/walteh/unpin/pkg/log"
	"github.com/walteh/unpin/pkg/patch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes a full pass. Results are reported through the
// log.Logger carried in the context.
type Runner struct {
	discoverer Discoverer
	rewriter   FileRewriter
	patcher    ConfigPatcher
	jobs       int
}

// 🏃 Run executes the pass. Per-file and patch failures are reported and
// counted, never returned; only discovery errors and cancellation are.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	paths, err := r.discoverer.Discover(ctx)
	if err != nil {
		return nil, errors.Errorf("discovering files: %w", err)
	}
	logger.Debug().Int("files", len(paths)).Int("jobs", r.jobs).Msg("starting rewrite")

	var fixed, total atomic.Int64
	if r.jobs > 1 {
		err = r.runAsync(ctx, paths, &fixed, &total)
	} else {
		err = r.runSync(ctx, paths, &fixed, &total)
	}

	summary := &Summary{Fixed: int(fixed.Load()), Total: int(total.Load())}
	if err != nil {
		return summary, err
	}

	console.Summary(summary.Fixed, summary.Total)

	if r.patcher != nil {
		summary.Patch, summary.PatchErr = r.patchConfig(ctx, console)
	}

	return summary, nil
}

// 🔄 runSync rewrites files one at a time in discovery order
func (r *Runner) runSync(ctx context.Context, paths []string, fixed, total *atomic.Int64) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		total.Add(1)
		if r.rewriteOne(ctx, path) {
			fixed.Add(1)
		}
	}
	return nil
}

// ⚡ runAsync rewrites up to r.jobs files at once
func (r *Runner) runAsync(ctx context.Context, paths []string, fixed, total *atomic.Int64) error {
	var g errgroup.Group
	g.SetLimit(r.jobs)

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			total.Add(1)
			if r.rewriteOne(ctx, path) {
				fixed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	return nil
}

// rewriteOne reports the file outcome and whether it was fixed
func (r *Runner) rewriteOne(ctx context.Context, path string) bool {
	console := log.FromContext(ctx)

	result, err := r.rewriter.RewriteFile(ctx, path)
	if err != nil {
		console.LogFileOperation(ctx, log.FileOperation{Path: path, Err: err})
		return false
	}

	console.LogFileOperation(ctx, log.FileOperation{
		Path:         path,
		Replacements: result.ReplacementCount,
		IsModified:   result.WasModified,
	})
	return true
}

func (r *Runner) patchConfig(ctx context.Context, console *log.Logger) (*patch.Result, error) {
	result, err := r.patcher.Patch(ctx)
	if err != nil {
		console.ConfigFailed(r.patcher.Label(), err)
		return nil, err
	}
	if result.Skipped {
		console.ConfigSkipped(result.Path)
		return result, nil
	}
	console.ConfigPatched(r.patcher.Label(), result.Path, result.Replacements)
	return result, nil
}
