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

// Package discover expands recursive glob patterns into candidate file paths.
package discover

import (
	"context"
	"io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultPatterns match every TypeScript and JavaScript source under src/.
var DefaultPatterns = []string{
	"src/**/*.tsx",
	"src/**/*.ts",
	"src/**/*.jsx",
	"src/**/*.js",
}

// 🔍 Discoverer finds files matching a list of patterns within a filesystem
type Discoverer struct {
	fsys     fs.FS
	patterns []string
}

// 🏭 New creates a discoverer over fsys
func New(fsys fs.FS, patterns []string) *Discoverer {
	return &Discoverer{fsys: fsys, patterns: patterns}
}

// ValidatePatterns reports the first pattern doublestar cannot parse
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Discover returns the matches of every pattern, concatenated in pattern
// order. Paths use forward slashes and are relative to the filesystem root.
// A pattern with no matches is not an error. Wildcards never match names
// starting with a dot; only a literal dotted segment in the pattern does.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := ValidatePatterns(d.patterns); err != nil {
		return nil, err
	}

	var paths []string
	for _, pattern := range d.patterns {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("discovering files: %w", err)
		}

		matches, err := doublestar.Glob(d.fsys, pattern)
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}

		visible := 0
		for _, match := range matches {
			if isHidden(match, pattern) {
				continue
			}
			paths = append(paths, match)
			visible++
		}

		logger.Debug().Str("pattern", pattern).Int("matches", visible).Int("hidden", len(matches)-visible).Msg("expanded pattern")
	}

	return paths, nil
}

// isHidden reports whether match passes through a dot-prefixed name that the
// pattern did not spell out literally
func isHidden(match, pattern string) bool {
	segs := strings.Split(match, "/")
	pats := strings.Split(pattern, "/")
	for i, seg := range segs {
		if !strings.HasPrefix(seg, ".") {
			continue
		}
		// segment positions only line up until the first "**"
		if i < len(pats) && strings.HasPrefix(pats[i], ".") && !slices.Contains(pats[:i], "**") {
			continue
		}
		return true
	}
	return false
}
