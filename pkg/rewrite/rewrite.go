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

// Package rewrite applies a replacer to files on disk, in place.
package rewrite

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/unpin/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidUTF8 is returned for files that are not valid UTF-8 text
var ErrInvalidUTF8 = errors.Base("invalid UTF-8")

// ✏️ Rewriter loads a file, runs the replacer over it and writes it back
type Rewriter struct {
	root     string
	replacer *text.Replacer
}

// 🏭 New creates a rewriter resolving slash-separated paths against root
func New(root string, replacer *text.Replacer) *Rewriter {
	return &Rewriter{root: root, replacer: replacer}
}

// RewriteFile rewrites path in place. The file is always written back once
// read, even when no rule matched. If reading fails, or the content is not
// valid UTF-8, nothing is written.
func (r *Rewriter) RewriteFile(ctx context.Context, path string) (*text.Result, error) {
	full := filepath.Join(r.root, filepath.FromSlash(path))

	content, err := os.ReadFile(full)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	if !utf8.Valid(content) {
		return nil, errors.Errorf("reading file: %w", ErrInvalidUTF8)
	}

	result := r.replacer.Replace(content)

	// existing files keep their mode, 0644 only applies if the file vanished
	if err := os.WriteFile(full, result.ModifiedContent, 0o644); err != nil {
		return nil, errors.Errorf("writing file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", path).
		Int("replacements", result.ReplacementCount).
		Bool("modified", result.WasModified).
		Msg("rewrote file")

	return result, nil
}
