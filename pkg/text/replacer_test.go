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

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacer_Replace(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []Rule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:         "simple_replacement",
			content:      "Hello World",
			rules:        []Rule{NewLiteralRule("world", "World", "Universe")},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "multiple_replacements",
			content:      "Hello World World",
			rules:        []Rule{NewLiteralRule("world", "World", "Universe")},
			want:         "Hello Universe Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "rules_chain_in_order",
			content: "a",
			rules: []Rule{
				NewLiteralRule("a-b", "a", "b"),
				NewLiteralRule("b-c", "b", "c"),
			},
			want:         "c",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:         "regexp_with_groups",
			content:      "key=value",
			rules:        []Rule{MustRegexpRule("swap", `(\w+)=(\w+)`, "${2}=${1}")},
			want:         "value=key",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "no_match",
			content:      "Hello World",
			rules:        []Rule{NewLiteralRule("bye", "Goodbye", "Hi")},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_literal_ignored",
			content:      "Hello",
			rules:        []Rule{NewLiteralRule("empty", "", "x")},
			want:         "Hello",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      "Hello World",
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewReplacer(tt.rules...)
			result := replacer.Replace([]byte(tt.content))

			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestNewRegexpRule_InvalidPattern(t *testing.T) {
	_, err := NewRegexpRule("broken", `(unclosed`, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling rule broken")
}
