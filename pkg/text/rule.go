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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single substitution applied across an entire string.
type Rule interface {
	// Name identifies the rule in logs and listings
	Name() string
	// From is the pattern or literal text the rule looks for
	From() string
	// To is the replacement template
	To() string
	// Apply replaces every non-overlapping match, left to right, and
	// returns the new content plus the number of matches replaced
	Apply(content string) (string, int)
}

// 🧩 RegexpRule replaces regular expression matches using a template that
// may reference capture groups ($1, ${2}).
type RegexpRule struct {
	name     string
	re       *regexp.Regexp
	template string
	literal  bool
}

// 🏭 NewRegexpRule compiles pattern into a rule
func NewRegexpRule(name, pattern, template string) (*RegexpRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling rule %s: %w", name, err)
	}
	return &RegexpRule{name: name, re: re, template: template}, nil
}

// MustRegexpRule is NewRegexpRule for patterns known at compile time.
func MustRegexpRule(name, pattern, template string) *RegexpRule {
	r, err := NewRegexpRule(name, pattern, template)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *RegexpRule) Name() string { return r.name }
func (r *RegexpRule) From() string { return r.re.String() }
func (r *RegexpRule) To() string   { return r.template }

func (r *RegexpRule) Apply(content string) (string, int) {
	n := len(r.re.FindAllStringIndex(content, -1))
	if n == 0 {
		return content, 0
	}
	if r.literal {
		return r.re.ReplaceAllLiteralString(content, r.template), n
	}
	return r.re.ReplaceAllString(content, r.template), n
}

// 📝 LiteralRule replaces every occurrence of a fixed substring.
type LiteralRule struct {
	name string
	from string
	to   string
}

// 🏭 NewLiteralRule creates a plain substring rule
func NewLiteralRule(name, from, to string) *LiteralRule {
	return &LiteralRule{name: name, from: from, to: to}
}

func (r *LiteralRule) Name() string { return r.name }
func (r *LiteralRule) From() string { return r.from }
func (r *LiteralRule) To() string   { return r.to }

func (r *LiteralRule) Apply(content string) (string, int) {
	// an empty needle would match between every rune
	if r.from == "" {
		return content, 0
	}
	n := strings.Count(content, r.from)
	if n == 0 {
		return content, 0
	}
	return strings.ReplaceAll(content, r.from, r.to), n
}
