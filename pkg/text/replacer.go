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

// 📊 Result contains the outcome of running a rule set over some content
type Result struct {
	// WasModified indicates if any rule changed the content
	WasModified bool

	// ReplacementCount is the total number of matches replaced across all rules
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// 🔄 Replacer applies an ordered rule set. Each rule sees the output of the
// rule before it. A Replacer is safe for concurrent use.
type Replacer struct {
	rules []Rule
}

// 🏭 NewReplacer creates a replacer running rules in the given order
func NewReplacer(rules ...Rule) *Replacer {
	return &Replacer{rules: rules}
}

// Rules returns the rule set in application order
func (r *Replacer) Rules() []Rule {
	return r.rules
}

// Replace runs every rule over content
func (r *Replacer) Replace(content []byte) *Result {
	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := string(content)
	for _, rule := range r.rules {
		next, n := rule.Apply(current)
		result.ReplacementCount += n
		if next != current {
			result.WasModified = true
		}
		current = next
	}

	result.ModifiedContent = []byte(current)
	return result
}
