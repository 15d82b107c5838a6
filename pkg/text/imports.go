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
)

// Version suffixes always start with a digit directly after the '@' and run
// until the closing quote.
const (
	radixPattern  = `(@radix-ui/react-[^@"']+)@[0-9][^"']*`
	fromPattern   = `(from\s+["'])([^"']+)@[0-9][^"']*(["'])`
	importPattern = `(import\s+[^"']*["'])([^"']+)@[0-9][^"']*(["'])`
)

// DefaultPackages are collapsed to their bare quoted name after the generic rules run.
var DefaultPackages = []string{
	"class-variance-authority",
	"lucide-react",
	"sonner",
	"next-themes",
}

// 📦 PackageRule collapses "<name>@<anything>" to "<name>" inside double quotes
func PackageRule(name string) *RegexpRule {
	r := MustRegexpRule(
		"package:"+name,
		`"`+regexp.QuoteMeta(name)+`@[^"]*"`,
		`"`+name+`"`,
	)
	r.literal = true
	return r
}

// 🧹 VersionedImportRules returns the specifier-unpinning rules in the order
// they must run: radix-ui packages, from clauses, import clauses, then one
// rule per named package.
func VersionedImportRules(packages []string) []Rule {
	rules := []Rule{
		MustRegexpRule("radix-ui", radixPattern, "${1}"),
		MustRegexpRule("from-clause", fromPattern, "${1}${2}${3}"),
		MustRegexpRule("import-clause", importPattern, "${1}${2}${3}"),
	}
	for _, pkg := range packages {
		rules = append(rules, PackageRule(pkg))
	}
	return rules
}

// NewImportReplacer is the replacer used for source files
func NewImportReplacer(packages []string) *Replacer {
	return NewReplacer(VersionedImportRules(packages)...)
}
