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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

type hclPatch struct {
	File string `hcl:"file,optional"`
	Old  string `hcl:"old,optional"`
	New  string `hcl:"new,optional"`
	Skip bool   `hcl:"skip,optional"`
}

type hclConfig struct {
	Root     string    `hcl:"root,optional"`
	Patterns []string  `hcl:"patterns,optional"`
	Packages []string  `hcl:"packages,optional"`
	Jobs     int       `hcl:"jobs,optional"`
	Debug    bool      `hcl:"debug,optional"`
	Patch    *hclPatch `hcl:"patch,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:     raw.Root,
		Patterns: raw.Patterns,
		Packages: raw.Packages,
		Jobs:     raw.Jobs,
		Debug:    raw.Debug,
	}
	if raw.Patch != nil {
		cfg.Patch = &Patch{
			File: raw.Patch.File,
			Old:  raw.Patch.Old,
			New:  raw.Patch.New,
			Skip: raw.Patch.Skip,
		}
	}
	return cfg, nil
}
