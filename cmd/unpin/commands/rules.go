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

package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/unpin/cmd/unpin/opts"
	"github.com/walteh/unpin/pkg/patch"
	"github.com/walteh/unpin/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a command listing the active substitution rules
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the substitution rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := opts.Prepare(cmd.Context())
			if err != nil {
				return err
			}

			data := pterm.TableData{{"#", "Rule", "Match", "Replace", "Files"}}
			for i, rule := range text.VersionedImportRules(cfg.Packages) {
				data = append(data, []string{strconv.Itoa(i + 1), rule.Name(), rule.From(), rule.To(), fmt.Sprint(cfg.Patterns)})
			}
			if cfg.PatchEnabled() {
				rule := patch.New(cfg.Root, cfg.Patch.File, cfg.Patch.Old, cfg.Patch.New).Rule()
				data = append(data, []string{strconv.Itoa(len(data)), rule.Name(), rule.From(), rule.To(), cfg.Patch.File})
			}

			if err := renderTable(cmd.OutOrStdout(), data, true); err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}
			return nil
		},
	}

	return cmd
}

// renderTable writes data as a pterm table
func renderTable(w io.Writer, data pterm.TableData, header bool) error {
	table, err := pterm.DefaultTable.WithHasHeader(header).WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
