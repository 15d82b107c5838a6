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
	"github.com/spf13/cobra"
	"github.com/walteh/unpin/cmd/unpin/opts"
	"github.com/walteh/unpin/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates the fix command. The root command runs it when invoked
// without a subcommand.
func NewFixCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Strip version pins from import specifiers",
		Long: `Fix rewrites every matching source file in place.
It will:
1. Find files matching the configured globs (src/**/*.{tsx,ts,jsx,js})
2. Remove "@<version>" suffixes from import specifiers
3. Report how many files were rewritten
4. Convert postcss.config.js from module.exports to export default`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := opts.Prepare(cmd.Context())
			if err != nil {
				return err
			}

			runner, err := operation.NewFromConfig(cfg)
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			if _, err := runner.Run(ctx); err != nil {
				return errors.Errorf("fixing imports: %w", err)
			}

			return nil
		},
	}

	return cmd
}
