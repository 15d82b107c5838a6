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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/unpin/cmd/unpin/commands"
	"github.com/walteh/unpin/cmd/unpin/opts"
	"github.com/walteh/unpin/pkg/config"
)

// newRootCmd builds the command tree. Running the root command without a
// subcommand performs the fix.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &opts.RootOpts{Console: stdout}

	fix := commands.NewFixCmd(o)

	cmd := &cobra.Command{
		Use:   "unpin",
		Short: "Remove version pins from JavaScript and TypeScript imports",
		Long: `unpin rewrites version-pinned module specifiers such as "lucide-react@0.3.1"
to their bare package name across src/, then converts postcss.config.js to an ES module.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.ConfigRequired = cmd.Flags().Changed("config")
			cmd.SetContext(setupLogging(cmd.Context(), stderr, o.Debug))
			return nil
		},
		RunE: fix.RunE,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, o)

	cmd.AddCommand(
		fix,
		commands.NewRulesCmd(o),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().StringVarP(&o.Root, "root", "r", "", "directory to run in (default: current directory)")
	cmd.PersistentFlags().IntVarP(&o.Jobs, "jobs", "j", 0, "number of files rewritten concurrently (default: 1)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging returns ctx carrying a zerolog logger writing to w
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
