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

package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/unpin/pkg/config"
	"github.com/walteh/unpin/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile     string
	ConfigRequired bool // set when --config was passed explicitly
	Root           string
	Jobs           int
	Debug          bool

	// Console receives user-facing result lines
	Console io.Writer
}

// Prepare loads the configuration and returns a context carrying a zerolog
// logger at the configured level plus the console logger
func (o *RootOpts) Prepare(ctx context.Context) (context.Context, *config.Config, error) {
	cfg, err := config.Load(ctx, config.LoadOptions{
		Path:     o.ConfigFile,
		Required: o.ConfigRequired,
		Flags: &config.Config{
			Root:  o.Root,
			Jobs:  o.Jobs,
			Debug: o.Debug,
		},
	})
	if err != nil {
		return ctx, nil, errors.Errorf("loading config: %w", err)
	}

	zlog := zerolog.Ctx(ctx).With().Logger()
	if cfg.Debug {
		zlog = zlog.Level(zerolog.DebugLevel)
	}
	ctx = zlog.WithContext(ctx)
	ctx = log.NewContext(ctx, log.New(o.Console, zlog))

	return ctx, cfg, nil
}
