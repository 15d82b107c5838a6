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
	"github.com/caarlos0/env/v11"
	"gitlab.com/tozd/go/errors"
)

// envConfig lists the settings that can be overridden from the environment
type envConfig struct {
	Root  string `env:"UNPIN_ROOT"`
	Jobs  int    `env:"UNPIN_JOBS"`
	Debug bool   `env:"UNPIN_DEBUG"`
}

// 🌱 FromEnv reads UNPIN_ROOT, UNPIN_JOBS and UNPIN_DEBUG. Unset variables
// leave the corresponding field zero.
func FromEnv() (*Config, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return nil, errors.Errorf("parsing environment: %w", err)
	}
	return &Config{
		Root:  e.Root,
		Jobs:  e.Jobs,
		Debug: e.Debug,
	}, nil
}
