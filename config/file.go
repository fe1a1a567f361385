/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/backend"
)

// EnvPrefix prefixes environment overrides, e.g. TYPECACHE_BACKEND.
const EnvPrefix = "TYPECACHE"

// Config file keys.
const (
	KeyBackend         = "backend"
	KeyIncludeBuiltins = "include_builtins"
	KeyMaxUnwrap       = "max_unwrap"
	KeyMapPreferElem   = "map_prefer_elem"
)

// file is the on-disk YAML layout.
type file struct {
	Backend         backend.Kind `yaml:"backend"`
	IncludeBuiltins bool         `yaml:"include_builtins"`
	MaxUnwrap       int          `yaml:"max_unwrap"`
	MapPreferElem   bool         `yaml:"map_prefer_elem"`
}

// Load reads a YAML config file at path, applies TYPECACHE_* environment
// overrides and fills unset keys with defaults. An empty path reads only
// the environment.
func Load(path string) (apis.Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault(KeyBackend, def.Backend.String())
	v.SetDefault(KeyIncludeBuiltins, def.IncludeBuiltins)
	v.SetDefault(KeyMaxUnwrap, def.MaxUnwrap)
	v.SetDefault(KeyMapPreferElem, def.MapPreferElem)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return apis.Config{}, fmt.Errorf("typecache(config): reading %s: %w", path, err)
		}
	}

	kind, err := backend.Parse(v.GetString(KeyBackend))
	if err != nil {
		return apis.Config{}, fmt.Errorf("typecache(config): %w", err)
	}

	return NewConfig(
		WithBackend(kind),
		WithIncludeBuiltins(v.GetBool(KeyIncludeBuiltins)),
		WithMaxUnwrap(v.GetInt(KeyMaxUnwrap)),
		WithMapPreferElem(v.GetBool(KeyMapPreferElem)),
	), nil
}

// Save writes cfg to path as YAML. The file is created or truncated.
func Save(path string, cfg apis.Config) error {
	if path == "" {
		return errors.New("typecache(config): empty path")
	}
	data, err := yaml.Marshal(file{
		Backend:         cfg.Backend,
		IncludeBuiltins: cfg.IncludeBuiltins,
		MaxUnwrap:       cfg.MaxUnwrap,
		MapPreferElem:   cfg.MapPreferElem,
	})
	if err != nil {
		return fmt.Errorf("typecache(config): encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("typecache(config): writing %s: %w", path, err)
	}
	return nil
}
