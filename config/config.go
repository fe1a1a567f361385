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

// Package config builds the apis.Config shared by a typecache.Context, its
// registry and its lookup cache.
//
// Backend picks the store behind the lookup cache. The remaining knobs only
// affect names generated for definitions registered without one:
// IncludeBuiltins allows names such as "string", MaxUnwrap bounds how far
// pointers and containers are unwrapped to reach a named type, and
// MapPreferElem picks the map side that names a map-typed definition.
package config

import (
	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/backend"
)

const (
	// DefaultBackend is the store behind lookup caches.
	DefaultBackend = backend.Map
	// DefaultIncludeBuiltins lets a definition declared as, e.g., int be
	// named "int".
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap covers any realistic nesting like []*map[string]*T.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem names map[K]V definitions after V.
	DefaultMapPreferElem = true
)

// NewConfig starts from DefaultConfig and applies opts in order.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig returns a memoizing Map-backed configuration with the
// default naming knobs.
func DefaultConfig() apis.Config {
	return apis.Config{
		Backend:         DefaultBackend,
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
	}
}

// Option mutates an apis.Config during NewConfig.
type Option func(*apis.Config)

// WithBackend selects the lookup cache store. Kinds outside Map, Locked
// and None leave the current backend unchanged.
func WithBackend(k backend.Kind) Option {
	return func(c *apis.Config) {
		switch k {
		case backend.Map, backend.Locked, backend.None:
			c.Backend = k
		}
	}
}

// WithIncludeBuiltins controls whether builtin types may name definitions.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap bounds unwrapping when naming definitions.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem picks V (true) or K (false) to name map[K]V definitions.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}
