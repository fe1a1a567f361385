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

// Package resolver names definitions that were registered without a name.
//
// A resolver runs naming strategies in order until one produces a name.
// Definitions carrying a pre-built instance are named from the instance
// first, so a value declared as an interface can still be named after its
// concrete type; everything else is named from the declared type. Unique
// then turns the chosen base into a registry-wide identifier.
package resolver

import (
	"reflect"
	"strconv"

	"dirpx.dev/typecache/apis"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The resolver is safe for concurrent use when
// the strategies are.
func New(strategies ...apis.Strategy) apis.Resolver {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Name runs strategies in order until one handles the value.
func (r chain) Name(v any, cfg apis.Config) string {
	for _, s := range r.strats {
		if name, ok := s.TryName(v, cfg); ok {
			return name
		}
	}
	return ""
}

// NameType runs strategies in order until one handles the type.
func (r chain) NameType(t reflect.Type, cfg apis.Config) string {
	for _, s := range r.strats {
		if name, ok := s.TryNameType(t, cfg); ok {
			return name
		}
	}
	return ""
}

// NameDefinition returns the base name for def: from its instance when it
// has one and a strategy handles it, otherwise from its declared type.
// An explicit def.Name is returned unchanged.
func (r chain) NameDefinition(def apis.Definition, cfg apis.Config) string {
	if def.Name != "" {
		return def.Name
	}
	if def.Instance != nil {
		if name := r.Name(def.Instance, cfg); name != "" {
			return name
		}
	}
	if def.Type == nil {
		return ""
	}
	return r.NameType(def.Type, cfg)
}

// Unique returns base when taken reports it free. Otherwise it appends
// "#1", "#2", ... and returns the first free candidate, so the first
// definition of a type keeps the bare name. An empty base stays empty.
func Unique(base string, taken func(string) bool) string {
	if base == "" || !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		if n := base + "#" + strconv.Itoa(i); !taken(n) {
			return n
		}
	}
}
