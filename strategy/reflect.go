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

package strategy

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/typecache/apis"
	uref "dirpx.dev/typecache/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives "pkg.Type" names
// via reflection. Results are memoized per strategy instance.
func NewReflectStrategy() apis.Strategy {
	return &reflectStrategy{}
}

// reflectStrategy is the fallback naming step. It unwraps containers via
// Normalize, strips generic instantiation parameters, and can hide
// builtin/no-package names.
type reflectStrategy struct {
	names sync.Map // nameKey -> string
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// nameKey covers every config knob that changes the derived name.
type nameKey struct {
	t              reflect.Type
	includeBuiltin bool
	maxUnwrap      int
	mapPreferElem  bool
}

// TryName names v by its dynamic type.
func (s *reflectStrategy) TryName(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryNameType(reflect.TypeOf(v), cfg)
}

// TryNameType names t. It declines when no name can be derived so the
// caller can report the definition as unnamed.
func (s *reflectStrategy) TryNameType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	key := nameKey{t: t, includeBuiltin: cfg.IncludeBuiltins, maxUnwrap: cfg.MaxUnwrap, mapPreferElem: cfg.MapPreferElem}
	if v, ok := s.names.Load(key); ok {
		name := v.(string)
		return name, name != ""
	}

	name := derive(t, cfg)
	v, _ := s.names.LoadOrStore(key, name)
	name = v.(string)
	return name, name != ""
}

func derive(t reflect.Type, cfg apis.Config) string {
	base, err := uref.Normalize(t, cfg)
	if err != nil {
		return ""
	}
	name := stripTypeParams(base.Name())
	if p := base.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	if !cfg.IncludeBuiltins {
		return ""
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
