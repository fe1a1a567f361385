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

// Package reflect holds reflection helpers shared by naming strategies.
package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrNotNamed indicates that no named type was found after unwrapping
	// containers (anonymous struct, func, interface{} literal, ...).
	ErrNotNamed = errors.New("reflect: type has no nearest named type")
)

// Normalize returns the nearest named type inside t.
//
// ptr/slice/array/chan unwrap to Elem. For map[K]V the preferred side
// (V when cfg.MapPreferElem, else K) is returned if named, then the other
// side; otherwise unwrapping continues into V. At most cfg.MaxUnwrap levels
// are unwrapped (config.DefaultMaxUnwrap when <= 0).
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}

	for ; t != nil && depth > 0; depth-- {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			if n := namedSide(t, cfg.MapPreferElem); n != nil {
				return n, nil
			}
			t = t.Elem()
		default:
			return named(t)
		}
	}
	return named(t)
}

// namedSide returns the first named side of a map type in preference order.
func namedSide(m reflect.Type, preferElem bool) reflect.Type {
	first, second := m.Key(), m.Elem()
	if preferElem {
		first, second = second, first
	}
	for _, s := range [...]reflect.Type{first, second} {
		if s.Name() != "" {
			return s
		}
	}
	return nil
}

func named(t reflect.Type) (reflect.Type, error) {
	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrNotNamed
}
