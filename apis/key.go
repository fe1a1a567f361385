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

package apis

import (
	"fmt"
	"reflect"
)

// Key identifies one distinct by-type lookup: a type plus the two lookup flags.
//
// Type is compared by identity. The runtime keeps exactly one descriptor per
// type, so two types that merely look alike (same name in different packages,
// identical struct shape, etc.) never produce equal keys.
//
// Key is comparable and is used directly as a map key.
type Key struct {
	// Type is the requested type.
	Type reflect.Type
	// IncludeNonSingletons also matches objects that are not singletons.
	IncludeNonSingletons bool
	// AllowEagerInit allows matching objects whose concrete type is only
	// known after initialization.
	AllowEagerInit bool
}

// NewKey builds a Key from a type and both lookup flags.
func NewKey(t reflect.Type, includeNonSingletons, allowEagerInit bool) Key {
	return Key{Type: t, IncludeNonSingletons: includeNonSingletons, AllowEagerInit: allowEagerInit}
}

// DefaultKey builds the Key used by the single-argument lookup (both flags true).
func DefaultKey(t reflect.Type) Key { return NewKey(t, true, true) }

// IsZero reports whether the key has no type.
func (k Key) IsZero() bool { return k.Type == nil }

// String returns a human-readable representation for logs.
func (k Key) String() string {
	tn := "<nil>"
	if k.Type != nil {
		tn = k.Type.String()
	}
	return fmt.Sprintf("Key{%s ns=%t eager=%t}", tn, k.IncludeNonSingletons, k.AllowEagerInit)
}
