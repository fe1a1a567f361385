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
	"context"
	"reflect"
)

// ComputeFunc produces the value for a cache miss.
type ComputeFunc func(ctx context.Context) ([]string, error)

// Cache memoizes lookup results by Key.
// Implementations must be safe for concurrent use and must never cache errors.
type Cache interface {
	// GetOrCompute returns the value stored for key, or runs compute and
	// installs its result if no value has been installed meanwhile.
	GetOrCompute(ctx context.Context, key Key, compute ComputeFunc) ([]string, error)
	// Len returns the number of stored entries.
	Len() int
}

// Lookup is the cached by-type query exposed to registry consumers.
type Lookup interface {
	// Lookup is LookupWith(ctx, t, true, true).
	Lookup(ctx context.Context, t reflect.Type) ([]string, error)
	// LookupWith returns the identifiers of objects matching t under both flags.
	LookupWith(ctx context.Context, t reflect.Type, includeNonSingletons, allowEagerInit bool) ([]string, error)
}
