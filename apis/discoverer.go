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
	"errors"
	"fmt"
	"reflect"
)

// ErrDiscovery matches every discovery failure via errors.Is.
var ErrDiscovery = errors.New("typecache: discovery failed")

// Discoverer is the uncached by-type query of a registry.
//
// Discover returns the identifiers of all objects assignable to t, in a
// stable order, honoring both flags. It must not mutate shared state: the
// cache may run it more than once for the same arguments.
type Discoverer interface {
	Discover(ctx context.Context, t reflect.Type, includeNonSingletons, allowEagerInit bool) ([]string, error)
}

// DiscovererFunc adapts a plain function to the Discoverer interface.
type DiscovererFunc func(ctx context.Context, t reflect.Type, includeNonSingletons, allowEagerInit bool) ([]string, error)

// Discover implements Discoverer.
func (f DiscovererFunc) Discover(ctx context.Context, t reflect.Type, includeNonSingletons, allowEagerInit bool) ([]string, error) {
	return f(ctx, t, includeNonSingletons, allowEagerInit)
}

// DiscoveryError reports why a discovery for Type failed.
type DiscoveryError struct {
	Type reflect.Type
	Err  error
}

func (e *DiscoveryError) Error() string {
	tn := "<nil>"
	if e.Type != nil {
		tn = e.Type.String()
	}
	return fmt.Sprintf("typecache: discovery for %s failed: %v", tn, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DiscoveryError) Unwrap() error { return e.Err }

// Is makes every DiscoveryError match ErrDiscovery.
func (e *DiscoveryError) Is(target error) bool { return target == ErrDiscovery }

// NewDiscoveryError wraps err as a discovery failure for t.
func NewDiscoveryError(t reflect.Type, err error) error {
	return &DiscoveryError{Type: t, Err: err}
}
