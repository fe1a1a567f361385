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

package typecache

import (
	"context"
	"fmt"
	"reflect"
)

// NamesOf returns the names of all objects assignable to T.
func NamesOf[T any](ctx context.Context, c *Context) ([]string, error) {
	return c.Lookup(ctx, reflect.TypeFor[T]())
}

// InstancesOf returns every object assignable to T keyed by name. Names
// come from the cached lookup; objects are fetched from the registry.
func InstancesOf[T any](ctx context.Context, c *Context) (map[string]T, error) {
	names, err := NamesOf[T](ctx, c)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(names))
	for _, name := range names {
		v, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		tv, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("typecache: %q is %T, not %v", name, v, reflect.TypeFor[T]())
		}
		out[name] = tv
	}
	return out, nil
}
