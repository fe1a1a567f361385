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

package registry

import (
	"reflect"

	"dirpx.dev/typecache/apis"
)

// DefinitionOption adjusts a definition built by Singleton, Prototype or Value.
type DefinitionOption func(*apis.Definition)

// Lazy marks the definition as built on first use only.
func Lazy() DefinitionOption {
	return func(d *apis.Definition) { d.Lazy = true }
}

// Singleton defines one shared object of declared type T.
func Singleton[T any](name string, fn func(apis.Getter) (T, error), opts ...DefinitionOption) apis.Definition {
	return define[T](name, apis.Singleton, fn, opts)
}

// Prototype defines an object of declared type T built anew on every Get.
func Prototype[T any](name string, fn func(apis.Getter) (T, error), opts ...DefinitionOption) apis.Definition {
	return define[T](name, apis.Prototype, fn, opts)
}

// Value defines a pre-built singleton of declared type T.
func Value[T any](name string, v T, opts ...DefinitionOption) apis.Definition {
	d := apis.Definition{
		Name:     name,
		Type:     reflect.TypeFor[T](),
		Scope:    apis.Singleton,
		Instance: v,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func define[T any](name string, scope apis.Scope, fn func(apis.Getter) (T, error), opts []DefinitionOption) apis.Definition {
	d := apis.Definition{
		Name:  name,
		Type:  reflect.TypeFor[T](),
		Scope: scope,
	}
	if fn != nil {
		d.Factory = func(g apis.Getter) (any, error) {
			v, err := fn(g)
			if err != nil {
				return nil, err
			}
			return v, nil
		}
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
