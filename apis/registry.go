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

// Scope controls how many instances a registry hands out for a definition.
type Scope int

const (
	// Singleton definitions produce one shared instance per registry.
	Singleton Scope = iota
	// Prototype definitions produce a new instance on every Get.
	Prototype
)

// String returns "singleton", "prototype" or "Unknown(<n>)".
func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Prototype:
		return "prototype"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Getter returns managed objects by name.
type Getter interface {
	Get(name string) (any, error)
}

// Factory builds an object. g gives access to other objects of the same registry.
type Factory func(g Getter) (any, error)

// Definition is the registry metadata for one managed object.
type Definition struct {
	// Name is the identifier returned by lookups. Empty means "generate one".
	Name string
	// Type is the declared type of the object. Discovery matches on it.
	Type reflect.Type
	// Scope is Singleton unless stated otherwise.
	Scope Scope
	// Lazy marks objects that are only built on first use.
	Lazy bool
	// Factory builds the object. Ignored when Instance is set.
	Factory Factory
	// Instance is a pre-built singleton value.
	Instance any
}

// Registry holds definitions, answers uncached discovery and hands out objects.
// Metadata is frozen by Seal; discovery results are only stable afterwards.
type Registry interface {
	Discoverer
	Getter

	// Register adds definitions. It fails once the registry is sealed.
	Register(defs ...Definition) error
	// Seal freezes metadata. Returns true if this call sealed the registry.
	Seal() bool
	// Sealed reports whether metadata is frozen.
	Sealed() bool
	// Names returns all definition names in registration order.
	Names() []string
	// Definition returns the definition registered under name.
	Definition(name string) (Definition, bool)
	// Count returns the number of definitions.
	Count() int
	// Close releases singletons that hold resources.
	Close() error
}
