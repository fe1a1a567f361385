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
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-logr/logr"
	"github.com/samber/do"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/resolver"
	"dirpx.dev/typecache/strategy"
)

var (
	// ErrNilType is returned when a definition or a lookup has no type.
	ErrNilType = errors.New("typecache(registry): nil reflect.Type provided")
	// ErrSealed is returned by Register once metadata is frozen.
	ErrSealed = errors.New("typecache(registry): registry is sealed")
	// ErrNotSealed is returned by Discover before Seal.
	ErrNotSealed = errors.New("typecache(registry): registry is not sealed")
	// ErrDuplicateName indicates a second definition under a taken name.
	ErrDuplicateName = errors.New("typecache(registry): duplicate definition name")
	// ErrInvalidDefinition indicates a definition that cannot produce an object.
	ErrInvalidDefinition = errors.New("typecache(registry): invalid definition")
	// ErrUnknownName is returned by Get and Definition lookups for unregistered names.
	ErrUnknownName = errors.New("typecache(registry): unknown definition name")
)

// Option configures a registry.
type Option func(*registry)

// WithResolver sets the resolver used to name definitions registered
// without a name.
func WithResolver(r apis.Resolver) Option {
	return func(reg *registry) {
		if r != nil {
			reg.names = r
		}
	}
}

// WithLogger sets the registry logger.
func WithLogger(l logr.Logger) Option {
	return func(reg *registry) {
		reg.log = l
	}
}

// New constructs an empty, unsealed Registry.
func New(cfg apis.Config, opts ...Option) apis.Registry {
	r := &registry{
		cfg:    cfg,
		names:  resolver.New(strategy.NewNamerStrategy(), strategy.NewReflectStrategy()),
		log:    logr.Discard(),
		byName: make(map[string]int),
		inj:    do.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// registry keeps definitions in registration order. Singletons are
// provided through a samber/do injector, which builds each one at most once.
type registry struct {
	cfg   apis.Config
	names apis.Resolver
	log   logr.Logger

	// mu guards defs, byName and sealed.
	mu     sync.RWMutex
	defs   []apis.Definition
	byName map[string]int
	sealed bool

	inj *do.Injector
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register validates all definitions and adds them atomically: either all
// are added or none.
func (r *registry) Register(defs ...apis.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}

	batch := make([]apis.Definition, 0, len(defs))
	taken := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if err := validate(def); err != nil {
			return err
		}
		if def.Name == "" {
			def.Name = r.generateName(def, taken)
			if def.Name == "" {
				return fmt.Errorf("%w: cannot derive a name for %v", ErrInvalidDefinition, def.Type)
			}
		} else if _, dup := r.byName[def.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		} else if _, dup := taken[def.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		}
		taken[def.Name] = struct{}{}
		batch = append(batch, def)
	}

	for _, def := range batch {
		r.byName[def.Name] = len(r.defs)
		r.defs = append(r.defs, def)
		if def.Scope == apis.Singleton {
			r.provide(def)
		}
		r.log.V(1).Info("registered definition", "name", def.Name, "type", def.Type.String(), "scope", def.Scope.String(), "lazy", def.Lazy)
	}
	return nil
}

func validate(def apis.Definition) error {
	if def.Type == nil {
		return ErrNilType
	}
	switch def.Scope {
	case apis.Singleton, apis.Prototype:
	default:
		return fmt.Errorf("%w: scope %v", ErrInvalidDefinition, def.Scope)
	}
	if def.Instance != nil {
		if def.Scope != apis.Singleton {
			return fmt.Errorf("%w: instance given for %v scope", ErrInvalidDefinition, def.Scope)
		}
		if !reflect.TypeOf(def.Instance).AssignableTo(def.Type) {
			return fmt.Errorf("%w: %T is not assignable to %v", ErrInvalidDefinition, def.Instance, def.Type)
		}
		if nilValue(def.Instance) {
			return fmt.Errorf("%w: nil %T instance", ErrInvalidDefinition, def.Instance)
		}
		return nil
	}
	if def.Factory == nil {
		return fmt.Errorf("%w: %v has neither factory nor instance", ErrInvalidDefinition, def.Type)
	}
	return nil
}

// nilValue reports a typed nil held in a non-nil interface.
func nilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// generateName names def via the resolver, suffixed so that the name is
// free in both the registry and the pending batch. Callers hold r.mu.
func (r *registry) generateName(def apis.Definition, taken map[string]struct{}) string {
	return resolver.Unique(r.names.NameDefinition(def, r.cfg), func(n string) bool {
		_, a := r.byName[n]
		_, b := taken[n]
		return a || b
	})
}

func (r *registry) provide(def apis.Definition) {
	if def.Instance != nil {
		do.ProvideNamedValue[any](r.inj, def.Name, def.Instance)
		return
	}
	do.ProvideNamed[any](r.inj, def.Name, func(*do.Injector) (any, error) {
		return r.build(def)
	})
}

// build runs the factory and checks the result against the declared type.
func (r *registry) build(def apis.Definition) (any, error) {
	v, err := def.Factory(r)
	if err != nil {
		return nil, fmt.Errorf("typecache(registry): building %q: %w", def.Name, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: factory for %q returned nil", ErrInvalidDefinition, def.Name)
	}
	if !reflect.TypeOf(v).AssignableTo(def.Type) {
		return nil, fmt.Errorf("%w: factory for %q returned %T, not %v", ErrInvalidDefinition, def.Name, v, def.Type)
	}
	return v, nil
}

// Seal freezes metadata. Returns true if this call sealed the registry.
func (r *registry) Seal() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return false
	}
	r.sealed = true
	r.log.V(1).Info("registry sealed", "definitions", len(r.defs))
	return true
}

// Sealed reports whether metadata is frozen.
func (r *registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Discover scans every definition in registration order and returns the
// names whose declared type is assignable to t.
//
// With includeNonSingletons false, prototype definitions are skipped.
// With allowEagerInit false, lazy definitions declared as an interface are
// skipped: their concrete type is only known after they are built.
func (r *registry) Discover(ctx context.Context, t reflect.Type, includeNonSingletons, allowEagerInit bool) ([]string, error) {
	if t == nil {
		return nil, apis.NewDiscoveryError(nil, ErrNilType)
	}
	if err := ctx.Err(); err != nil {
		return nil, apis.NewDiscoveryError(t, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.sealed {
		return nil, apis.NewDiscoveryError(t, ErrNotSealed)
	}

	names := make([]string, 0)
	for _, def := range r.defs {
		if !includeNonSingletons && def.Scope != apis.Singleton {
			continue
		}
		if !allowEagerInit && def.Lazy && def.Type.Kind() == reflect.Interface {
			continue
		}
		if def.Type.AssignableTo(t) {
			names = append(names, def.Name)
		}
	}
	return names, nil
}

// Get returns the object registered under name. Singletons are built once;
// prototypes are built on every call.
func (r *registry) Get(name string) (any, error) {
	r.mu.RLock()
	i, ok := r.byName[name]
	var def apis.Definition
	if ok {
		def = r.defs[i]
	}
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	if def.Scope == apis.Prototype {
		return r.build(def)
	}
	return do.InvokeNamed[any](r.inj, name)
}

// Names returns all definition names in registration order.
func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.Name
	}
	return out
}

// Definition returns the definition registered under name.
func (r *registry) Definition(name string) (apis.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byName[name]
	if !ok {
		return apis.Definition{}, false
	}
	return r.defs[i], true
}

// Count returns the number of definitions.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Close shuts down built singletons that implement do.Shutdownable
// (a Shutdown() error method).
func (r *registry) Close() error {
	return r.inj.Shutdown()
}
