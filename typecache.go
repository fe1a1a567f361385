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
	"errors"
	"reflect"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/backend"
	"dirpx.dev/typecache/builder"
	"dirpx.dev/typecache/config"
	"dirpx.dev/typecache/lookup"
)

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("typecache: builder returned nil registry")
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("typecache: builder returned nil cache")
)

// Option configures New.
type Option func(*options)

type options struct {
	cfg apis.Config
	bld apis.Builder
	log logr.Logger
	tp  trace.TracerProvider
	mp  metric.MeterProvider
}

// WithConfig replaces config.DefaultConfig().
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithBuilder replaces the default builder. The builder's BuildCache is
// called exactly once per New.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) { o.bld = b }
}

// WithLogger sets the logger. It is also handed to the default builder.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracerProvider sets the provider for discovery spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tp = tp }
}

// WithMeterProvider sets the provider for cache counters of the default builder.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.mp = mp }
}

// Context is one registry instance together with its own lookup cache.
// It is safe for concurrent use.
type Context struct {
	id    string
	cfg   apis.Config
	log   logr.Logger
	reg   apis.Registry
	cache apis.Cache
	look  apis.Lookup
}

// New builds a registry and a fresh lookup cache through the builder and
// wires the cached by-type lookup over them.
func New(opts ...Option) (*Context, error) {
	o := options{
		cfg: config.DefaultConfig(),
		log: logr.Discard(),
		tp:  otel.GetTracerProvider(),
		mp:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bld == nil {
		o.bld = builder.New(builder.WithLogger(o.log), builder.WithMeterProvider(o.mp))
	}

	reg := o.bld.BuildRegistry(o.cfg)
	if reg == nil {
		return nil, ErrNilRegistry
	}
	c := o.bld.BuildCache(o.cfg)
	if c == nil {
		return nil, ErrNilCache
	}

	id := uuid.NewString()
	ctx := &Context{
		id:    id,
		cfg:   o.cfg,
		log:   o.log.WithValues("context", id),
		reg:   reg,
		cache: c,
		look:  lookup.New(reg, c, lookup.WithTracerProvider(o.tp)),
	}
	ctx.log.Info("typecache context created", "backend", o.cfg.Backend.String())
	if o.cfg.Backend == backend.None {
		ctx.log.Info("warning: lookup cache disabled, every lookup runs discovery", "backend", o.cfg.Backend.String())
	}
	return ctx, nil
}

// ID returns the unique instance id.
func (c *Context) ID() string { return c.id }

// Config returns the configuration the context was built with.
func (c *Context) Config() apis.Config { return c.cfg }

// Registry returns the underlying registry.
func (c *Context) Registry() apis.Registry { return c.reg }

// Register adds definitions to the registry.
func (c *Context) Register(defs ...apis.Definition) error {
	return c.reg.Register(defs...)
}

// Seal freezes registry metadata. Lookups are only cached once the
// registry reports success, which the reference registry does after Seal.
func (c *Context) Seal() bool {
	sealed := c.reg.Seal()
	if sealed {
		c.log.Info("registry sealed", "definitions", c.reg.Count())
	}
	return sealed
}

// Lookup returns the names of all objects assignable to t, including
// non-singletons and allowing eager initialization.
func (c *Context) Lookup(ctx context.Context, t reflect.Type) ([]string, error) {
	return c.look.Lookup(ctx, t)
}

// LookupWith is Lookup with explicit flags.
func (c *Context) LookupWith(ctx context.Context, t reflect.Type, includeNonSingletons, allowEagerInit bool) ([]string, error) {
	return c.look.LookupWith(ctx, t, includeNonSingletons, allowEagerInit)
}

// Get returns the object registered under name.
func (c *Context) Get(name string) (any, error) {
	return c.reg.Get(name)
}

// CacheLen reports how many lookup results are cached.
func (c *Context) CacheLen() int { return c.cache.Len() }

// Close releases registry singletons.
func (c *Context) Close() error {
	err := c.reg.Close()
	c.log.V(1).Info("typecache context closed", "error", err)
	return err
}
