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

package builder

import (
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/cache"
	"dirpx.dev/typecache/registry"
	"dirpx.dev/typecache/resolver"
	"dirpx.dev/typecache/strategy"
)

// Option configures the default builder.
type Option func(*builder)

// WithLogger sets the logger handed to every registry and cache built.
func WithLogger(l logr.Logger) Option {
	return func(b *builder) { b.log = l }
}

// WithMeterProvider sets the meter provider for cache counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(b *builder) {
		if mp != nil {
			b.mp = mp
		}
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{log: logr.Discard(), mp: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder holds the shared dependencies of everything it builds. It keeps
// no per-registry state.
type builder struct {
	log logr.Logger
	mp  metric.MeterProvider
}

// BuildRegistry returns a new, empty registry that names unnamed
// definitions with the Namer strategy first and reflection second.
func (b *builder) BuildRegistry(cfg apis.Config) apis.Registry {
	return registry.New(cfg,
		registry.WithLogger(b.log.WithName("registry")),
		registry.WithResolver(resolver.New(
			strategy.NewNamerStrategy(),
			strategy.NewReflectStrategy(),
		)),
	)
}

// BuildCache returns a new, empty lookup cache on the store selected by
// cfg.Backend. Every call returns a distinct cache.
func (b *builder) BuildCache(cfg apis.Config) apis.Cache {
	return cache.New(cache.NewStore(cfg.Backend),
		cache.WithLogger(b.log.WithName("cache")),
		cache.WithMeterProvider(b.mp),
		cache.WithAttributes(attribute.String("typecache.backend", cfg.Backend.String())),
	)
}
