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

// Package lookup puts a cache in front of a registry's by-type discovery.
package lookup

import (
	"context"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/typecache/apis"
)

const instrumentationName = "dirpx.dev/typecache/lookup"

// Option configures a lookup.
type Option func(*options)

type options struct {
	tp trace.TracerProvider
}

// WithTracerProvider sets the provider used for discovery spans.
// By default the global otel provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tp = tp }
}

// New returns an apis.Lookup that answers from c and falls back to d on a miss.
func New(d apis.Discoverer, c apis.Cache, opts ...Option) apis.Lookup {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.tp == nil {
		o.tp = otel.GetTracerProvider()
	}
	return &lookup{d: d, c: c, tracer: o.tp.Tracer(instrumentationName)}
}

type lookup struct {
	d      apis.Discoverer
	c      apis.Cache
	tracer trace.Tracer
}

// Lookup is LookupWith(ctx, t, true, true).
func (l *lookup) Lookup(ctx context.Context, t reflect.Type) ([]string, error) {
	return l.LookupWith(ctx, t, true, true)
}

// LookupWith answers from the cache, running discovery with the same
// arguments on a miss. Discovery errors are returned unchanged.
func (l *lookup) LookupWith(ctx context.Context, t reflect.Type, includeNonSingletons, allowEagerInit bool) ([]string, error) {
	key := apis.NewKey(t, includeNonSingletons, allowEagerInit)
	return l.c.GetOrCompute(ctx, key, func(ctx context.Context) ([]string, error) {
		return l.discover(ctx, key)
	})
}

func (l *lookup) discover(ctx context.Context, key apis.Key) ([]string, error) {
	typeName := "<nil>"
	if key.Type != nil {
		typeName = key.Type.String()
	}
	ctx, span := l.tracer.Start(ctx, "typecache.discover", trace.WithAttributes(
		attribute.String("typecache.type", typeName),
		attribute.Bool("typecache.include_non_singletons", key.IncludeNonSingletons),
		attribute.Bool("typecache.allow_eager_init", key.AllowEagerInit),
	))
	defer span.End()

	names, err := l.d.Discover(ctx, key.Type, key.IncludeNonSingletons, key.AllowEagerInit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("typecache.names", len(names)))
	return names, nil
}
