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

// Package cache implements the memo table behind by-type lookups.
//
// A Cache maps an apis.Key to the identifiers discovered for it. Entries are
// written once and never evicted, expired or invalidated; the table lives
// exactly as long as the registry that owns it.
//
// GetOrCompute runs the compute function outside of any lock and installs the
// result with an atomic insert-if-absent. Two callers racing on the same
// missing key may both compute, but only the first installed value is ever
// returned for that key afterwards. Errors are never stored.
package cache

import (
	"context"
	"slices"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"dirpx.dev/typecache/apis"
)

// instrumentationName is the otel scope used for cache instruments.
const instrumentationName = "dirpx.dev/typecache/cache"

// Option configures a Cache.
type Option func(*options)

type options struct {
	log   logr.Logger
	mp    metric.MeterProvider
	attrs []attribute.KeyValue
}

// WithLogger sets the logger used for hit/add debug lines (V(1)).
func WithLogger(l logr.Logger) Option { return func(o *options) { o.log = l } }

// WithMeterProvider sets the provider for cache counters.
// By default the global otel provider is used.
func WithMeterProvider(mp metric.MeterProvider) Option { return func(o *options) { o.mp = mp } }

// WithAttributes adds attributes to every measurement (e.g. the owning
// registry's id).
func WithAttributes(kv ...attribute.KeyValue) Option {
	return func(o *options) { o.attrs = append(o.attrs, kv...) }
}

// Cache is a concurrency-safe, unbounded memo table for lookup results.
type Cache struct {
	store Store
	log   logr.Logger

	hits      metric.Int64Counter
	misses    metric.Int64Counter
	discarded metric.Int64Counter
	failures  metric.Int64Counter
	attrs     metric.MeasurementOption
}

// Ensure Cache implements apis.Cache.
var _ apis.Cache = (*Cache)(nil)

// New returns a Cache backed by store. A nil store means a fresh Map store.
func New(store Store, opts ...Option) *Cache {
	o := options{log: logr.Discard()}
	for _, fn := range opts {
		fn(&o)
	}
	if o.mp == nil {
		o.mp = otel.GetMeterProvider()
	}
	if store == nil {
		store = NewMapStore()
	}

	meter := o.mp.Meter(instrumentationName)
	return &Cache{
		store:     store,
		log:       o.log,
		hits:      counter(meter, "typecache.cache.hits", "Lookups answered from the cache"),
		misses:    counter(meter, "typecache.cache.misses", "Lookups that ran discovery"),
		discarded: counter(meter, "typecache.cache.discarded", "Discovery results dropped because another caller installed first"),
		failures:  counter(meter, "typecache.cache.failures", "Discovery calls that returned an error"),
		attrs:     metric.WithAttributeSet(attribute.NewSet(o.attrs...)),
	}
}

// counter creates an Int64Counter, falling back to a no-op one on error.
func counter(m metric.Meter, name, desc string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{call}"))
	if err != nil {
		c, _ = noop.Meter{}.Int64Counter(name)
	}
	return c
}

// GetOrCompute returns the value stored for key, computing and installing it
// on a miss. The returned slice is a private copy.
func (c *Cache) GetOrCompute(ctx context.Context, key apis.Key, compute apis.ComputeFunc) ([]string, error) {
	if v, ok := c.store.Load(key); ok {
		c.hits.Add(ctx, 1, c.attrs)
		c.log.V(1).Info("will retrieve from cache", "key", key)
		return slices.Clone(v), nil
	}

	c.misses.Add(ctx, 1, c.attrs)
	v, err := compute(ctx)
	if err != nil {
		c.failures.Add(ctx, 1, c.attrs)
		return nil, err
	}

	// Detach from the caller's slice; stored entries are never nil.
	if v == nil {
		v = []string{}
	} else {
		v = slices.Clone(v)
	}

	actual, loaded := c.store.LoadOrStore(key, v)
	if loaded {
		c.discarded.Add(ctx, 1, c.attrs)
		c.log.V(1).Info("discarding concurrent result", "key", key)
	} else {
		c.log.V(1).Info("will add to cache", "key", key, "names", v)
	}
	return slices.Clone(actual), nil
}

// Len returns the number of stored entries.
func (c *Cache) Len() int { return c.store.Len() }
