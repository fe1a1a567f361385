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

package lookup_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/cache"
	"dirpx.dev/typecache/lookup"
)

type ServiceA interface{ Serve() }

var serviceA = reflect.TypeFor[ServiceA]()

type call struct {
	t                    reflect.Type
	includeNonSingletons bool
	allowEagerInit       bool
}

// recordingDiscoverer answers from a fixed table and records every call.
type recordingDiscoverer struct {
	mu      sync.Mutex
	calls   []call
	answers map[call][]string
	err     error
}

func (d *recordingDiscoverer) Discover(_ context.Context, t reflect.Type, incl, eager bool) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := call{t, incl, eager}
	d.calls = append(d.calls, c)
	if d.err != nil {
		return nil, d.err
	}
	return d.answers[c], nil
}

func (d *recordingDiscoverer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

func TestLookup_ServiceAScenario(t *testing.T) {
	d := &recordingDiscoverer{answers: map[call][]string{
		{serviceA, true, true}:  {"serviceAImpl", "serviceAImplOverride"},
		{serviceA, false, true}: {"serviceAImpl"},
	}}
	l := lookup.New(d, cache.New(cache.NewMapStore()))
	ctx := context.Background()

	first, err := l.Lookup(ctx, serviceA)
	require.NoError(t, err)
	require.Equal(t, []string{"serviceAImpl", "serviceAImplOverride"}, first)
	require.Equal(t, 1, d.count())

	second, err := l.Lookup(ctx, serviceA)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, d.count())

	// The full form with default flags is the same key.
	third, err := l.LookupWith(ctx, serviceA, true, true)
	require.NoError(t, err)
	require.Equal(t, first, third)
	require.Equal(t, 1, d.count())

	singletons, err := l.LookupWith(ctx, serviceA, false, true)
	require.NoError(t, err)
	require.Equal(t, []string{"serviceAImpl"}, singletons)
	require.Equal(t, 2, d.count())
	require.Equal(t, call{serviceA, false, true}, d.calls[1])

	again, err := l.Lookup(ctx, serviceA)
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.Equal(t, 2, d.count())
}

func TestLookup_DiscoveryErrorPassesThrough(t *testing.T) {
	boom := apis.NewDiscoveryError(serviceA, errors.New("scan failed"))
	d := &recordingDiscoverer{err: boom}
	c := cache.New(cache.NewMapStore())
	l := lookup.New(d, c)
	ctx := context.Background()

	_, err := l.Lookup(ctx, serviceA)
	require.Same(t, boom, err)
	require.ErrorIs(t, err, apis.ErrDiscovery)
	require.Equal(t, 0, c.Len())

	// Next call retries from scratch.
	d.err = nil
	d.answers = map[call][]string{{serviceA, true, true}: {"late"}}
	got, err := l.Lookup(ctx, serviceA)
	require.NoError(t, err)
	require.Equal(t, []string{"late"}, got)
	require.Equal(t, 2, d.count())
}

func TestLookup_DiscoverySpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	d := &recordingDiscoverer{answers: map[call][]string{{serviceA, true, true}: {"a"}}}
	l := lookup.New(d, cache.New(cache.NewMapStore()), lookup.WithTracerProvider(tp))
	ctx := context.Background()

	_, err := l.Lookup(ctx, serviceA)
	require.NoError(t, err)
	_, err = l.Lookup(ctx, serviceA)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1, "hits must not start discovery spans")
	require.Equal(t, "typecache.discover", spans[0].Name())

	d.err = errors.New("scan failed")
	_, err = l.LookupWith(ctx, serviceA, false, false)
	require.Error(t, err)

	spans = sr.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestDiscovererFunc(t *testing.T) {
	var got call
	f := apis.DiscovererFunc(func(_ context.Context, t reflect.Type, incl, eager bool) ([]string, error) {
		got = call{t, incl, eager}
		return []string{"x"}, nil
	})
	l := lookup.New(f, cache.New(nil))

	names, err := l.LookupWith(context.Background(), serviceA, false, true)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, names)
	require.Equal(t, call{serviceA, false, true}, got)
}
