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

// Package typecache memoizes by-type discovery over an object registry.
//
// Finding every registered object assignable to a given type means walking
// all definitions and checking each declared type by reflection. The
// answer never changes once the registry is sealed, so typecache computes
// it once per (type, includeNonSingletons, allowEagerInit) triple and
// serves later lookups from a cache owned by that registry instance.
//
// # Design
//
// A Context bundles four things, all built per instance and never shared:
//
//   - Config: which cache store to use (backend.Map, backend.Locked,
//     backend.None) and the knobs for naming definitions registered
//     without a name.
//
//   - Registry: definitions in registration order. Singletons are built
//     once through a samber/do injector; prototypes on every Get.
//     Discover is the uncached scan.
//
//   - Cache: the memo table keyed by apis.Key. A miss runs discovery
//     outside any lock and installs the result with an atomic
//     insert-if-absent. Concurrent misses on one key may each run
//     discovery; all of them return the single installed value. Failures
//     are never cached.
//
//   - Builder: the construction hook. New asks it for a registry and a
//     fresh cache, so a custom builder can swap either.
//
// # Usage
//
//	c, err := typecache.New()
//	if err != nil { ... }
//	_ = c.Register(
//		registry.Value[Store]("primary", pg),
//		registry.Singleton("replica", newReplica),
//	)
//	c.Seal()
//
//	names, err := typecache.NamesOf[Store](ctx, c)   // scans once
//	names, err = c.LookupWith(ctx, storeType, true, true) // served from cache
//	stores, err := typecache.InstancesOf[Store](ctx, c)
//
// Lookups before Seal fail with registry.ErrNotSealed and are retried on
// the next call.
//
// # Observability
//
// Cache hits, misses, discarded racing results and failures are counted
// through OpenTelemetry metrics; each discovery runs in a
// "typecache.discover" span. Debug lines go to a logr.Logger (discarded
// unless WithLogger is given).
package typecache
