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

// Package backend names the stores that can sit behind a lookup cache.
package backend

import (
	"fmt"
	"strings"
)

// Kind selects the store used by a lookup cache.
//
// # Overview
//
// Lookup caches are unbounded memo tables: entries live as long as the
// registry that owns them and are never evicted or expired. Kind does not
// choose an eviction policy. It only chooses how the insert-if-absent
// primitive is implemented underneath:
//
//   - Map:    sync.Map keyed by the composite lookup key (default).
//   - Locked: go-cache with no expiration and no janitor; types are
//     interned to per-store tokens so string keys stay identity based.
//   - None:   pass-through; nothing is retained.
//
// # Contract
//
//   - The zero value is Map.
//   - Adding new values is allowed; existing values MUST keep their meaning.
//   - Kind values are plain integers and safe to share between goroutines.
type Kind int

const (
	// Map stores entries in a sync.Map.
	//
	// Reads of installed keys are lock-free, and LoadOrStore gives the
	// atomic insert-if-absent the cache relies on. Best fit for the
	// read-mostly, write-once workload of by-type lookups.
	Map Kind = iota

	// Locked stores entries in a go-cache instance.
	//
	// go-cache guards its map with a single RWMutex. The lock is held only
	// while reading or installing an entry, never while discovery runs, so
	// unrelated keys still make progress independently.
	Locked

	// None disables retention.
	//
	// Every lookup runs discovery. Useful for comparing behavior with and
	// without memoization, or for registries whose metadata is known to
	// change.
	None
)

// String returns "Map", "Locked", "None", or "Unknown(<n>)" for values out
// of range. It never panics.
func (k Kind) String() string {
	switch k {
	case Map:
		return "Map"
	case Locked:
		return "Locked"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Parse parses a textual Kind, case-insensitively and ignoring surrounding
// whitespace. Unknown or empty input returns Map and a non-nil error.
func Parse(s string) (Kind, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Map, fmt.Errorf("backend: empty kind")
	}

	switch strings.ToUpper(trimmed) {
	case "MAP":
		return Map, nil
	case "LOCKED":
		return Locked, nil
	case "NONE":
		return None, nil
	default:
		return Map, fmt.Errorf("backend: unknown kind %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are rejected rather than serialized as "Unknown(n)".
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Map, Locked, None:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("backend: cannot marshal unknown kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// On failure the receiver is left unchanged.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
