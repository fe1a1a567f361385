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

package cache

import (
	"sync"
	"sync/atomic"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/backend"
)

// Store is the backing table of a Cache.
//
// LoadOrStore must be atomic: if a value is already present it is returned
// with loaded=true and value is dropped. Stores never remove entries.
type Store interface {
	Load(key apis.Key) ([]string, bool)
	LoadOrStore(key apis.Key, value []string) (actual []string, loaded bool)
	Len() int
}

// NewStore returns a new, empty store of the given kind.
// Unknown kinds fall back to Map.
func NewStore(kind backend.Kind) Store {
	switch kind {
	case backend.Locked:
		return NewLockedStore()
	case backend.None:
		return NoneStore{}
	default:
		return NewMapStore()
	}
}

// MapStore is a Store backed by sync.Map.
type MapStore struct {
	m     sync.Map // apis.Key -> []string
	count atomic.Int64
}

// NewMapStore returns an empty MapStore.
func NewMapStore() *MapStore { return &MapStore{} }

// Load implements Store.
func (s *MapStore) Load(key apis.Key) ([]string, bool) {
	v, ok := s.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.([]string), true
}

// LoadOrStore implements Store.
func (s *MapStore) LoadOrStore(key apis.Key, value []string) ([]string, bool) {
	v, loaded := s.m.LoadOrStore(key, value)
	if !loaded {
		s.count.Add(1)
	}
	return v.([]string), loaded
}

// Len implements Store.
func (s *MapStore) Len() int { return int(s.count.Load()) }

// NoneStore retains nothing.
type NoneStore struct{}

// Load always misses.
func (NoneStore) Load(apis.Key) ([]string, bool) { return nil, false }

// LoadOrStore hands value back without keeping it.
func (NoneStore) LoadOrStore(_ apis.Key, value []string) ([]string, bool) { return value, false }

// Len is always 0.
func (NoneStore) Len() int { return 0 }
