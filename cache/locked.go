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
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"

	"dirpx.dev/typecache/apis"
)

// LockedStore is a Store backed by go-cache.
//
// go-cache is keyed by string, so each reflect.Type is interned to a
// per-store token the first time it is stored. Tokens are assigned by type
// identity; type names never reach the key.
type LockedStore struct {
	items *gocache.Cache
	ids   sync.Map // reflect.Type -> uint64
	next  atomic.Uint64
}

// NewLockedStore returns an empty LockedStore. Entries never expire and no
// janitor goroutine is started.
func NewLockedStore() *LockedStore {
	return &LockedStore{items: gocache.New(gocache.NoExpiration, 0)}
}

// token returns the interned id for t, assigning one if intern is true.
func (s *LockedStore) token(t reflect.Type, intern bool) (uint64, bool) {
	if id, ok := s.ids.Load(t); ok {
		return id.(uint64), true
	}
	if !intern {
		return 0, false
	}
	id, _ := s.ids.LoadOrStore(t, s.next.Add(1))
	return id.(uint64), true
}

func flagBits(k apis.Key) string {
	b := [2]byte{'0', '0'}
	if k.IncludeNonSingletons {
		b[0] = '1'
	}
	if k.AllowEagerInit {
		b[1] = '1'
	}
	return string(b[:])
}

func (s *LockedStore) key(k apis.Key, intern bool) (string, bool) {
	id, ok := s.token(k.Type, intern)
	if !ok {
		return "", false
	}
	return strconv.FormatUint(id, 10) + "/" + flagBits(k), true
}

// Load implements Store.
func (s *LockedStore) Load(key apis.Key) ([]string, bool) {
	k, ok := s.key(key, false)
	if !ok {
		return nil, false
	}
	v, ok := s.items.Get(k)
	if !ok {
		return nil, false
	}
	return v.([]string), true
}

// LoadOrStore implements Store using go-cache's Add, which fails when the
// key is already present.
func (s *LockedStore) LoadOrStore(key apis.Key, value []string) ([]string, bool) {
	k, _ := s.key(key, true)
	if err := s.items.Add(k, value, gocache.NoExpiration); err == nil {
		return value, false
	}
	if v, ok := s.items.Get(k); ok {
		return v.([]string), true
	}
	// Entries are never removed, so a failed Add always finds a value.
	return value, false
}

// Len implements Store.
func (s *LockedStore) Len() int { return s.items.ItemCount() }
