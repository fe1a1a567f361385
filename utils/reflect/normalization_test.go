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

package reflect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/config"
	uref "dirpx.dev/typecache/utils/reflect"
)

type A struct{}
type G[T any] struct{}

func TestNormalize(t *testing.T) {
	a := reflect.TypeOf(A{})
	str := reflect.TypeOf("")
	type Anon = struct{ X int }
	type PP = **A

	cases := []struct {
		name string
		typ  reflect.Type
		cfg  apis.Config
		want reflect.Type
	}{
		{"plain", a, config.DefaultConfig(), a},
		{"ptr", reflect.TypeOf(&A{}), config.DefaultConfig(), a},
		{"slice of ptr", reflect.TypeOf([]*A{}), config.DefaultConfig(), a},
		{"array", reflect.TypeOf([2]A{}), config.DefaultConfig(), a},
		{"chan", reflect.TypeOf((chan A)(nil)), config.DefaultConfig(), a},
		{"map prefers elem", reflect.TypeOf(map[string]A{}), config.DefaultConfig(), a},
		{"map prefers key", reflect.TypeOf(map[string]A{}), config.NewConfig(config.WithMapPreferElem(false)), str},
		{"map anonymous elem falls back to key", reflect.TypeOf(map[string]Anon{}), config.DefaultConfig(), str},
		{"map of slices keeps unwrapping", reflect.TypeOf(map[struct{}][]A{}), config.DefaultConfig(), a},
		{"generic", reflect.TypeOf(G[int]{}), config.DefaultConfig(), reflect.TypeOf(G[int]{})},
		{"zero MaxUnwrap uses default", reflect.TypeOf((*PP)(nil)).Elem(), apis.Config{MapPreferElem: true}, a},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, tc.cfg)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	_, err := uref.Normalize(nil, config.DefaultConfig())
	require.ErrorIs(t, err, uref.ErrNilType)

	_, err = uref.Normalize(reflect.TypeOf(struct{ X int }{}), config.DefaultConfig())
	require.ErrorIs(t, err, uref.ErrNotNamed)

	_, err = uref.Normalize(reflect.TypeOf(func() {}), config.DefaultConfig())
	require.ErrorIs(t, err, uref.ErrNotNamed)

	type PP = **A
	_, err = uref.Normalize(reflect.TypeOf((*PP)(nil)).Elem(), config.NewConfig(config.WithMaxUnwrap(1)))
	require.ErrorIs(t, err, uref.ErrNotNamed)
}

func BenchmarkNormalize(b *testing.B) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf(G[int]{}),
	}
	cfg := config.DefaultConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = uref.Normalize(types[i%len(types)], cfg)
	}
}
