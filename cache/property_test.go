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

package cache_test

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"dirpx.dev/typecache/apis"
	"dirpx.dev/typecache/cache"
)

var propertyTypes = []reflect.Type{typeA, typeB, widgetOne(), widgetTwo()}

// TestProperty_FirstSuccessWins runs random sequences of lookups, some of
// which fail, and checks every key against a model that keeps the first
// successful value.
func TestProperty_FirstSuccessWins(t *testing.T) {
	for _, kind := range retaining {
		t.Run(kind.String(), func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				c := cache.New(cache.NewStore(kind))
				model := map[apis.Key][]string{}
				ctx := context.Background()

				steps := rapid.IntRange(1, 60).Draw(rt, "steps")
				for i := 0; i < steps; i++ {
					key := apis.NewKey(
						rapid.SampledFrom(propertyTypes).Draw(rt, "type"),
						rapid.Bool().Draw(rt, "includeNonSingletons"),
						rapid.Bool().Draw(rt, "allowEagerInit"),
					)
					fail := rapid.Bool().Draw(rt, "fail")
					value := []string{"v" + strconv.Itoa(i)}

					var ran bool
					got, err := c.GetOrCompute(ctx, key, func(context.Context) ([]string, error) {
						ran = true
						if fail {
							return nil, errors.New("boom")
						}
						return value, nil
					})

					want, cached := model[key]
					switch {
					case cached:
						if ran || err != nil || !reflect.DeepEqual(got, want) {
							rt.Fatalf("%v: cached %v, got %v (ran=%v err=%v)", key, want, got, ran, err)
						}
					case fail:
						if err == nil {
							rt.Fatalf("%v: expected error", key)
						}
					default:
						if err != nil || !reflect.DeepEqual(got, value) {
							rt.Fatalf("%v: got %v err %v, want %v", key, got, err, value)
						}
						model[key] = value
					}
				}

				if c.Len() != len(model) {
					rt.Fatalf("Len() = %d, model has %d", c.Len(), len(model))
				}
			})
		})
	}
}
