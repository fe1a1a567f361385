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

package strategy

import (
	"reflect"

	"dirpx.dev/typecache/apis"
)

var namerType = reflect.TypeFor[apis.Namer]()

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy lets types pick their own object name via EntityName().
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryName returns v.EntityName() if v implements apis.Namer. A nil pointer
// receiver is skipped.
func (*namerStrategy) TryName(v any, _ apis.Config) (string, bool) {
	n, ok := v.(apis.Namer)
	if !ok || n == nil {
		return "", false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return "", false
	}
	if name := n.EntityName(); name != "" {
		return name, true
	}
	return "", false
}

// TryNameType calls EntityName on the zero value of t. Pointer and
// interface types are skipped: their zero value is nil.
func (s *namerStrategy) TryNameType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil || !t.Implements(namerType) {
		return "", false
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return "", false
	}
	return s.TryName(reflect.Zero(t).Interface(), cfg)
}
