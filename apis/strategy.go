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

package apis

import "reflect"

// Strategy is one step of default object naming. A Resolver tries
// strategies in order (e.g., Namer -> Reflect) until one handles the input.
type Strategy interface {
	// TryName derives a name from a pre-built instance.
	// It returns ("", false) to fall through to the next strategy.
	TryName(v any, cfg Config) (name string, handled bool)

	// TryNameType derives a name from a declared type.
	TryNameType(t reflect.Type, cfg Config) (name string, handled bool)
}
