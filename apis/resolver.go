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

// Resolver names definitions that were registered without a name.
type Resolver interface {
	// Name returns a name for the instance v, or "" if none can be determined.
	Name(v any, cfg Config) string

	// NameType returns a name for the declared type t, or "" if none can be determined.
	NameType(t reflect.Type, cfg Config) string

	// NameDefinition returns the base name for a definition registered
	// without one, or "" if none can be determined.
	NameDefinition(def Definition, cfg Config) string
}
