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

// Builder is the construction hook used when a typecache.Context is created.
// BuildCache is called exactly once per Context, so every registry instance
// owns its own cache.
type Builder interface {
	// BuildRegistry constructs an empty Registry for cfg.
	BuildRegistry(cfg Config) Registry
	// BuildCache constructs a new, empty Cache for cfg.
	BuildCache(cfg Config) Cache
}
