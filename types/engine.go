/*
 * Copyright 2026 The Normalize Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

// Engine is the recursive traversal described in spec.md §4.5: given a
// value, it resolves a dispatch chain and returns the resulting
// Normalized Node. Implemented by the engine package's *Engine.
type Engine interface {
	// Normalize produces the Normalized Node tree for value.
	Normalize(value any) (Node, error)
}

// OutputAdapter materializes a Normalized Node tree into a requested
// concrete container form (array tree, decoded Go struct, ...).
type OutputAdapter interface {
	Adapt(n Node) (any, error)
}
