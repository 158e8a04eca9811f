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

package output

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/oxhq/normalize/types"
)

// MapOutputAdapter decodes a Normalized Node tree into a caller-supplied
// Go destination shape via mapstructure. It does not reintroduce
// denormalization: the tree handed to it must already be the Engine's
// output, and decoding only reshapes already-normalized primitives into a
// concrete container.
//
// Unlike ArrayAdapter, MapOutputAdapter renders mappings as a native
// map[string]any rather than an insertion-ordered []KeyValue: mapstructure
// decodes struct and map destinations by key lookup, not by position, and
// a Go map or struct destination has no insertion order of its own to
// preserve, so there is nothing lost by building one here.
type MapOutputAdapter struct{}

// NewMapOutputAdapter builds a MapOutputAdapter.
func NewMapOutputAdapter() *MapOutputAdapter {
	return &MapOutputAdapter{}
}

// Adapt implements types.OutputAdapter, rendering node into a
// map[string]any/[]any tree; use Decode to target a concrete struct.
func (a *MapOutputAdapter) Adapt(node types.Node) (any, error) {
	return toPlainValue(node), nil
}

// Decode renders node into a plain map/slice tree and mapstructure-decodes
// it into dest, which must be a pointer (to a struct, map, or slice).
func (a *MapOutputAdapter) Decode(node types.Node, dest any) error {
	raw := toPlainValue(node)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		WeaklyTypedInput: true,
		TagName:          "normalize",
	})
	if err != nil {
		return fmt.Errorf("output: building decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("output: decoding: %w", err)
	}
	return nil
}

// toPlainValue mirrors adaptValue but renders a Map as a native
// map[string]any (keys stringified via fmt.Sprint when not already
// strings) instead of an insertion-ordered []KeyValue, since mapstructure
// can only decode struct/map destinations from a map or struct source.
func toPlainValue(node types.Node) any {
	switch v := node.(type) {
	case nil:
		return nil
	case *types.Seq:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = toPlainValue(item)
		}
		return out
	case *types.Map:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			key, ok := e.Key.(string)
			if !ok {
				key = fmt.Sprint(e.Key)
			}
			out[key] = toPlainValue(e.Value)
		}
		return out
	case *types.Bag:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			out[e.Name] = toPlainValue(e.Value)
		}
		return out
	default:
		return v
	}
}
