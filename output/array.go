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

// Package output implements the Output Adapter of spec.md §4.6: it
// materializes a Normalized Node tree into a requested concrete container
// form.
package output

import (
	"github.com/oxhq/normalize/types"
)

// ArrayAdapter is the primary Output Adapter: it converts a Normalized
// Node tree into plain `any` values built from Go's built-in container
// types ([]any and the primitives) plus KeyValue for mappings, preserving
// map insertion order regardless of key type — a native Go map cannot,
// since it has no defined iteration order. A *types.Bag node is the one
// exception: it becomes a native map[string]any, so its field order is
// not kept.
//
// Array form is the natural input to encoding/json and similar downstream
// encoders, which is the "external JSON form is a downstream consumer"
// note in spec.md §4.6.
type ArrayAdapter struct{}

// NewArrayAdapter builds an ArrayAdapter. It carries no state.
func NewArrayAdapter() *ArrayAdapter { return &ArrayAdapter{} }

// Adapt implements types.OutputAdapter.
func (a *ArrayAdapter) Adapt(node types.Node) (any, error) {
	return adaptValue(node), nil
}

func adaptValue(node types.Node) any {
	switch v := node.(type) {
	case nil:
		return nil
	case *types.Seq:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = adaptValue(item)
		}
		return out
	case *types.Map:
		return adaptMap(v)
	case *types.Bag:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			out[e.Name] = adaptValue(e.Value)
		}
		return out
	default:
		// Bool, Int64, Float64, String pass through unchanged.
		return v
	}
}

// adaptMap renders a Map as an insertion-ordered []KeyValue, string-keyed
// or not: a native Go map[string]any has no defined iteration order, so
// using one here — even for the overwhelmingly common string-keyed
// record case — would silently discard the insertion order spec.md:146
// requires the array form to preserve.
func adaptMap(m *types.Map) any {
	out := make([]KeyValue, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = KeyValue{Key: e.Key, Value: adaptValue(e.Value)}
	}
	return out
}

// KeyValue is one entry of a mapping rendered by ArrayAdapter, preserving
// the original Map's insertion order regardless of key type.
type KeyValue struct {
	Key   any
	Value any
}
