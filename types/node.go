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

// Node is a Normalized Node: the canonical, format-agnostic tree the
// Engine produces. It is always one of Null, Bool, Int64, Float64, String,
// *Seq, or *Map — never a raw Go struct, map, or slice.
//
// A Node is deliberately a plain `any`; type switches like those in the
// output package are the supported way to inspect one — the tree must
// stay suitable for *any* downstream serializer, not just one concrete
// container type.
type Node = any

// Seq is the Normalized Node form of an ordered sequence: index-ordered,
// keys discarded.
type Seq struct {
	Items []Node
}

// MapEntry is one key/value pair of a Map, preserving insertion order.
// Key is either a string (record field key, string map key) or an int64
// (integer map key).
type MapEntry struct {
	Key   any
	Value Node
}

// Map is the Normalized Node form of a mapping or record: an
// insertion-ordered, key-indexed collection.
type Map struct {
	Entries []MapEntry
}

// Bag is the Go stand-in for a dynamic, structure-less object with public
// fields discovered at runtime (the stdClass-equivalent in spec.md §4.5):
// an insertion-ordered set of name/value pairs that is not backed by a
// declared struct type. Unlike a plain Go map, a Bag's iteration order is
// exactly its insertion order, matching the "dynamic public fields in
// insertion order" default rendering step.
type Bag struct {
	Entries []BagEntry
}

// BagEntry is one dynamic field of a Bag.
type BagEntry struct {
	Name  string
	Value any
}

// NewBag builds an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Set appends a name/value pair.
func (b *Bag) Set(name string, value any) {
	b.Entries = append(b.Entries, BagEntry{Name: name, Value: value})
}

// NewMap builds an empty ordered Map.
func NewMap() *Map { return &Map{} }

// Set appends a key/value pair, preserving call order. Set does not
// deduplicate keys: callers (the Engine's record/mapping default steps)
// are responsible for emitting each key at most once.
func (m *Map) Set(key any, value Node) {
	m.Entries = append(m.Entries, MapEntry{Key: key, Value: value})
}

// Get returns the value for key and whether it was found, scanning in
// insertion order. Normalized maps are typically small (one entry per
// record field), so a linear scan is sufficient and avoids keeping a
// second index in sync.
func (m *Map) Get(key any) (Node, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}
