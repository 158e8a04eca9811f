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

import "reflect"

// FieldInfo describes one field of a record, in the order the Reflection
// Adapter enumerates it: ancestor (embedded) fields first, then the
// declaring type's own fields, each in declaration order.
type FieldInfo struct {
	Name         string
	DeclaredType Descriptor
	// Read returns the field's current value out of instance, which must
	// be the same record value fields() was computed for.
	Read func(instance reflect.Value) any
}

// ReflectionAdapter is the consumed interface described by spec.md §4.2:
// it enumerates fields (including inherited, all visibilities) of a
// record type in declaration order and lists the attributes attached to a
// type and to each of its fields. A default implementation backed by
// github.com/fatih/structs lives in the reflector package; callers may
// supply their own (e.g. one backed by a code-generation pass) via
// WithReflectionAdapter.
type ReflectionAdapter interface {
	// Fields returns the ordered field list for the record type of v.
	Fields(v reflect.Value) []FieldInfo
	// Identity returns the RecordIdentity of the record type of v,
	// including its ancestor chain.
	Identity(v reflect.Value) RecordIdentity
	// ClassAttributes returns the class-level attribute instances of the
	// record type of v, in source order.
	ClassAttributes(v reflect.Value) []any
	// FieldAttributes returns the attribute instances attached to the
	// named field of the record type of v, in source order.
	FieldAttributes(v reflect.Value, fieldName string) []any
}
