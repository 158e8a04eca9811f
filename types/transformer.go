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

// TransformerKind distinguishes value transformers (rewrite a normalized
// value) from key transformers (rewrite a record field's emitted map key).
type TransformerKind int

const (
	ValueTransformer TransformerKind = iota
	KeyTransformer
)

// Next is the continuation capability handed to a transformer body. It is
// a small object bound at chain-build time to (chain, position, subject),
// per the design note in spec.md §9: it intentionally captures no mutable
// closure state of its own beyond what the dispatch package's chain
// already owns.
type Next interface {
	// Apply invokes the remainder of the dispatch chain for the fixed
	// subject this Next was bound to, and returns its result.
	Apply() (Node, error)
}

// ValueTransformerFunc is a free-standing, one-parameter transformer: it
// receives the subject value itself (integer subjects arrive as int64)
// and returns a Node. It has no Next, so the remainder of the chain and
// the Default step do not run for that subject.
//
// Use NextValueTransformerFunc when the transformer needs to call next()
// itself zero or more times.
type ValueTransformerFunc func(value any) (Node, error)

// NextValueTransformerFunc is a two-parameter transformer: it receives the
// subject and an explicit Next, and decides when (and whether) to invoke
// it.
type NextValueTransformerFunc func(value any, next Next) (Node, error)

// KeyTransformerFunc rewrites a record field's emitted key. A
// zero-parameter key transformer ignores its input (modeled as a
// KeyTransformerFunc that ignores `key`); see registry.RegisterKey with
// hasParam=false for the zero-arg registration form.
type KeyTransformerFunc func(key any) (any, error)

// ValueTransformerAttribute is implemented by an attribute value that
// contributes a value transformer when discovered on a record's class or
// on one of its fields. Per the duck-typing note in spec.md §9, discovery
// is by interface, never by reflecting on a method named "normalize".
type ValueTransformerAttribute interface {
	Normalize(value any, next Next) (Node, error)
}

// KeyTransformerAttribute is implemented by an attribute value that
// contributes a key transformer when discovered on a record field.
type KeyTransformerAttribute interface {
	NormalizeKey(key any) (any, error)
}

// AttributeSource is implemented by record types that carry attributes.
// NormalizeAttributes returns the class-level attribute instances attached
// to the record, in source order; field-level attributes come from the
// separate FieldAttributeSource interface below. Types that don't
// implement AttributeSource are treated as having no class-level
// attributes (attribute discovery degrades gracefully).
type AttributeSource interface {
	NormalizeAttributes() []any
}

// FieldAttributeSource is implemented by record types that carry
// field-level attributes. It is a separate, optional interface from
// AttributeSource so a record can declare class attributes without being
// forced to implement field-attribute plumbing, and vice versa.
type FieldAttributeSource interface {
	NormalizeFieldAttributes(fieldName string) []any
}
