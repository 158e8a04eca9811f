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

// Package types defines the core interfaces, data structures, and contracts
// shared by every package of the normalizer: the type descriptor model used
// for dispatch, the normalized node tree, the reflection contract, the
// transformer/attribute contracts, and ambient configuration and error
// types.
package types

// Kind enumerates the runtime shapes a Value can take. It is the "tag" half
// of the tagged-variant Type Descriptor described by the design: every
// Descriptor carries exactly one Kind plus kind-specific fields.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
	KindRecord
	KindEnum
	KindUnion
	KindIntersection
	KindAnyObject
	KindIterable
	KindCallable
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindRecord:
		return "record"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindAnyObject:
		return "any-object"
	case KindIterable:
		return "iterable"
	case KindCallable:
		return "callable"
	case KindAny:
		return "any"
	default:
		return "invalid"
	}
}

// Refinement narrows an Int descriptor to a numeric predicate, e.g.
// "positive-int". The predicate expression itself is not evaluated here;
// see the match package for the expr-lang-backed evaluator. Name is the
// refinement's stable identity used for registry lookups and error
// messages.
type Refinement struct {
	Name string
	// Expr is the expr-lang boolean source of the refinement, over an
	// environment of {value int64}. The Matcher does not compile Expr: it
	// evaluates the program registered under Name, taken from
	// Config.Refinements (built-ins "positive-int" and "negative-int" are
	// seeded by NewConfig; user refinements are added with WithRefinement).
	Expr string
}

// RecordIdentity names a declared record (struct) type for covariant
// matching: a Record descriptor matches a value whose identity equals the
// target or descends from it via Ancestors.
type RecordIdentity struct {
	// Name is a stable, human-readable identity (typically the fully
	// qualified Go type name, e.g. "myapp.User").
	Name string
	// Ancestors lists every identity this record descends from, innermost
	// (direct parent) first. For Go, this is populated from anonymous
	// embedded struct fields.
	Ancestors []string
}

// Implements reports whether id (or one of its ancestors) equals target,
// i.e. whether a value of this identity satisfies a Record(target)
// descriptor.
func (id RecordIdentity) Implements(target string) bool {
	if id.Name == target {
		return true
	}
	for _, a := range id.Ancestors {
		if a == target {
			return true
		}
	}
	return false
}

// EnumIdentity names a declared enumeration type and its backing kind.
type EnumIdentity struct {
	Name    string
	Backing EnumBacking
}

// EnumBacking distinguishes pure, string-backed, and integer-backed
// enumerations, controlling the Default rendering rule in §4.5.
type EnumBacking int

const (
	EnumPure EnumBacking = iota
	EnumString
	EnumInt
)

// Descriptor is the tagged-variant Type Descriptor. Only the fields
// relevant to Kind are populated; all others are zero. Descriptor values
// are immutable once constructed and are safe to share across goroutines
// and across normalize calls (they carry no per-call state).
type Descriptor struct {
	Kind Kind

	// Populated when Kind == KindInt.
	Refinement *Refinement

	// Populated when Kind == KindSequence or KindMapping: the element
	// descriptor ("of"). For KindMapping, KeyKind additionally names the
	// expected key kind (KindString or KindInt; KindAny means either).
	Of      *Descriptor
	KeyKind Kind

	// Populated when Kind == KindRecord.
	Record *RecordIdentity

	// Populated when Kind == KindEnum.
	Enum *EnumIdentity

	// Populated when Kind == KindUnion or KindIntersection.
	Components []Descriptor
}

// Any is the descriptor that matches every value.
func Any() Descriptor { return Descriptor{Kind: KindAny} }

// AnyObject is the descriptor that matches any record or built-in object
// value (but not primitives).
func AnyObject() Descriptor { return Descriptor{Kind: KindAnyObject} }

// Null, Bool, Float, String are the descriptors for their matching
// primitive runtime kind.
func Null() Descriptor   { return Descriptor{Kind: KindNull} }
func Bool() Descriptor   { return Descriptor{Kind: KindBool} }
func Float() Descriptor  { return Descriptor{Kind: KindFloat} }
func String() Descriptor { return Descriptor{Kind: KindString} }

// Int returns the unrefined integer descriptor; IntRefined attaches a
// named numeric predicate (e.g. "positive-int").
func Int() Descriptor { return Descriptor{Kind: KindInt} }
func IntRefined(r Refinement) Descriptor {
	return Descriptor{Kind: KindInt, Refinement: &r}
}

// Sequence returns the descriptor for an ordered collection of `of`.
func Sequence(of Descriptor) Descriptor {
	return Descriptor{Kind: KindSequence, Of: &of}
}

// Mapping returns the descriptor for a mapping whose keys satisfy keyKind
// and whose values satisfy `of`.
func Mapping(keyKind Kind, of Descriptor) Descriptor {
	return Descriptor{Kind: KindMapping, KeyKind: keyKind, Of: &of}
}

// Record returns the descriptor matching id or anything descending from
// it.
func Record(id RecordIdentity) Descriptor {
	return Descriptor{Kind: KindRecord, Record: &id}
}

// Enum returns the descriptor matching a variant of id.
func Enum(id EnumIdentity) Descriptor {
	return Descriptor{Kind: KindEnum, Enum: &id}
}

// Union returns the descriptor matching any of descs.
func Union(descs ...Descriptor) Descriptor {
	return Descriptor{Kind: KindUnion, Components: descs}
}

// Intersection returns the descriptor matching all of descs.
func Intersection(descs ...Descriptor) Descriptor {
	return Descriptor{Kind: KindIntersection, Components: descs}
}

// Iterable returns the descriptor matching any lazily-traversable value.
func Iterable() Descriptor { return Descriptor{Kind: KindIterable} }

// Callable returns the descriptor matching a function value.
func Callable() Descriptor { return Descriptor{Kind: KindCallable} }
