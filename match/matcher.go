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

// Package match implements the Type Matcher described in spec.md §4.1: it
// decides whether a runtime value satisfies a declared parameter
// descriptor. Matching is used only to select transformers; it never
// coerces a value.
package match

import (
	"github.com/oxhq/normalize/types"
)

// Subject is the matcher's view of a value being dispatched: its runtime
// Kind plus the kind-specific facts needed to check a Descriptor against
// it. The Engine constructs one Subject per value it recurses into.
type Subject struct {
	Kind Kind
	// Int64 is populated when Kind == types.KindInt, for refinement
	// evaluation.
	Int64 int64
	// Record is populated when Kind == types.KindRecord.
	Record *types.RecordIdentity
	// Enum is populated when Kind == types.KindEnum.
	Enum *types.EnumIdentity
}

// Kind aliases types.Kind so callers constructing a Subject don't need to
// import both packages for one field.
type Kind = types.Kind

// Matcher answers "does value V satisfy parameter descriptor D?" using
// the rules from spec.md §4.1. It is a pure function of (Descriptor,
// Subject) plus the refinement compiler's predicate cache.
type Matcher struct {
	refinements *RefinementCompiler
}

// New builds a Matcher backed by the given refinement compiler (nil is
// accepted and treated as "no refinements known": any IntRefined
// descriptor will then never match).
func New(refinements *RefinementCompiler) *Matcher {
	return &Matcher{refinements: refinements}
}

// Matches reports whether subj satisfies d.
func (m *Matcher) Matches(d types.Descriptor, subj Subject) bool {
	switch d.Kind {
	case types.KindAny:
		return true
	case types.KindAnyObject:
		return isObjectKind(subj.Kind)
	case types.KindNull, types.KindBool, types.KindFloat, types.KindString, types.KindCallable:
		return subj.Kind == d.Kind
	case types.KindInt:
		if subj.Kind != types.KindInt {
			return false
		}
		if d.Refinement == nil {
			return true
		}
		if m.refinements == nil {
			return false
		}
		return m.refinements.Satisfies(d.Refinement.Name, subj.Int64)
	case types.KindSequence:
		// Shallow: element correctness is enforced by recursion, not here.
		return subj.Kind == types.KindSequence
	case types.KindMapping:
		return subj.Kind == types.KindMapping
	case types.KindRecord:
		return subj.Kind == types.KindRecord && subj.Record != nil && subj.Record.Implements(d.Record.Name)
	case types.KindEnum:
		return subj.Kind == types.KindEnum && subj.Enum != nil && subj.Enum.Name == d.Enum.Name
	case types.KindUnion:
		for _, c := range d.Components {
			if m.Matches(c, subj) {
				return true
			}
		}
		return false
	case types.KindIntersection:
		for _, c := range d.Components {
			if !m.Matches(c, subj) {
				return false
			}
		}
		return len(d.Components) > 0
	case types.KindIterable:
		return subj.Kind == types.KindIterable || subj.Kind == types.KindSequence || subj.Kind == types.KindMapping
	default:
		return false
	}
}

// isObjectKind reports whether k denotes a record or built-in
// object-shaped value, as opposed to a bare scalar or callable.
func isObjectKind(k types.Kind) bool {
	switch k {
	case types.KindNull, types.KindBool, types.KindInt, types.KindFloat, types.KindString, types.KindCallable:
		return false
	default:
		return true
	}
}
