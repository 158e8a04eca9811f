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

// Registration is a single free-standing transformer registration: either
// a one-parameter ValueTransformerFunc or a two-parameter
// NextValueTransformerFunc, normalized to the latter shape at registration
// time (a one-parameter func is wrapped to ignore its Next).
type Registration struct {
	// Name identifies the registration for error messages; when it is
	// empty, the Planner names the chain link "transformer#<insertion
	// index>" instead.
	Name string
	// Param is the first parameter's descriptor: the registration applies
	// only to values matching it.
	Param Descriptor
	// TakesNext records whether the registration declared a second,
	// callable parameter.
	TakesNext bool
	Fn        NextValueTransformerFunc
	Priority  int
	// InsertionIndex is assigned at registration time and used as the
	// tie-break for equal-priority registrations (earlier wins, i.e. runs
	// outermost).
	InsertionIndex int
}

// KeyRegistration is a single free-standing key-transformer registration.
type KeyRegistration struct {
	Name           string
	Param          Descriptor
	HasParam       bool
	Fn             KeyTransformerFunc
	Priority       int
	InsertionIndex int
}

// AttributeRegistration records that attributeIdentity (the attribute's
// concrete Go type, or an interface it implements) has been registered as
// a transformer-or-key-transformer source. Per invariant 6 in spec.md §3,
// an attribute instance discovered at normalization time contributes a
// transformer only if its concrete identity or one of its declared
// abstractions appears here.
type AttributeRegistration struct {
	// Identity is the registered reflect.Type (concrete struct or
	// interface), held as an `any`.
	Identity any
	Kind     TransformerKind
}

// TransformerRegistry is the interface the dispatch Planner consumes. The
// concrete implementation (package registry) guards registrations with a
// mutex but hands the Engine an immutable snapshot per call, per the
// concurrency model in spec.md §5.
type TransformerRegistry interface {
	// ValueRegistrations returns every free-standing value-transformer
	// registration, in registration order (the Planner re-sorts by
	// priority/insertion at chain-build time).
	ValueRegistrations() []Registration
	// KeyRegistrations returns every free-standing key-transformer
	// registration.
	KeyRegistrations() []KeyRegistration
	// IsAttributeRegistered reports whether identity has been registered
	// as a transformer source of the given kind.
	IsAttributeRegistered(identity any, kind TransformerKind) bool
	// MatchesAttribute reports whether attr's concrete type, or any
	// abstraction (interface) it implements, has been registered as a
	// transformer source of the given kind — invariant 6 in spec.md §3.
	MatchesAttribute(attr any, kind TransformerKind) bool
}
