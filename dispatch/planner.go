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

package dispatch

import (
	"fmt"
	"sort"

	"github.com/oxhq/normalize/match"
	"github.com/oxhq/normalize/types"
)

// Planner is the Dispatch Planner of spec.md §4.4. It consumes the
// TransformerRegistry and a Matcher and, for a given value Subject,
// produces the ordered chain of applicable transformers.
type Planner struct {
	registry types.TransformerRegistry
	matcher  *match.Matcher
}

// New builds a Planner over registry and matcher.
func New(registry types.TransformerRegistry, matcher *match.Matcher) *Planner {
	return &Planner{registry: registry, matcher: matcher}
}

// Scope describes where a value was reached from, driving attribute
// discovery order (field attributes, nearest-scope first, then class
// attributes) per spec.md §4.4 step 2.
type Scope struct {
	// FieldAttributes are the attribute instances attached to the record
	// field this value was read from, in source order, or nil if the
	// value was not reached through a field.
	FieldAttributes []any
	// ClassAttributes are the class-level attribute instances of the
	// record type declaring the value (for a field value, its static
	// type's attributes; for a root record value, its own type's
	// attributes), in source order.
	ClassAttributes []any
}

// BuildValueChain assembles the ordered value-transformer Link list for
// subj (excluding the terminal Default step, appended by the caller via
// NewChain's def argument): free transformers sorted by (priority desc,
// insertionIndex asc), followed by attribute-bound transformers in
// discovery order (field attributes first, then class attributes).
func (p *Planner) BuildValueChain(subj match.Subject, scope Scope) []Link {
	var links []Link

	free := p.registry.ValueRegistrations()
	matched := make([]types.Registration, 0, len(free))
	for _, reg := range free {
		if p.matcher.Matches(reg.Param, subj) {
			matched = append(matched, reg)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return matched[i].InsertionIndex < matched[j].InsertionIndex
	})
	for _, reg := range matched {
		name := reg.Name
		if name == "" {
			name = fmt.Sprintf("transformer#%d", reg.InsertionIndex)
		}
		links = append(links, Link{Name: name, Fn: reg.Fn})
	}

	for _, attr := range scope.FieldAttributes {
		if link, ok := p.attributeLink(attr); ok {
			links = append(links, link)
		}
	}
	for _, attr := range scope.ClassAttributes {
		if link, ok := p.attributeLink(attr); ok {
			links = append(links, link)
		}
	}

	return links
}

func (p *Planner) attributeLink(attr any) (Link, bool) {
	vt, ok := attr.(types.ValueTransformerAttribute)
	if !ok {
		return Link{}, false
	}
	if !p.registry.MatchesAttribute(attr, types.ValueTransformer) {
		return Link{}, false
	}
	return Link{
		Name: fmt.Sprintf("%T", attr),
		Fn: func(v any, next types.Next) (types.Node, error) {
			return vt.Normalize(v, next)
		},
	}, true
}

// BuildKeyChain assembles the ordered key-transformer function for a
// record field's attribute list (already restricted to this field,
// source order). Per spec.md §4.4's key chain rule, each attribute
// receives the previous output in turn, starting from the field's
// original name; a zero-parameter key-transformer attribute ignores its
// input. Free-standing key-transformer registrations whose parameter type
// matches the current key, if any, are applied after the attribute chain,
// mirroring the free-wraps-attribute ordering principle in spec.md §9.
func (p *Planner) BuildKeyChain(fieldAttrs []any) func(fieldName string) (any, error) {
	var ktAttrs []types.KeyTransformerAttribute
	for _, attr := range fieldAttrs {
		kt, ok := attr.(types.KeyTransformerAttribute)
		if !ok {
			continue
		}
		if !p.registry.MatchesAttribute(attr, types.KeyTransformer) {
			continue
		}
		ktAttrs = append(ktAttrs, kt)
	}

	free := p.registry.KeyRegistrations()
	sort.SliceStable(free, func(i, j int) bool {
		if free[i].Priority != free[j].Priority {
			return free[i].Priority > free[j].Priority
		}
		return free[i].InsertionIndex < free[j].InsertionIndex
	})

	return func(fieldName string) (any, error) {
		var key any = fieldName
		for _, kt := range ktAttrs {
			out, err := kt.NormalizeKey(key)
			if err != nil {
				return nil, err
			}
			key = out
		}
		for _, reg := range free {
			matches, err := p.keyTypeMatches(reg, key)
			if err != nil {
				return nil, err
			}
			if !matches {
				continue
			}
			out, err := reg.Fn(key)
			if err != nil {
				return nil, err
			}
			key = out
		}
		return key, nil
	}
}

// keyTypeMatches reports whether reg applies to key's current type. A
// registration whose declared Param Kind is neither KindString nor
// KindInt can never match here — per spec.md §7.1, that configuration
// error is raised at first dispatch involving the offending registration
// rather than left to silently never fire.
func (p *Planner) keyTypeMatches(reg types.KeyRegistration, key any) (bool, error) {
	if !reg.HasParam {
		return true, nil
	}
	if reg.Param.Kind != types.KindString && reg.Param.Kind != types.KindInt {
		return false, types.ErrKeyTransformerParamWrongType(reg.Name)
	}
	subj := match.Subject{Kind: types.KindString}
	if n, ok := key.(int64); ok {
		subj = match.Subject{Kind: types.KindInt, Int64: n}
	}
	return p.matcher.Matches(reg.Param, subj), nil
}
