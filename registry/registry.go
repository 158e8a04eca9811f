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

// Package registry implements the Transformer Registry described in
// spec.md §4.3: it stores free-standing transformer/key-transformer
// registrations and attribute-identity registrations, validates arity
// eagerly, and hands the Engine an immutable snapshot per call.
//
// Registrations are mutex-guarded; the read path returns a defensive copy.
// There is no way to remove a registration.
package registry

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/oxhq/normalize/types"
)

// Registry is the default, concurrency-safe TransformerRegistry
// implementation.
type Registry struct {
	mu         sync.RWMutex
	values     []types.Registration
	keys       []types.KeyRegistration
	attributes map[attrKey]struct{}

	counter atomic.Int64
}

type attrKey struct {
	identity any
	kind     types.TransformerKind
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{attributes: make(map[attrKey]struct{})}
}

// nextIndex returns a monotonically increasing insertion index, shared
// across value and key registrations so relative registration order is
// always recoverable.
func (r *Registry) nextIndex() int {
	return int(r.counter.Add(1) - 1)
}

// RegisterValue registers a free-standing one-parameter transformer.
// priority defaults to 0 when omitted.
func (r *Registry) RegisterValue(name string, param types.Descriptor, fn types.ValueTransformerFunc, priority ...int) {
	p := 0
	if len(priority) > 0 {
		p = priority[0]
	}
	wrapped := func(v any, _ types.Next) (types.Node, error) { return fn(v) }
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, types.Registration{
		Name: name, Param: param, TakesNext: false, Fn: wrapped,
		Priority: p, InsertionIndex: r.nextIndex(),
	})
}

// RegisterValueWithNext registers a free-standing two-parameter
// transformer that receives an explicit Next continuation.
func (r *Registry) RegisterValueWithNext(name string, param types.Descriptor, fn types.NextValueTransformerFunc, priority ...int) {
	p := 0
	if len(priority) > 0 {
		p = priority[0]
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, types.Registration{
		Name: name, Param: param, TakesNext: true, Fn: fn,
		Priority: p, InsertionIndex: r.nextIndex(),
	})
}

// RegisterKey registers a free-standing key transformer. If hasParam is
// false, the zero-parameter form is registered: fn is still called with
// the current key, applies to every key, and is expected to ignore its
// input and substitute its own name. When hasParam is true, param
// must describe a string or integer Kind — per spec.md §7.1's key
// transformer parameter taxonomy — or RegisterKey rejects the
// registration with ErrKeyTransformerParamWrongType rather than admitting
// a registration that can never match any key at dispatch time.
func (r *Registry) RegisterKey(name string, param types.Descriptor, hasParam bool, fn types.KeyTransformerFunc, priority ...int) error {
	if hasParam && param.Kind != types.KindString && param.Kind != types.KindInt {
		return types.ErrKeyTransformerParamWrongType(name)
	}
	p := 0
	if len(priority) > 0 {
		p = priority[0]
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, types.KeyRegistration{
		Name: name, Param: param, HasParam: hasParam, Fn: fn,
		Priority: p, InsertionIndex: r.nextIndex(),
	})
	return nil
}

// RegisterAttribute records identity (a concrete attribute type or an
// abstraction it implements) as a source of transformers of the given
// kind. A single identity may be registered as both ValueTransformer and
// KeyTransformer kinds, and as both a concrete type and an interface it
// implements — duplicate registrations are idempotent.
func (r *Registry) RegisterAttribute(identity any, kind types.TransformerKind) error {
	if identity == nil {
		return fmt.Errorf("registry: cannot register a nil attribute identity")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attributes[attrKey{identity: identity, kind: kind}] = struct{}{}
	return nil
}

// ValueRegistrations implements types.TransformerRegistry.
func (r *Registry) ValueRegistrations() []types.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.Registration, len(r.values))
	copy(out, r.values)
	return out
}

// KeyRegistrations implements types.TransformerRegistry.
func (r *Registry) KeyRegistrations() []types.KeyRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.KeyRegistration, len(r.keys))
	copy(out, r.keys)
	return out
}

// IsAttributeRegistered implements types.TransformerRegistry.
func (r *Registry) IsAttributeRegistered(identity any, kind types.TransformerKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.attributes[attrKey{identity: identity, kind: kind}]
	return ok
}

// MatchesAttribute implements types.TransformerRegistry by checking attr's
// concrete reflect.Type for an exact-identity registration first, then
// falling back to a scan for any registered interface identity attr
// implements.
func (r *Registry) MatchesAttribute(attr any, kind types.TransformerKind) bool {
	if attr == nil {
		return false
	}
	t := reflect.TypeOf(attr)
	if r.IsAttributeRegistered(t, kind) {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := range r.attributes {
		if k.kind != kind {
			continue
		}
		ifaceType, ok := k.identity.(reflect.Type)
		if !ok || ifaceType.Kind() != reflect.Interface {
			continue
		}
		if t.Implements(ifaceType) {
			return true
		}
	}
	return false
}
