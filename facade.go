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

// Package normalize is the Orchestration façade described in spec.md §6:
// it assembles the Registry, Reflection Adapter, Matcher, Planner, and
// Engine from configuration, and exposes the single conceptual entry
// point normalize(value).
package normalize

import (
	"fmt"
	"reflect"

	"github.com/oxhq/normalize/engine"
	"github.com/oxhq/normalize/output"
	"github.com/oxhq/normalize/registry"
	"github.com/oxhq/normalize/script"
	"github.com/oxhq/normalize/types"
)

var nextType = reflect.TypeOf((*types.Next)(nil)).Elem()

// Node is the Normalized Node tree type; re-exported so callers never need
// to import the types package directly for the common path.
type Node = types.Node

// Option configures a Facade at construction time. It is an alias of
// types.Option so WithLogger/WithRefinement/WithComponentsRegistry/etc.
// compose directly with New.
type Option = types.Option

var (
	WithLogger             = types.WithLogger
	WithRefinement         = types.WithRefinement
	WithComponentsRegistry = types.WithComponentsRegistry
	WithReflectionAdapter  = types.WithReflectionAdapter
	WithOnDebug            = types.WithOnDebug
)

// Facade is the assembled normalizer: one Registry bound to one Engine.
// Facade is safe for concurrent use once built (registrations should
// happen before the first Normalize call, per the concurrency model in
// spec.md §5).
type Facade struct {
	registry *registry.Registry
	engine   *engine.Engine
}

// New builds a Facade from opts, defaulting to a fresh Registry and the
// built-in expr-lang refinements, mirroring types.NewConfig(opts ...Option).
func New(opts ...Option) (*Facade, error) {
	reg := registry.New()
	cfg := types.NewConfig(append([]Option{WithComponentsRegistry(reg)}, opts...)...)
	// A caller-supplied registry (via WithComponentsRegistry in opts)
	// overrides the default one built above.
	concreteReg, ok := cfg.Registry.(*registry.Registry)
	if !ok {
		return nil, fmt.Errorf("normalize: Config.Registry must be a *registry.Registry (got %T)", cfg.Registry)
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Facade{registry: concreteReg, engine: eng}, nil
}

// RegisterTransformer registers a free-standing transformer (the
// one-parameter or two-parameter shape is chosen by the fn argument's
// concrete type), per spec.md §6's
// `registerTransformer(callable, priority=0)`. A fn shape outside the two
// supported arities is rejected with the matching spec.md §7.1
// configuration error (missing parameter, too many parameters, or a
// second parameter that isn't a callable next()) instead of a generic
// type-mismatch message.
func (f *Facade) RegisterTransformer(name string, param types.Descriptor, fn any, priority ...int) error {
	switch t := fn.(type) {
	case types.ValueTransformerFunc:
		f.registry.RegisterValue(name, param, t, priority...)
	case func(any) (types.Node, error):
		f.registry.RegisterValue(name, param, t, priority...)
	case types.NextValueTransformerFunc:
		f.registry.RegisterValueWithNext(name, param, t, priority...)
	case func(any, types.Next) (types.Node, error):
		f.registry.RegisterValueWithNext(name, param, t, priority...)
	default:
		rt := reflect.TypeOf(fn)
		if rt == nil || rt.Kind() != reflect.Func {
			return fmt.Errorf("normalize: RegisterTransformer: unsupported function shape %T", fn)
		}
		switch rt.NumIn() {
		case 0:
			return types.ErrTransformerMissingParameter(name)
		case 2:
			if !rt.In(1).Implements(nextType) {
				return types.ErrTransformerSecondParamNotCallable(name)
			}
			return fmt.Errorf("normalize: RegisterTransformer: unsupported function shape %T", fn)
		case 1:
			return fmt.Errorf("normalize: RegisterTransformer: unsupported function shape %T", fn)
		default:
			return types.ErrTransformerTooManyParameters(name)
		}
	}
	return nil
}

// RegisterKeyTransformer registers a free-standing key transformer, per
// spec.md §4.3's key-transformer registration form. fn's arity (inferred
// by reflection) selects the zero- or one-parameter form; a declared
// arity outside {0, 1} is rejected with ErrKeyTransformerTooManyParameters,
// and a one-parameter form whose declared param isn't String or Int is
// rejected with ErrKeyTransformerParamWrongType (propagated from
// registry.RegisterKey).
func (f *Facade) RegisterKeyTransformer(name string, param types.Descriptor, fn any, priority ...int) error {
	switch t := fn.(type) {
	case types.KeyTransformerFunc:
		return f.registry.RegisterKey(name, param, true, t, priority...)
	case func(any) (any, error):
		return f.registry.RegisterKey(name, param, true, t, priority...)
	case func() (any, error):
		return f.registry.RegisterKey(name, param, false, func(_ any) (any, error) { return t() }, priority...)
	default:
		rt := reflect.TypeOf(fn)
		if rt == nil || rt.Kind() != reflect.Func {
			return fmt.Errorf("normalize: RegisterKeyTransformer: unsupported function shape %T", fn)
		}
		if rt.NumIn() > 1 {
			return types.ErrKeyTransformerTooManyParameters(name)
		}
		return fmt.Errorf("normalize: RegisterKeyTransformer: unsupported function shape %T", fn)
	}
}

// RegisterAttribute registers identity (a concrete attribute struct type
// or an interface it implements, passed as e.g.
// reflect.TypeOf(MyAttr{}) or
// reflect.TypeOf((*SomeInterface)(nil)).Elem()) as a transformer source of
// the given kind, per spec.md §6's
// `registerTransformer(attributeIdentity)`.
func (f *Facade) RegisterAttribute(identity any, kind types.TransformerKind) error {
	return f.registry.RegisterAttribute(identity, kind)
}

// RegisterScriptTransformer compiles source (a JavaScript
// `function transform(value, next) { ... }`) and registers it as a
// free-standing value transformer matching param, per SPEC_FULL.md §4.5's
// script-transformer extension.
func (f *Facade) RegisterScriptTransformer(name string, param types.Descriptor, source string, priority ...int) error {
	eng, err := script.NewEngine(source)
	if err != nil {
		return err
	}
	f.registry.RegisterValueWithNext(name, param, eng.Transform, priority...)
	return nil
}

// Format selects the container shape Normalizer.Normalize renders into.
type Format int

const (
	// FormatArray renders into plain Go containers ([]output.KeyValue for
	// mappings, []any, primitives) — the array-tree adapter of spec.md §4.6.
	FormatArray Format = iota
)

// Normalizer is a Facade bound to one output Format, per spec.md §6's
// `normalizer(format) → Normalizer`.
type Normalizer struct {
	facade  *Facade
	adapter types.OutputAdapter
}

// Normalizer returns a Normalizer bound to format.
func (f *Facade) Normalizer(format Format) *Normalizer {
	switch format {
	case FormatArray:
		return &Normalizer{facade: f, adapter: output.NewArrayAdapter()}
	default:
		return &Normalizer{facade: f, adapter: output.NewArrayAdapter()}
	}
}

// MapNormalizer returns a Normalizer-like helper bound to the
// mapstructure-backed adapter, exposing Decode in addition to Normalize.
func (f *Facade) MapNormalizer() *MapNormalizer {
	return &MapNormalizer{facade: f, adapter: output.NewMapOutputAdapter()}
}

// Normalize runs value through the Engine and materializes the result
// into n's bound format, per spec.md §6's `Normalizer.normalize(value) →
// Node-tree-in-format`.
func (n *Normalizer) Normalize(value any) (any, error) {
	node, err := n.facade.engine.Normalize(value)
	if err != nil {
		return nil, err
	}
	return n.adapter.Adapt(node)
}

// MapNormalizer is a Facade bound to the mapstructure-backed
// MapOutputAdapter (SPEC_FULL.md §4.6).
type MapNormalizer struct {
	facade  *Facade
	adapter *output.MapOutputAdapter
}

// Normalize behaves like Normalizer.Normalize, returning a generic
// map[string]any/[]any tree.
func (n *MapNormalizer) Normalize(value any) (any, error) {
	node, err := n.facade.engine.Normalize(value)
	if err != nil {
		return nil, err
	}
	return n.adapter.Adapt(node)
}

// Decode normalizes value and mapstructure-decodes the result into dest
// (a pointer to a struct, map, or slice).
func (n *MapNormalizer) Decode(value any, dest any) error {
	node, err := n.facade.engine.Normalize(value)
	if err != nil {
		return err
	}
	return n.adapter.Decode(node, dest)
}
