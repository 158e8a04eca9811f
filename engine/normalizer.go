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

// Package engine implements the Normalizer Engine of spec.md §4.5: the
// recursive traversal that maintains the cycle-detection set, implements
// the default normalization for each kind, drives dispatch through the
// dispatch package's Planner, and composes next() continuations.
package engine

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/oxhq/normalize/dispatch"
	"github.com/oxhq/normalize/match"
	"github.com/oxhq/normalize/reflector"
	"github.com/oxhq/normalize/types"
)

var (
	timeTimeType     = reflect.TypeOf(time.Time{})
	timeLocationType = reflect.TypeOf(time.Location{})
)

// Engine is the concrete types.Engine: the entry point bound to one
// immutable registry/reflection-adapter/matcher snapshot, per the
// concurrency model in spec.md §5.
type Engine struct {
	registry    types.TransformerRegistry
	reflAdapter types.ReflectionAdapter
	matcher     *match.Matcher
	planner     *dispatch.Planner
	logger      types.Logger
	onDebug     func(types.DebugEvent)
	metrics     *metrics
}

// New builds an Engine from cfg. cfg.Registry must be non-nil; a nil
// cfg.ReflectionAdapter falls back to reflector.Default.
func New(cfg types.Config) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("engine: Config.Registry must not be nil")
	}
	refl := cfg.ReflectionAdapter
	if refl == nil {
		refl = reflector.Default
	}
	compiler, err := match.NewRefinementCompiler(cfg.Refinements)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	matcher := match.New(compiler)
	logger := cfg.Logger
	if logger == nil {
		logger = types.DefaultLogger()
	}
	return &Engine{
		registry:    cfg.Registry,
		reflAdapter: refl,
		matcher:     matcher,
		planner:     dispatch.New(cfg.Registry, matcher),
		logger:      logger,
		onDebug:     cfg.OnDebug,
		metrics:     newMetrics(),
	}, nil
}

// Normalize implements types.Engine: it owns a fresh Cycle-Detection Set
// and per-type reflection cache for the duration of this call, per
// spec.md §3's lifecycle rules, and releases both on return.
func (e *Engine) Normalize(value any) (types.Node, error) {
	traceID, _ := uuid.NewV4()
	start := time.Now()
	c := &call{
		engine:    e,
		cycle:     newCycleSet(),
		typeCache: make(map[reflect.Type]typeMeta),
		traceID:   traceID,
	}
	node, err := c.normalize(value, dispatch.Scope{})
	outcome := "ok"
	if err != nil {
		outcome = "error"
		var ne *types.Error
		if errors.As(err, &ne) {
			ne.TraceID = traceID
		}
		e.logger.Printf("normalize trace=%s failed: %v", traceID, err)
	}
	e.metrics.callsTotal.WithLabelValues(outcome).Inc()
	e.metrics.callDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	e.metrics.cycleDepthHigh.Set(float64(c.cycle.highWatermark))
	return node, err
}

// typeMeta caches a record type's identity and class-level attributes for
// the duration of one Normalize call, per spec.md §3's "Attribute
// bindings are derived lazily... and may be cached per type identity for
// the duration of the call."
type typeMeta struct {
	identity   types.RecordIdentity
	classAttrs []any
}

// call holds all per-Normalize-call state: the Cycle-Detection Set and
// the type-identity cache. It is discarded after Normalize returns.
type call struct {
	engine    *Engine
	cycle     *cycleSet
	typeCache map[reflect.Type]typeMeta
	traceID   uuid.UUID
}

// normalize is the per-value entry point used both by Engine.Normalize
// and by every default-step recursion into a child value. It always
// receives a raw, already-exported Go value (never a reflect.Value
// carrying the read-only flag of an unexported struct field): field reads
// that must cross that boundary do so once, via reflector's unsafe-based
// readField, before handing control back here.
func (c *call) normalize(value any, scope dispatch.Scope) (types.Node, error) {
	return c.normalizeRV(reflect.ValueOf(value), scope)
}

func (c *call) normalizeRV(rv reflect.Value, scope dispatch.Scope) (types.Node, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return c.normalizeRV(rv.Elem(), scope)
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		addr := rv.Pointer()
		typeName := qualifiedTypeName(rv.Type().Elem())
		if !c.cycle.push(addr) {
			return nil, types.ErrCircularReference(typeName)
		}
		defer c.cycle.pop(addr)
		return c.normalizeRV(rv.Elem(), scope)
	}
	return c.dispatchRV(rv, scope)
}

// dispatchRV classifies rv's runtime Kind, builds the applicable Dispatch
// Chain (free transformers, then attribute-bound transformers, then the
// Default step), and runs it. rv is always interfaceable at this point.
func (c *call) dispatchRV(rv reflect.Value, scope dispatch.Scope) (types.Node, error) {
	if ev, ok := asEnumValue(rv); ok {
		id := ev.EnumIdentity()
		subj := match.Subject{Kind: types.KindEnum, Enum: &id}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return defaultEnum(ev), nil
		})
	}

	switch rv.Type() {
	case timeTimeType:
		tm := rv.Interface().(time.Time)
		id := types.RecordIdentity{Name: "time.Time"}
		subj := match.Subject{Kind: types.KindRecord, Record: &id}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return renderDateTime(tm), nil
		})
	case timeLocationType:
		loc := rv.Interface().(time.Location)
		id := types.RecordIdentity{Name: "time.Location"}
		subj := match.Subject{Kind: types.KindRecord, Record: &id}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return renderTimeZone(&loc), nil
		})
	case reflect.TypeOf(types.Bag{}):
		bag := rv.Interface().(types.Bag)
		subj := match.Subject{Kind: types.KindMapping}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			m := types.NewMap()
			for _, e := range bag.Entries {
				node, err := c.normalize(e.Value, dispatch.Scope{})
				if err != nil {
					return nil, err
				}
				m.Set(e.Name, node)
			}
			return m, nil
		})
	}

	switch rv.Kind() {
	case reflect.Bool:
		subj := match.Subject{Kind: types.KindBool}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return rv.Bool(), nil
		})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		subj := match.Subject{Kind: types.KindInt, Int64: n}
		return c.runChain(n, subj, scope, func(any) (types.Node, error) {
			return n, nil
		})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int64(rv.Uint())
		subj := match.Subject{Kind: types.KindInt, Int64: n}
		return c.runChain(n, subj, scope, func(any) (types.Node, error) {
			return n, nil
		})
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		subj := match.Subject{Kind: types.KindFloat}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return f, nil
		})
	case reflect.String:
		s := rv.String()
		subj := match.Subject{Kind: types.KindString}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return s, nil
		})
	case reflect.Slice, reflect.Array:
		subj := match.Subject{Kind: types.KindSequence}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return c.defaultSequence(rv)
		})
	case reflect.Map:
		subj := match.Subject{Kind: types.KindMapping}
		return c.runChain(rv.Interface(), subj, scope, func(any) (types.Node, error) {
			return c.defaultMapping(rv)
		})
	case reflect.Struct:
		meta := c.metaFor(rv.Type(), rv)
		subj := match.Subject{Kind: types.KindRecord, Record: &meta.identity}
		recordScope := dispatch.Scope{FieldAttributes: scope.FieldAttributes, ClassAttributes: meta.classAttrs}
		return c.runChain(rv.Interface(), subj, recordScope, func(any) (types.Node, error) {
			return c.defaultRecord(rv)
		})
	default:
		return nil, types.ErrTypeUnhandled(rv.Kind().String())
	}
}

// runChain assembles and executes the Dispatch Chain for subj, wired with
// the Engine's debug instrumentation.
func (c *call) runChain(subject any, subj match.Subject, scope dispatch.Scope, def dispatch.DefaultFunc) (types.Node, error) {
	links := c.engine.planner.BuildValueChain(subj, scope)
	links = c.engine.instrument(links)
	chain := dispatch.NewChain(subject, links, def)
	return chain.Run()
}

// instrument wraps each link so Config.OnDebug observes every
// dispatch-chain invocation, when configured.
func (e *Engine) instrument(links []dispatch.Link) []dispatch.Link {
	if e.onDebug == nil {
		return links
	}
	out := make([]dispatch.Link, len(links))
	for i, l := range links {
		l := l
		out[i] = dispatch.Link{Name: l.Name, Fn: func(v any, next types.Next) (types.Node, error) {
			start := time.Now()
			node, err := l.Fn(v, next)
			e.onDebug(types.DebugEvent{
				TransformerName: l.Name,
				Kind:            types.ValueTransformer,
				DurationNanos:   time.Since(start).Nanoseconds(),
				Err:             err,
			})
			return node, err
		}}
	}
	return out
}

func (c *call) metaFor(t reflect.Type, rv reflect.Value) typeMeta {
	if m, ok := c.typeCache[t]; ok {
		return m
	}
	m := typeMeta{
		identity:   c.engine.reflAdapter.Identity(rv),
		classAttrs: c.engine.reflAdapter.ClassAttributes(rv),
	}
	c.typeCache[t] = m
	return m
}

// defaultSequence implements the Default step for sequences: an
// index-ordered list of normalized elements, keys discarded.
func (c *call) defaultSequence(rv reflect.Value) (types.Node, error) {
	seq := &types.Seq{}
	for i := 0; i < rv.Len(); i++ {
		node, err := c.normalizeRV(rv.Index(i), dispatch.Scope{})
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, node)
	}
	return seq, nil
}

// defaultMapping implements the Default step for mappings: a
// key-preserving map of normalized values. Go map iteration order is
// randomized, so keys are sorted before emission to satisfy the
// "Dispatch determinism" testable property in spec.md §8.
func (c *call) defaultMapping(rv reflect.Value) (types.Node, error) {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	m := types.NewMap()
	for _, k := range keys {
		var mapKey any
		switch k.Kind() {
		case reflect.String:
			mapKey = k.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			mapKey = k.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			mapKey = int64(k.Uint())
		default:
			mapKey = fmt.Sprint(k.Interface())
		}
		node, err := c.normalizeRV(rv.MapIndex(k), dispatch.Scope{})
		if err != nil {
			return nil, err
		}
		m.Set(mapKey, node)
	}
	return m, nil
}

// defaultRecord implements the Default step for records: a mapping of
// keyChain(field) -> normalize(field.value) in field order
// (ancestor-first), per spec.md §4.5.
func (c *call) defaultRecord(rv reflect.Value) (types.Node, error) {
	fields := c.engine.reflAdapter.Fields(rv)
	m := types.NewMap()
	for _, f := range fields {
		fieldAttrs := c.engine.reflAdapter.FieldAttributes(rv, f.Name)
		keyFn := c.engine.planner.BuildKeyChain(fieldAttrs)
		key, err := keyFn(f.Name)
		if err != nil {
			return nil, err
		}
		fieldValue := f.Read(rv)
		node, err := c.normalize(fieldValue, dispatch.Scope{FieldAttributes: fieldAttrs})
		if err != nil {
			return nil, err
		}
		m.Set(key, node)
	}
	return m, nil
}

// defaultEnum implements the default enum rendering contract in spec.md
// §6: pure -> variant name, string-backed -> backing string, int-backed
// -> backing int.
func defaultEnum(ev types.EnumValue) types.Node {
	if s, ok := ev.EnumBackingString(); ok {
		return s
	}
	if n, ok := ev.EnumBackingInt(); ok {
		return n
	}
	return ev.VariantName()
}

// asEnumValue reports whether rv (or, if addressable, its address)
// implements types.EnumValue.
func asEnumValue(rv reflect.Value) (types.EnumValue, bool) {
	if rv.CanInterface() {
		if ev, ok := rv.Interface().(types.EnumValue); ok {
			return ev, true
		}
	}
	if rv.CanAddr() {
		if ev, ok := rv.Addr().Interface().(types.EnumValue); ok {
			return ev, true
		}
	}
	return nil, false
}

func qualifiedTypeName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
