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

// Package script implements script-backed transformers (SPEC_FULL.md §4.5
// "Script transformers"): a registered transformer whose body is a
// JavaScript function rather than Go code, for callers that want to
// declare transformers at configuration time instead of compiling them
// into the binary.
//
// A goja.Runtime is pooled and reused across calls, with the user's
// function precompiled once and invoked on every transformation.
package script

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"

	"github.com/oxhq/normalize/types"
)

const transformFuncName = "transform"

// Engine compiles a JavaScript source once and runs it against a pool of
// goja.Runtime VMs, scoped to this package's single
// `transform(value, next)` contract.
type Engine struct {
	program *goja.Program
	pool    sync.Pool
}

// NewEngine compiles source, which must declare a top-level
// `function transform(value, next) { ... }`. next is a JS function with no
// arguments that invokes the remainder of the dispatch chain and returns
// its normalized result.
func NewEngine(source string) (*Engine, error) {
	program, err := goja.Compile("transformer.js", source, true)
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	e := &Engine{program: program}
	e.pool.New = func() any {
		vm := goja.New()
		if _, err := vm.RunProgram(program); err != nil {
			// A VM that fails to load the program is useless; surface the
			// failure on first use rather than pooling a broken instance.
			return &brokenVM{err: err}
		}
		return vm
	}
	return e, nil
}

type brokenVM struct{ err error }

// Transform implements types.NextValueTransformerFunc's shape, suitable
// for registry.RegisterValueWithNext: it runs the compiled `transform`
// function against value, handing it a `next` callback bound to the Go
// continuation.
func (e *Engine) Transform(value any, next types.Next) (types.Node, error) {
	got := e.pool.Get()
	if broken, ok := got.(*brokenVM); ok {
		return nil, fmt.Errorf("script: %w", broken.err)
	}
	vm := got.(*goja.Runtime)
	defer e.pool.Put(vm)

	nextFn := func() (any, error) { return next.Apply() }
	if err := vm.Set("next", nextFn); err != nil {
		return nil, fmt.Errorf("script: binding next: %w", err)
	}

	fn, ok := goja.AssertFunction(vm.Get(transformFuncName))
	if !ok {
		return nil, errors.New("script: source does not declare function transform(value, next)")
	}
	res, err := fn(goja.Undefined(), vm.ToValue(value), vm.ToValue(nextFn))
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return res.Export(), nil
}
