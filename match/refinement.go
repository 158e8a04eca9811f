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

package match

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/oxhq/normalize/types"
)

// refinementEnv is the expr-lang evaluation environment for integer
// refinement predicates: "positive-int" compiles to "value > 0" evaluated
// against {value: int64}.
type refinementEnv struct {
	Value int64 `expr:"value"`
}

// RefinementCompiler compiles and caches expr-lang programs for named
// integer refinements, evaluating a boolean predicate over a small typed
// environment.
type RefinementCompiler struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

// NewRefinementCompiler builds a compiler pre-seeded with refinements
// (name -> expr-lang source), typically types.Config.Refinements.
func NewRefinementCompiler(refinements map[string]string) (*RefinementCompiler, error) {
	c := &RefinementCompiler{programs: make(map[string]*vm.Program, len(refinements))}
	for name, src := range refinements {
		if err := c.compile(name, src); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *RefinementCompiler) compile(name, src string) error {
	program, err := expr.Compile(src, expr.Env(refinementEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("match: refinement %q: %w", name, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.programs[name] = program
	return nil
}

// Register compiles and adds a new refinement at runtime.
func (c *RefinementCompiler) Register(name, src string) error {
	return c.compile(name, src)
}

// Satisfies evaluates the named refinement's predicate against value. An
// unknown refinement name never matches: this keeps a typo in a
// descriptor's refinement name a dispatch miss rather than a panic.
func (c *RefinementCompiler) Satisfies(name string, value int64) bool {
	c.mu.RLock()
	program, ok := c.programs[name]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	out, err := expr.Run(program, refinementEnv{Value: value})
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

// Refinement is a convenience constructor bundling a name with its
// expr-lang source into a types.Refinement, for use with types.IntRefined.
// The Matcher looks the refinement up by name only; src is not compiled
// here, so the name must also be registered with the RefinementCompiler
// (for example via types.WithRefinement).
func Refinement(name, src string) types.Refinement {
	return types.Refinement{Name: name, Expr: src}
}
