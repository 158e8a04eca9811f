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

// Package dispatch implements the Dispatch Planner and Dispatch Chain
// described in spec.md §4.4: for a given value it assembles the ordered
// chain of applicable transformers, terminated by the default
// normalization step, and exposes a `next()` continuation capability at
// every link.
//
// The continuation is a small object bound to (chain, position, subject)
// rather than a closure over mutable state, per the design note in
// spec.md §9.
package dispatch

import (
	"fmt"

	"github.com/oxhq/normalize/types"
)

// Link is one entry of an assembled Chain: either a free or
// attribute-bound value transformer, or the terminal Default step.
type Link struct {
	Name string
	Fn   types.NextValueTransformerFunc
}

// DefaultFunc is the Normalizer Engine's default normalization step,
// invoked as the chain's terminal link. It is supplied by the engine
// package to break the import cycle between dispatch and engine (engine
// depends on dispatch to build chains; dispatch must not depend back on
// engine).
type DefaultFunc func(value any) (types.Node, error)

// Chain is an assembled, ordered Dispatch Chain for one subject value.
// Invoking Run() invokes the head link with a Next bound to the
// remainder of the chain; the final link is always the Default step.
type Chain struct {
	links   []Link
	def     DefaultFunc
	subject any
}

// NewChain assembles a Chain from links (already ordered per §4.4) plus
// the terminal Default step, bound to subject.
func NewChain(subject any, links []Link, def DefaultFunc) *Chain {
	return &Chain{links: links, def: def, subject: subject}
}

// Run invokes the chain from its head.
func (c *Chain) Run() (types.Node, error) {
	return c.at(0)
}

// at invokes the link at position i (or the Default step once i reaches
// len(links)), binding that link's Next to i+1. Each Next.Apply() call
// re-enters at, so the chain always terminates: the recursion depth is
// bounded by len(links)+1, per invariant 5 in spec.md §3.
func (c *Chain) at(i int) (types.Node, error) {
	if i >= len(c.links) {
		return c.def(c.subject)
	}
	link := c.links[i]
	next := &continuation{chain: c, position: i + 1}
	node, err := link.Fn(c.subject, next)
	if err != nil {
		return nil, fmt.Errorf("dispatch: transformer %q: %w", link.Name, err)
	}
	return node, nil
}

// continuation is the concrete types.Next bound to a fixed (chain,
// position). Its subject is fixed at chain-entry time, per spec.md §4.5's
// continuation semantics: "next() takes no arguments; the subject is
// fixed at chain entry."
type continuation struct {
	chain    *Chain
	position int
}

func (n *continuation) Apply() (types.Node, error) {
	return n.chain.at(n.position)
}
