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

// Config holds the normalizer's ambient configuration: the component
// registry, logger, reflection adapter, and user-declared integer
// refinements. It is assembled once via NewConfig(opts ...Option) and
// handed, frozen, to every Normalizer built from it.
type Config struct {
	Registry          TransformerRegistry
	Logger            Logger
	ReflectionAdapter ReflectionAdapter
	// Refinements maps a refinement name ("positive-int", "even-int", ...)
	// to its expr-lang predicate source. Built-ins are seeded by
	// NewConfig; WithRefinement appends user-declared ones.
	Refinements map[string]string
	// OnDebug, if set, is invoked once per dispatch-chain link executed.
	OnDebug func(event DebugEvent)
}

// DebugEvent describes a single dispatch-chain link invocation, passed to
// Config.OnDebug when set.
type DebugEvent struct {
	TransformerName string
	Kind            TransformerKind
	DurationNanos   int64
	Err             error
}

// Option configures a Config. It follows the functional-options pattern
// used throughout this module (see NewConfig, and engine.New).
type Option func(*Config)

// WithComponentsRegistry sets the TransformerRegistry, allowing full
// replacement of the default registry (e.g. for multi-tenant isolation or
// tests that want a fresh registry per case).
func WithComponentsRegistry(r TransformerRegistry) Option {
	return func(c *Config) { c.Registry = r }
}

// WithLogger sets the Logger.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithReflectionAdapter sets the ReflectionAdapter used to enumerate
// record fields and attributes.
func WithReflectionAdapter(a ReflectionAdapter) Option {
	return func(c *Config) { c.ReflectionAdapter = a }
}

// WithRefinement registers a named integer refinement backed by an
// expr-lang boolean expression evaluated against {value int64}.
func WithRefinement(name, expr string) Option {
	return func(c *Config) {
		if c.Refinements == nil {
			c.Refinements = map[string]string{}
		}
		c.Refinements[name] = expr
	}
}

// WithOnDebug sets the debug callback invoked per dispatch-chain link.
func WithOnDebug(fn func(DebugEvent)) Option {
	return func(c *Config) { c.OnDebug = fn }
}

// NewConfig builds a Config with sane defaults (a DefaultLogger, the
// built-in integer refinements) and applies opts in order.
func NewConfig(opts ...Option) Config {
	c := Config{
		Logger: DefaultLogger(),
		Refinements: map[string]string{
			"positive-int": "value > 0",
			"negative-int": "value < 0",
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
