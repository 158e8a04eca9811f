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

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// Stable error codes. These never change meaning across releases; callers
// are expected to switch on Error.Code rather than parse Error().
const (
	CodeTypeUnhandled                     = 1695062925
	CodeCircularReference                 = 1695064016
	CodeTransformerMissingParameter       = 1695064946
	CodeTransformerTooManyParameters      = 1695065433
	CodeTransformerSecondParamNotCallable = 1695065710
	CodeKeyTransformerTooManyParameters   = 1701701102
	CodeKeyTransformerParamWrongType      = 1701706316
)

var messageTemplates = map[int]string{
	CodeTypeUnhandled:                     "value of kind %q is not handled by the normalizer",
	CodeCircularReference:                 "circular reference detected while normalizing %q",
	CodeTransformerMissingParameter:       "transformer %q declares no parameters",
	CodeTransformerTooManyParameters:      "transformer %q declares more than two parameters",
	CodeTransformerSecondParamNotCallable: "transformer %q's second parameter is not a callable next()",
	CodeKeyTransformerTooManyParameters:   "key transformer %q declares more than one parameter",
	CodeKeyTransformerParamWrongType:      "key transformer %q's parameter is neither string nor int",
}

// Error is the single error type raised by every component of the
// normalizer. It is always fatal: normalize calls never partially
// succeed. Error is a typed wrapper that keeps the offending symbol
// alongside a stable code, covering the full taxonomy in spec.md §6.
type Error struct {
	// Code is one of the Code* constants above.
	Code int
	// Symbol is the offending identifier: a transformer name, a record
	// type identity, or a Kind name, depending on Code.
	Symbol string
	// TraceID correlates this error with the Normalize call that raised
	// it, for log correlation; see SPEC_FULL.md §3.
	TraceID uuid.UUID
	// Cause is an optional wrapped error, attached with WithCause.
	Cause error
}

func (e *Error) Error() string {
	tmpl, ok := messageTemplates[e.Code]
	msg := e.Symbol
	if ok {
		msg = fmt.Sprintf(tmpl, e.Symbol)
	}
	if e.Cause != nil {
		return fmt.Sprintf("normalize[%d] trace=%s: %s: %s", e.Code, e.TraceID, msg, e.Cause.Error())
	}
	return fmt.Sprintf("normalize[%d] trace=%s: %s", e.Code, e.TraceID, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError constructs an *Error with a freshly generated trace ID. If the
// system's random source is unavailable, the trace ID is uuid.Nil; callers
// never need to check a second error return for this constructor.
func NewError(code int, symbol string) *Error {
	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}
	return &Error{Code: code, Symbol: symbol, TraceID: id}
}

// WithCause attaches a wrapped cause and returns the same *Error for
// chaining at the call site.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ErrTypeUnhandled reports a value kind with no applicable default step
// (callables, resources, and other unrecognized kinds).
func ErrTypeUnhandled(kindName string) *Error {
	return NewError(CodeTypeUnhandled, kindName)
}

// ErrCircularReference reports a cycle found while recursing into typeName.
func ErrCircularReference(typeName string) *Error {
	return NewError(CodeCircularReference, typeName)
}

// ErrTransformerMissingParameter reports a transformer declared with zero
// parameters.
func ErrTransformerMissingParameter(name string) *Error {
	return NewError(CodeTransformerMissingParameter, name)
}

// ErrTransformerTooManyParameters reports a transformer declared with more
// than two parameters.
func ErrTransformerTooManyParameters(name string) *Error {
	return NewError(CodeTransformerTooManyParameters, name)
}

// ErrTransformerSecondParamNotCallable reports a two-parameter transformer
// whose second parameter is not a next() callable.
func ErrTransformerSecondParamNotCallable(name string) *Error {
	return NewError(CodeTransformerSecondParamNotCallable, name)
}

// ErrKeyTransformerTooManyParameters reports a key transformer declared
// with more than one parameter.
func ErrKeyTransformerTooManyParameters(name string) *Error {
	return NewError(CodeKeyTransformerTooManyParameters, name)
}

// ErrKeyTransformerParamWrongType reports a key transformer parameter that
// is neither string nor int.
func ErrKeyTransformerParamWrongType(name string) *Error {
	return NewError(CodeKeyTransformerParamWrongType, name)
}
