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

// Command normalizedemo is a minimal, runnable example of wiring the
// Facade: register a free transformer and an attribute-bound one, then
// normalize a small object graph into an array tree.
package main

import (
	"fmt"
	"log"
	"reflect"

	"github.com/oxhq/normalize"
	"github.com/oxhq/normalize/types"
)

// redact is a field-level attribute: any field whose declared attribute
// list contains a redact instance has its value replaced.
type redact struct{}

func (redact) Normalize(value any, next types.Next) (types.Node, error) {
	return "***", nil
}

type person struct {
	Name string
	SSN  string
}

func (person) NormalizeFieldAttributes(field string) []any {
	if field == "SSN" {
		return []any{redact{}}
	}
	return nil
}

func main() {
	facade, err := normalize.New()
	if err != nil {
		log.Fatal(err)
	}
	if err := facade.RegisterAttribute(reflect.TypeOf(redact{}), types.ValueTransformer); err != nil {
		log.Fatal(err)
	}
	if err := facade.RegisterTransformer("upper-int", types.Int(), func(v any) (types.Node, error) {
		n, _ := v.(int64)
		return n * 2, nil
	}, 0); err != nil {
		log.Fatal(err)
	}

	n := facade.Normalizer(normalize.FormatArray)
	out, err := n.Normalize(person{Name: "Ada", SSN: "000-00-0000"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%+v\n", out)

	doubled, err := n.Normalize(21)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%v\n", doubled)
}
