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

// Package reflector implements the default Reflection Adapter (spec.md
// §4.2) for plain Go structs, using github.com/fatih/structs for field
// enumeration. It enumerates fields in
// ancestor-first declaration order (embedded structs are ancestors),
// exposes unexported fields read-only, and discovers attributes through
// the duck-typed types.AttributeSource / types.FieldAttributeSource
// interfaces rather than by reflecting on method names.
package reflector

import (
	"reflect"
	"unsafe"

	"github.com/fatih/structs"

	"github.com/oxhq/normalize/types"
)

// Default is the package-level Reflection Adapter instance; it carries no
// state, so one instance is always sufficient.
var Default types.ReflectionAdapter = &Adapter{}

// Adapter is the fatih/structs-backed types.ReflectionAdapter.
type Adapter struct{}

// Fields implements types.ReflectionAdapter.
func (a *Adapter) Fields(v reflect.Value) []types.FieldInfo {
	v = dereference(v)
	if v.Kind() != reflect.Struct {
		return nil
	}
	return collectFields(v, nil)
}

// collectFields walks v's fields via fatih/structs, recursing into
// anonymous embedded structs first so ancestor fields are emitted before
// the declaring type's own fields, matching spec.md §4.2. path is the
// field-index path from the outermost record to v, so every Read indexes
// the outermost record it is handed.
func collectFields(v reflect.Value, path []int) []types.FieldInfo {
	// A zero value of the same type carries the field list without the
	// read-only flag an unexported embedded field would put on v.
	st := structs.New(reflect.New(v.Type()).Interface())
	var ancestors []types.FieldInfo
	var own []types.FieldInfo
	for i, f := range st.Fields() {
		rf := v.Field(i)
		fieldPath := append(append([]int(nil), path...), i)
		if f.IsEmbedded() && rf.Kind() == reflect.Struct {
			ancestors = append(ancestors, collectFields(rf, fieldPath)...)
			continue
		}
		name := f.Name()
		own = append(own, types.FieldInfo{
			Name:         name,
			DeclaredType: describeType(rf.Type()),
			Read: func(instance reflect.Value) any {
				instance = dereference(instance)
				return readField(instance.FieldByIndex(fieldPath))
			},
		})
	}
	return append(ancestors, own...)
}

// readField returns a field's current value, using an unsafe pointer
// trick for unexported fields (reflect.Value.Interface panics on those).
// No third-party reflection helper in the corpus exposes unexported
// fields — fatih/structs and mapstructure both intentionally skip them —
// so this one corner relies on the standard library's unsafe package; see
// DESIGN.md.
func readField(rv reflect.Value) any {
	if rv.CanInterface() {
		return rv.Interface()
	}
	if !rv.CanAddr() {
		return nil
	}
	return reflect.NewAt(rv.Type(), unsafe.Pointer(rv.UnsafeAddr())).Elem().Interface()
}

// Identity implements types.ReflectionAdapter.
func (a *Adapter) Identity(v reflect.Value) types.RecordIdentity {
	v = dereference(v)
	t := v.Type()
	id := types.RecordIdentity{Name: qualifiedName(t)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			ft := sf.Type
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				id.Ancestors = append(id.Ancestors, qualifiedName(ft))
				id.Ancestors = append(id.Ancestors, ancestorsOf(ft)...)
			}
		}
	}
	return id
}

func ancestorsOf(t reflect.Type) []string {
	var out []string
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			ft := sf.Type
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				out = append(out, qualifiedName(ft))
				out = append(out, ancestorsOf(ft)...)
			}
		}
	}
	return out
}

// ClassAttributes implements types.ReflectionAdapter via the duck-typed
// types.AttributeSource interface.
func (a *Adapter) ClassAttributes(v reflect.Value) []any {
	v = dereference(v)
	if !v.CanAddr() {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr.Elem()
	}
	if src, ok := v.Addr().Interface().(types.AttributeSource); ok {
		return src.NormalizeAttributes()
	}
	if src, ok := v.Interface().(types.AttributeSource); ok {
		return src.NormalizeAttributes()
	}
	return nil
}

// FieldAttributes implements types.ReflectionAdapter via the duck-typed
// types.FieldAttributeSource interface.
func (a *Adapter) FieldAttributes(v reflect.Value, fieldName string) []any {
	v = dereference(v)
	if !v.CanAddr() {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr.Elem()
	}
	if src, ok := v.Addr().Interface().(types.FieldAttributeSource); ok {
		return src.NormalizeFieldAttributes(fieldName)
	}
	if src, ok := v.Interface().(types.FieldAttributeSource); ok {
		return src.NormalizeFieldAttributes(fieldName)
	}
	return nil
}

func dereference(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// describeType makes a best-effort types.Descriptor out of a static Go
// type, used to populate FieldInfo.DeclaredType. It is informational: the
// dispatch Planner always matches against the runtime Subject, never
// against DeclaredType directly.
func describeType(t reflect.Type) types.Descriptor {
	switch t.Kind() {
	case reflect.Bool:
		return types.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return types.Int()
	case reflect.Float32, reflect.Float64:
		return types.Float()
	case reflect.String:
		return types.String()
	case reflect.Slice, reflect.Array:
		return types.Sequence(describeType(t.Elem()))
	case reflect.Map:
		keyKind := types.KindString
		if t.Key().Kind() != reflect.String {
			keyKind = types.KindInt
		}
		return types.Mapping(keyKind, describeType(t.Elem()))
	case reflect.Struct:
		return types.Record(types.RecordIdentity{Name: qualifiedName(t)})
	case reflect.Ptr:
		return describeType(t.Elem())
	case reflect.Interface:
		return types.Any()
	case reflect.Func:
		return types.Callable()
	default:
		return types.Any()
	}
}
