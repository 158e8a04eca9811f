package reflector

import (
	"reflect"
	"testing"

	"github.com/oxhq/normalize/types"
)

type base struct {
	ID int
}

type child struct {
	base
	Name   string
	secret string
}

func TestFieldsOrdersAncestorFirst(t *testing.T) {
	a := &Adapter{}
	c := child{base: base{ID: 1}, Name: "ada", secret: "shh"}
	v := reflect.ValueOf(c)

	fields := a.Fields(v)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %+v", len(fields), fields)
	}
	names := []string{fields[0].Name, fields[1].Name, fields[2].Name}
	want := []string{"ID", "Name", "secret"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected field order %v, got %v", want, names)
		}
	}
}

func TestFieldsReadsUnexportedViaPointer(t *testing.T) {
	a := &Adapter{}
	c := &child{base: base{ID: 1}, Name: "ada", secret: "shh"}
	v := reflect.ValueOf(c).Elem()

	fields := a.Fields(v)
	var secretField *types.FieldInfo
	for i := range fields {
		if fields[i].Name == "secret" {
			secretField = &fields[i]
		}
	}
	if secretField == nil {
		t.Fatal("expected to find the unexported \"secret\" field")
	}
	got := secretField.Read(v)
	if got != "shh" {
		t.Fatalf("expected to read unexported field value \"shh\", got %v", got)
	}
}

func TestIdentityCapturesAncestors(t *testing.T) {
	a := &Adapter{}
	v := reflect.ValueOf(child{})

	wantName := qualifiedName(reflect.TypeOf(child{}))
	wantAncestor := qualifiedName(reflect.TypeOf(base{}))

	id := a.Identity(v)
	if id.Name != wantName {
		t.Fatalf("expected identity name %q, got %q", wantName, id.Name)
	}
	if len(id.Ancestors) != 1 || id.Ancestors[0] != wantAncestor {
		t.Fatalf("expected ancestors [%s], got %v", wantAncestor, id.Ancestors)
	}
}

type attributed struct {
	Label string
}

type labelAttr struct{ Text string }

func (attributed) NormalizeAttributes() []any {
	return []any{labelAttr{Text: "class-level"}}
}

func (attributed) NormalizeFieldAttributes(field string) []any {
	if field == "Label" {
		return []any{labelAttr{Text: "field-level"}}
	}
	return nil
}

func TestClassAndFieldAttributesDuckTyping(t *testing.T) {
	a := &Adapter{}
	v := reflect.ValueOf(attributed{Label: "x"})

	classAttrs := a.ClassAttributes(v)
	if len(classAttrs) != 1 || classAttrs[0].(labelAttr).Text != "class-level" {
		t.Fatalf("expected one class-level attribute, got %+v", classAttrs)
	}

	fieldAttrs := a.FieldAttributes(v, "Label")
	if len(fieldAttrs) != 1 || fieldAttrs[0].(labelAttr).Text != "field-level" {
		t.Fatalf("expected one field-level attribute, got %+v", fieldAttrs)
	}

	if got := a.FieldAttributes(v, "Missing"); got != nil {
		t.Fatalf("expected no attributes for an undeclared field, got %+v", got)
	}
}

func TestClassAttributesGracefullyDegradeWithoutAttributeSource(t *testing.T) {
	a := &Adapter{}
	v := reflect.ValueOf(base{ID: 1})

	if got := a.ClassAttributes(v); got != nil {
		t.Fatalf("expected nil attributes for a type with no AttributeSource, got %+v", got)
	}
}
