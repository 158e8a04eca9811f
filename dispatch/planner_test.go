package dispatch

import (
	"reflect"
	"testing"

	"github.com/oxhq/normalize/match"
	"github.com/oxhq/normalize/registry"
	"github.com/oxhq/normalize/types"
)

func newTestPlanner(t *testing.T) (*Planner, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	compiler, err := match.NewRefinementCompiler(nil)
	if err != nil {
		t.Fatalf("NewRefinementCompiler: %v", err)
	}
	matcher := match.New(compiler)
	return New(reg, matcher), reg
}

func TestBuildValueChainOrdersByPriorityThenInsertion(t *testing.T) {
	p, reg := newTestPlanner(t)
	reg.RegisterValue("low", types.Int(), func(v any) (types.Node, error) { return v, nil }, 0)
	reg.RegisterValue("high", types.Int(), func(v any) (types.Node, error) { return v, nil }, 10)
	reg.RegisterValue("also-low", types.Int(), func(v any) (types.Node, error) { return v, nil }, 0)

	links := p.BuildValueChain(match.Subject{Kind: types.KindInt, Int64: 1}, Scope{})
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	names := []string{links[0].Name, links[1].Name, links[2].Name}
	want := []string{"high", "low", "also-low"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}

func TestBuildValueChainSkipsNonMatching(t *testing.T) {
	p, reg := newTestPlanner(t)
	reg.RegisterValue("for-strings", types.String(), func(v any) (types.Node, error) { return v, nil })

	links := p.BuildValueChain(match.Subject{Kind: types.KindInt, Int64: 1}, Scope{})
	if len(links) != 0 {
		t.Fatalf("expected no links for a non-matching registration, got %d", len(links))
	}
}

type redactAttr struct{}

func (redactAttr) Normalize(value any, next types.Next) (types.Node, error) { return "***", nil }

func TestBuildValueChainAppendsFieldThenClassAttributes(t *testing.T) {
	p, reg := newTestPlanner(t)
	if err := reg.RegisterAttribute(reflect.TypeOf(redactAttr{}), types.ValueTransformer); err != nil {
		t.Fatalf("RegisterAttribute: %v", err)
	}

	scope := Scope{
		FieldAttributes: []any{redactAttr{}},
		ClassAttributes: []any{redactAttr{}},
	}
	links := p.BuildValueChain(match.Subject{Kind: types.KindString}, scope)
	if len(links) != 2 {
		t.Fatalf("expected 2 attribute links (field then class), got %d", len(links))
	}
}

func TestBuildValueChainIgnoresUnregisteredAttribute(t *testing.T) {
	p, _ := newTestPlanner(t)
	scope := Scope{ClassAttributes: []any{redactAttr{}}}

	links := p.BuildValueChain(match.Subject{Kind: types.KindString}, scope)
	if len(links) != 0 {
		t.Fatalf("expected no links for an unregistered attribute, got %d", len(links))
	}
}

type renameKey struct{ to string }

func (r renameKey) NormalizeKey(key any) (any, error) { return r.to, nil }

func TestBuildKeyChainAppliesAttributeThenFree(t *testing.T) {
	p, reg := newTestPlanner(t)
	if err := reg.RegisterAttribute(reflect.TypeOf(renameKey{}), types.KeyTransformer); err != nil {
		t.Fatalf("RegisterAttribute: %v", err)
	}
	if err := reg.RegisterKey("upper", types.String(), true, func(key any) (any, error) {
		return key.(string) + "!", nil
	}); err != nil {
		t.Fatalf("RegisterKey: %v", err)
	}

	keyFn := p.BuildKeyChain([]any{renameKey{to: "renamed"}})
	key, err := keyFn("original")
	if err != nil {
		t.Fatalf("keyFn: %v", err)
	}
	if key != "renamed!" {
		t.Fatalf("expected \"renamed!\", got %v", key)
	}
}

func TestBuildKeyChainDefaultsToFieldName(t *testing.T) {
	p, _ := newTestPlanner(t)
	keyFn := p.BuildKeyChain(nil)

	key, err := keyFn("field")
	if err != nil {
		t.Fatalf("keyFn: %v", err)
	}
	if key != "field" {
		t.Fatalf("expected \"field\", got %v", key)
	}
}

// fakeKeyRegistry lets a KeyRegistration with an invalid Param Kind reach
// the Planner directly, bypassing registry.Registry's own eager
// validation, to exercise the dispatch-time defense in keyTypeMatches.
type fakeKeyRegistry struct {
	keys []types.KeyRegistration
}

func (f *fakeKeyRegistry) ValueRegistrations() []types.Registration          { return nil }
func (f *fakeKeyRegistry) KeyRegistrations() []types.KeyRegistration        { return f.keys }
func (f *fakeKeyRegistry) IsAttributeRegistered(any, types.TransformerKind) bool { return false }
func (f *fakeKeyRegistry) MatchesAttribute(any, types.TransformerKind) bool      { return false }

func TestBuildKeyChainRaisesErrorForWrongTypeParam(t *testing.T) {
	fake := &fakeKeyRegistry{keys: []types.KeyRegistration{
		{Name: "bad", Param: types.Bool(), HasParam: true, Fn: func(key any) (any, error) { return key, nil }},
	}}
	compiler, err := match.NewRefinementCompiler(nil)
	if err != nil {
		t.Fatalf("NewRefinementCompiler: %v", err)
	}
	p := New(fake, match.New(compiler))

	keyFn := p.BuildKeyChain(nil)
	if _, err := keyFn("field"); err == nil {
		t.Fatal("expected an error for a key transformer with a non-string/int param")
	} else if normErr, ok := err.(*types.Error); !ok {
		t.Fatalf("expected *types.Error, got %T", err)
	} else if normErr.Code != types.CodeKeyTransformerParamWrongType {
		t.Fatalf("expected CodeKeyTransformerParamWrongType, got %d", normErr.Code)
	}
}
