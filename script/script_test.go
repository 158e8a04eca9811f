package script

import (
	"testing"

	"github.com/oxhq/normalize/types"
)

type fixedNext struct {
	node types.Node
}

func (f fixedNext) Apply() (types.Node, error) { return f.node, nil }

func TestEngineTransformCallsScriptFunction(t *testing.T) {
	eng, err := NewEngine(`
		function transform(value, next) {
			return value.toUpperCase();
		}
	`)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got, err := eng.Transform("hi", fixedNext{node: "hi"})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != "HI" {
		t.Fatalf("expected \"HI\", got %v", got)
	}
}

func TestEngineTransformCanInvokeNext(t *testing.T) {
	eng, err := NewEngine(`
		function transform(value, next) {
			return next() + "!";
		}
	`)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got, err := eng.Transform("ignored", fixedNext{node: "delegated"})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != "delegated!" {
		t.Fatalf("expected \"delegated!\", got %v", got)
	}
}

func TestNewEngineRejectsInvalidSource(t *testing.T) {
	if _, err := NewEngine("function transform( {"); err == nil {
		t.Fatal("expected a compile error for invalid JavaScript")
	}
}

func TestEngineTransformMissingFunctionErrors(t *testing.T) {
	eng, err := NewEngine(`var notAFunction = 1;`)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, err := eng.Transform("x", fixedNext{}); err == nil {
		t.Fatal("expected an error when transform is not declared")
	}
}
