package match

import "testing"

func TestRefinementCompilerSatisfies(t *testing.T) {
	c, err := NewRefinementCompiler(map[string]string{"positive-int": "value > 0"})
	if err != nil {
		t.Fatalf("NewRefinementCompiler: %v", err)
	}

	if !c.Satisfies("positive-int", 1) {
		t.Error("expected 1 to satisfy positive-int")
	}
	if c.Satisfies("positive-int", 0) {
		t.Error("expected 0 not to satisfy positive-int")
	}
	if c.Satisfies("unregistered", 1) {
		t.Error("expected an unregistered refinement to never match")
	}
}

func TestRefinementCompilerRegisterAtRuntime(t *testing.T) {
	c, err := NewRefinementCompiler(nil)
	if err != nil {
		t.Fatalf("NewRefinementCompiler: %v", err)
	}
	if err := c.Register("even-int", "value % 2 == 0"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !c.Satisfies("even-int", 4) {
		t.Error("expected 4 to satisfy even-int")
	}
	if c.Satisfies("even-int", 3) {
		t.Error("expected 3 not to satisfy even-int")
	}
}

func TestNewRefinementCompilerRejectsBadExpression(t *testing.T) {
	if _, err := NewRefinementCompiler(map[string]string{"broken": "value >>> 0"}); err == nil {
		t.Fatal("expected a compile error for an invalid expr-lang expression")
	}
}
