package normalize

import (
	"testing"

	"github.com/oxhq/normalize/output"
	"github.com/oxhq/normalize/types"
)

func TestFacadeNormalizeArrayFormat(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n := f.Normalizer(FormatArray)

	got, err := n.Normalize(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	out, ok := got.([]output.KeyValue)
	if !ok {
		t.Fatalf("expected []output.KeyValue, got %T", got)
	}
	if len(out) != 1 || out[0].Key != "a" || out[0].Value != int64(1) {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestFacadeRegisterTransformerOneParam(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := f.RegisterTransformer("triple", types.Int(), func(v any) (types.Node, error) {
		return v.(int64) * 3, nil
	}); err != nil {
		t.Fatalf("RegisterTransformer: %v", err)
	}

	n := f.Normalizer(FormatArray)
	got, err := n.Normalize(7)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != int64(21) {
		t.Fatalf("expected 21, got %v", got)
	}
}

type greeting struct {
	Name string
}

func TestFacadeMapNormalizerDecode(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mn := f.MapNormalizer()

	var dest struct {
		Name string `normalize:"Name"`
	}
	if err := mn.Decode(greeting{Name: "Ada"}, &dest); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dest.Name != "Ada" {
		t.Fatalf("expected Ada, got %q", dest.Name)
	}
}

func TestFacadeRegisterTransformerRejectsMissingParameter(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = f.RegisterTransformer("zero-arg", types.Int(), func() (types.Node, error) { return nil, nil })
	assertErrCode(t, err, types.CodeTransformerMissingParameter)
}

func TestFacadeRegisterTransformerRejectsTooManyParameters(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = f.RegisterTransformer("three-args", types.Int(), func(a, b, c any) (types.Node, error) { return nil, nil })
	assertErrCode(t, err, types.CodeTransformerTooManyParameters)
}

func TestFacadeRegisterTransformerRejectsNonCallableSecondParam(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = f.RegisterTransformer("bad-second", types.Int(), func(v any, notNext string) (types.Node, error) { return nil, nil })
	assertErrCode(t, err, types.CodeTransformerSecondParamNotCallable)
}

func TestFacadeRegisterKeyTransformerRejectsTooManyParameters(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = f.RegisterKeyTransformer("bad-key", types.String(), func(a, b any) (any, error) { return a, nil })
	assertErrCode(t, err, types.CodeKeyTransformerTooManyParameters)
}

func TestFacadeRegisterKeyTransformerRejectsWrongTypeParam(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = f.RegisterKeyTransformer("bad-key", types.Bool(), func(key any) (any, error) { return key, nil })
	assertErrCode(t, err, types.CodeKeyTransformerParamWrongType)
}

func assertErrCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	normErr, ok := err.(*types.Error)
	if !ok {
		t.Fatalf("expected *types.Error, got %T", err)
	}
	if normErr.Code != code {
		t.Fatalf("expected code %d, got %d", code, normErr.Code)
	}
}

func TestFacadeRegisterScriptTransformer(t *testing.T) {
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = f.RegisterScriptTransformer("js-upper", types.String(), `
		function transform(value, next) {
			return value.toUpperCase();
		}
	`)
	if err != nil {
		t.Fatalf("RegisterScriptTransformer: %v", err)
	}

	n := f.Normalizer(FormatArray)
	got, err := n.Normalize("hi")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "HI" {
		t.Fatalf("expected \"HI\", got %v", got)
	}
}
