package match

import (
	"testing"

	"github.com/oxhq/normalize/types"
)

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	compiler, err := NewRefinementCompiler(map[string]string{
		"positive-int": "value > 0",
		"even-int":     "value % 2 == 0",
	})
	if err != nil {
		t.Fatalf("NewRefinementCompiler: %v", err)
	}
	return New(compiler)
}

func TestMatchesPrimitives(t *testing.T) {
	m := newMatcher(t)

	cases := []struct {
		name string
		d    types.Descriptor
		subj Subject
		want bool
	}{
		{"any matches bool", types.Any(), Subject{Kind: types.KindBool}, true},
		{"bool matches bool", types.Bool(), Subject{Kind: types.KindBool}, true},
		{"bool rejects string", types.Bool(), Subject{Kind: types.KindString}, false},
		{"string matches string", types.String(), Subject{Kind: types.KindString}, true},
		{"float matches float", types.Float(), Subject{Kind: types.KindFloat}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Matches(tc.d, tc.subj); got != tc.want {
				t.Errorf("Matches(%+v, %+v) = %v, want %v", tc.d, tc.subj, got, tc.want)
			}
		})
	}
}

func TestMatchesIntRefinement(t *testing.T) {
	m := newMatcher(t)
	d := types.IntRefined(types.Refinement{Name: "positive-int"})

	if !m.Matches(d, Subject{Kind: types.KindInt, Int64: 5}) {
		t.Error("expected 5 to satisfy positive-int")
	}
	if m.Matches(d, Subject{Kind: types.KindInt, Int64: -5}) {
		t.Error("expected -5 not to satisfy positive-int")
	}
	if m.Matches(d, Subject{Kind: types.KindFloat}) {
		t.Error("expected a non-int subject never to satisfy an Int descriptor")
	}
}

func TestMatchesIntRefinementUnknownNameNeverMatches(t *testing.T) {
	m := newMatcher(t)
	d := types.IntRefined(types.Refinement{Name: "does-not-exist"})

	if m.Matches(d, Subject{Kind: types.KindInt, Int64: 1}) {
		t.Error("expected an unknown refinement name to never match")
	}
}

func TestMatchesRecordCovariance(t *testing.T) {
	m := newMatcher(t)
	d := types.Record(types.RecordIdentity{Name: "pkg.Animal"})

	dog := Subject{Kind: types.KindRecord, Record: &types.RecordIdentity{
		Name:      "pkg.Dog",
		Ancestors: []string{"pkg.Animal"},
	}}
	if !m.Matches(d, dog) {
		t.Error("expected a Dog descending from Animal to satisfy Record(Animal)")
	}

	rock := Subject{Kind: types.KindRecord, Record: &types.RecordIdentity{Name: "pkg.Rock"}}
	if m.Matches(d, rock) {
		t.Error("expected Rock, which does not descend from Animal, not to satisfy Record(Animal)")
	}
}

func TestMatchesUnionAndIntersection(t *testing.T) {
	m := newMatcher(t)
	union := types.Union(types.String(), types.Bool())

	if !m.Matches(union, Subject{Kind: types.KindBool}) {
		t.Error("expected bool to satisfy Union(String, Bool)")
	}
	if m.Matches(union, Subject{Kind: types.KindFloat}) {
		t.Error("expected float not to satisfy Union(String, Bool)")
	}

	intersection := types.Intersection(types.Any(), types.String())
	if !m.Matches(intersection, Subject{Kind: types.KindString}) {
		t.Error("expected string to satisfy Intersection(Any, String)")
	}

	if m.Matches(types.Intersection(), Subject{Kind: types.KindString}) {
		t.Error("expected an empty Intersection to never match")
	}
}

func TestMatchesAnyObject(t *testing.T) {
	m := newMatcher(t)
	d := types.AnyObject()

	if !m.Matches(d, Subject{Kind: types.KindRecord, Record: &types.RecordIdentity{Name: "pkg.User"}}) {
		t.Error("expected a record to satisfy AnyObject")
	}
	if m.Matches(d, Subject{Kind: types.KindInt}) {
		t.Error("expected a scalar not to satisfy AnyObject")
	}
}

func TestMatchesEnum(t *testing.T) {
	m := newMatcher(t)
	d := types.Enum(types.EnumIdentity{Name: "pkg.Color"})

	if !m.Matches(d, Subject{Kind: types.KindEnum, Enum: &types.EnumIdentity{Name: "pkg.Color"}}) {
		t.Error("expected matching enum identity to satisfy the descriptor")
	}
	if m.Matches(d, Subject{Kind: types.KindEnum, Enum: &types.EnumIdentity{Name: "pkg.Shape"}}) {
		t.Error("expected a different enum identity not to satisfy the descriptor")
	}
}
