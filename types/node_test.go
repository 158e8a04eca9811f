package types

import "testing"

func TestMapSetGetPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", int64(2))
	m.Set("a", int64(1))

	if len(m.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.Entries))
	}
	if m.Entries[0].Key != "b" || m.Entries[1].Key != "a" {
		t.Fatalf("expected insertion order [b a], got [%v %v]", m.Entries[0].Key, m.Entries[1].Key)
	}

	v, ok := m.Get("a")
	if !ok {
		t.Fatal("expected key \"a\" to be found")
	}
	if v != int64(1) {
		t.Fatalf("expected 1, got %v", v)
	}

	if _, ok := m.Get("missing"); ok {
		t.Fatal("expected missing key to be absent")
	}
}

func TestBagPreservesInsertionOrder(t *testing.T) {
	b := NewBag()
	b.Set("z", 1)
	b.Set("a", 2)

	if len(b.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(b.Entries))
	}
	if b.Entries[0].Name != "z" || b.Entries[1].Name != "a" {
		t.Fatalf("expected insertion order [z a], got [%v %v]", b.Entries[0].Name, b.Entries[1].Name)
	}
}
