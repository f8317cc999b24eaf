package index

import "testing"

func TestRuntimeIndexPostAndLookup(t *testing.T) {
	idx := NewRuntimeIndex()
	idx.Post("helo", TermID(3))
	idx.Post("helo", TermID(7))

	ids, ok := idx.Lookup("helo")
	if !ok {
		t.Fatalf("expected key to be present")
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Fatalf("unexpected postings: %v", ids)
	}

	if _, ok := idx.Lookup("missing"); ok {
		t.Fatalf("expected missing key to report absent")
	}

	if idx.Len() != 1 {
		t.Fatalf("expected 1 key, got %d", idx.Len())
	}
}

func TestGuardedDelegates(t *testing.T) {
	g := NewGuarded(nil)
	g.Post("x", TermID(1))
	ids, ok := g.Lookup("x")
	if !ok || len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("unexpected result from guarded lookup: %v %v", ids, ok)
	}
	if g.Len() != 1 {
		t.Fatalf("expected len 1, got %d", g.Len())
	}
}

func TestFrozenIndexRoundTrip(t *testing.T) {
	postings := map[string][]TermID{
		"helo":  {0, 2},
		"hell":  {1},
		"":      {4},
		"world": {3},
	}
	frozen, err := BuildFrozen(postings)
	if err != nil {
		t.Fatalf("BuildFrozen failed: %v", err)
	}

	for variant, want := range postings {
		got, ok := frozen.Lookup(variant)
		if !ok {
			t.Fatalf("variant %q not found in frozen index", variant)
		}
		if len(got) != len(want) {
			t.Fatalf("variant %q: got %v, want %v", variant, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("variant %q[%d] = %d, want %d", variant, i, got[i], want[i])
			}
		}
	}

	if _, ok := frozen.Lookup("nope"); ok {
		t.Fatalf("expected absent variant to report not found")
	}

	if frozen.Len() != len(postings) {
		t.Fatalf("Len() = %d, want %d", frozen.Len(), len(postings))
	}
}

func TestFrozenIndexMarshalRoundTrip(t *testing.T) {
	postings := map[string][]TermID{"ab": {0, 1, 2}, "a": {0}, "b": {1}}
	frozen, err := BuildFrozen(postings)
	if err != nil {
		t.Fatalf("BuildFrozen failed: %v", err)
	}
	data, err := frozen.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	reloaded, err := UnmarshalFrozenIndex(data)
	if err != nil {
		t.Fatalf("UnmarshalFrozenIndex failed: %v", err)
	}
	ids, ok := reloaded.Lookup("ab")
	if !ok || len(ids) != 3 {
		t.Fatalf("unexpected reloaded postings for 'ab': %v %v", ids, ok)
	}
}
