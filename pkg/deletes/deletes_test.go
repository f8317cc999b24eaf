package deletes

import "testing"

func TestVariantsZeroDistance(t *testing.T) {
	v := Variants("hello", 0)
	if len(v) != 1 {
		t.Fatalf("expected exactly 1 variant, got %d", len(v))
	}
	if _, ok := v["hello"]; !ok {
		t.Fatalf("expected self to be included")
	}
}

func TestVariantsEmptyString(t *testing.T) {
	v := Variants("", 2)
	if len(v) != 1 {
		t.Fatalf("expected exactly 1 variant, got %d", len(v))
	}
	if _, ok := v[""]; !ok {
		t.Fatalf("expected empty string to be included")
	}
}

func TestVariantsShortStringDeepK(t *testing.T) {
	v := Variants("ab", 5)
	want := []string{"ab", "a", "b", ""}
	for _, w := range want {
		if _, ok := v[w]; !ok {
			t.Errorf("missing variant %q", w)
		}
	}
	// level beyond "" is empty, so walk must have stopped early
	if len(v) != len(want) {
		t.Errorf("expected %d variants, got %d: %v", len(want), len(v), v)
	}
}

func TestVariantsOneDeletion(t *testing.T) {
	v := Variants("cat", 1)
	want := map[string]bool{"cat": true, "at": true, "ct": true, "ca": true}
	if len(v) != len(want) {
		t.Fatalf("expected %d variants, got %d: %v", len(want), len(v), v)
	}
	for w := range want {
		if _, ok := v[w]; !ok {
			t.Errorf("missing variant %q", w)
		}
	}
}

func TestVariantsWithSelfUnion(t *testing.T) {
	v := VariantsWithSelf("x", 0)
	if _, ok := v["x"]; !ok {
		t.Fatalf("expected self in union even at k=0")
	}
}

// containment(s, i+j) subset of variants(variants(s, i), j) — spec §8
// deletion generator idempotence property, checked for a couple of depths.
func TestVariantsContainmentProperty(t *testing.T) {
	s := "hello"
	direct := Variants(s, 3)
	var composed = map[string]struct{}{s: {}}
	for x := range Variants(s, 1) {
		for y := range Variants(x, 2) {
			composed[y] = struct{}{}
		}
	}
	for w := range direct {
		if _, ok := composed[w]; !ok {
			t.Errorf("variants(s,3) contains %q not reachable via variants(variants(s,1),2)", w)
		}
	}
}
