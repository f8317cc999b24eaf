package editdistance

import "testing"

func TestIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "hello", "世界"} {
		if d := Distance(s, s); d != 0 {
			t.Errorf("Distance(%q,%q) = %d, want 0", s, s, d)
		}
	}
}

func TestSymmetry(t *testing.T) {
	cases := [][2]string{{"hello", "helo"}, {"kitten", "sitting"}, {"ab", "ba"}}
	for _, c := range cases {
		if d1, d2 := Distance(c[0], c[1]), Distance(c[1], c[0]); d1 != d2 {
			t.Errorf("Distance not symmetric for %v: %d vs %d", c, d1, d2)
		}
	}
}

func TestKnownDistances(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"hello", "helo", 1},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"ab", "ba", 1}, // adjacent transposition
		{"kitten", "sitting", 3},
		{"helo", "help", 1},
	}
	for _, c := range cases {
		if got := Distance(c.a, c.b); got != c.want {
			t.Errorf("Distance(%q,%q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestUnicodeScalars(t *testing.T) {
	if d := Distance("café", "cafe"); d != 1 {
		t.Errorf("Distance(café,cafe) = %d, want 1", d)
	}
}
