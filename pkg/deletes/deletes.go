// Package deletes generates deletion variants of a string, the building
// block of the symmetric-delete candidate search: instead of expanding a
// query into every string within an edit distance, it expands both the
// dictionary and the query into the (much smaller) set of strings reachable
// by deletion only, and intersects.
package deletes

// Variants returns every distinct string reachable from s by removing at
// most k runes, including s itself (zero deletions). It walks the deletion
// levels breadth-first: level 0 is {s}, level d+1 is every string obtained
// by deleting one rune from a level-d string not already seen at an earlier
// level. The walk stops at depth k or the first empty level, whichever
// comes first.
func Variants(s string, k int) map[string]struct{} {
	result := make(map[string]struct{}, 1)
	result[s] = struct{}{}
	if k <= 0 {
		return result
	}

	level := []string{s}
	for d := 0; d < k; d++ {
		var next []string
		for _, x := range level {
			runes := []rune(x)
			for i := range runes {
				variant := deleteAt(runes, i)
				if _, seen := result[variant]; seen {
					continue
				}
				result[variant] = struct{}{}
				next = append(next, variant)
			}
		}
		if len(next) == 0 {
			break
		}
		level = next
	}
	return result
}

// VariantsWithSelf is Variants with an explicit union against {s}. Variants
// already includes s at level 0, but callers building a deletion index
// should not rely on that being true of every implementation of the
// "deletions up to k" contract — taking the union here documents and
// enforces the invariant that a term is always its own variant (otherwise
// exact matches of short terms drop out of the candidate path, see spec
// rationale for the deletion-index build procedure).
func VariantsWithSelf(s string, k int) map[string]struct{} {
	v := Variants(s, k)
	v[s] = struct{}{}
	return v
}

// deleteAt returns the string formed by removing the rune at position i.
func deleteAt(runes []rune, i int) string {
	out := make([]rune, 0, len(runes)-1)
	out = append(out, runes[:i]...)
	out = append(out, runes[i+1:]...)
	return string(out)
}
