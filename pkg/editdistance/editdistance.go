// Package editdistance implements the host distance function required by
// the lookup engine: Damerau-Levenshtein distance restricted to adjacent
// transpositions (the "optimal string alignment" variant), computed over
// Unicode scalar values.
package editdistance

// DistanceFunc is the pluggable distance contract the lookup engine is
// parametric over: identity distance(a, a) == 0, symmetric, and never
// smaller than the true Damerau-Levenshtein distance between its
// arguments.
type DistanceFunc func(a, b string) int

// Distance computes the Damerau-Levenshtein optimal string alignment
// distance between a and b: insertions, deletions, substitutions, and
// transpositions of adjacent runes, each costing 1. Unlike unrestricted
// Damerau-Levenshtein, OSA forbids reusing a rune in more than one
// transposition, which makes it a valid upper bound on the true distance
// rather than the exact minimum in pathological cases — acceptable per the
// distance contract, which only requires d(a,b) >= trueDistance(a,b).
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
	}
	for i := 0; i <= la; i++ {
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			min := d[i-1][j] + 1 // deletion
			if v := d[i][j-1] + 1; v < min {
				min = v // insertion
			}
			if v := d[i-1][j-1] + cost; v < min {
				min = v // substitution
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if v := d[i-2][j-2] + 1; v < min {
					min = v // adjacent transposition
				}
			}
			d[i][j] = min
		}
	}

	return d[la][lb]
}
