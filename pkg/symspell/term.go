package symspell

import "github.com/arcbound/symspell/pkg/index"

// TermID is a dense integer identifier of a dictionary entry, equal to the
// entry's position in the term table. It is re-exported from pkg/index so
// callers never need to import that package directly for the common case.
type TermID = index.TermID

// Term is a dictionary entry: a surface string and an opaque, higher-is-
// better frequency score.
type Term struct {
	Surface   string
	Frequency uint64
}

// TermTable is the dense, insertion-ordered array of dictionary terms
// described in spec §4.4. TermID is always the term's index into terms.
type TermTable struct {
	terms  []Term
	bySurf map[string]TermID
}

// NewTermTable returns an empty term table.
func NewTermTable() *TermTable {
	return &TermTable{bySurf: make(map[string]TermID)}
}

// Lookup returns the term stored under id. Panics if id is out of range:
// an out-of-range TermID indicates a violated invariant elsewhere in the
// index, not a reportable runtime condition (spec §7).
func (t *TermTable) Lookup(id TermID) Term {
	return t.terms[id]
}

// Len returns the number of distinct terms.
func (t *TermTable) Len() int {
	return len(t.terms)
}

// IDOf returns the TermID already assigned to surface, if any.
func (t *TermTable) IDOf(surface string) (TermID, bool) {
	id, ok := t.bySurf[surface]
	return id, ok
}

// Insert assigns a new TermID to surface, or — if surface was already
// present — updates its frequency to max(old, new) and returns the
// existing TermID, per spec §3 invariant 5 and the §4.2 build procedure.
// The second return value reports whether a new TermID was assigned.
func (t *TermTable) Insert(surface string, frequency uint64) (TermID, bool) {
	if id, ok := t.bySurf[surface]; ok {
		if frequency > t.terms[id].Frequency {
			t.terms[id].Frequency = frequency
		}
		return id, false
	}
	id := TermID(len(t.terms))
	t.terms = append(t.terms, Term{Surface: surface, Frequency: frequency})
	t.bySurf[surface] = id
	return id, true
}

// All returns every term in insertion order. The returned slice shares the
// table's own backing array, so callers must not modify its elements.
func (t *TermTable) All() []Term {
	return t.terms
}
