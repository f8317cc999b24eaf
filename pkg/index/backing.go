// Package index implements the deletion-index data model described by the
// core spec: a mapping from deletion variant to the sorted list of TermIDs
// that generate it, available in two concrete backings behind one shared
// query-side interface.
package index

// TermID is a dense, non-negative identifier assigned by a term table. The
// index package treats it as an opaque ordinal; ordering semantics live in
// pkg/symspell.
type TermID uint32

// Backing is the capability set both the mutable runtime index and the
// frozen embedded index satisfy. The edit generator and lookup engine in
// pkg/symspell are parametric over this interface, not over a concrete
// backing.
type Backing interface {
	// Lookup returns the TermIDs posted under variant, and whether the key
	// was present at all (distinguishing "present but empty" from "absent",
	// even though the current backings never produce the former).
	Lookup(variant string) ([]TermID, bool)
	// Len reports the number of distinct deletion-variant keys indexed.
	Len() int
}
