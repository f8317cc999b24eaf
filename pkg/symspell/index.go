// Package symspell implements the term table and lookup engine of the
// SymSpell-style approximate string lookup core: it wires a TermTable to a
// pkg/index.Backing (runtime or frozen) and answers queries by symmetric
// delete candidate generation, distance verification, ranking, and
// verbosity-controlled selection.
package symspell

import (
	"sort"
	"strings"

	"github.com/arcbound/symspell/pkg/deletes"
	"github.com/arcbound/symspell/pkg/editdistance"
	"github.com/arcbound/symspell/pkg/index"
)

// Verbosity controls how many, and which, ranked suggestions Lookup
// returns (spec §4.3).
type Verbosity int

const (
	// Top returns at most one suggestion: the one that would sort first.
	Top Verbosity = iota
	// Closest returns every suggestion tied at the minimum observed distance.
	Closest
	// All returns every suggestion within the requested max distance.
	All
)

// Suggestion is a single ranked lookup result.
type Suggestion struct {
	Surface   string
	Distance  int
	Frequency uint64
}

// Config is the index's build-time configuration surface (spec §3).
type Config struct {
	// MaxDistance (k) bounds every lookup issued against this index.
	MaxDistance int
	// Lowercase, if true, ASCII-folds every term and query before any
	// other processing.
	Lowercase bool
	// PrefixLength, if non-zero, caps variant generation (and query
	// truncation) to the first PrefixLength runes of each string. Must be
	// >= MaxDistance; 0 means "unset, use the full string".
	PrefixLength int
}

func (c Config) validate() error {
	if c.MaxDistance < 0 {
		return configError("max_distance must be >= 0, got %d", c.MaxDistance)
	}
	if c.PrefixLength != 0 && c.PrefixLength < c.MaxDistance {
		return configError("prefix_length (%d) must be >= max_distance (%d)", c.PrefixLength, c.MaxDistance)
	}
	return nil
}

// mutator is satisfied by backings that accept inserts (currently only
// RuntimeIndex and its Guarded wrapper). FrozenIndex does not implement it,
// so an Index built over a frozen backing simply has a nil mutator and
// rejects Insert.
type mutator interface {
	Post(variant string, id index.TermID)
}

// Index wires a TermTable to a deletion-index backing and exposes the
// public lookup operation. It is parametric over the backing via
// index.Backing — the lookup algorithm is identical whether backing is a
// *index.RuntimeIndex, a *index.Guarded, or a *index.FrozenIndex.
type Index struct {
	cfg     Config
	table   *TermTable
	backing index.Backing
	mut     mutator
	distFn  editdistance.DistanceFunc
	cache   *HotCache
}

// Option configures an Index at construction time.
type Option func(*Index)

// WithDistanceFunc overrides the default editdistance.Distance host
// distance function, per spec §6's pluggability requirement.
func WithDistanceFunc(fn editdistance.DistanceFunc) Option {
	return func(idx *Index) { idx.distFn = fn }
}

// WithHotCache attaches an LRU cache of maxEntries memoising
// Lookup(_, _, Top) results (cache.go), transparent to callers.
func WithHotCache(maxEntries int) Option {
	return func(idx *Index) { idx.cache = NewHotCache(maxEntries) }
}

// NewRuntime builds an empty Index backed by a mutable index.RuntimeIndex,
// ready to accept Insert calls.
func NewRuntime(cfg Config, opts ...Option) (*Index, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ri := index.NewRuntimeIndex()
	idx := &Index{
		cfg:     cfg,
		table:   NewTermTable(),
		backing: ri,
		mut:     ri,
		distFn:  editdistance.Distance,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx, nil
}

// NewFrozen builds a read-only Index over a pre-built TermTable and
// FrozenIndex, as produced by cmd/symspellgen and loaded via
// pkg/dictionary.LoadFrozen. Insert on the result always fails.
func NewFrozen(cfg Config, table *TermTable, backing *index.FrozenIndex, opts ...Option) (*Index, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	idx := &Index{
		cfg:     cfg,
		table:   table,
		backing: backing,
		distFn:  editdistance.Distance,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx, nil
}

// Config returns the index's build-time configuration.
func (idx *Index) Config() Config { return idx.cfg }

// Len returns the number of distinct terms in the term table.
func (idx *Index) Len() int { return idx.table.Len() }

// Table returns the underlying term table, for callers (cmd/symspellgen,
// pkg/browse) that need read-only access to the full term list.
func (idx *Index) Table() *TermTable { return idx.table }

// Freeze recomputes the deletion postings for every term currently in the
// table and bakes them into an immutable index.FrozenIndex, independent of
// whatever backing idx itself currently uses. This is the build-side half
// of the compile-time embedding story (spec §9): cmd/symspellgen calls
// Freeze on a fully-populated runtime Index, then serialises the result
// with pkg/dictionary.WriteFrozen.
func (idx *Index) Freeze() (*index.FrozenIndex, error) {
	postings := make(map[string][]index.TermID)
	for i, term := range idx.table.All() {
		id := TermID(i)
		prefix := idx.prefixOf(term.Surface)
		for v := range deletes.VariantsWithSelf(prefix, idx.cfg.MaxDistance) {
			postings[v] = append(postings[v], id)
		}
	}
	return index.BuildFrozen(postings)
}

func (idx *Index) fold(s string) string {
	if idx.cfg.Lowercase {
		return strings.Map(func(r rune) rune {
			if 'A' <= r && r <= 'Z' {
				return r + ('a' - 'A')
			}
			return r
		}, s)
	}
	return s
}

func (idx *Index) prefixOf(s string) string {
	if idx.cfg.PrefixLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= idx.cfg.PrefixLength {
		return s
	}
	return string(runes[:idx.cfg.PrefixLength])
}

// Insert implements the §4.2 build procedure: fold, dedupe-by-surface with
// max-frequency merge, assign a TermID, compute the deletion prefix, and
// post the TermID under every deletion variant of that prefix (including
// the prefix itself). It fails if the backing does not accept writes (a
// frozen index).
func (idx *Index) Insert(surface string, frequency uint64) (TermID, error) {
	if idx.mut == nil {
		return 0, configError("index backing is read-only (frozen); cannot Insert")
	}
	folded := idx.fold(surface)

	id, isNew := idx.table.Insert(folded, frequency)
	if !isNew {
		return id, nil
	}

	prefix := idx.prefixOf(folded)
	for v := range deletes.VariantsWithSelf(prefix, idx.cfg.MaxDistance) {
		idx.mut.Post(v, id)
	}
	idx.cacheInvalidatePrefix(prefix)
	return id, nil
}

// Frequency returns the stored frequency of word, if present (spec §9
// supplemented feature, mirrored from the Rust source's `frequency`).
func (idx *Index) Frequency(word string) (uint64, bool) {
	id, ok := idx.table.IDOf(idx.fold(word))
	if !ok {
		return 0, false
	}
	return idx.table.Lookup(id).Frequency, true
}

// Contains reports whether word is present in the term table verbatim
// (after case folding per config), independent of edit distance.
func (idx *Index) Contains(word string) bool {
	_, ok := idx.table.IDOf(idx.fold(word))
	return ok
}

// Lookup implements the §4.3 public operation: candidate generation over
// deletion variants of the (possibly prefix-truncated, possibly
// case-folded) query, distance verification against the host distance
// function, deduplication by TermID, ranking, and verbosity-controlled
// selection.
func (idx *Index) Lookup(query string, maxDistance int, verbosity Verbosity) ([]Suggestion, error) {
	if maxDistance > idx.cfg.MaxDistance {
		return nil, distanceError(maxDistance, idx.cfg.MaxDistance)
	}
	if maxDistance < 0 {
		return nil, configError("max_edit_distance must be >= 0, got %d", maxDistance)
	}

	if verbosity == Top {
		if cached, ok := idx.cacheGet(query, maxDistance); ok {
			if cached == nil {
				return nil, nil
			}
			return []Suggestion{*cached}, nil
		}
	}

	folded := idx.fold(query)
	q := idx.prefixOf(folded)

	candidates := idx.candidateIDs(q, maxDistance)

	results := make([]Suggestion, 0, len(candidates))
	for id := range candidates {
		term := idx.table.Lookup(id)
		if !idx.passesFastReject(folded, term.Surface, maxDistance) {
			continue
		}
		d := idx.distFn(folded, term.Surface)
		if d > maxDistance {
			continue
		}
		results = append(results, Suggestion{Surface: term.Surface, Distance: d, Frequency: term.Frequency})
	}

	rank(results)

	out := selectVerbosity(results, verbosity, maxDistance)

	if verbosity == Top {
		idx.cachePut(query, maxDistance, q, out)
	}
	return out, nil
}

// candidateIDs computes the deduplicated TermId candidate set reachable
// from q's deletion variants, per spec §4.3 steps 1-5.
func (idx *Index) candidateIDs(q string, maxDistance int) map[TermID]struct{} {
	candidates := make(map[TermID]struct{})
	for v := range deletes.VariantsWithSelf(q, maxDistance) {
		ids, ok := idx.backing.Lookup(v)
		if !ok {
			continue
		}
		for _, id := range ids {
			candidates[id] = struct{}{}
		}
	}
	return candidates
}

// passesFastReject implements spec §4.3's length-difference fast rejects,
// bounding by the prefix-truncated lengths (reject 1) and, when a prefix
// length is configured, by the full-length strings too (reject 2).
func (idx *Index) passesFastReject(query, surface string, maxDistance int) bool {
	qLen := len([]rune(idx.prefixOf(query)))
	wLen := len([]rune(idx.prefixOf(surface)))
	if abs(qLen-wLen) > maxDistance {
		return false
	}
	if idx.cfg.PrefixLength > 0 {
		fullQLen := len([]rune(query))
		fullWLen := len([]rune(surface))
		if abs(fullQLen-fullWLen) > maxDistance {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// rank sorts results by (distance ascending, frequency descending, surface
// ascending), per spec §4.3.
func rank(results []Suggestion) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Surface < b.Surface
	})
}

// selectVerbosity applies the verbosity semantics to an already-ranked
// result slice.
func selectVerbosity(ranked []Suggestion, verbosity Verbosity, maxDistance int) []Suggestion {
	if len(ranked) == 0 {
		return nil
	}
	switch verbosity {
	case Top:
		return []Suggestion{ranked[0]}
	case Closest:
		min := ranked[0].Distance
		end := 1
		for end < len(ranked) && ranked[end].Distance == min {
			end++
		}
		return append([]Suggestion(nil), ranked[:end]...)
	default: // All
		return append([]Suggestion(nil), ranked...)
	}
}

// FindTop is the §4.3 convenience operation: lookup(query, k, Top)
// returning the single element or none.
func (idx *Index) FindTop(query string) (*Suggestion, error) {
	results, err := idx.Lookup(query, idx.cfg.MaxDistance, Top)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// FindClosest is a supplemented convenience wrapper (mirrored from the
// Rust source's `find_closest`): lookup(query, k, Closest).
func (idx *Index) FindClosest(query string) ([]Suggestion, error) {
	return idx.Lookup(query, idx.cfg.MaxDistance, Closest)
}

// FindAll is a supplemented convenience wrapper (mirrored from the Rust
// source's `find_all`): lookup(query, k, All).
func (idx *Index) FindAll(query string) ([]Suggestion, error) {
	return idx.Lookup(query, idx.cfg.MaxDistance, All)
}
