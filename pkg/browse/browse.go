// Package browse exposes prefix enumeration over a term table, for an
// interactive ":list <prefix>" command or a browse-style API — a
// supplemented feature with no direct counterpart in spec.md's lookup
// operation, grounded in the teacher's pkg/suggest/trie.go prefix search
// over a patricia.Trie.
package browse

import (
	"sort"
	"strings"

	"github.com/arcbound/symspell/internal/logger"
	"github.com/arcbound/symspell/internal/utils"
	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Entry is one term surfaced by a prefix browse.
type Entry struct {
	Surface   string
	Frequency uint64
}

// Browser indexes a term table's surfaces by a patricia trie, keyed on the
// (already case-folded) surface, for fast prefix subtree walks.
type Browser struct {
	trie *patricia.Trie
	log  *log.Logger
}

// NewBrowser builds a Browser over every term currently in table. It takes
// a snapshot: terms inserted into table after NewBrowser returns are not
// reflected.
func NewBrowser(table *symspell.TermTable) *Browser {
	trie := patricia.NewTrie()
	for _, term := range table.All() {
		trie.Insert(patricia.Prefix(term.Surface), term.Frequency)
	}
	return &Browser{trie: trie, log: logger.Default("browse")}
}

// ListPrefix returns every term whose surface starts with prefix (after
// lowercasing, matching the trie's case-folded keys), ranked by
// frequency descending then surface ascending, capped at limit (0 means
// unlimited). The prefix itself is never returned, even when it is a
// dictionary entry; callers that want it should check Contains separately.
func (b *Browser) ListPrefix(prefix string, limit int) []Entry {
	lowerPrefix := strings.ToLower(prefix)
	filter := utils.NewSuggestionFilter(lowerPrefix)

	var entries []Entry
	err := b.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		surface := string(p)
		if !filter.ShouldInclude(surface) {
			return nil
		}
		freq, _ := item.(uint64)
		entries = append(entries, Entry{Surface: surface, Frequency: freq})
		return nil
	})
	if err != nil {
		b.log.Errorf("visiting browse trie subtree: %v", err)
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Surface < entries[j].Surface
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Len returns the number of distinct surfaces indexed.
func (b *Browser) Len() int {
	n := 0
	b.trie.Visit(func(patricia.Prefix, patricia.Item) error {
		n++
		return nil
	})
	return n
}
