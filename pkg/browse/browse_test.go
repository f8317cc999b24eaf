package browse

import (
	"testing"

	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/stretchr/testify/require"
)

func seedTable(t *testing.T) *symspell.TermTable {
	table := symspell.NewTermTable()
	for surf, freq := range map[string]uint64{
		"hello":   3,
		"help":    2,
		"helpful": 7,
		"world":   5,
	} {
		_, _ = table.Insert(surf, freq)
	}
	return table
}

func TestListPrefixFindsMatches(t *testing.T) {
	b := NewBrowser(seedTable(t))
	entries := b.ListPrefix("hel", 0)
	require.Len(t, entries, 3)
	require.Equal(t, "helpful", entries[0].Surface)
}

func TestListPrefixRespectsLimit(t *testing.T) {
	b := NewBrowser(seedTable(t))
	entries := b.ListPrefix("hel", 1)
	require.Len(t, entries, 1)
	require.Equal(t, "helpful", entries[0].Surface)
}

func TestListPrefixNoMatches(t *testing.T) {
	b := NewBrowser(seedTable(t))
	entries := b.ListPrefix("zzz", 0)
	require.Empty(t, entries)
}

func TestLenReflectsSnapshot(t *testing.T) {
	b := NewBrowser(seedTable(t))
	require.Equal(t, 4, b.Len())
}
