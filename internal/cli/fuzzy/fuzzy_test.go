package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var commands = []string{"lookup", "closest", "all", "list", "quit"}

func TestResolveExactMatch(t *testing.T) {
	m := NewMatcher(commands)
	got, fuzzy := m.Resolve("lookup")
	require.Equal(t, "lookup", got)
	require.False(t, fuzzy)
}

func TestResolveTypo(t *testing.T) {
	m := NewMatcher(commands)
	got, fuzzy := m.Resolve("lokup")
	require.Equal(t, "lookup", got)
	require.True(t, fuzzy)
}

func TestResolveShortInputUnchanged(t *testing.T) {
	m := NewMatcher(commands)
	got, fuzzy := m.Resolve("l")
	require.Equal(t, "l", got)
	require.False(t, fuzzy)
}

func TestResolveNoMatch(t *testing.T) {
	m := NewMatcher(commands)
	got, _ := m.Resolve("zzzzz")
	require.Equal(t, "zzzzz", got)
}
