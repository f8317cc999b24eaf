package cli

import (
	"testing"

	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/stretchr/testify/require"
)

func seedHandler(t *testing.T) *Handler {
	idx, err := symspell.NewRuntime(symspell.Config{MaxDistance: 2})
	require.NoError(t, err)
	for surf, freq := range map[string]uint64{"hello": 3, "world": 5, "help": 2} {
		_, err := idx.Insert(surf, freq)
		require.NoError(t, err)
	}
	return NewHandler(idx, 1, 60, 10, false)
}

func TestValidateRejectsTooShort(t *testing.T) {
	h := seedHandler(t)
	h.minPrefixLength = 3
	require.False(t, h.validate("ab"))
}

func TestValidateRejectsTooLong(t *testing.T) {
	h := seedHandler(t)
	h.maxPrefixLength = 3
	require.False(t, h.validate("abcdef"))
}

func TestValidateFiltersInvalidInput(t *testing.T) {
	h := seedHandler(t)
	require.False(t, h.validate("111"))
}

func TestValidateAllowsNoFilterBypass(t *testing.T) {
	h := seedHandler(t)
	h.noFilter = true
	require.True(t, h.validate("111"))
}

func TestHandleCommandUnknownDoesNotPanic(t *testing.T) {
	h := seedHandler(t)
	h.handleCommand("bogus")
}

func TestHandleCommandEmptyShowsHelp(t *testing.T) {
	h := seedHandler(t)
	h.handleCommand("")
}

func TestHandleLineDispatchesCommand(t *testing.T) {
	h := seedHandler(t)
	h.handleLine(":lookup helo")
}

func TestHandleLineDispatchesPlainLookup(t *testing.T) {
	h := seedHandler(t)
	h.handleLine("helo")
}
