package server

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func seedServer(t *testing.T) *symspell.Index {
	idx, err := symspell.NewRuntime(symspell.Config{MaxDistance: 2})
	require.NoError(t, err)
	for surf, freq := range map[string]uint64{"hello": 3, "world": 5, "help": 2} {
		_, err := idx.Insert(surf, freq)
		require.NoError(t, err)
	}
	return idx
}

func sendAndReceive(t *testing.T, idx *symspell.Index, req Request) map[string]any {
	reqBytes, err := msgpack.Marshal(req)
	require.NoError(t, err)

	var in bytes.Buffer
	require.NoError(t, writeFrame(&in, reqBytes))

	var out bytes.Buffer
	s := NewServer(idx)
	s.reader = bufio.NewReader(&in)
	s.writer = &out

	frame, err := readFrame(s.reader)
	require.NoError(t, err)
	var got Request
	require.NoError(t, msgpack.Unmarshal(frame, &got))
	s.handleRequest(got)

	respFrame, err := readFrame(bufio.NewReader(&out))
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, msgpack.Unmarshal(respFrame, &resp))
	return resp
}

func TestHandleLookupReturnsSuggestions(t *testing.T) {
	idx := seedServer(t)
	resp := sendAndReceive(t, idx, Request{ID: "1", Command: "lookup", Query: "helo", Verbosity: "top"})
	require.Equal(t, "1", resp["id"])
	require.EqualValues(t, 1, resp["count"])
}

func TestHandleLookupMissingQuery(t *testing.T) {
	idx := seedServer(t)
	resp := sendAndReceive(t, idx, Request{ID: "2", Command: "lookup"})
	require.Contains(t, resp, "error")
}

func TestHandleHealth(t *testing.T) {
	idx := seedServer(t)
	resp := sendAndReceive(t, idx, Request{ID: "3", Command: "health"})
	require.Equal(t, "ok", resp["status"])
}

func TestHandleDictInfo(t *testing.T) {
	idx := seedServer(t)
	resp := sendAndReceive(t, idx, Request{ID: "4", Command: "dict_info"})
	require.EqualValues(t, 3, resp["term_count"])
	require.EqualValues(t, 2, resp["max_distance"])
}

func TestHandleLookupExplicitZeroMaxDistanceIsExactMatchOnly(t *testing.T) {
	idx := seedServer(t)
	zero := 0

	resp := sendAndReceive(t, idx, Request{ID: "6", Command: "lookup", Query: "helo", MaxDistance: &zero, Verbosity: "all"})
	require.EqualValues(t, 0, resp["count"], "max_distance=0 must not fall back to the index default")

	resp = sendAndReceive(t, idx, Request{ID: "7", Command: "lookup", Query: "hello", MaxDistance: &zero, Verbosity: "all"})
	require.EqualValues(t, 1, resp["count"], "max_distance=0 must still match the exact term")
}

func TestHandleLookupOmittedMaxDistanceUsesIndexDefault(t *testing.T) {
	idx := seedServer(t)
	resp := sendAndReceive(t, idx, Request{ID: "8", Command: "lookup", Query: "helo", Verbosity: "all"})
	require.EqualValues(t, 2, resp["count"], "omitted max_distance should use the index's configured default")
}

func TestHandleUnknownCommand(t *testing.T) {
	idx := seedServer(t)
	resp := sendAndReceive(t, idx, Request{ID: "5", Command: "bogus"})
	require.Contains(t, resp, "error")
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{1, 2, 3, 4, 5}
	require.NoError(t, writeFrame(&buf, payload))

	got, err := readFrame(bufio.NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
