package dictionary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arcbound/symspell/pkg/symspell"
)

func TestReadSkipsCommentsAndBlanks(t *testing.T) {
	input := strings.NewReader("# header comment\n\nhello 3\nworld 5\n  \nhelp 2\n")
	entries, err := Read(input)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := []Entry{{"hello", 3}, {"world", 5}, {"help", 2}}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, entries[i], want[i])
		}
	}
}

func TestReadMalformedLineFailsWhole(t *testing.T) {
	input := strings.NewReader("hello 3\nbadline\nworld 5\n")
	_, err := Read(input)
	if err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestReadMalformedFrequencyFailsWhole(t *testing.T) {
	input := strings.NewReader("hello notanumber\n")
	_, err := Read(input)
	if err == nil {
		t.Fatalf("expected error for non-integer frequency")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	table := symspell.NewTermTable()
	table.Insert("hello", 3)
	table.Insert("world", 5)

	var buf bytes.Buffer
	if err := Write(&buf, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read after Write failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Surface != "hello" || entries[1].Surface != "world" {
		t.Fatalf("unexpected round-trip result: %v", entries)
	}
}
