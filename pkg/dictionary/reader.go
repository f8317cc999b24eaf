// Package dictionary provides the external collaborators spec.md scopes
// out of the core: a plain two-column text reader/writer, a combined
// term-table + frozen-index on-disk format, and concurrent build support.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arcbound/symspell/pkg/symspell"
)

// Entry is one parsed dictionary line.
type Entry struct {
	Surface   string
	Frequency uint64
}

// Read parses the spec §6 dictionary file format: UTF-8 text, one entry per
// line, two whitespace-separated fields `<surface> <frequency>`. Blank
// lines and lines starting with '#' are ignored. Malformed lines fail the
// whole call (spec §7.2, all-or-nothing); the error identifies the
// offending line number.
func Read(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("dictionary: line %d: expected 2 whitespace-separated fields, got %d: %q", lineNo, len(fields), line)
		}

		freq, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dictionary: line %d: invalid frequency %q: %w", lineNo, fields[1], err)
		}

		entries = append(entries, Entry{Surface: fields[0], Frequency: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: scanning input: %w", err)
	}
	return entries, nil
}

// Write serialises table back to the spec §6 text format, one `<surface>
// <frequency>` line per term in insertion order, for round-tripping a
// TermTable through a file.
func Write(w io.Writer, table *symspell.TermTable) error {
	bw := bufio.NewWriter(w)
	for _, term := range table.All() {
		if _, err := fmt.Fprintf(bw, "%s %d\n", term.Surface, term.Frequency); err != nil {
			return fmt.Errorf("dictionary: writing term %q: %w", term.Surface, err)
		}
	}
	return bw.Flush()
}
