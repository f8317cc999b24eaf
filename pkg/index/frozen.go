package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/blevesearch/vellum"
)

// lengthBits/lengthMask split a vellum value into an (offset, length) pair
// addressing the TermID payload buffer, matching spec §6's informative
// layout: "a static perfect hash from variant -> (offset, length) into a
// contiguous TermId payload buffer".
const (
	lengthBits = 24
	lengthMask = (uint64(1) << lengthBits) - 1
)

// FrozenIndex is the immutable backing: a vellum finite-state transducer
// mapping deletion-variant bytes to a packed (offset, length), plus a flat
// little-endian TermID payload. All data is immutable after Build/Load, so
// it is safe for any number of concurrent readers without synchronisation,
// per spec §5.
type FrozenIndex struct {
	fstBytes []byte
	fst      *vellum.FST
	payload  []byte
}

func packVal(offset, length uint64) (uint64, error) {
	if length > lengthMask {
		return 0, fmt.Errorf("index: postings list of length %d exceeds encodable maximum %d", length, lengthMask)
	}
	return (offset << lengthBits) | length, nil
}

func unpackVal(v uint64) (offset, length uint64) {
	return v >> lengthBits, v & lengthMask
}

// BuildFrozen freezes postings (deletion variant -> ascending TermID list)
// into an immutable FST-backed index. Each variant must appear at most
// once in postings.
func BuildFrozen(postings map[string][]TermID) (*FrozenIndex, error) {
	variants := make([]string, 0, len(postings))
	for v := range postings {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	var fstBuf bytes.Buffer
	builder, err := vellum.New(&fstBuf, nil)
	if err != nil {
		return nil, fmt.Errorf("index: creating fst builder: %w", err)
	}

	var payload bytes.Buffer
	for _, v := range variants {
		ids := postings[v]
		offset := uint64(payload.Len())
		for _, id := range ids {
			if err := binary.Write(&payload, binary.LittleEndian, uint32(id)); err != nil {
				return nil, fmt.Errorf("index: writing postings for %q: %w", v, err)
			}
		}
		val, err := packVal(offset, uint64(len(ids)))
		if err != nil {
			return nil, err
		}
		if err := builder.Insert([]byte(v), val); err != nil {
			return nil, fmt.Errorf("index: inserting %q into fst: %w", v, err)
		}
	}
	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("index: closing fst builder: %w", err)
	}

	return loadFrozenFromParts(fstBuf.Bytes(), payload.Bytes())
}

func loadFrozenFromParts(fstBytes, payload []byte) (*FrozenIndex, error) {
	fst, err := vellum.Load(fstBytes)
	if err != nil {
		return nil, fmt.Errorf("index: loading fst: %w", err)
	}
	return &FrozenIndex{fstBytes: fstBytes, fst: fst, payload: payload}, nil
}

// Lookup implements Backing.
func (f *FrozenIndex) Lookup(variant string) ([]TermID, bool) {
	val, exists, err := f.fst.Get([]byte(variant))
	if err != nil || !exists {
		return nil, false
	}
	offset, length := unpackVal(val)
	if length == 0 {
		return []TermID{}, true
	}
	ids := make([]TermID, length)
	for i := uint64(0); i < length; i++ {
		pos := offset + i*4
		ids[i] = TermID(binary.LittleEndian.Uint32(f.payload[pos : pos+4]))
	}
	return ids, true
}

// Len implements Backing.
func (f *FrozenIndex) Len() int {
	return int(f.fst.Len())
}

// MarshalBinary encodes the frozen index as a 4-byte little-endian FST
// length, the raw FST bytes, then the TermID payload. This is the format
// cmd/symspellgen writes and pkg/dictionary.LoadFrozen reads back.
func (f *FrozenIndex) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(f.fstBytes))); err != nil {
		return nil, err
	}
	buf.Write(f.fstBytes)
	buf.Write(f.payload)
	return buf.Bytes(), nil
}

// UnmarshalFrozenIndex decodes the layout MarshalBinary produces.
func UnmarshalFrozenIndex(data []byte) (*FrozenIndex, error) {
	if len(data) < 4 {
		return nil, errors.New("index: frozen index data truncated (missing fst length header)")
	}
	fstLen := binary.LittleEndian.Uint32(data[:4])
	rest := data[4:]
	if uint32(len(rest)) < fstLen {
		return nil, errors.New("index: frozen index data truncated (fst bytes short)")
	}
	fstBytes := rest[:fstLen]
	payload := rest[fstLen:]
	return loadFrozenFromParts(fstBytes, payload)
}
