package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/arcbound/symspell/pkg/index"
	"github.com/arcbound/symspell/pkg/symspell"
)

// fsiMagic/fsiVersion identify the on-disk layout WriteFrozen/LoadFrozen
// speak: a small header, the term table, then the frozen index's own
// MarshalBinary encoding. This is the compile-time embedding format spec
// §6 describes as informative ("any equivalent works"); cmd/symspellgen
// produces it and LoadFrozen reads it back.
const (
	fsiMagic   = "SSFZ"
	fsiVersion = uint8(1)
)

// WriteFrozen serialises cfg, table, and frozen into the .fsi layout.
func WriteFrozen(w io.Writer, cfg symspell.Config, table *symspell.TermTable, frozen *index.FrozenIndex) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(fsiMagic); err != nil {
		return err
	}
	header := []uint8{fsiVersion, uint8(cfg.MaxDistance), boolToByte(cfg.Lowercase)}
	for _, b := range header {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, uint16(cfg.PrefixLength)); err != nil {
		return err
	}

	terms := table.All()
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(terms))); err != nil {
		return err
	}
	for _, term := range terms {
		surf := []byte(term.Surface)
		if len(surf) > 1<<16-1 {
			return fmt.Errorf("dictionary: surface %q too long to encode", term.Surface)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(surf))); err != nil {
			return err
		}
		if _, err := bw.Write(surf); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, term.Frequency); err != nil {
			return err
		}
	}

	fstData, err := frozen.MarshalBinary()
	if err != nil {
		return fmt.Errorf("dictionary: marshalling frozen index: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(fstData))); err != nil {
		return err
	}
	if _, err := bw.Write(fstData); err != nil {
		return err
	}

	return bw.Flush()
}

// LoadFrozen reads the .fsi layout WriteFrozen produces and returns a
// ready-to-query *symspell.Index backed by the frozen, immutable form.
func LoadFrozen(r io.Reader) (*symspell.Index, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(fsiMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("dictionary: reading magic: %w", err)
	}
	if string(magic) != fsiMagic {
		return nil, fmt.Errorf("dictionary: bad magic %q, expected %q", magic, fsiMagic)
	}

	version, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("dictionary: reading version: %w", err)
	}
	if version != fsiVersion {
		return nil, fmt.Errorf("dictionary: unsupported .fsi version %d", version)
	}
	maxDistance, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("dictionary: reading max_distance: %w", err)
	}
	lowercase, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("dictionary: reading lowercase flag: %w", err)
	}
	var prefixLength uint16
	if err := binary.Read(br, binary.LittleEndian, &prefixLength); err != nil {
		return nil, fmt.Errorf("dictionary: reading prefix_length: %w", err)
	}

	var termCount uint32
	if err := binary.Read(br, binary.LittleEndian, &termCount); err != nil {
		return nil, fmt.Errorf("dictionary: reading term count: %w", err)
	}

	table := symspell.NewTermTable()
	for i := uint32(0); i < termCount; i++ {
		var surfLen uint16
		if err := binary.Read(br, binary.LittleEndian, &surfLen); err != nil {
			return nil, fmt.Errorf("dictionary: reading term %d surface length: %w", i, err)
		}
		surf := make([]byte, surfLen)
		if _, err := io.ReadFull(br, surf); err != nil {
			return nil, fmt.Errorf("dictionary: reading term %d surface: %w", i, err)
		}
		var freq uint64
		if err := binary.Read(br, binary.LittleEndian, &freq); err != nil {
			return nil, fmt.Errorf("dictionary: reading term %d frequency: %w", i, err)
		}
		table.Insert(string(surf), freq)
	}

	var fstLen uint32
	if err := binary.Read(br, binary.LittleEndian, &fstLen); err != nil {
		return nil, fmt.Errorf("dictionary: reading fst length: %w", err)
	}
	fstData := make([]byte, fstLen)
	if _, err := io.ReadFull(br, fstData); err != nil {
		return nil, fmt.Errorf("dictionary: reading fst bytes: %w", err)
	}

	frozen, err := index.UnmarshalFrozenIndex(fstData)
	if err != nil {
		return nil, fmt.Errorf("dictionary: unmarshalling frozen index: %w", err)
	}

	cfg := symspell.Config{
		MaxDistance:  int(maxDistance),
		Lowercase:    lowercase == 1,
		PrefixLength: int(prefixLength),
	}
	return symspell.NewFrozen(cfg, table, frozen)
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
