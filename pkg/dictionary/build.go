package dictionary

import (
	"fmt"
	"io"

	"github.com/arcbound/symspell/pkg/symspell"
	"golang.org/x/sync/errgroup"
)

// Shard is one unit of concurrent dictionary ingestion, typically one file
// among several that together make up a large corpus.
type Shard struct {
	Name   string
	Reader io.Reader
}

// BuildConcurrent parses every shard's entries in parallel — errgroup fans
// out the read-and-validate work, one goroutine per shard — then inserts
// them, in shard order, into a single runtime Index. Insertion itself
// stays sequential: TermID assignment (spec §3) must be deterministic and
// race-free, but the parsing ahead of it does not need to be, and for a
// large multi-file corpus that parsing dominates build time.
func BuildConcurrent(cfg symspell.Config, shards []Shard, opts ...symspell.Option) (*symspell.Index, error) {
	parsed := make([][]Entry, len(shards))

	g := new(errgroup.Group)
	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() error {
			entries, err := Read(shard.Reader)
			if err != nil {
				return fmt.Errorf("dictionary: shard %q: %w", shard.Name, err)
			}
			parsed[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx, err := symspell.NewRuntime(cfg, opts...)
	if err != nil {
		return nil, err
	}
	for i, entries := range parsed {
		for _, e := range entries {
			if _, err := idx.Insert(e.Surface, e.Frequency); err != nil {
				return nil, fmt.Errorf("dictionary: shard %q: inserting %q: %w", shards[i].Name, e.Surface, err)
			}
		}
	}
	return idx, nil
}
