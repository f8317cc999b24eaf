/*
Command symspellgen builds a runtime symspell.Index from one or more
plain-text dictionary shards, freezes its deletion postings into an
immutable vellum-backed form, and serialises the result as a .fsi file
that pkg/dictionary.LoadFrozen (or `symspell -frozen`) loads.

# Usage

	symspellgen -out words.fsi -max-distance 2 -lowercase dict/*.txt
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arcbound/symspell/internal/logger"
	"github.com/arcbound/symspell/pkg/dictionary"
	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/schollz/progressbar/v3"
)

type buildConfig struct {
	MaxDistance  int `validate:"gte=0,lte=8"`
	PrefixLength int `validate:"gte=0"`
}

func main() {
	out := flag.String("out", "words.fsi", "output .fsi path")
	maxDistance := flag.Int("max-distance", 2, "k: maximum edit distance the built index supports")
	prefixLength := flag.Int("prefix-length", 7, "variant-generation prefix length (0 disables truncation)")
	lowercase := flag.Bool("lowercase", true, "case-fold terms and queries")
	debugMode := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	level := log.InfoLevel
	if *debugMode {
		level = log.DebugLevel
	}
	buildLog := logger.NewWithConfig("symspellgen", level, *debugMode, true, log.TextFormatter)

	shardPaths := flag.Args()
	if len(shardPaths) == 0 {
		buildLog.Fatal("symspellgen: at least one dictionary shard path is required")
	}

	bc := buildConfig{MaxDistance: *maxDistance, PrefixLength: *prefixLength}
	if err := validator.New().Struct(bc); err != nil {
		buildLog.Fatalf("invalid build parameters: %v", err)
	}

	cfg := symspell.Config{
		MaxDistance:  *maxDistance,
		Lowercase:    *lowercase,
		PrefixLength: *prefixLength,
	}

	shards, closers, err := openShards(shardPaths)
	if err != nil {
		buildLog.Fatalf("opening shards: %v", err)
	}
	defer closeAll(closers)

	bar := progressbar.NewOptions(len(shardPaths),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]reading dictionary shards...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	idx, err := dictionary.BuildConcurrent(cfg, shards)
	if err != nil {
		buildLog.Fatalf("building index: %v", err)
	}
	bar.Add(len(shardPaths))
	fmt.Fprintln(os.Stderr)

	buildLog.Infof("built index: %d terms", idx.Len())

	buildLog.Info("freezing deletion postings...")
	frozen, err := idx.Freeze()
	if err != nil {
		buildLog.Fatalf("freezing index: %v", err)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		buildLog.Fatalf("creating %s: %v", *out, err)
	}
	defer outFile.Close()

	if err := dictionary.WriteFrozen(outFile, cfg, idx.Table(), frozen); err != nil {
		buildLog.Fatalf("writing %s: %v", *out, err)
	}

	buildLog.Infof("wrote %s (%d terms, max_distance=%d)", *out, idx.Len(), cfg.MaxDistance)
}

func openShards(paths []string) ([]dictionary.Shard, []*os.File, error) {
	shards := make([]dictionary.Shard, 0, len(paths))
	files := make([]*os.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll(files)
			return nil, nil, fmt.Errorf("opening %s: %w", p, err)
		}
		files = append(files, f)
		shards = append(shards, dictionary.Shard{Name: p, Reader: f})
	}
	return shards, files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}
