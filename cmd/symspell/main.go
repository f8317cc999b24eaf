/*
Command symspell loads a dictionary (plain-text or a pre-built .fsi
embedding) and either serves msgpack IPC lookups over stdin/stdout, or
drops into an interactive CLI for testing.

# Usage

Serve IPC over a plain-text dictionary:

	symspell -dict words.txt

Serve over a pre-built frozen embedding:

	symspell -dict words.fsi -frozen

Run interactively instead of serving:

	symspell -dict words.txt -c
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arcbound/symspell/internal/cli"
	"github.com/arcbound/symspell/internal/logger"
	"github.com/arcbound/symspell/pkg/config"
	"github.com/arcbound/symspell/pkg/dictionary"
	"github.com/arcbound/symspell/pkg/server"
	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/charmbracelet/log"
)

const version = "0.1.0"

var appLog = logger.Default("symspell")

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "show version and exit")
	configPath := flag.String("config", "", "path to config.toml (default: platform config dir)")
	dictPath := flag.String("dict", defaultConfig.Dict.Path, "path to dictionary (.txt) or frozen embedding (.fsi)")
	frozen := flag.Bool("frozen", false, "treat -dict as a pre-built .fsi embedding")
	debugMode := flag.Bool("d", false, "enable debug logging")
	cliMode := flag.Bool("c", false, "run interactive CLI instead of serving IPC")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "number of suggestions to return in CLI mode")
	minPrefix := flag.Int("prmin", 1, "minimum query length")
	maxPrefix := flag.Int("prmax", 60, "maximum query length")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.NoFilter, "disable input filtering (debugging)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("symspell %s\n", version)
		os.Exit(0)
	}

	if *debugMode {
		logger.SetGlobalLevel(log.DebugLevel)
	} else {
		logger.SetGlobalLevel(log.InfoLevel)
	}
	appLog.SetLevel(log.GetLevel())

	cfg, resolvedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		appLog.Fatalf("failed to load config: %v", err)
	}
	if resolvedPath != "" {
		appLog.Debugf("using config file: %s", resolvedPath)
	}

	idx, err := loadIndex(*dictPath, *frozen, cfg)
	if err != nil {
		appLog.Fatalf("failed to load dictionary: %v", err)
	}
	appLog.Infof("loaded %d terms (max_distance=%d)", idx.Len(), idx.Config().MaxDistance)

	if *cliMode {
		handler := cli.NewHandler(idx, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := handler.Start(); err != nil {
			appLog.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(idx,
		server.WithDefaultLimit(cfg.Server.MaxLimit),
		server.WithMaxLimit(cfg.Server.MaxLimit),
	)
	if err := srv.Start(); err != nil {
		appLog.Fatalf("server error: %v", err)
	}
}

func loadIndex(path string, isFrozen bool, cfg *config.Config) (*symspell.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isFrozen {
		return dictionary.LoadFrozen(f)
	}

	entries, err := dictionary.Read(f)
	if err != nil {
		return nil, err
	}
	idxCfg := symspell.Config{
		MaxDistance:  cfg.Index.MaxDistance,
		Lowercase:    cfg.Index.Lowercase,
		PrefixLength: cfg.Index.PrefixLength,
	}
	idx, err := symspell.NewRuntime(idxCfg)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err := idx.Insert(e.Surface, e.Frequency); err != nil {
			return nil, err
		}
	}
	return idx, nil
}
