// Package cli provides an interactive REPL for querying a symspell.Index
// directly from a terminal, grounded in the teacher's internal/cli
// InputHandler (consolidating its near-duplicate input.go/terminal.go into
// a single handler) and extended with ":"-prefixed verbosity/browse
// commands plus fuzzy command-name correction.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arcbound/symspell/internal/cli/fuzzy"
	"github.com/arcbound/symspell/internal/logger"
	"github.com/arcbound/symspell/internal/utils"
	"github.com/arcbound/symspell/pkg/browse"
	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/charmbracelet/log"
)

var knownCommands = []string{"lookup", "closest", "all", "list", "quit", "help"}

// Handler drives the interactive loop: read a line, parse an optional
// ":command" prefix, query the index, print results.
type Handler struct {
	idx             *symspell.Index
	browser         *browse.Browser
	matcher         *fuzzy.Matcher
	log             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	requestCount    int
}

// NewHandler builds a Handler over idx. minLength/maxLength bound accepted
// query length; limit caps the number of printed suggestions; noFilter
// disables utils.IsValidInput pre-filtering, mirroring the teacher's
// --no-filter debug flag.
func NewHandler(idx *symspell.Index, minLength, maxLength, limit int, noFilter bool) *Handler {
	return &Handler{
		idx:             idx,
		browser:         browse.NewBrowser(idx.Table()),
		matcher:         fuzzy.NewMatcher(knownCommands),
		log:             logger.Default("cli"),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start begins the REPL loop, returning when stdin is closed or an error
// occurs reading it.
func (h *Handler) Start() error {
	h.log.Print("symspell CLI")
	h.log.Print("type a word to look it up, or :help for commands (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleLine(line)
	}
}

func (h *Handler) handleLine(line string) {
	h.requestCount++

	if strings.HasPrefix(line, ":") {
		h.handleCommand(strings.TrimPrefix(line, ":"))
		return
	}
	h.handleLookup(line, symspell.Top)
}

func (h *Handler) handleCommand(rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		h.printHelp()
		return
	}

	name, corrected := h.matcher.Resolve(fields[0])
	if corrected {
		h.log.Debugf("command %q interpreted as %q", fields[0], name)
	}
	arg := strings.Join(fields[1:], " ")

	switch name {
	case "lookup":
		h.handleLookup(arg, symspell.Top)
	case "closest":
		h.handleLookup(arg, symspell.Closest)
	case "all":
		h.handleLookup(arg, symspell.All)
	case "list":
		h.handleList(arg)
	case "quit":
		os.Exit(0)
	case "help":
		h.printHelp()
	default:
		h.log.Errorf("unknown command: %s", fields[0])
	}
}

func (h *Handler) printHelp() {
	h.log.Print("commands: :lookup <word>  :closest <word>  :all <word>  :list <prefix>  :quit")
}

func (h *Handler) handleLookup(query string, verbosity symspell.Verbosity) {
	if !h.validate(query) {
		return
	}

	start := time.Now()
	results, err := h.idx.Lookup(query, h.idx.Config().MaxDistance, verbosity)
	elapsed := time.Since(start)
	if err != nil {
		h.log.Errorf("lookup %q: %v", query, err)
		return
	}
	if len(results) > h.suggestLimit {
		results = results[:h.suggestLimit]
	}

	h.log.Debugf("took %v for query %q", elapsed, query)
	if len(results) == 0 {
		h.log.Warnf("no suggestions for %q", query)
		return
	}

	h.log.Printf("found %d suggestions for %q:", len(results), query)
	for i, r := range results {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", r.Surface)
		h.log.Printf("%2d. %-30s (d=%d, freq: %8s)", i+1, clWord, r.Distance, utils.FormatWithCommas(r.Frequency))
	}
}

func (h *Handler) handleList(prefix string) {
	if !h.validate(prefix) {
		return
	}
	entries := h.browser.ListPrefix(prefix, h.suggestLimit)
	if len(entries) == 0 {
		h.log.Warnf("no terms under prefix %q", prefix)
		return
	}
	h.log.Printf("found %d terms under %q:", len(entries), prefix)
	for i, e := range entries {
		h.log.Printf("%2d. %-30s (freq: %8s)", i+1, e.Surface, utils.FormatWithCommas(e.Frequency))
	}
}

func (h *Handler) validate(query string) bool {
	if len(query) < h.minPrefixLength {
		h.log.Errorf("query too short: %q", query)
		return false
	}
	if len(query) > h.maxPrefixLength {
		h.log.Errorf("query too long: %q", query)
		return false
	}
	if !h.noFilter && !utils.IsValidInput(query) {
		h.log.Warnf("query %q filtered out", query)
		return false
	}
	return true
}
