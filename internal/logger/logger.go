// Package logger centralises construction of charmbracelet/log loggers so
// every component (server, CLI, symspellgen) gets consistent prefixing and
// formatting, configurable by the same log.Level charmbracelet/log uses
// globally.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a prefixed logger whose level is the global log level at
// the time of the call (later SetGlobalLevel calls do not change it), with
// no caller reporting or timestamps — the REPL/server hot path.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a prefixed logger with explicit settings, used by
// cmd/symspellgen where build runs benefit from timestamps and a caller
// trail.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       formatter,
	})
}

// SetGlobalLevel adjusts the package-wide charmbracelet/log level that
// Default loggers created afterwards inherit, driven by a CLI verbosity flag.
func SetGlobalLevel(level log.Level) {
	log.SetLevel(level)
}
