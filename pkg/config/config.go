// Package config manages TOML configuration for symspell services: the
// index's build-time parameters, the IPC server's limits, dictionary
// source location, and CLI defaults. Loading follows the teacher's
// priority chain (custom path -> default XDG-style path -> builtin
// defaults) and validates with go-playground/validator at load time, per
// spec §7.1's configuration-error requirement.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcbound/symspell/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
)

// IndexConfig mirrors spec §3's index configuration surface.
type IndexConfig struct {
	MaxDistance  int  `toml:"max_distance" validate:"gte=0,lte=8"`
	Lowercase    bool `toml:"lowercase"`
	PrefixLength int  `toml:"prefix_length" validate:"gte=0"`
}

// ServerConfig holds IPC server limits.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit" validate:"gt=0"`
	MinPrefix int `toml:"min_prefix" validate:"gte=0"`
	MaxPrefix int `toml:"max_prefix" validate:"gtefield=MinPrefix"`
}

// DictConfig points at the dictionary source to load at startup: either a
// plain-text dictionary (Path, ".txt") or a frozen embedding (Path,
// ".fsi").
type DictConfig struct {
	Path      string `toml:"path"`
	ChunkSize int    `toml:"chunk_size" validate:"gte=0"`
}

// CliConfig holds interactive REPL defaults.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit" validate:"gt=0"`
	NoFilter     bool `toml:"no_filter"`
}

// Config is the top-level TOML document.
type Config struct {
	Index  IndexConfig  `toml:"index"`
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// DefaultConfig returns a Config with sane defaults for a k=2 English-scale
// dictionary.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			MaxDistance:  2,
			Lowercase:    true,
			PrefixLength: 7,
		},
		Server: ServerConfig{
			MaxLimit:  20,
			MinPrefix: 0,
			MaxPrefix: 64,
		},
		Dict: DictConfig{
			Path:      "dictionary.txt",
			ChunkSize: 10000,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			NoFilter:     false,
		},
	}
}

// Validate runs struct-tag validation (spec §7.1's "required options
// missing" and simple range checks), then the one cross-field rule
// validator tags can't express cleanly: prefix_length, if set, must be >=
// max_distance (spec §9's open question, resolved: reject at build time).
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Index.PrefixLength != 0 && c.Index.PrefixLength < c.Index.MaxDistance {
		return fmt.Errorf("config: index.prefix_length (%d) must be >= index.max_distance (%d)", c.Index.PrefixLength, c.Index.MaxDistance)
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/symspell
// 2. ~/Library/Application Support/symspell (macOS)
// 3. current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "symspell")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "symspell")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. custom path from a --config flag
// 2. default path: [UserConfigDir]/symspell/config.toml
// 3. builtin defaults
//
// It never returns an error for a missing or unreadable file — it falls
// back to defaults and logs a warning — but DOES return an error from
// Validate if a loaded config fails validation, per spec §7.1: a
// configuration error fails the call, it does not silently substitute
// defaults for an explicitly-provided-but-invalid file.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err != nil {
				return nil, "", err
			}
			return cfg, customConfigPath, nil
		}
		log.Warnf("Custom config file not found at %s, trying default path", customConfigPath)
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults.", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, defaultPath, nil
}

// InitConfig loads config from file, or creates a default file if missing.
func InitConfig(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if err := utils.EnsureDir(dir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults.", dir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults.", configPath, err)
		}
		return cfg, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads and validates a TOML file, falling back to a
// partial-recovery parse if the whole file fails to decode.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		recovered, recErr := tryPartialParse(configPath)
		if recErr != nil {
			return nil, recErr
		}
		cfg = recovered
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tryPartialParse salvages whichever top-level sections parse cleanly out
// of a TOML file that failed to decode as a whole Config, per spec §7.2's
// "all-or-nothing per line is acceptable as long as failure is reported"
// — here applied section-by-section rather than line-by-line, since TOML
// has no per-line structure to fall back on.
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(raw, "index"); ok {
		extractIndexConfig(section, &cfg.Index)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		extractDictConfig(section, &cfg.Dict)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	return cfg, nil
}

func extractIndexConfig(data map[string]any, idx *IndexConfig) {
	if v, ok := utils.ExtractInt64(data, "max_distance"); ok {
		idx.MaxDistance = v
	}
	if v, ok := utils.ExtractBool(data, "lowercase"); ok {
		idx.Lowercase = v
	}
	if v, ok := utils.ExtractInt64(data, "prefix_length"); ok {
		idx.PrefixLength = v
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if v, ok := utils.ExtractInt64(data, "max_limit"); ok {
		s.MaxLimit = v
	}
	if v, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		s.MinPrefix = v
	}
	if v, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		s.MaxPrefix = v
	}
}

func extractDictConfig(data map[string]any, d *DictConfig) {
	if v, ok := data["path"].(string); ok {
		d.Path = v
	}
	if v, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		d.ChunkSize = v
	}
}

func extractCliConfig(data map[string]any, c *CliConfig) {
	if v, ok := utils.ExtractInt64(data, "default_limit"); ok {
		c.DefaultLimit = v
	}
	if v, ok := utils.ExtractBool(data, "no_filter"); ok {
		c.NoFilter = v
	}
}

// RebuildConfigFile force-creates a new config.toml at the default path
// with builtin defaults.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of the config file that
// would be (or was) loaded for configPath ("" means "the default path").
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig writes cfg to a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}
