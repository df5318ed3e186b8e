// Package config loads hl2 tool settings from a TOML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hl2/internal/parser"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "HL2_CONFIG"

// Config holds the complete tool configuration
type Config struct {
	Output OutputConfig `toml:"output"`
	Parser ParserConfig `toml:"parser"`
	Log    LogConfig    `toml:"log"`
	REPL   REPLConfig   `toml:"repl"`
}

// OutputConfig controls how tokens, trees and diagnostics are printed
type OutputConfig struct {
	Format string `toml:"format"` // tree, json or yaml
	Color  bool   `toml:"color"`
}

// ParserConfig holds parser limits
type ParserConfig struct {
	MaxDepth int `toml:"max_depth"` // negative disables the limit
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// REPLConfig holds interactive shell settings
type REPLConfig struct {
	HistoryFile string `toml:"history_file"`
	Prompt      string `toml:"prompt"`
}

// Formats lists the accepted values of output.format.
var Formats = []string{"tree", "json", "yaml"}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{Output: OutputConfig{Color: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file at path. A missing file is an error.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := &Config{Output: OutputConfig{Color: true}}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault looks for a config in $HL2_CONFIG, ./hl2.toml and
// ~/.config/hl2/config.toml, in that order. If none exists the defaults are
// returned. The second result is the path that was loaded, if any.
func LoadDefault() (*Config, string, error) {
	if path := os.Getenv(EnvVar); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	candidates := []string{"hl2.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "hl2", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	return Default(), "", nil
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "hl2> "
	}
	if c.REPL.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.HistoryFile = filepath.Join(home, ".hl2_history")
		}
	}
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks that every setting holds an accepted value.
func (c *Config) Validate() error {
	if !isFormat(c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(Formats, ", "), c.Output.Format)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts log.level to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ParserOptions returns the parser options implied by the config.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(c.Parser.MaxDepth)}
}

func isFormat(s string) bool {
	for _, f := range Formats {
		if f == s {
			return true
		}
	}
	return false
}
