// Package config handles configuration loading and validation for reportbox.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/core/styles"
)

// DefaultTitle is the page title shown above the report cells.
const DefaultTitle = "Reports Class 7K"

// SourceKind names where report records come from.
type SourceKind string

// Supported source kinds.
const (
	SourceAuto   SourceKind = "auto"
	SourceSample SourceKind = "sample"
	SourceJSON   SourceKind = "json"
	SourceYAML   SourceKind = "yaml"
	SourceSQLite SourceKind = "sqlite"
)

// IsValid checks if the source kind is supported.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceAuto, SourceSample, SourceJSON, SourceYAML, SourceSQLite:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	Title      string            `yaml:"title"`
	SavePolicy report.SavePolicy `yaml:"save_policy"`
	Source     SourceConfig      `yaml:"source"`
	TUI        TUIConfig         `yaml:"tui"`
}

// SourceConfig selects and configures the report provider.
type SourceConfig struct {
	Kind  SourceKind `yaml:"kind"`  // auto, sample, json, yaml, sqlite
	Path  string     `yaml:"path"`  // file path or doublestar glob
	Query string     `yaml:"query"` // sqlite only; must select key, name, content
	Watch bool       `yaml:"watch"` // reload file sources when they change
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme        string `yaml:"theme"`
	Markdown     bool   `yaml:"markdown"`      // render read-only content as markdown
	EditorHeight int    `yaml:"editor_height"` // rows of the edit field
	Width        int    `yaml:"width"`         // max cell width, 0 = terminal width
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Title:      DefaultTitle,
		SavePolicy: report.DefaultSavePolicy,
		Source: SourceConfig{
			Kind: SourceAuto,
		},
		TUI: TUIConfig{
			Theme:        styles.DefaultTheme,
			EditorHeight: 4,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults. A relative source path in the file is
// resolved against the file's directory.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			if cfg.Source.Path != "" && !filepath.IsAbs(cfg.Source.Path) {
				cfg.Source.Path = filepath.Join(filepath.Dir(configPath), cfg.Source.Path)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Title == "" {
		c.Title = defaults.Title
	}
	if c.SavePolicy == "" {
		c.SavePolicy = defaults.SavePolicy
	}
	if c.Source.Kind == "" {
		c.Source.Kind = defaults.Source.Kind
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.EditorHeight == 0 {
		c.TUI.EditorHeight = defaults.TUI.EditorHeight
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if !c.SavePolicy.IsValid() {
		return fmt.Errorf("save_policy %q must be one of commit, discard", c.SavePolicy)
	}

	if err := c.Source.Validate(); err != nil {
		return err
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme (%s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	if c.TUI.EditorHeight < 1 {
		return fmt.Errorf("tui.editor_height must be at least 1")
	}

	if c.TUI.Width < 0 {
		return fmt.Errorf("tui.width cannot be negative")
	}

	return nil
}

// Validate checks that a source definition is valid.
func (s *SourceConfig) Validate() error {
	if !s.Kind.IsValid() {
		return fmt.Errorf("source.kind %q is not supported", s.Kind)
	}

	kind := s.ResolvedKind()
	if kind == "" {
		return fmt.Errorf("source.path %q: cannot infer kind from extension", s.Path)
	}

	if kind != SourceSample && s.Path == "" {
		return fmt.Errorf("source.path is required for %s sources", kind)
	}

	if s.Query != "" && kind != SourceSQLite {
		return fmt.Errorf("source.query is only supported for sqlite sources")
	}

	if s.Watch && kind == SourceSample {
		return fmt.Errorf("source.watch requires a file source")
	}

	return nil
}

// ResolvedKind returns the concrete kind, inferring it from the path
// extension when the kind is auto. It returns "" when auto cannot decide.
func (s *SourceConfig) ResolvedKind() SourceKind {
	if s.Kind != SourceAuto && s.Kind != "" {
		return s.Kind
	}

	if s.Path == "" {
		return SourceSample
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".json":
		return SourceJSON
	case ".yaml", ".yml":
		return SourceYAML
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	default:
		return ""
	}
}

// IsGlob reports whether the source path contains glob metacharacters.
func (s *SourceConfig) IsGlob() bool {
	return strings.ContainsAny(s.Path, "*?[{")
}
