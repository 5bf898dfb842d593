package initcmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/reportbox/internal/core/config"
	"github.com/colonyops/reportbox/internal/core/report"
)

const configHeader = "# reportbox configuration\n# Run 'reportbox config validate' after editing.\n\n"

// ConfigOptions are the answers collected by the wizard.
type ConfigOptions struct {
	Title      string
	SourcePath string // empty for the built-in sample
	Watch      bool
	SavePolicy report.SavePolicy
	Theme      string
	Markdown   bool
}

// DefaultConfigOptions mirrors config.DefaultConfig.
func DefaultConfigOptions() ConfigOptions {
	def := config.DefaultConfig()
	return ConfigOptions{
		Title:      def.Title,
		SavePolicy: def.SavePolicy,
		Theme:      def.TUI.Theme,
		Markdown:   def.TUI.Markdown,
	}
}

// GenerateConfig builds a config from the wizard answers. The source kind is
// left as auto so it follows the path's extension.
func GenerateConfig(opts ConfigOptions) config.Config {
	cfg := config.DefaultConfig()

	if opts.Title != "" {
		cfg.Title = opts.Title
	}
	if opts.SavePolicy != "" {
		cfg.SavePolicy = opts.SavePolicy
	}
	if opts.Theme != "" {
		cfg.TUI.Theme = opts.Theme
	}
	cfg.TUI.Markdown = opts.Markdown

	cfg.Source.Path = opts.SourcePath
	cfg.Source.Watch = opts.Watch && opts.SourcePath != ""

	return cfg
}

// WriteConfig validates cfg and writes it as YAML to path, creating parent
// directories as needed.
func WriteConfig(cfg config.Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
