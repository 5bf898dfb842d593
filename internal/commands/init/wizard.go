// Package initcmd implements the interactive setup wizard.
package initcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/reportbox/internal/core/config"
	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/core/styles"
	"github.com/colonyops/reportbox/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	Yes        bool // skip prompts, use defaults
	Force      bool // overwrite existing config
	Source     string
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	answers := DefaultConfigOptions()
	answers.SourcePath = expandHome(w.opts.Source)

	if !w.opts.Yes {
		var err error
		answers, err = w.prompt(answers)
		if err != nil {
			return err
		}
	}

	if ConfigExists(w.opts.ConfigPath) {
		backupPath, err := BackupConfig(w.opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		if backupPath != "" {
			p.Successf("Backed up config to: %s", backupPath)
		}
	}

	cfg := GenerateConfig(answers)
	if err := WriteConfig(cfg, w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	if cfg.Source.Path == "" {
		p.Infof("No source configured, the built-in sample reports will be shown")
	} else if err := cfg.ValidateDeep(w.opts.ConfigPath); err != nil {
		p.Warnf("Source is not usable yet: %v", err)
	}

	p.Printf("")
	p.Section("Next Steps")
	p.Printf("  1. Run 'reportbox ls' to check the configured reports")
	p.Printf("  2. Run 'reportbox' to open the report page")

	return nil
}

func (w *Wizard) prompt(answers ConfigOptions) (ConfigOptions, error) {
	policy := string(answers.SavePolicy)

	themeOpts := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Page title").
				Value(&answers.Title),
			huh.NewInput().
				Title("Report source").
				Description("JSON, YAML or SQLite file, or a glob such as reports/**/*.yaml.\nLeave empty for the built-in sample.").
				Validate(validateSourcePath).
				Value(&answers.SourcePath),
			huh.NewConfirm().
				Title("Reload when the source changes?").
				Value(&answers.Watch),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("When a report is saved").
				Options(
					huh.NewOption("keep the edited text on screen", string(report.SaveCommit)),
					huh.NewOption("discard the edit and show the source text", string(report.SaveDiscard)),
				).
				Value(&policy),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&answers.Theme),
			huh.NewConfirm().
				Title("Render report content as markdown?").
				Value(&answers.Markdown),
		),
	)

	if err := form.Run(); err != nil {
		return answers, err
	}

	answers.SavePolicy = report.SavePolicy(policy)
	answers.SourcePath = expandHome(strings.TrimSpace(answers.SourcePath))
	return answers, nil
}

// validateSourcePath accepts an empty path or one whose kind can be
// inferred from its extension.
func validateSourcePath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	src := config.SourceConfig{Kind: config.SourceAuto, Path: s}
	return src.Validate()
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
