package initcmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reportbox/internal/core/config"
	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/printer"
)

func TestGenerateConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := GenerateConfig(DefaultConfigOptions())

		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("watch needs a source", func(t *testing.T) {
		opts := DefaultConfigOptions()
		opts.Watch = true

		cfg := GenerateConfig(opts)
		assert.False(t, cfg.Source.Watch)
		require.NoError(t, cfg.Validate())
	})

	t.Run("answers are applied", func(t *testing.T) {
		cfg := GenerateConfig(ConfigOptions{
			Title:      "Class 8",
			SourcePath: "reports.yaml",
			Watch:      true,
			SavePolicy: report.SaveDiscard,
			Theme:      "gruvbox",
			Markdown:   true,
		})

		assert.Equal(t, "Class 8", cfg.Title)
		assert.Equal(t, "reports.yaml", cfg.Source.Path)
		assert.True(t, cfg.Source.Watch)
		assert.Equal(t, report.SaveDiscard, cfg.SavePolicy)
		assert.Equal(t, "gruvbox", cfg.TUI.Theme)
		assert.True(t, cfg.TUI.Markdown)
	})
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	want := GenerateConfig(ConfigOptions{
		Title:      "Class 8",
		SourcePath: filepath.Join(dir, "reports.json"),
		SavePolicy: report.SaveDiscard,
		Theme:      "catppuccin",
	})
	require.NoError(t, WriteConfig(want, path))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestWriteConfig_RejectsInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TUI.Theme = "nope"

	err := WriteConfig(cfg, filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
}

func TestBackupConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	backup, err := BackupConfig(path)
	require.NoError(t, err)
	assert.Empty(t, backup)

	require.NoError(t, os.WriteFile(path, []byte("title: old\n"), 0o644))
	backup, err = BackupConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "title: old\n", string(data))
}

func TestWizard_Yes(t *testing.T) {
	var out bytes.Buffer
	ctx := printer.NewContext(context.Background(), printer.New(&out, &out))

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	t.Run("writes defaults", func(t *testing.T) {
		require.NoError(t, NewWizard(WizardOptions{ConfigPath: path, Yes: true}).Run(ctx))
		assert.True(t, ConfigExists(path))
		assert.Contains(t, out.String(), "Created config")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		err := NewWizard(WizardOptions{ConfigPath: path, Yes: true}).Run(ctx)
		require.Error(t, err)
	})

	t.Run("force backs up", func(t *testing.T) {
		require.NoError(t, NewWizard(WizardOptions{ConfigPath: path, Yes: true, Force: true}).Run(ctx))
		assert.True(t, ConfigExists(path+".bak"))
	})
}

func TestValidateSourcePath(t *testing.T) {
	assert.NoError(t, validateSourcePath(""))
	assert.NoError(t, validateSourcePath("reports/**/*.yaml"))
	assert.NoError(t, validateSourcePath("reports.db"))
	assert.Error(t, validateSourcePath("reports.txt"))
}
