package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reportbox/internal/data/provider"
	"github.com/colonyops/reportbox/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	watch bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "watch",
			Aliases:     []string{"w"},
			Usage:       "reload the report source when it changes (overrides source.watch)",
			Sources:     cli.EnvVars("REPORTBOX_WATCH"),
			Destination: &cmd.watch,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive report page (default)",
		UsageText: "reportbox tui [--watch]",
		Flags:     cmd.Flags(),
		Action:    cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Ready(); err != nil {
		return err
	}
	cfg := cmd.flags.Config

	opts := tui.Options{
		Title:        cfg.Title,
		Provider:     cmd.flags.Provider,
		SavePolicy:   cfg.SavePolicy,
		Markdown:     cfg.TUI.Markdown,
		EditorHeight: cfg.TUI.EditorHeight,
		MaxWidth:     cfg.TUI.Width,
	}

	if cfg.Source.Watch || cmd.watch {
		w, err := cmd.startWatcher()
		if err != nil {
			return err
		}
		if w != nil {
			defer func() { _ = w.Close() }()
			opts.Changes = w.Events()
		}
	}

	p := tea.NewProgram(tui.New(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

func (cmd *TuiCmd) startWatcher() (*provider.Watcher, error) {
	watchable, ok := cmd.flags.Provider.(provider.Watchable)
	if !ok {
		log.Warn().Str("provider", cmd.flags.Provider.Name()).Msg("source cannot be watched, live reload disabled")
		return nil, nil
	}

	w, err := provider.NewWatcher(watchable)
	if err != nil {
		return nil, fmt.Errorf("watch source: %w", err)
	}

	log.Info().Str("provider", cmd.flags.Provider.Name()).Msg("watching report source")
	return w, nil
}
