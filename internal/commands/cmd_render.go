package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reportbox/internal/data/provider"
	"github.com/colonyops/reportbox/internal/tui"
)

type RenderCmd struct {
	flags *Flags

	// flags
	plain bool
	width int
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Print the report page once and exit",
		UsageText: "reportbox render [--plain] [--width n]",
		Description: `Renders the title and one box per report, every box in view mode, and
writes the result to stdout. Use --plain to strip colors and styling.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "strip ANSI styling",
				Destination: &cmd.plain,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "page width in columns (0 uses tui.width or 80)",
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.Ready(); err != nil {
		return err
	}
	cfg := cmd.flags.Config

	records, err := provider.Load(ctx, cmd.flags.Provider)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	maxWidth := cfg.TUI.Width
	if cmd.width > 0 {
		maxWidth = cmd.width
	}

	m := tui.New(tui.Options{
		Title:      cfg.Title,
		SavePolicy: cfg.SavePolicy,
		Markdown:   cfg.TUI.Markdown,
		MaxWidth:   maxWidth,
	})
	m.Apply(records)

	page := m.Page()
	if cmd.plain {
		page = ansi.Strip(page)
	}

	_, err = fmt.Fprintln(c.Root().Writer, page)
	return err
}
