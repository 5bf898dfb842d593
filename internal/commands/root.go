package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewRoot builds the reportbox command tree: global flags, every
// subcommand and the TUI as the default action. Hooks are left to the
// caller.
func NewRoot(flags *Flags, version string) *cli.Command {
	root := &cli.Command{
		Name:      appName,
		Usage:     "View and edit a list of reports in the terminal",
		UsageText: "reportbox [global options] command [command options]",
		Description: `reportbox shows a page of reports, one box per report. Each box shows its
content read-only until its Edit control is pressed, then turns into an edit
field until Save is pressed. Boxes are independent of each other.

Reports come from the built-in sample, JSON or YAML files (single files or
globs) or a SQLite query. Edits are never written back to the source.

Run 'reportbox' with no arguments to open the report page.
Run 'reportbox init' to create a configuration.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("REPORTBOX_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, - for stderr, empty to disable",
				Sources:     cli.EnvVars("REPORTBOX_LOG_FILE"),
				Value:       DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("REPORTBOX_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
	}

	tuiCmd := NewTuiCmd(flags)

	root = tuiCmd.Register(root)
	root = NewLsCmd(flags).Register(root)
	root = NewRenderCmd(flags).Register(root)
	root = NewInitCmd(flags).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	// TUI flags also work without the subcommand name
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'reportbox --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}
