package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/data/provider"
	"github.com/colonyops/reportbox/pkg/iojson"
)

const lsContentWidth = 48

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	input      iojson.FileReader[[]report.Record]
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the reports from the configured source",
		UsageText: "reportbox ls [--json] [-f file]",
		Description: `Displays a table of reports with their position, identity key, name and the
first line of their content.

Use --json for one JSON object per line. Use -f to list a JSON file instead
of the configured source (-f - reads stdin).`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	p, err := cmd.source()
	if err != nil {
		return err
	}

	records, err := provider.Load(ctx, p)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	out := c.Root().Writer
	keys := report.Keys(records)

	if cmd.jsonOutput {
		items := make([]reportInfo, len(records))
		for i, r := range records {
			items[i] = reportInfo{Index: i, Key: keys[i], ID: r.Key, Name: r.Name, Content: r.Content}
		}
		return iojson.WriteLines(out, items)
	}

	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "No reports found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tKEY\tNAME\tCONTENT")
	for i, r := range records {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, keys[i], r.Name, contentPreview(r.Content))
	}
	return w.Flush()
}

func (cmd *LsCmd) source() (provider.Provider, error) {
	if cmd.input.Path() == "" {
		if err := cmd.flags.Ready(); err != nil {
			return nil, err
		}
		return cmd.flags.Provider, nil
	}

	rc, err := cmd.input.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	records, err := provider.Decode(provider.FormatJSON, rc)
	if err != nil {
		return nil, err
	}
	return provider.Static(records), nil
}

// reportInfo is the JSON output format for reportbox ls --json.
type reportInfo struct {
	Index   int    `json:"index"`
	Key     string `json:"key"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// contentPreview returns the first line of content, truncated for a table
// cell.
func contentPreview(content string) string {
	line, _, more := strings.Cut(strings.TrimSpace(content), "\n")
	if more {
		line += " …"
	}
	return ansi.Truncate(line, lsContentWidth, "…")
}
