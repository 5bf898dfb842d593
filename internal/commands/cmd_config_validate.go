package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reportbox/internal/data/provider"
	"github.com/colonyops/reportbox/internal/printer"
	"github.com/colonyops/reportbox/pkg/iojson"
)

// ErrInvalidConfig is returned by config validate when problems were found.
var ErrInvalidConfig = errors.New("configuration is invalid")

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate configuration file",
				UsageText: "reportbox config validate [options]",
				Description: `Validates the configuration file and the report source it points at: the
file parses, the source path exists or the glob matches files, and the source
loads records that satisfy the record contract.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is one problem found by validation.
type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	issues := cmd.validate(ctx)

	if cmd.format == "json" {
		out := struct {
			Valid  bool              `json:"valid"`
			Config string            `json:"config"`
			Errors []validationIssue `json:"errors,omitempty"`
		}{
			Valid:  len(issues) == 0,
			Config: cmd.flags.ConfigPath,
			Errors: issues,
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
	} else {
		p := printer.Ctx(ctx)
		for _, issue := range issues {
			if issue.Field != "" {
				p.Errorf("%s: %s", issue.Field, issue.Message)
			} else {
				p.Errorf("%s", issue.Message)
			}
		}
		if len(issues) == 0 {
			p.Successf("Configuration is valid")
		} else {
			p.Printf("")
			p.Errorf("%d error(s) found", len(issues))
		}
	}

	if len(issues) > 0 {
		return ErrInvalidConfig
	}
	return nil
}

func (cmd *ConfigValidateCmd) validate(ctx context.Context) []validationIssue {
	if cmd.flags.ConfigErr != nil {
		return []validationIssue{{Field: "config_file", Message: cmd.flags.ConfigErr.Error()}}
	}

	if err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		return toIssues(err)
	}

	if err := cmd.flags.Ready(); err != nil {
		return []validationIssue{{Field: "source", Message: err.Error()}}
	}

	if _, err := provider.Load(ctx, cmd.flags.Provider); err != nil {
		return toIssues(err)
	}

	return nil
}

func toIssues(err error) []validationIssue {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fmt.Sprint(fe.Err)})
	}
	return issues
}
