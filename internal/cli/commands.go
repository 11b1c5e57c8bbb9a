// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/iasql/iasql-cli/internal/domain"
)

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "database alias (default from config, otherwise picked interactively)",
	}
}

// createListCommand creates the list command.
func (app *CLI) createListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all modules, or the modules installed on a database",
		Description: `Without --db every module known to the server is listed.

Examples:
  iasql list                 # All modules and their dependencies
  iasql list --db prod       # Modules installed on prod
  iasql --json list          # Structured output`,
		Flags:  []cli.Flag{dbFlag()},
		Action: app.runList,
	}
}

// createInstallCommand creates the install command.
func (app *CLI) createInstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install modules and the modules they depend on",
		ArgsUsage: "[modules...]",
		Description: `Installs modules on a database. Declared dependencies that are not installed
are added to the request and reported before confirmation.

Examples:
  iasql install --db prod aws_ec2                        # aws_ec2 plus its direct dependencies
  iasql install --db prod --resolve transitive aws_ec2   # Follow the whole dependency chain
  iasql --yes install --db prod aws_ecr                  # No confirmation prompt
  iasql install                                          # Pick db and modules interactively`,
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{
				Name:  "resolve",
				Usage: "dependency resolution: " + string(domain.ResolveDirect) + " or " + string(domain.ResolveTransitive),
			},
		},
		Action: app.runInstall,
	}
}

// createRemoveCommand creates the remove command.
func (app *CLI) createRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm", "uninstall"},
		Usage:     "Remove modules that no remaining module depends on",
		ArgsUsage: "[modules...]",
		Description: `Removes installed modules from a database. Removal is refused while another
installed module still depends on one of them; remove both in one request.

Examples:
  iasql remove --db prod aws_ec2
  iasql remove --db prod aws_ec2 aws_vpc
  iasql remove                            # Pick db and modules interactively`,
		Flags:  []cli.Flag{dbFlag()},
		Action: app.runRemove,
	}
}

// createVersionCommand creates the version command.
func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			if app.json {
				return app.base.Output.Success("", map[string]string{"name": "iasql", "version": version})
			}

			return app.base.Output.Success("iasql "+version, nil)
		},
	}
}

func (app *CLI) runList(ctx context.Context, cmd *cli.Command) error {
	handler, err := app.moduleHandler(cmd)
	if err != nil {
		return app.finish(err)
	}

	return app.finish(handler.List(ctx, cmd.String("db")))
}

func (app *CLI) runInstall(ctx context.Context, cmd *cli.Command) error {
	handler, err := app.moduleHandler(cmd)
	if err != nil {
		return app.finish(err)
	}

	return app.finish(handler.Install(ctx, cmd.String("db"), cmd.Args().Slice()))
}

func (app *CLI) runRemove(ctx context.Context, cmd *cli.Command) error {
	handler, err := app.moduleHandler(cmd)
	if err != nil {
		return app.finish(err)
	}

	return app.finish(handler.Remove(ctx, cmd.String("db"), cmd.Args().Slice()))
}
