// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the iasql command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/iasql/iasql-cli/internal/adapters/network"
	"github.com/iasql/iasql-cli/internal/adapters/prompt"
	"github.com/iasql/iasql-cli/internal/application"
	"github.com/iasql/iasql-cli/internal/cli/handlers"
	"github.com/iasql/iasql-cli/internal/config"
	"github.com/iasql/iasql-cli/internal/console"
	"github.com/iasql/iasql-cli/internal/domain"
	"github.com/iasql/iasql-cli/internal/platform"
)

// Exit codes follow standard Unix conventions for better scripting support.
// Range 0-125 are safe to use (126+ have special meaning in shells).
const (
	ExitSuccess       = 0 // Operation completed successfully, or nothing to do
	ExitGeneralError  = 1 // Generic failure (catch-all)
	ExitUsageError    = 2 // Invalid command line usage
	ExitConfigError   = 3 // Configuration file error
	ExitNotFoundError = 5 // Module or database not found

	ExitDependencyError = 10 // Module still depended on, or dependency cycle
	ExitNetworkError    = 11 // iasql service unreachable or failed to answer
	ExitSystemError     = 12 // Local lock or filesystem failure
	ExitTimeoutError    = 13 // Operation timed out
	ExitInterruptError  = 14 // User interrupted (Ctrl+C)

	ExitModuleError = 22 // Module installation/removal failed at the service
)

// version is set at build time with -ldflags "-X .../internal/cli.version=...".
var version = "dev"

// CLI wires global flags, configuration and adapters into the command tree.
type CLI struct {
	app *cli.Command

	stdout   io.Writer
	stderr   io.Writer
	selector domain.Selector
	lockDir  string

	verbose    bool
	json       bool
	quiet      bool
	plain      bool
	yes        bool
	timeout    time.Duration
	server     string
	token      string
	configPath string

	base   *handlers.BaseHandler
	logger *log.Logger
}

// Option customizes a CLI.
type Option func(*CLI)

// WithOutput redirects results and status messages.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(app *CLI) {
		app.stdout = stdout
		app.stderr = stderr
	}
}

// WithSelector replaces the terminal prompts.
func WithSelector(selector domain.Selector) Option {
	return func(app *CLI) {
		app.selector = selector
	}
}

// WithLockDir sets where per-database lock files live.
func WithLockDir(dir string) Option {
	return func(app *CLI) {
		app.lockDir = dir
	}
}

// NewCLI creates the iasql command tree.
func NewCLI(opts ...Option) *CLI {
	app := &CLI{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	app.app = &cli.Command{
		Name:    "iasql",
		Usage:   "Manage the modules installed on your IaSQL databases",
		Version: version,
		Suggest: true,
		Description: `Install and remove IaSQL modules on a database, keeping module dependencies consistent.

ESSENTIAL COMMANDS:
  list                         List available modules
  install --db <db> [modules]  Install modules and the modules they depend on
  remove --db <db> [modules]   Remove modules nothing else depends on

Run a command without module names to pick them interactively.

HELP:
  iasql help <topic>           modules, install, remove, list, config, exit-codes`,
		Writer:          app.stdout,
		ErrWriter:       app.stderr,
		HideHelpCommand: true,
		HideVersion:     true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "server",
				Aliases:     []string{"s"},
				Usage:       "iasql server URL",
				Sources:     cli.EnvVars("IASQL_SERVER"),
				Destination: &app.server,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "bearer token for the iasql server",
				Sources:     cli.EnvVars("IASQL_TOKEN"),
				Destination: &app.token,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "config file (default $XDG_CONFIG_HOME/iasql/config.toml)",
				Sources:     cli.EnvVars("IASQL_CONFIG"),
				Destination: &app.configPath,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress and request logs on stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Usage:       "suppress non-essential output",
				Aliases:     []string{"q"},
				Destination: &app.quiet,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip confirmation prompts",
				Destination: &app.yes,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "deadline for each round of server calls, prompts excluded (0 = none)",
				Destination: &app.timeout,
			},
		},
		Before:         app.initConfig,
		Action:         app.defaultAction,
		Commands:       app.createAllCommands(),
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	return app
}

// Run executes the CLI application. Every returned error is a *domain.ExitError.
func (app *CLI) Run(ctx context.Context, args []string) error {
	err := app.app.Run(ctx, args)
	if err == nil {
		return nil
	}

	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	// Remaining errors come from flag parsing.
	return domain.NewExitError(ExitUsageError, err.Error(), err)
}

// Printer returns the status printer configured from the global flags.
func (app *CLI) Printer() *console.Printer {
	if app.base != nil {
		return app.base.Printer
	}

	return console.NewPrinter(app.stderr, false, false, false)
}

// ReportError prints the message of exitErr once, highlighting the module
// or database it names.
func (app *CLI) ReportError(exitErr *domain.ExitError) {
	if exitErr.Message == "" {
		return
	}

	printer := app.Printer()
	printer.Errorf("%s", highlightNames(exitErr.Message, offendingNames(exitErr), printer.Red))
}

// offendingNames returns the module or database names an error is about.
func offendingNames(err error) []string {
	var (
		moduleErr *domain.ModuleError
		dbErr     *domain.DatabaseError
		depErr    *domain.DependencyError
	)

	switch {
	case errors.As(err, &moduleErr):
		return []string{moduleErr.Name}
	case errors.As(err, &dbErr):
		return []string{dbErr.Alias}
	case errors.As(err, &depErr):
		return []string{depErr.Dependency, depErr.Dependent}
	default:
		return nil
	}
}

// highlightNames styles the first whole-word occurrence of each name.
func highlightNames(message string, names []string, style func(string) string) string {
	words := strings.Split(message, " ")

	for _, name := range names {
		for i, word := range words {
			if word == name {
				words[i] = style(name)
				break
			}
		}
	}

	return strings.Join(words, " ")
}

func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createListCommand(),
		app.createInstallCommand(),
		app.createRemoveCommand(),
		app.createHelpCommand(),
		app.createVersionCommand(),
	}
}

// initConfig validates global flags and builds the output settings.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	app.base = handlers.NewBaseHandler(app.stdout, app.stderr, app.verbose, app.json, app.quiet, app.plain)
	app.logger = console.NewLogger(app.stderr, app.verbose)

	return ctx, nil
}

func (app *CLI) defaultAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return domain.NewExitError(ExitUsageError,
			fmt.Sprintf("'%s' is not a command. Run 'iasql --help' to see available commands.", cmd.Args().First()), nil)
	}

	return app.showTopic("")
}

// loadConfig layers the config file, environment and global flags.
func (app *CLI) loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := app.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, domain.NewExitError(ExitConfigError, err.Error(), err)
	}

	if cmd.IsSet("server") {
		cfg.Server.URL = app.server
	}

	if cmd.IsSet("token") {
		cfg.Server.Token = app.token
	}

	return cfg, nil
}

// moduleHandler builds the module service for one command.
func (app *CLI) moduleHandler(cmd *cli.Command) (*handlers.ModuleHandler, error) {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	strategy := cfg.Modules.ResolveStrategy()

	if cmd.IsSet("resolve") {
		strategy, err = domain.ParseResolveStrategy(cmd.String("resolve"))
		if err != nil {
			return nil, domain.NewExitError(ExitUsageError, err.Error(), err)
		}
	}

	client := network.NewHTTPClient(network.Options{
		BaseURL: cfg.Server.URL,
		Token:   cfg.Server.Token,
		Timeout: cfg.Server.RequestTimeout(),
		Logger:  app.logger,
	})

	selector := app.selector
	if selector == nil {
		selector = prompt.NewHuhSelector(app.plain)
	}

	service := application.NewModuleService(application.ModuleServiceOptions{
		Catalog:   client,
		Databases: client,
		Executor:  client,
		Selector:  selector,
		Locker:    platform.NewFileLocker(app.lockDir),
		Logger:    app.logger,
		Strategy:  strategy,
		DefaultDB: cfg.Defaults.DB,
		AssumeYes: app.yes,
		Timeout:   app.timeout,
	})

	app.logger.Debug("config", "server", cfg.Server.URL, "resolve", strategy, "default_db", cfg.Defaults.DB)

	return handlers.NewModuleHandler(app.base, service), nil
}

// finish turns a command error into its exit code. Benign aborts are
// reported as warnings and succeed.
func (app *CLI) finish(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var abort *domain.AbortError
	if errors.As(err, &abort) {
		app.base.Warn(abort.Reason)
		return nil
	}

	if app.json {
		_ = app.base.Output.Error(err.Error())
	}

	return domain.NewExitError(exitCode(err), domain.FormatErrorMessage(err, app.verbose), err)
}
