// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/iasql/iasql-cli/internal/domain"
)

var helpTopics = map[string]string{
	"": `# iasql

Manage the modules installed on your IaSQL databases.

| Command | Purpose |
|---|---|
| ` + "`iasql list [--db <db>]`" + ` | List modules and their dependencies |
| ` + "`iasql install [--db <db>] [modules...]`" + ` | Install modules and what they need |
| ` + "`iasql remove [--db <db>] [modules...]`" + ` | Remove modules nothing depends on |
| ` + "`iasql help <topic>`" + ` | modules, install, remove, list, config, exit-codes |

Omit module names to pick them interactively. Add ` + "`--yes`" + ` to skip confirmation.
`,

	"modules": `# Modules

A module is a named unit of functionality installed into an IaSQL database.
Modules declare the modules they depend on.

- A module can only be installed once per database.
- A module cannot be removed while another installed module depends on it.
- Installing a module also installs its dependencies that are not installed yet.
`,

	"install": `# iasql install

    iasql install [--db <db>] [--resolve direct|transitive] [modules...]

Checks that every module exists and is not installed, then adds missing
dependencies to the request.

- **direct** (default): only the dependencies declared by the requested modules.
- **transitive**: the whole dependency chain. Dependency cycles are rejected.

The added modules are printed before the confirmation prompt.
`,

	"remove": `# iasql remove

    iasql remove [--db <db>] [modules...]

Checks that every module exists and is installed, then refuses the removal if a
module that stays installed depends on one being removed. Remove dependents in
the same request:

    iasql remove --db prod aws_ec2 aws_vpc
`,

	"list": `# iasql list

    iasql list [--db <db>]

Without ` + "`--db`" + ` every module known to the server is listed. With ` + "`--db`" + `
only the modules installed on that database. ` + "`--json`" + ` prints structured output.
`,

	"config": `# Configuration

The config file lives at ` + "`$XDG_CONFIG_HOME/iasql/config.toml`" + `:

    [server]
    url = "http://localhost:8088"
    token = ""
    timeout = "30s"

    [defaults]
    db = "prod"

    [modules]
    resolve = "direct"

Flags override environment variables (` + "`IASQL_SERVER`, `IASQL_TOKEN`, `IASQL_DB`" + `),
which override the file.
`,

	"exit-codes": `# Exit codes

| Code | Meaning |
|---|---|
| 0 | Success, or nothing to do |
| 1 | General error |
| 2 | Usage error, or input needed without a terminal |
| 3 | Configuration error |
| 5 | Module or database not found |
| 10 | Module still depended on, or dependency cycle |
| 11 | Server unreachable or failed to list modules |
| 12 | Another iasql command holds the database lock |
| 13 | Timed out |
| 14 | Interrupted |
| 22 | Server failed to install or remove modules |
`,
}

// createHelpCommand creates git-style help command.
func (app *CLI) createHelpCommand() *cli.Command {
	return &cli.Command{
		Name:      "help",
		Usage:     "Show help for commands and topics",
		ArgsUsage: "[topic]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return app.showTopic(cmd.Args().First())
		},
	}
}

// showTopic writes a help topic, rendered as markdown on terminals.
func (app *CLI) showTopic(topic string) error {
	content, ok := helpTopics[topic]
	if !ok {
		return domain.NewExitError(ExitUsageError,
			fmt.Sprintf("no help topic '%s' (available: %s)", topic, strings.Join(topicNames(), ", ")), nil)
	}

	rendered, err := renderMarkdown(content, app.styledOutput())
	if err != nil {
		rendered = content
	}

	_, _ = fmt.Fprint(app.stdout, rendered)

	return nil
}

func (app *CLI) styledOutput() bool {
	if app.plain || app.json {
		return false
	}

	f, ok := app.stdout.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

func renderMarkdown(content string, styled bool) (string, error) {
	if !styled {
		return content, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return renderer.Render(content)
}

func topicNames() []string {
	names := make([]string, 0, len(helpTopics))

	for name := range helpTopics {
		if name != "" {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}
