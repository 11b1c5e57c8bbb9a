// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for iasql.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iasql/iasql-cli/internal/cli"
	"github.com/iasql/iasql-cli/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewCLI()

	err := app.Run(ctx, os.Args)
	if err == nil {
		return cli.ExitSuccess
	}

	// Run only returns ExitErrors; the message goes to stderr once.
	exitErr := &domain.ExitError{}
	if errors.As(err, &exitErr) {
		app.ReportError(exitErr)

		return exitErr.Code
	}

	fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)

	return cli.ExitGeneralError
}
