// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package handlers implements CLI command execution logic.
package handlers

import (
	"io"

	cliAdapter "github.com/iasql/iasql-cli/internal/adapters/cli"
	"github.com/iasql/iasql-cli/internal/console"
	"github.com/iasql/iasql-cli/internal/domain"
)

// BaseHandler provides common functionality for all command handlers.
type BaseHandler struct {
	Verbose bool
	JSON    bool
	Quiet   bool
	Plain   bool
	Output  domain.OutputPort
	Printer *console.Printer
}

// NewBaseHandler creates a new base handler with the given configuration.
// Results go to stdout, status messages to stderr.
func NewBaseHandler(stdout, stderr io.Writer, verbose, json, quiet, plain bool) *BaseHandler {
	return &BaseHandler{
		Verbose: verbose,
		JSON:    json,
		Quiet:   quiet,
		Plain:   plain,
		Output:  cliAdapter.OutputFromFlags(stdout, json, plain, quiet),
		Printer: console.NewPrinter(stderr, verbose, json, plain),
	}
}

// Successf reports a success unless quiet.
func (h *BaseHandler) Successf(format string, args ...any) {
	if !h.Quiet {
		h.Printer.Successf(format, args...)
	}
}

// Warn reports a benign abort. Warnings stay visible in quiet mode; in JSON
// mode the reason is emitted as an info record on stdout.
func (h *BaseHandler) Warn(reason string) {
	if h.JSON {
		_ = h.Output.Info(reason)
		return
	}

	h.Printer.Warningf("%s", h.Printer.Bold(reason))
}
