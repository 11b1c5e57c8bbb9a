// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package console

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates the diagnostic logger. Verbose mode enables debug
// records with timestamps; otherwise only warnings and errors are written.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "iasql",
		Level:           level,
		ReportTimestamp: verbose,
	})
}
