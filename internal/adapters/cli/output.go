// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/iasql/iasql-cli/internal/domain"
)

// MaxTableWidth caps rendered tables, borders included.
const MaxTableWidth = 140

// OutputAdapter implements domain.OutputPort for CLI output.
type OutputAdapter struct {
	writer io.Writer
	format OutputFormat
	quiet  bool
}

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs human-readable text with bordered tables.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
	// PlainFormat outputs tab-separated text for scripts.
	PlainFormat
)

// NewOutputAdapterWithWriter creates an output adapter writing to writer.
func NewOutputAdapterWithWriter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Success outputs a success message with optional structured data.
func (o *OutputAdapter) Success(message string, data any) error {
	if o.format == JSONFormat && data != nil {
		return o.outputJSON(data)
	}

	if message != "" && !o.quiet {
		_, _ = fmt.Fprintln(o.writer, message)
	}

	return nil
}

// Error outputs an error message.
func (o *OutputAdapter) Error(message string) error {
	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"error": message})
	}

	_, _ = fmt.Fprintf(o.writer, "Error: %s\n", message)

	return nil
}

// Info outputs an informational message.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"info": message})
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// Table outputs tabular data.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	switch o.format {
	case JSONFormat:
		return o.outputJSON(map[string]any{
			"headers": headers,
			"rows":    rows,
		})
	case PlainFormat:
		return o.plainTable(headers, rows)
	default:
		_, err := fmt.Fprintln(o.writer, RenderTable(headers, rows, MaxTableWidth))
		return err
	}
}

// IsQuiet returns true if output should be suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

// RenderTable draws a bordered table no wider than maxWidth. Cells of the
// last column are truncated when the table would not fit.
func RenderTable(headers []string, rows [][]string, maxWidth int) string {
	if len(headers) > 0 {
		rows = truncateLastColumn(headers, rows, maxWidth)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	return t.Render()
}

// truncateLastColumn shortens last-column cells so each row fits in maxWidth.
// Every column costs its content width plus two padding cells and one border.
func truncateLastColumn(headers []string, rows [][]string, maxWidth int) [][]string {
	last := len(headers) - 1

	fixed := 1 // closing border
	for col := range last {
		width := runewidth.StringWidth(headers[col])
		for _, row := range rows {
			if col < len(row) {
				width = max(width, runewidth.StringWidth(row[col]))
			}
		}

		fixed += width + 3
	}

	room := maxWidth - fixed - 3
	if room < runewidth.StringWidth(headers[last]) {
		room = runewidth.StringWidth(headers[last])
	}

	out := make([][]string, len(rows))

	for i, row := range rows {
		out[i] = row
		if last < len(row) && runewidth.StringWidth(row[last]) > room {
			clone := append([]string(nil), row...)
			clone[last] = runewidth.Truncate(row[last], room, "...")
			out[i] = clone
		}
	}

	return out
}

func (o *OutputAdapter) plainTable(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// outputJSON outputs data as JSON.
func (o *OutputAdapter) outputJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

// OutputFromFlags creates an OutputAdapter from global CLI flags.
func OutputFromFlags(writer io.Writer, jsonFlag, plainFlag, quietFlag bool) domain.OutputPort {
	format := TextFormat

	switch {
	case jsonFlag:
		format = JSONFormat
	case plainFlag:
		format = PlainFormat
	}

	return NewOutputAdapterWithWriter(writer, format, quietFlag)
}
