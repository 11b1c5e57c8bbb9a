// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console formats operator-facing messages and diagnostics.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes status messages to stderr-like output.
// Command results go through domain.OutputPort instead.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	verbose  bool
	json     bool
	plain    bool
}

// NewPrinter creates a printer writing to w. Colors follow w's terminal
// capabilities and NO_COLOR.
func NewPrinter(w io.Writer, verbose, json, plain bool) *Printer {
	return &Printer{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		verbose:  verbose,
		json:     json,
		plain:    plain,
	}
}

// Bold formats text with bold when the output supports it.
func (p *Printer) Bold(text string) string {
	if p.plain {
		return text
	}

	return p.renderer.NewStyle().Bold(true).Render(text)
}

// Red highlights a name in error messages.
func (p *Printer) Red(text string) string {
	if p.plain {
		return text
	}

	return p.renderer.NewStyle().Foreground(lipgloss.Color("1")).Render(text)
}

// Green highlights names in success messages.
func (p *Printer) Green(text string) string {
	if p.plain {
		return text
	}

	return p.renderer.NewStyle().Foreground(lipgloss.Color("2")).Render(text)
}

// Progressf writes progress messages (only if verbose and not JSON/Plain).
func (p *Printer) Progressf(format string, args ...any) {
	if p.verbose && !p.json && !p.plain {
		_, _ = fmt.Fprintf(p.w, format+"\n", args...)
	}
}

// Successf writes success messages (only if not JSON).
func (p *Printer) Successf(format string, args ...any) {
	if p.json {
		return
	}

	p.prefixed("✓", "", lipgloss.Color("2"), format, args...)
}

// Warningf writes warning messages (suppressed in JSON mode).
func (p *Printer) Warningf(format string, args ...any) {
	if p.json {
		return
	}

	p.prefixed("⚠", "warning: ", lipgloss.Color("3"), format, args...)
}

// Errorf writes error messages (always visible).
func (p *Printer) Errorf(format string, args ...any) {
	p.prefixed("✗", "error: ", lipgloss.Color("1"), format, args...)
}

func (p *Printer) prefixed(symbol, plainPrefix string, color lipgloss.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	if p.plain {
		_, _ = fmt.Fprintln(p.w, plainPrefix+msg)
		return
	}

	prefix := p.renderer.NewStyle().Foreground(color).Bold(true).Render(symbol)
	_, _ = fmt.Fprintln(p.w, prefix+" "+msg)
}
