// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package prompt implements domain.Selector with charmbracelet/huh forms.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/iasql/iasql-cli/internal/domain"
)

// ErrInterrupted is returned when the operator cancels a form with Ctrl+C.
var ErrInterrupted = domain.NewAbort("Interrupted")

// HuhSelector asks questions on the terminal.
type HuhSelector struct {
	input       io.Reader
	output      io.Writer
	interactive func() bool
	accessible  bool
}

// NewHuhSelector creates a selector bound to stdin/stdout.
func NewHuhSelector(accessible bool) *HuhSelector {
	return &HuhSelector{
		input:  os.Stdin,
		output: os.Stdout,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
		},
		accessible: accessible,
	}
}

// NewHuhSelectorWithIO creates a selector reading answers from r.
// Forms run in accessible mode so plain line input works without a TTY.
func NewHuhSelectorWithIO(r io.Reader, w io.Writer) *HuhSelector {
	return &HuhSelector{
		input:       r,
		output:      w,
		interactive: func() bool { return true },
		accessible:  true,
	}
}

// SelectMany shows a multi-select over options and returns the picked indices.
func (s *HuhSelector) SelectMany(ctx context.Context, prompt string, options []string) ([]int, error) {
	var picked []int

	field := huh.NewMultiSelect[int]().
		Title(prompt).
		Description("Use arrows to move, space to (de)select and enter to submit").
		Options(indexedOptions(options)...).
		Value(&picked)

	if err := s.run(ctx, field); err != nil {
		return nil, err
	}

	return picked, nil
}

// SelectOne shows a single-choice list and returns the picked index.
func (s *HuhSelector) SelectOne(ctx context.Context, prompt string, options []string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%s: no options", prompt)
	}

	picked := defaultIndex
	if picked < 0 || picked >= len(options) {
		picked = 0
	}

	field := huh.NewSelect[int]().
		Title(prompt).
		Options(indexedOptions(options)...).
		Value(&picked)

	if err := s.run(ctx, field); err != nil {
		return 0, err
	}

	return picked, nil
}

// Confirm asks a yes/no question.
func (s *HuhSelector) Confirm(ctx context.Context, prompt string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	field := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := s.run(ctx, field); err != nil {
		return false, err
	}

	return confirmed, nil
}

func (s *HuhSelector) run(ctx context.Context, field huh.Field) error {
	if !s.interactive() {
		return domain.ErrNotInteractive
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithInput(s.input).
		WithOutput(s.output).
		WithAccessible(s.accessible)

	return formError(form.RunWithContext(ctx))
}

// formError maps huh results onto domain errors.
func formError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted):
		return ErrInterrupted
	default:
		return fmt.Errorf("prompt failed: %w", err)
	}
}

func indexedOptions(labels []string) []huh.Option[int] {
	options := make([]huh.Option[int], len(labels))
	for i, label := range labels {
		options[i] = huh.NewOption(label, i)
	}

	return options
}
