// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iasql/iasql-cli/internal/domain"
)

func nonInteractive() *HuhSelector {
	return &HuhSelector{
		input:       &bytes.Buffer{},
		output:      &bytes.Buffer{},
		interactive: func() bool { return false },
	}
}

func TestHuhSelector_NonInteractive(t *testing.T) {
	t.Parallel()

	selector := nonInteractive()
	ctx := context.Background()

	_, err := selector.SelectMany(ctx, "Pick modules", []string{"aws_vpc"})
	require.ErrorIs(t, err, domain.ErrNotInteractive)

	_, err = selector.SelectOne(ctx, "Pick IaSQL db", []string{"prod"}, 0)
	require.ErrorIs(t, err, domain.ErrNotInteractive)

	_, err = selector.Confirm(ctx, "Press enter to confirm removal", true)
	require.ErrorIs(t, err, domain.ErrNotInteractive)
}

func TestHuhSelector_SelectOneWithoutOptions(t *testing.T) {
	t.Parallel()

	_, err := nonInteractive().SelectOne(context.Background(), "Pick IaSQL db", nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no options")
}

func TestIndexedOptions(t *testing.T) {
	t.Parallel()

	options := indexedOptions([]string{"aws_account", "aws_vpc"})

	require.Len(t, options, 2)
	assert.Equal(t, "aws_account", options[0].Key)
	assert.Equal(t, 0, options[0].Value)
	assert.Equal(t, "aws_vpc", options[1].Key)
	assert.Equal(t, 1, options[1].Value)
}

func TestErrInterruptedIsAbort(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.IsAbort(ErrInterrupted))
}

// scripted answers prompts line by line. Every huh prompt starts a new
// scanner, so input is fed one byte at a time to keep later lines unread.
func scripted(lines ...string) *HuhSelector {
	input := iotest.OneByteReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))

	return NewHuhSelectorWithIO(input, &bytes.Buffer{})
}

var modules = []string{"aws_account", "aws_vpc", "aws_ec2"}

func TestHuhSelector_SelectMany(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []int
	}{
		{"picks are returned in option order", []string{"3", "1", "0"}, []int{0, 2}},
		{"toggling twice deselects", []string{"2", "2", "0"}, []int{}},
		{"submit without picks", []string{"0"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			picked, err := scripted(tt.input...).SelectMany(context.Background(), "Pick modules", modules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, picked)
		})
	}
}

func TestHuhSelector_SelectOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		defaultIndex int
		want         int
	}{
		{"explicit choice", "3", 0, 2},
		{"empty answer keeps the default", "", 1, 1},
		{"out of range default falls back to the first option", "", 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			picked, err := scripted(tt.input).SelectOne(context.Background(), "Pick IaSQL db", modules, tt.defaultIndex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, picked)
		})
	}
}

func TestHuhSelector_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		defaultValue bool
		want         bool
	}{
		{"enter accepts the default yes", "", true, true},
		{"enter accepts the default no", "", false, false},
		{"explicit no", "n", true, false},
		{"explicit yes", "yes", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := scripted(tt.input).Confirm(context.Background(), "Press enter to confirm removal", tt.defaultValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestFormError(t *testing.T) {
	t.Parallel()

	require.NoError(t, formError(nil))

	aborted := formError(huh.ErrUserAborted)
	require.ErrorIs(t, aborted, ErrInterrupted)
	assert.True(t, domain.IsAbort(aborted))

	cause := errors.New("terminal closed")
	failed := formError(cause)
	require.ErrorIs(t, failed, cause)
	assert.False(t, domain.IsAbort(failed))
}
