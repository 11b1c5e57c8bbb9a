// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/iasql/iasql-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	transport := errors.New("connection refused")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "module not found",
			err:      &domain.ModuleError{Kind: domain.ErrModuleNotFound, Name: "aws_foo"},
			sentinel: domain.ErrModuleNotFound,
			message:  "no module with the name aws_foo exists",
		},
		{
			name:     "module not installed",
			err:      &domain.ModuleError{Kind: domain.ErrModuleNotInstalled, Name: "aws_vpc"},
			sentinel: domain.ErrModuleNotInstalled,
			message:  "module aws_vpc is not installed",
		},
		{
			name:     "already installed",
			err:      &domain.ModuleError{Kind: domain.ErrModuleAlreadyInstalled, Name: "aws_vpc"},
			sentinel: domain.ErrModuleAlreadyInstalled,
			message:  "module aws_vpc is already installed",
		},
		{
			name:     "still depended",
			err:      &domain.DependencyError{Dependency: "aws_account", Dependent: "aws_vpc"},
			sentinel: domain.ErrModuleStillDepended,
			message:  "module aws_account is a dependency of module aws_vpc",
		},
		{
			name:     "unknown database",
			err:      &domain.DatabaseError{Alias: "staging"},
			sentinel: domain.ErrDatabaseNotFound,
			message:  "no db with the name staging exists",
		},
		{
			name:     "catalog fetch keeps transport error",
			err:      &domain.CatalogFetchError{Err: transport},
			sentinel: transport,
			message:  "failed to list modules: connection refused",
		},
		{
			name:     "execution error",
			err:      &domain.ExecutionError{Op: "install", Err: transport},
			sentinel: domain.ErrCommandExecution,
			message:  "failed to install modules: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("command: %w", tt.err)

			require.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.False(t, domain.IsAbort(wrapped))
		})
	}
}

func TestIsAbort(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.IsAbort(domain.ErrNothingSelected))
	assert.True(t, domain.IsAbort(fmt.Errorf("remove: %w", domain.NewAbort("No modules were removed"))))
	assert.False(t, domain.IsAbort(domain.ErrModuleNotFound))
	assert.False(t, domain.IsAbort(nil))
}

func TestFormatErrorMessage(t *testing.T) {
	t.Parallel()

	err := &domain.DependencyError{Dependency: "aws_account", Dependent: "aws_vpc"}

	short := domain.FormatErrorMessage(err, false)
	assert.Equal(t, "module aws_account is a dependency of module aws_vpc (Remove aws_vpc in the same request)", short)

	verbose := domain.FormatErrorMessage(err, true)
	assert.Contains(t, verbose, "Suggestions:")
	assert.Contains(t, verbose, "• Remove aws_vpc in the same request")

	plain := domain.FormatErrorMessage(errors.New("boom"), false)
	assert.Equal(t, "boom", plain)
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := &domain.ModuleError{Kind: domain.ErrModuleNotFound, Name: "x"}
	exitErr := domain.NewExitError(5, "no module with the name x exists", cause)

	assert.Equal(t, 5, exitErr.Code)
	require.ErrorIs(t, exitErr, domain.ErrModuleNotFound)
	assert.Contains(t, exitErr.Error(), "no module with the name x exists")
}
