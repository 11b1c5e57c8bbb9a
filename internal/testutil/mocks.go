// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks of the domain ports.
package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/iasql/iasql-cli/internal/domain"
)

// MockCatalogClient mocks the CatalogClient port for testing.
type MockCatalogClient struct {
	mock.Mock
}

// FetchCatalog mocks reading the module catalog.
func (m *MockCatalogClient) FetchCatalog(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).(*domain.Catalog); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

// FetchInstalled mocks reading the installed modules of a database.
func (m *MockCatalogClient) FetchInstalled(ctx context.Context, database string) (*domain.InstalledSet, error) {
	args := m.Called(ctx, database)
	if result, ok := args.Get(0).(*domain.InstalledSet); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockDatabaseLister mocks the DatabaseLister port for testing.
type MockDatabaseLister struct {
	mock.Mock
}

// ListDatabases mocks listing database aliases.
func (m *MockDatabaseLister) ListDatabases(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).([]string); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockModuleExecutor mocks the ModuleExecutor port for testing.
type MockModuleExecutor struct {
	mock.Mock
}

// InstallModules mocks module installation.
func (m *MockModuleExecutor) InstallModules(ctx context.Context, database string, modules []string) error {
	args := m.Called(ctx, database, modules)
	return args.Error(0)
}

// RemoveModules mocks module removal.
func (m *MockModuleExecutor) RemoveModules(ctx context.Context, database string, modules []string) error {
	args := m.Called(ctx, database, modules)
	return args.Error(0)
}

// MockSelector mocks the Selector port for testing.
type MockSelector struct {
	mock.Mock
}

// SelectMany mocks a multi-select prompt.
func (m *MockSelector) SelectMany(ctx context.Context, prompt string, options []string) ([]int, error) {
	args := m.Called(ctx, prompt, options)
	if result, ok := args.Get(0).([]int); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

// SelectOne mocks a single-choice prompt.
func (m *MockSelector) SelectOne(ctx context.Context, prompt string, options []string, defaultIndex int) (int, error) {
	args := m.Called(ctx, prompt, options, defaultIndex)
	return args.Int(0), args.Error(1)
}

// Confirm mocks a yes/no prompt.
func (m *MockSelector) Confirm(ctx context.Context, prompt string, defaultValue bool) (bool, error) {
	args := m.Called(ctx, prompt, defaultValue)
	return args.Bool(0), args.Error(1)
}

// MockLocker mocks the Locker port for testing.
type MockLocker struct {
	mock.Mock

	mu       sync.Mutex
	released []string
}

// Lock mocks acquiring a database lock.
func (m *MockLocker) Lock(database string) (func() error, error) {
	args := m.Called(database)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	return func() error {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.released = append(m.released, database)

		return nil
	}, nil
}

// Released returns the databases whose lock was released, in order.
func (m *MockLocker) Released() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.released...)
}

// Test helpers

// Module builds a module with the given dependencies.
func Module(name string, deps ...string) domain.Module {
	return domain.Module{Name: name, Dependencies: deps}
}

// AWSCatalog is a small catalog shaped like the iasql AWS modules.
func AWSCatalog() []domain.Module {
	return []domain.Module{
		Module("aws_account"),
		Module("aws_vpc", "aws_account"),
		Module("aws_ec2", "aws_account", "aws_vpc"),
		Module("aws_ecr", "aws_account"),
	}
}
