// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "context"

// CatalogClient reads module information from the iasql service.
// Implemented by the network adapter.
type CatalogClient interface {
	// FetchCatalog returns every module known to the service.
	FetchCatalog(ctx context.Context) (*Catalog, error)

	// FetchInstalled returns the modules installed on a database.
	FetchInstalled(ctx context.Context, database string) (*InstalledSet, error)
}

// DatabaseLister lists the databases the operator can target.
type DatabaseLister interface {
	// ListDatabases returns database aliases.
	ListDatabases(ctx context.Context) ([]string, error)
}

// ModuleExecutor applies a validated plan on the service.
type ModuleExecutor interface {
	// InstallModules installs modules on a database.
	InstallModules(ctx context.Context, database string, modules []string) error

	// RemoveModules removes modules from a database.
	RemoveModules(ctx context.Context, database string, modules []string) error
}

// Selector asks the operator to choose or confirm.
type Selector interface {
	// SelectMany returns the indices of the chosen options. The result may be empty.
	SelectMany(ctx context.Context, prompt string, options []string) ([]int, error)

	// SelectOne returns the index of the chosen option.
	SelectOne(ctx context.Context, prompt string, options []string, defaultIndex int) (int, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, prompt string, defaultValue bool) (bool, error)
}

// Locker serializes module changes against one database on this host.
type Locker interface {
	// Lock acquires the lock for a database and returns its release function.
	Lock(database string) (func() error, error)
}
