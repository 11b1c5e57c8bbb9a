// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application orchestrates module commands over the domain ports.
package application

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/iasql/iasql-cli/internal/domain"
)

// Prompt texts shown by the selector.
const (
	SelectModulesPrompt  = "Use arrows to move, space to (de)select modules and enter to submit"
	SelectDatabasePrompt = "Pick IaSQL db"
	ConfirmRemovalPrompt = "Press enter to confirm removal"
	ConfirmInstallPrompt = "Press enter to confirm installation"
)

// ModuleServiceOptions wires a ModuleService.
type ModuleServiceOptions struct {
	Catalog   domain.CatalogClient
	Databases domain.DatabaseLister
	Executor  domain.ModuleExecutor
	Selector  domain.Selector
	Locker    domain.Locker
	Logger    *log.Logger

	Strategy  domain.ResolveStrategy
	DefaultDB string
	AssumeYes bool

	// Timeout bounds each round of service calls. Prompts are not bounded.
	Timeout time.Duration
}

// ModuleService lists, installs and removes modules on iasql databases.
type ModuleService struct {
	catalog   domain.CatalogClient
	databases domain.DatabaseLister
	executor  domain.ModuleExecutor
	selector  domain.Selector
	locker    domain.Locker
	logger    *log.Logger

	strategy  domain.ResolveStrategy
	defaultDB string
	assumeYes bool
	timeout   time.Duration
}

// NewModuleService creates a service from its ports.
func NewModuleService(opts ModuleServiceOptions) *ModuleService {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = domain.ResolveDirect
	}

	return &ModuleService{
		catalog:   opts.Catalog,
		databases: opts.Databases,
		executor:  opts.Executor,
		selector:  opts.Selector,
		locker:    opts.Locker,
		logger:    logger,
		strategy:  strategy,
		defaultDB: opts.DefaultDB,
		assumeYes: opts.AssumeYes,
		timeout:   opts.Timeout,
	}
}

// Snapshot fetches the catalog and the installed set of database concurrently.
// The first failure cancels the other request.
func (s *ModuleService) Snapshot(ctx context.Context, database string) (*domain.Snapshot, error) {
	var (
		catalog   *domain.Catalog
		installed *domain.InstalledSet
	)

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		catalog, err = s.catalog.FetchCatalog(groupCtx)

		return err
	})

	group.Go(func() error {
		var err error

		installed, err = s.catalog.FetchInstalled(groupCtx, database)

		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("snapshot", "db", database, "catalog", catalog.Len(), "installed", installed.Len())

	return &domain.Snapshot{
		Database:  database,
		Catalog:   catalog,
		Installed: installed,
	}, nil
}

// ResolveDatabase returns the database to operate on. An empty alias falls
// back to the configured default, then to asking the operator.
func (s *ModuleService) ResolveDatabase(ctx context.Context, alias string) (string, error) {
	aliases, err := s.listDatabases(ctx)
	if err != nil {
		return "", err
	}

	if alias == "" {
		alias = s.defaultDB
	}

	if alias != "" {
		if !slices.Contains(aliases, alias) {
			return "", &domain.DatabaseError{Alias: alias}
		}

		return alias, nil
	}

	if len(aliases) == 0 {
		return "", domain.ErrNoDatabases
	}

	idx, err := s.selector.SelectOne(ctx, SelectDatabasePrompt, aliases, 0)
	if err != nil {
		return "", err
	}

	return aliases[idx], nil
}

// List returns every catalog module, or the modules installed on alias.
func (s *ModuleService) List(ctx context.Context, alias string) (*domain.ListResult, error) {
	if alias != "" {
		if _, err := s.ResolveDatabase(ctx, alias); err != nil {
			return nil, err
		}
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	var modules []domain.Module

	if alias == "" {
		catalog, err := s.catalog.FetchCatalog(ctx)
		if err != nil {
			return nil, err
		}

		modules = catalog.Modules()
	} else {
		installed, err := s.catalog.FetchInstalled(ctx, alias)
		if err != nil {
			return nil, err
		}

		modules = installed.Modules()
	}

	return &domain.ListResult{
		Database:  alias,
		Modules:   modules,
		Total:     len(modules),
		Timestamp: time.Now(),
	}, nil
}

// PlanRemoval validates requested against database. With no names the
// operator picks among the installed modules.
func (s *ModuleService) PlanRemoval(ctx context.Context, database string, requested []string) (*domain.RemovalPlan, error) {
	snapshot, err := s.Snapshot(ctx, database)
	if err != nil {
		return nil, err
	}

	if len(requested) == 0 {
		candidates, err := domain.RemovalCandidates(snapshot)
		if err != nil {
			return nil, err
		}

		requested, err = s.selectModules(ctx, candidates)
		if err != nil {
			return nil, err
		}
	}

	return domain.ValidateRemoval(snapshot, requested)
}

// PlanInstallation validates requested against database and adds the
// dependencies it needs. With no names the operator picks among the
// modules not yet installed.
func (s *ModuleService) PlanInstallation(ctx context.Context, database string, requested []string) (*domain.InstallPlan, error) {
	snapshot, err := s.Snapshot(ctx, database)
	if err != nil {
		return nil, err
	}

	if len(requested) == 0 {
		candidates, err := domain.InstallCandidates(snapshot)
		if err != nil {
			return nil, err
		}

		requested, err = s.selectModules(ctx, candidates)
		if err != nil {
			return nil, err
		}
	}

	return domain.PlanInstallation(snapshot, requested, s.strategy)
}

// Remove asks for confirmation and removes the planned modules.
func (s *ModuleService) Remove(ctx context.Context, plan *domain.RemovalPlan) (*domain.RemoveResult, error) {
	if err := s.confirm(ctx, ConfirmRemovalPrompt, domain.ErrRemovalDeclined); err != nil {
		return nil, err
	}

	start := time.Now()

	err := s.withLock(plan.Database, func() error {
		ctx, cancel := s.bounded(ctx)
		defer cancel()

		return s.executor.RemoveModules(ctx, plan.Database, plan.Modules)
	})
	if err != nil {
		return nil, err
	}

	return &domain.RemoveResult{
		Database:  plan.Database,
		Removed:   plan.Modules,
		Duration:  time.Since(start),
		Timestamp: time.Now(),
	}, nil
}

// Install asks for confirmation and installs the planned modules,
// dependencies included.
func (s *ModuleService) Install(ctx context.Context, plan *domain.InstallPlan) (*domain.InstallResult, error) {
	if err := s.confirm(ctx, ConfirmInstallPrompt, domain.ErrInstallDeclined); err != nil {
		return nil, err
	}

	start := time.Now()
	modules := plan.Modules()

	err := s.withLock(plan.Database, func() error {
		ctx, cancel := s.bounded(ctx)
		defer cancel()

		return s.executor.InstallModules(ctx, plan.Database, modules)
	})
	if err != nil {
		return nil, err
	}

	return &domain.InstallResult{
		Database:  plan.Database,
		Installed: modules,
		Implied:   plan.Implied,
		Duration:  time.Since(start),
		Timestamp: time.Now(),
	}, nil
}

func (s *ModuleService) listDatabases(ctx context.Context) ([]string, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.databases.ListDatabases(ctx)
}

// bounded applies the service timeout to ctx. Selector calls always get the
// caller's context.
func (s *ModuleService) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}

	return ctx, func() {}
}

func (s *ModuleService) selectModules(ctx context.Context, candidates []string) ([]string, error) {
	picked, err := s.selector.SelectMany(ctx, SelectModulesPrompt, candidates)
	if err != nil {
		return nil, err
	}

	if len(picked) == 0 {
		return nil, domain.ErrNothingSelected
	}

	slices.Sort(picked)

	names := make([]string, 0, len(picked))
	for _, idx := range picked {
		names = append(names, candidates[idx])
	}

	return names, nil
}

func (s *ModuleService) confirm(ctx context.Context, prompt string, declined error) error {
	if s.assumeYes {
		return nil
	}

	ok, err := s.selector.Confirm(ctx, prompt, true)
	if err != nil {
		return err
	}

	if !ok {
		return declined
	}

	return nil
}

// withLock runs fn while holding the database lock.
func (s *ModuleService) withLock(database string, fn func() error) error {
	release, err := s.locker.Lock(database)
	if err != nil {
		return err
	}

	s.logger.Debug("lock acquired", "db", database)

	defer func() {
		if releaseErr := release(); releaseErr != nil {
			s.logger.Warn("failed to release lock", "db", database, "err", releaseErr)
		}
	}()

	return fn()
}
