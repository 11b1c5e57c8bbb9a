// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package handlers

import (
	"context"
	"strings"

	"github.com/iasql/iasql-cli/internal/domain"
)

// ModuleService is the application surface used by the module commands.
type ModuleService interface {
	ResolveDatabase(ctx context.Context, alias string) (string, error)
	List(ctx context.Context, alias string) (*domain.ListResult, error)
	PlanInstallation(ctx context.Context, database string, requested []string) (*domain.InstallPlan, error)
	Install(ctx context.Context, plan *domain.InstallPlan) (*domain.InstallResult, error)
	PlanRemoval(ctx context.Context, database string, requested []string) (*domain.RemovalPlan, error)
	Remove(ctx context.Context, plan *domain.RemovalPlan) (*domain.RemoveResult, error)
}

// ListHeaders are the column titles of the module table.
var ListHeaders = []string{"Module Name", "Dependent Modules"}

// ModuleHandler runs the list, install and remove commands.
type ModuleHandler struct {
	*BaseHandler

	service ModuleService
}

// NewModuleHandler creates a handler backed by service.
func NewModuleHandler(base *BaseHandler, service ModuleService) *ModuleHandler {
	return &ModuleHandler{BaseHandler: base, service: service}
}

// List prints the catalog, or the modules installed on db.
func (h *ModuleHandler) List(ctx context.Context, db string) error {
	result, err := h.service.List(ctx, db)
	if err != nil {
		return err
	}

	if h.JSON {
		return h.Output.Success("", result)
	}

	rows := make([][]string, 0, len(result.Modules))
	for _, m := range result.Modules {
		rows = append(rows, []string{m.Name, strings.Join(m.Dependencies, ", ")})
	}

	return h.Output.Table(ListHeaders, rows)
}

// Install plans, confirms and installs modules on db. An empty db or
// module list is resolved interactively.
func (h *ModuleHandler) Install(ctx context.Context, db string, modules []string) error {
	database, err := h.service.ResolveDatabase(ctx, db)
	if err != nil {
		return err
	}

	plan, err := h.service.PlanInstallation(ctx, database, modules)
	if err != nil {
		return err
	}

	if len(plan.Implied) > 0 {
		h.Successf("%s: %s",
			h.Printer.Bold("Dependent modules also needed for installation"),
			h.Printer.Green(strings.Join(plan.Implied, ",")))
	}

	h.Printer.Progressf("Installing %s on %s", strings.Join(plan.Modules(), ", "), database)

	result, err := h.service.Install(ctx, plan)
	if err != nil {
		return err
	}

	if h.JSON {
		return h.Output.Success("", result)
	}

	h.Successf("%s", h.Printer.Bold("Done"))
	h.Printer.Progressf("Installed %d modules in %.2fs", len(result.Installed), result.Duration.Seconds())

	return nil
}

// Remove validates, confirms and removes modules from db.
func (h *ModuleHandler) Remove(ctx context.Context, db string, modules []string) error {
	database, err := h.service.ResolveDatabase(ctx, db)
	if err != nil {
		return err
	}

	plan, err := h.service.PlanRemoval(ctx, database, modules)
	if err != nil {
		return err
	}

	h.Printer.Progressf("Removing %s from %s", strings.Join(plan.Modules, ", "), database)

	result, err := h.service.Remove(ctx, plan)
	if err != nil {
		return err
	}

	if h.JSON {
		return h.Output.Success("", result)
	}

	h.Successf("%s", h.Printer.Bold("Done"))
	h.Printer.Progressf("Removed %d modules in %.2fs", len(result.Removed), result.Duration.Seconds())

	return nil
}
