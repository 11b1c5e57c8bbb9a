// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"slices"
	"strings"
)

// RemovalCandidates returns the installed modules an operator may pick from.
func RemovalCandidates(s *Snapshot) ([]string, error) {
	if s.Installed.IsEmpty() {
		return nil, ErrNothingInstalled
	}

	return s.Installed.Names(), nil
}

// ValidateRemoval checks that requested modules can be removed from the
// snapshot's database without leaving an installed module without one of its
// dependencies. The first violation found is returned.
func ValidateRemoval(s *Snapshot, requested []string) (*RemovalPlan, error) {
	if s.Installed.IsEmpty() {
		return nil, ErrNothingInstalled
	}

	if len(requested) == 0 {
		return nil, ErrNothingSelected
	}

	requested = dedupe(requested)

	for _, name := range requested {
		if !s.Catalog.Has(name) {
			return nil, &ModuleError{Kind: ErrModuleNotFound, Name: name}
		}
	}

	for _, name := range requested {
		if !s.Installed.Has(name) {
			return nil, &ModuleError{Kind: ErrModuleNotInstalled, Name: name}
		}
	}

	if err := checkDependents(s.Installed, requested); err != nil {
		return nil, err
	}

	return &RemovalPlan{Database: s.Database, Modules: requested}, nil
}

// checkDependents fails if a module that stays installed depends on a removed one.
// Remaining modules are scanned in name order.
func checkDependents(installed *InstalledSet, removed []string) error {
	remaining := slices.DeleteFunc(installed.Modules(), func(m Module) bool {
		return slices.Contains(removed, m.Name)
	})

	slices.SortFunc(remaining, func(a, b Module) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, mod := range remaining {
		for _, dep := range mod.Dependencies {
			if slices.Contains(removed, dep) {
				return &DependencyError{Dependency: dep, Dependent: mod.Name}
			}
		}
	}

	return nil
}
