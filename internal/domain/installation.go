// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownStrategy is returned for an unrecognized dependency resolution strategy.
var ErrUnknownStrategy = errors.New("unknown resolve strategy")

// ResolveStrategy controls how missing dependencies of an installation are added.
type ResolveStrategy string

// Supported resolve strategies.
const (
	// ResolveDirect adds only the direct dependencies of requested modules.
	ResolveDirect ResolveStrategy = "direct"
	// ResolveTransitive adds the full dependency closure and rejects cycles.
	ResolveTransitive ResolveStrategy = "transitive"
)

// ParseResolveStrategy parses a strategy name. Empty means ResolveDirect.
func ParseResolveStrategy(s string) (ResolveStrategy, error) {
	switch ResolveStrategy(s) {
	case "", ResolveDirect:
		return ResolveDirect, nil
	case ResolveTransitive:
		return ResolveTransitive, nil
	default:
		return "", fmt.Errorf("%w: %q (expected direct or transitive)", ErrUnknownStrategy, s)
	}
}

// InstallCandidates returns catalog modules not yet installed, in catalog order.
func InstallCandidates(s *Snapshot) ([]string, error) {
	if s.Installed.Len() == s.Catalog.Len() {
		return nil, ErrAllInstalled
	}

	return s.Available(), nil
}

// PlanInstallation validates requested modules and adds the dependencies
// they need that are neither installed nor requested.
func PlanInstallation(s *Snapshot, requested []string, strategy ResolveStrategy) (*InstallPlan, error) {
	if s.Installed.Len() == s.Catalog.Len() {
		return nil, ErrAllInstalled
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
		if s.Installed.Has(name) {
			return nil, &ModuleError{Kind: ErrModuleAlreadyInstalled, Name: name}
		}
	}

	var (
		implied []string
		err     error
	)

	switch strategy {
	case ResolveTransitive:
		implied, err = NewDependencyGraph(s.Catalog).Closure(requested, s.Installed.Has)
		if err != nil {
			return nil, err
		}
	default:
		implied = directDependencies(s, requested)
	}

	return &InstallPlan{
		Database:  s.Database,
		Requested: requested,
		Implied:   implied,
	}, nil
}

// directDependencies expands exactly one level: dependencies of implied
// modules are not followed.
func directDependencies(s *Snapshot, requested []string) []string {
	implied := make([]string, 0)

	for _, name := range requested {
		mod, _ := s.Catalog.Get(name)

		for _, dep := range mod.Dependencies {
			if s.Installed.Has(dep) || slices.Contains(requested, dep) || slices.Contains(implied, dep) {
				continue
			}

			implied = append(implied, dep)
		}
	}

	return implied
}
