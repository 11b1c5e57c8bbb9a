// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"slices"
)

// ErrCircularDependency indicates a circular dependency was detected.
var ErrCircularDependency = errors.New("circular dependency detected")

// DependencyGraph represents module dependencies declared by a catalog.
type DependencyGraph struct {
	modules map[string]bool
	edges   map[string][]string // module -> dependencies
}

// NewDependencyGraph creates a dependency graph from a catalog.
func NewDependencyGraph(catalog *Catalog) *DependencyGraph {
	g := &DependencyGraph{
		modules: make(map[string]bool, catalog.Len()),
		edges:   make(map[string][]string, catalog.Len()),
	}

	for _, mod := range catalog.Modules() {
		g.modules[mod.Name] = true
		g.edges[mod.Name] = mod.Dependencies
	}

	return g
}

// Closure returns every module reachable from roots through declared
// dependencies, excluding the roots and anything in skip. Modules are returned
// in breadth-first discovery order. A cycle reachable from roots yields a
// *CycleError; a dependency absent from the catalog yields a *ModuleError.
func (g *DependencyGraph) Closure(roots []string, skip func(string) bool) ([]string, error) {
	if hasCycle, path := g.findCycle(roots, skip); hasCycle {
		return nil, &CycleError{Path: path}
	}

	seen := make(map[string]bool, len(roots))
	for _, root := range roots {
		seen[root] = true
	}

	queue := slices.Clone(roots)
	deps := make([]string, 0)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dep := range g.edges[current] {
			if seen[dep] || skip(dep) {
				continue
			}

			if !g.modules[dep] {
				return nil, &ModuleError{Kind: ErrModuleNotFound, Name: dep}
			}

			seen[dep] = true
			deps = append(deps, dep)
			queue = append(queue, dep)
		}
	}

	return deps, nil
}

// findCycle searches for a cycle reachable from starts without passing
// through modules for which skip returns true.
func (g *DependencyGraph) findCycle(starts []string, skip func(string) bool) (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, name := range starts {
		if !visited[name] {
			if hasCycle, path := g.dfsDetectCycle(name, skip, visited, recStack, []string{}); hasCycle {
				return true, path
			}
		}
	}

	return false, nil
}

// dfsDetectCycle performs depth-first search to detect cycles.
func (g *DependencyGraph) dfsDetectCycle(name string, skip func(string) bool, visited, recStack map[string]bool, path []string) (bool, []string) {
	visited[name] = true
	recStack[name] = true
	path = append(path, name)

	for _, dep := range g.edges[name] {
		if skip(dep) {
			continue
		}

		if !visited[dep] {
			if cycle, cyclePath := g.dfsDetectCycle(dep, skip, visited, recStack, path); cycle {
				return true, cyclePath
			}
		} else if recStack[dep] {
			cycleStart := slices.Index(path, dep)

			cyclePath := make([]string, 0, len(path)-cycleStart+1)
			cyclePath = append(cyclePath, path[cycleStart:]...)
			cyclePath = append(cyclePath, dep)

			return true, cyclePath
		}
	}

	recStack[name] = false

	return false, nil
}
