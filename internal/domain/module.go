// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "slices"

// Module is an optional feature that can be installed on a database.
type Module struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
}

// moduleSet is an ordered, name-indexed collection of modules.
// The first occurrence of a name wins.
type moduleSet struct {
	modules []Module
	index   map[string]int
}

func newModuleSet(modules []Module) moduleSet {
	set := moduleSet{
		modules: make([]Module, 0, len(modules)),
		index:   make(map[string]int, len(modules)),
	}

	for _, mod := range modules {
		if _, exists := set.index[mod.Name]; exists {
			continue
		}

		set.index[mod.Name] = len(set.modules)
		set.modules = append(set.modules, Module{
			Name:         mod.Name,
			Dependencies: slices.Clone(mod.Dependencies),
		})
	}

	return set
}

// Len returns the number of modules.
func (s moduleSet) Len() int {
	return len(s.modules)
}

// Has reports whether a module with the exact name is present.
func (s moduleSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns the module with the given name.
func (s moduleSet) Get(name string) (Module, bool) {
	i, ok := s.index[name]
	if !ok {
		return Module{}, false
	}

	return s.modules[i], true
}

// Modules returns a copy of the modules in their original order.
func (s moduleSet) Modules() []Module {
	return slices.Clone(s.modules)
}

// Names returns module names in their original order.
func (s moduleSet) Names() []string {
	names := make([]string, len(s.modules))
	for i, mod := range s.modules {
		names[i] = mod.Name
	}

	return names
}

// Catalog is every module known to the service at one point in time.
type Catalog struct {
	moduleSet
}

// NewCatalog builds a catalog snapshot.
func NewCatalog(modules []Module) *Catalog {
	return &Catalog{moduleSet: newModuleSet(modules)}
}

// InstalledSet is the set of modules active on one database.
type InstalledSet struct {
	moduleSet
}

// NewInstalledSet builds an installed-set snapshot.
func NewInstalledSet(modules []Module) *InstalledSet {
	return &InstalledSet{moduleSet: newModuleSet(modules)}
}

// IsEmpty reports whether nothing is installed.
func (s *InstalledSet) IsEmpty() bool {
	return s.Len() == 0
}

// Snapshot pairs the catalog with the installed set of one database.
// Both halves are captured before any validation runs.
type Snapshot struct {
	Database  string
	Catalog   *Catalog
	Installed *InstalledSet
}

// Available returns catalog names that are not installed, in catalog order.
func (s *Snapshot) Available() []string {
	available := make([]string, 0, s.Catalog.Len())

	for _, name := range s.Catalog.Names() {
		if !s.Installed.Has(name) {
			available = append(available, name)
		}
	}

	return available
}

// InstallPlan is a validated installation request.
type InstallPlan struct {
	Database  string   `json:"database"`
	Requested []string `json:"requested"`
	Implied   []string `json:"implied"`
}

// Modules returns the requested modules followed by the implied ones.
func (p *InstallPlan) Modules() []string {
	all := make([]string, 0, len(p.Requested)+len(p.Implied))
	all = append(all, p.Requested...)

	return append(all, p.Implied...)
}

// RemovalPlan is a validated removal request.
type RemovalPlan struct {
	Database string   `json:"database"`
	Modules  []string `json:"modules"`
}

// dedupe drops repeated names, keeping the first occurrence.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}

		seen[name] = true
		out = append(out, name)
	}

	return out
}
