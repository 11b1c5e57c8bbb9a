// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"testing"

	"github.com/iasql/iasql-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noneInstalled(string) bool { return false }

// TestCircularDependencyDetection tests real circular dependency detection.
func TestCircularDependencyDetection(t *testing.T) {
	t.Parallel()

	t.Run("simple_circular_dependency", func(t *testing.T) {
		t.Parallel()

		// A -> B -> C -> A (circular)
		graph := domain.NewDependencyGraph(domain.NewCatalog([]domain.Module{
			mod("module-a", "module-b"),
			mod("module-b", "module-c"),
			mod("module-c", "module-a"),
		}))

		_, err := graph.Closure([]string{"module-a"}, noneInstalled)

		var cycle *domain.CycleError
		require.ErrorAs(t, err, &cycle, "Should detect circular dependency")
		assert.Equal(t, []string{"module-a", "module-b", "module-c", "module-a"}, cycle.Path)
	})

	t.Run("self_dependency", func(t *testing.T) {
		t.Parallel()

		graph := domain.NewDependencyGraph(domain.NewCatalog([]domain.Module{
			mod("self-referential", "self-referential"),
		}))

		_, err := graph.Closure([]string{"self-referential"}, noneInstalled)

		var cycle *domain.CycleError
		require.ErrorAs(t, err, &cycle, "Should detect self-dependency as circular")
		assert.Equal(t, []string{"self-referential", "self-referential"}, cycle.Path)
	})

	t.Run("diamond_is_not_a_cycle", func(t *testing.T) {
		t.Parallel()

		graph := domain.NewDependencyGraph(domain.NewCatalog([]domain.Module{
			mod("aws_account"),
			mod("aws_vpc", "aws_account"),
			mod("aws_security_group", "aws_account"),
			mod("aws_ec2", "aws_vpc", "aws_security_group"),
		}))

		deps, err := graph.Closure([]string{"aws_ec2"}, noneInstalled)
		require.NoError(t, err)
		assert.Equal(t, []string{"aws_vpc", "aws_security_group", "aws_account"}, deps)
	})
}

func TestDependencyGraph_Closure(t *testing.T) {
	t.Parallel()

	catalog := domain.NewCatalog([]domain.Module{
		mod("aws_account"),
		mod("aws_vpc", "aws_account"),
		mod("aws_security_group", "aws_account", "aws_vpc"),
		mod("aws_ec2", "aws_security_group", "aws_vpc"),
		mod("loop_a", "loop_b"),
		mod("loop_b", "loop_a"),
		mod("uses_loop", "loop_a"),
	})
	graph := domain.NewDependencyGraph(catalog)
	none := func(string) bool { return false }

	t.Run("breadth_first_order", func(t *testing.T) {
		t.Parallel()

		deps, err := graph.Closure([]string{"aws_ec2"}, none)
		require.NoError(t, err)
		assert.Equal(t, []string{"aws_security_group", "aws_vpc", "aws_account"}, deps)
	})

	t.Run("skip_prunes_traversal", func(t *testing.T) {
		t.Parallel()

		installed := func(name string) bool { return name == "aws_vpc" }

		deps, err := graph.Closure([]string{"aws_ec2"}, installed)
		require.NoError(t, err)
		assert.Equal(t, []string{"aws_security_group", "aws_account"}, deps)
	})

	t.Run("cycle_reachable_from_roots", func(t *testing.T) {
		t.Parallel()

		_, err := graph.Closure([]string{"uses_loop"}, none)

		var cycleErr *domain.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"loop_a", "loop_b", "loop_a"}, cycleErr.Path)
		assert.Contains(t, err.Error(), "loop_a -> loop_b -> loop_a")
	})

	t.Run("cycle_behind_installed_module_is_ignored", func(t *testing.T) {
		t.Parallel()

		installed := func(name string) bool { return name == "loop_a" }

		deps, err := graph.Closure([]string{"uses_loop"}, installed)
		require.NoError(t, err)
		assert.Empty(t, deps)
	})

	t.Run("unrelated_cycle_is_ignored", func(t *testing.T) {
		t.Parallel()

		deps, err := graph.Closure([]string{"aws_vpc"}, none)
		require.NoError(t, err)
		assert.Equal(t, []string{"aws_account"}, deps)
	})
}
