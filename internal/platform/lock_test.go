// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iasql/iasql-cli/internal/domain"
)

func TestFileLocker_ExclusivePerDatabase(t *testing.T) {
	t.Parallel()

	locker := NewFileLocker(t.TempDir())

	release, err := locker.Lock("prod")
	require.NoError(t, err)

	_, err = locker.Lock("prod")
	require.ErrorIs(t, err, domain.ErrDatabaseBusy)

	otherRelease, err := locker.Lock("staging")
	require.NoError(t, err, "other databases are not blocked")
	require.NoError(t, otherRelease())

	require.NoError(t, release())

	again, err := locker.Lock("prod")
	require.NoError(t, err, "lock is reusable after release")
	require.NoError(t, again())
}

func TestFileLocker_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "locks")

	release, err := NewFileLocker(dir).Lock("prod")
	require.NoError(t, err)
	t.Cleanup(func() { _ = release() })

	assert.FileExists(t, filepath.Join(dir, "iasql-prod.lock"))
}

func TestFileLocker_PathIsSanitized(t *testing.T) {
	t.Parallel()

	locker := NewFileLocker("/run/user/1000")

	assert.Equal(t, "/run/user/1000/iasql-my_db.lock", locker.Path("my db"))
	assert.Equal(t, "/run/user/1000/iasql-.._.._etc.lock", locker.Path("../../etc"))
	assert.Equal(t, "/run/user/1000", filepath.Dir(locker.Path("../../etc")))
}
