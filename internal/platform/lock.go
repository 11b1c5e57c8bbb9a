// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/iasql/iasql-cli/internal/domain"
)

// FileLocker serializes module changes per database with advisory file locks.
type FileLocker struct {
	dir string
}

// NewFileLocker creates a locker keeping its lock files in dir.
// An empty dir selects GetRuntimeDir().
func NewFileLocker(dir string) *FileLocker {
	if dir == "" {
		dir = GetRuntimeDir()
	}

	return &FileLocker{dir: dir}
}

// Path returns the lock file used for database.
func (l *FileLocker) Path(database string) string {
	return filepath.Join(l.dir, fmt.Sprintf("%s-%s.lock", AppName, sanitize(database)))
}

// Lock acquires the lock for database without waiting. The returned
// function releases it.
func (l *FileLocker) Lock(database string) (func() error, error) {
	if err := EnsureDir(l.dir); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fileLock := flock.New(l.Path(database))

	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return nil, fmt.Errorf("%w: %s", domain.ErrDatabaseBusy, database)
	}

	return fileLock.Unlock, nil
}

// sanitize keeps lock file names inside the lock directory.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
