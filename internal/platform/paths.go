// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// GetXDGConfigHome returns XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns XDG config directory with custom environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetRuntimeDir returns the directory for lock files.
func GetRuntimeDir() string {
	return GetRuntimeDirWithEnv(os.Getenv("XDG_RUNTIME_DIR"))
}

// GetRuntimeDirWithEnv returns the lock directory with custom environment override for testing.
// Falls back to the system temp dir when XDG_RUNTIME_DIR is unset.
func GetRuntimeDirWithEnv(xdgRuntimeDir string) string {
	if xdgRuntimeDir != "" {
		return xdgRuntimeDir
	}

	return os.TempDir()
}

// ConfigFilePath returns the default config file location.
func ConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), AppName, "config.toml")
}

// ExpandPath expands a leading ~ and $XDG_CONFIG_HOME.
func ExpandPath(path string) string {
	return ExpandPathWithEnv(path, "")
}

// ExpandPathWithEnv expands paths with a custom XDG config home for testing.
func ExpandPathWithEnv(path, xdgConfigHome string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}

	if after, found := strings.CutPrefix(path, "$XDG_CONFIG_HOME"); found {
		configHome := xdgConfigHome
		if configHome == "" {
			configHome = GetXDGConfigHome()
		}

		return configHome + after
	}

	return path
}
