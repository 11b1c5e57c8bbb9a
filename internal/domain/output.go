// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "time"

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Success outputs a success message with optional structured data
	Success(message string, data any) error

	// Error outputs an error message
	Error(message string) error

	// Info outputs an informational message
	Info(message string) error

	// Table outputs tabular data
	Table(headers []string, rows [][]string) error

	// IsQuiet returns true if output should be suppressed
	IsQuiet() bool
}

// InstallResult represents the outcome of an installation.
type InstallResult struct {
	Database  string        `json:"database"`
	Installed []string      `json:"installed"`
	Implied   []string      `json:"implied,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// RemoveResult represents the outcome of a removal.
type RemoveResult struct {
	Database  string        `json:"database"`
	Removed   []string      `json:"removed"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// ListResult represents a module listing.
type ListResult struct {
	Database  string    `json:"database,omitempty"`
	Modules   []Module  `json:"modules"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}
