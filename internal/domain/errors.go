// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors.
var (
	ErrCatalogFetch           = errors.New("failed to list modules")
	ErrModuleNotFound         = errors.New("module not found")
	ErrModuleNotInstalled     = errors.New("module not installed")
	ErrModuleAlreadyInstalled = errors.New("module already installed")
	ErrModuleStillDepended    = errors.New("module still depended on")
	ErrCommandExecution       = errors.New("module command failed")
	ErrDatabaseNotFound       = errors.New("database not found")
	ErrNoDatabases            = errors.New("no databases available")
	ErrDatabaseBusy           = errors.New("database is locked by another iasql process")
	ErrNotInteractive         = errors.New("interactive input required")
)

// Benign outcomes. They stop the command without failing it.
var (
	ErrNothingInstalled = NewAbort("No modules have been installed")
	ErrAllInstalled     = NewAbort("All available modules installed")
	ErrNothingSelected  = NewAbort("No modules selected")
	ErrRemovalDeclined  = NewAbort("No modules were removed")
	ErrInstallDeclined  = NewAbort("No modules were installed")
)

// AbortError marks a command that stopped early with nothing to do.
type AbortError struct {
	Reason string
}

// NewAbort creates an AbortError.
func NewAbort(reason string) *AbortError {
	return &AbortError{Reason: reason}
}

func (e *AbortError) Error() string {
	return e.Reason
}

// IsAbort reports whether err is a benign abort.
func IsAbort(err error) bool {
	var abort *AbortError
	return errors.As(err, &abort)
}

// ModuleError reports a requested module that failed an existence or state check.
type ModuleError struct {
	Kind error // ErrModuleNotFound, ErrModuleNotInstalled or ErrModuleAlreadyInstalled
	Name string
}

func (e *ModuleError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrModuleNotFound):
		return fmt.Sprintf("no module with the name %s exists", e.Name)
	case errors.Is(e.Kind, ErrModuleNotInstalled):
		return fmt.Sprintf("module %s is not installed", e.Name)
	case errors.Is(e.Kind, ErrModuleAlreadyInstalled):
		return fmt.Sprintf("module %s is already installed", e.Name)
	default:
		return fmt.Sprintf("module %s: %v", e.Name, e.Kind)
	}
}

func (e *ModuleError) Unwrap() error {
	return e.Kind
}

// DatabaseError reports an unknown database alias.
type DatabaseError struct {
	Alias string
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("no db with the name %s exists", e.Alias)
}

func (e *DatabaseError) Unwrap() error {
	return ErrDatabaseNotFound
}

// DependencyError reports an installed module that would lose a dependency.
type DependencyError struct {
	Dependency string
	Dependent  string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("module %s is a dependency of module %s", e.Dependency, e.Dependent)
}

func (e *DependencyError) Unwrap() error {
	return ErrModuleStillDepended
}

// CycleError reports a dependency cycle found while computing a closure.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCircularDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCircularDependency
}

// CatalogFetchError wraps a failure to read the module catalog.
type CatalogFetchError struct {
	Err error
}

func (e *CatalogFetchError) Error() string {
	return fmt.Sprintf("%v: %v", ErrCatalogFetch, e.Err)
}

func (e *CatalogFetchError) Unwrap() []error {
	return []error{ErrCatalogFetch, e.Err}
}

// ExecutionError wraps a failed install or remove call.
type ExecutionError struct {
	Op  string // "install" or "remove"
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to %s modules: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() []error {
	return []error{ErrCommandExecution, e.Err}
}

// ExitError carries the process exit code chosen by the command dispatcher.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
}

// GetErrorInfo classifies an error and returns user-facing hints.
func GetErrorInfo(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	info := ErrorInfo{Message: err.Error()}

	switch {
	case errors.Is(err, ErrModuleNotFound):
		info.Suggestions = []string{"Check the module name spelling", "Run 'iasql list' to see available modules"}
	case errors.Is(err, ErrModuleNotInstalled):
		info.Suggestions = []string{"Run 'iasql list --db <alias>' to see installed modules"}
	case errors.Is(err, ErrModuleAlreadyInstalled):
		info.Suggestions = []string{"Drop it from the install request"}
	case errors.Is(err, ErrModuleStillDepended):
		var depErr *DependencyError
		if errors.As(err, &depErr) {
			info.Suggestions = []string{"Remove " + depErr.Dependent + " in the same request"}
		}
	case errors.Is(err, ErrCircularDependency):
		info.Suggestions = []string{"Install without --resolve transitive", "Report the cycle to the catalog maintainers"}
	case errors.Is(err, ErrCatalogFetch):
		info.Suggestions = []string{"Check that the iasql server is reachable", "Try again in a few moments"}
	case errors.Is(err, ErrDatabaseNotFound):
		info.Suggestions = []string{"Omit --db to pick from the available databases"}
	case errors.Is(err, ErrDatabaseBusy):
		info.Suggestions = []string{"Wait for the other iasql command to finish"}
	case errors.Is(err, ErrNotInteractive):
		info.Suggestions = []string{"Pass module names and --db explicitly", "Use --yes to skip confirmation"}
	}

	return info
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, verbose bool) string {
	info := GetErrorInfo(err)

	var result strings.Builder

	result.WriteString(info.Message)

	if len(info.Suggestions) == 0 {
		return result.String()
	}

	if !verbose {
		// In non-verbose mode, just show the first suggestion inline
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")

		return result.String()
	}

	result.WriteString("\n  Suggestions:")

	for _, suggestion := range info.Suggestions {
		result.WriteString("\n    • ")
		result.WriteString(suggestion)
	}

	return result.String()
}
