// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/iasql/iasql-cli/internal/adapters/network"
	"github.com/iasql/iasql-cli/internal/config"
	"github.com/iasql/iasql-cli/internal/domain"
)

// exitCode classifies err. Context errors win so a timeout inside a
// service call is not reported as a service failure.
func exitCode(err error) int {
	var (
		serviceErr *network.ServiceError
		urlErr     *url.Error
		netErr     net.Error
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.Is(err, context.Canceled):
		return ExitInterruptError
	case errors.Is(err, domain.ErrNotInteractive):
		return ExitUsageError
	case errors.Is(err, domain.ErrUnknownStrategy):
		return ExitUsageError
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrModuleNotInstalled),
		errors.Is(err, domain.ErrModuleAlreadyInstalled),
		errors.Is(err, domain.ErrDatabaseNotFound),
		errors.Is(err, domain.ErrNoDatabases):
		return ExitNotFoundError
	case errors.Is(err, domain.ErrModuleStillDepended),
		errors.Is(err, domain.ErrCircularDependency):
		return ExitDependencyError
	case errors.Is(err, domain.ErrDatabaseBusy):
		return ExitSystemError
	case errors.Is(err, domain.ErrCommandExecution):
		return ExitModuleError
	case errors.Is(err, domain.ErrCatalogFetch),
		errors.As(err, &serviceErr),
		errors.As(err, &urlErr),
		errors.As(err, &netErr):
		return ExitNetworkError
	default:
		return ExitGeneralError
	}
}
