// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides filesystem and locking utilities for iasql.
package platform

// AppName names the per-user config and lock locations.
const AppName = "iasql"
