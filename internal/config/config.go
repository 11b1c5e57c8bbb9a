// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads the iasql client settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/iasql/iasql-cli/internal/domain"
	"github.com/iasql/iasql-cli/internal/platform"
)

// Defaults applied before the config file and environment.
const (
	DefaultServerURL = "http://localhost:8088"
	DefaultTimeout   = 30 * time.Second
)

// ErrInvalidConfig is returned for malformed or inconsistent settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the structure of config.toml.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Defaults DefaultsConfig `toml:"defaults"`
	Modules  ModulesConfig  `toml:"modules"`
}

// ServerConfig locates the iasql service.
type ServerConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout string `toml:"timeout"`
}

// DefaultsConfig holds values used when a flag is omitted.
type DefaultsConfig struct {
	DB string `toml:"db"`
}

// ModulesConfig tunes module planning.
type ModulesConfig struct {
	Resolve string `toml:"resolve"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: DefaultTimeout.String(),
		},
		Modules: ModulesConfig{
			Resolve: string(domain.ResolveDirect),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/iasql/config.toml.
func DefaultPath() string {
	return platform.ConfigFilePath()
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with a custom environment lookup for testing.
func LoadWithEnv(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(platform.ExpandPath(path)) //nolint:gosec // operator-chosen path
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, err)
			}
		}
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("IASQL_SERVER"); v != "" {
		c.Server.URL = v
	}

	if v := getenv("IASQL_TOKEN"); v != "" {
		c.Server.Token = v
	}

	if v := getenv("IASQL_DB"); v != "" {
		c.Defaults.DB = v
	}
}

// Validate checks values that cannot be caught by the TOML decoder.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return fmt.Errorf("%w: server.url is empty", ErrInvalidConfig)
	}

	if c.Server.Timeout != "" {
		d, err := time.ParseDuration(c.Server.Timeout)
		if err != nil {
			return fmt.Errorf("%w: server.timeout: %w", ErrInvalidConfig, err)
		}

		if d < 0 {
			return fmt.Errorf("%w: server.timeout must not be negative", ErrInvalidConfig)
		}
	}

	if _, err := domain.ParseResolveStrategy(c.Modules.Resolve); err != nil {
		return fmt.Errorf("%w: modules.resolve: %w", ErrInvalidConfig, err)
	}

	return nil
}

// RequestTimeout returns the parsed server timeout, zero meaning none.
func (s ServerConfig) RequestTimeout() time.Duration {
	if s.Timeout == "" {
		return DefaultTimeout
	}

	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return DefaultTimeout
	}

	return d
}

// ResolveStrategy returns the configured dependency strategy.
func (m ModulesConfig) ResolveStrategy() domain.ResolveStrategy {
	strategy, err := domain.ParseResolveStrategy(m.Resolve)
	if err != nil {
		return domain.ResolveDirect
	}

	return strategy
}
