// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

// Package network implements the iasql service ports over HTTP.
package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/iasql/iasql-cli/internal/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ServiceError is a non-2xx answer from the iasql service.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Options configures an HTTPClient.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *log.Logger
}

// HTTPClient implements domain.CatalogClient, domain.DatabaseLister and
// domain.ModuleExecutor against the iasql service API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *log.Logger
}

// NewHTTPClient creates a new HTTP client with timeout.
func NewHTTPClient(opts Options) *HTTPClient {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		logger:  logger,
	}
}

type listRequest struct {
	All       bool   `json:"all,omitempty"`
	Installed bool   `json:"installed,omitempty"`
	DBAlias   string `json:"dbAlias,omitempty"`
}

type changeRequest struct {
	List    []string `json:"list"`
	DBAlias string   `json:"dbAlias"`
}

// FetchCatalog returns every module known to the service.
func (c *HTTPClient) FetchCatalog(ctx context.Context) (*domain.Catalog, error) {
	var modules []domain.Module
	if err := c.do(ctx, http.MethodPost, "module/list", listRequest{All: true}, &modules); err != nil {
		return nil, &domain.CatalogFetchError{Err: err}
	}

	return domain.NewCatalog(modules), nil
}

// FetchInstalled returns the modules installed on a database.
func (c *HTTPClient) FetchInstalled(ctx context.Context, db string) (*domain.InstalledSet, error) {
	var modules []domain.Module
	if err := c.do(ctx, http.MethodPost, "module/list", listRequest{Installed: true, DBAlias: db}, &modules); err != nil {
		return nil, &domain.CatalogFetchError{Err: err}
	}

	return domain.NewInstalledSet(modules), nil
}

// ListDatabases returns the aliases of the operator's databases. A service
// without authentication answers with an empty body.
func (c *HTTPClient) ListDatabases(ctx context.Context) ([]string, error) {
	var aliases []string
	if err := c.do(ctx, http.MethodGet, "db/", nil, &aliases); err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}

	if aliases == nil {
		aliases = []string{}
	}

	return aliases, nil
}

// InstallModules installs modules on a database.
func (c *HTTPClient) InstallModules(ctx context.Context, db string, modules []string) error {
	if err := c.do(ctx, http.MethodPost, "module/install", changeRequest{List: modules, DBAlias: db}, nil); err != nil {
		return &domain.ExecutionError{Op: "install", Err: err}
	}

	return nil
}

// RemoveModules removes modules from a database.
func (c *HTTPClient) RemoveModules(ctx context.Context, db string, modules []string) error {
	if err := c.do(ctx, http.MethodPost, "module/remove", changeRequest{List: modules, DBAlias: db}, nil); err != nil {
		return &domain.ExecutionError{Op: "remove", Err: err}
	}

	return nil
}

// do sends a request to {baseURL}/v1/{path} and decodes the answer into out.
// A nil body sends no payload.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		payload = bytes.NewReader(raw)
	}

	url := c.baseURL + "/v1/" + path

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("request to %s failed: %w", path, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readServiceError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}

// readServiceError extracts the message of an error response. The service
// answers with {"message": ...}, a bare JSON string, or plain text.
func readServiceError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	raw = bytes.TrimSpace(raw)

	svcErr := &ServiceError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}

	var text string

	switch {
	case json.Unmarshal(raw, &body) == nil && body.Message != "":
		svcErr.Message = body.Message
	case json.Unmarshal(raw, &text) == nil && text != "":
		svcErr.Message = text
	case len(raw) > 0 && raw[0] != '{':
		svcErr.Message = string(raw)
	default:
		svcErr.Message = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return svcErr
}
