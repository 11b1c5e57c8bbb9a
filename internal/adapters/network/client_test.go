// SPDX-FileCopyrightText: 2025 The IaSQL Authors
// SPDX-License-Identifier: EUPL-1.2

package network

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iasql/iasql-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake service saw.
type recordedRequest struct {
	Path   string
	Auth   string
	Body   map[string]any
	Method string
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	requests := &[]recordedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		body := map[string]any{}
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &body))
		}

		*requests = append(*requests, recordedRequest{
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
			Method: r.Method,
		})

		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	return srv, requests
}

func TestHTTPClient_FetchCatalog(t *testing.T) {
	t.Parallel()

	srv, requests := newTestServer(t, http.StatusOK,
		`[{"name":"aws_account","dependencies":[]},{"name":"aws_vpc","dependencies":["aws_account"]}]`)

	client := NewHTTPClient(Options{BaseURL: srv.URL + "/", Token: "secret", Timeout: time.Second})

	catalog, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"aws_account", "aws_vpc"}, catalog.Names())

	vpc, ok := catalog.Get("aws_vpc")
	require.True(t, ok)
	assert.Equal(t, []string{"aws_account"}, vpc.Dependencies)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/v1/module/list", got.Path)
	assert.Equal(t, "Bearer secret", got.Auth)
	assert.Equal(t, map[string]any{"all": true}, got.Body)
}

func TestHTTPClient_FetchInstalled(t *testing.T) {
	t.Parallel()

	srv, requests := newTestServer(t, http.StatusOK, `[{"name":"aws_account","dependencies":[]}]`)
	client := NewHTTPClient(Options{BaseURL: srv.URL})

	installed, err := client.FetchInstalled(context.Background(), "prod")
	require.NoError(t, err)
	assert.Equal(t, []string{"aws_account"}, installed.Names())

	require.Len(t, *requests, 1)
	assert.Equal(t, map[string]any{"installed": true, "dbAlias": "prod"}, (*requests)[0].Body)
	assert.Empty(t, (*requests)[0].Auth)
}

func TestHTTPClient_ListDatabases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{"aliases", `["prod","staging"]`, []string{"prod", "staging"}},
		{"no databases", `[]`, []string{}},
		{"service without auth", ``, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, requests := newTestServer(t, http.StatusOK, tt.response)
			client := NewHTTPClient(Options{BaseURL: srv.URL, Token: "secret"})

			dbs, err := client.ListDatabases(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, dbs)

			require.Len(t, *requests, 1)
			assert.Equal(t, http.MethodGet, (*requests)[0].Method)
			assert.Equal(t, "/v1/db/", (*requests)[0].Path)
			assert.Equal(t, "Bearer secret", (*requests)[0].Auth)
			assert.Empty(t, (*requests)[0].Body)
		})
	}
}

func TestHTTPClient_ChangeModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		call func(*HTTPClient) error
	}{
		{
			name: "install",
			path: "/v1/module/install",
			call: func(c *HTTPClient) error {
				return c.InstallModules(context.Background(), "prod", []string{"aws_vpc", "aws_account"})
			},
		},
		{
			name: "remove",
			path: "/v1/module/remove",
			call: func(c *HTTPClient) error {
				return c.RemoveModules(context.Background(), "prod", []string{"aws_vpc", "aws_account"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, requests := newTestServer(t, http.StatusOK, "")
			client := NewHTTPClient(Options{BaseURL: srv.URL})

			require.NoError(t, tt.call(client))
			require.Len(t, *requests, 1)
			assert.Equal(t, tt.path, (*requests)[0].Path)
			assert.Equal(t, map[string]any{
				"list":    []any{"aws_vpc", "aws_account"},
				"dbAlias": "prod",
			}, (*requests)[0].Body)
		})
	}
}

func TestHTTPClient_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		response string
		want     string
	}{
		{
			name:     "message body",
			status:   http.StatusInternalServerError,
			response: `{"message":"db prod is not reachable"}`,
			want:     "db prod is not reachable",
		},
		{
			name:     "json string body",
			status:   http.StatusBadRequest,
			response: `"ERROR: No packages provided"`,
			want:     "ERROR: No packages provided",
		},
		{
			name:     "plain text body",
			status:   http.StatusBadGateway,
			response: "upstream down\n",
			want:     "upstream down",
		},
		{
			name:     "empty body",
			status:   http.StatusUnauthorized,
			response: "",
			want:     "401 Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newTestServer(t, tt.status, tt.response)
			client := NewHTTPClient(Options{BaseURL: srv.URL})

			_, err := client.FetchCatalog(context.Background())
			require.ErrorIs(t, err, domain.ErrCatalogFetch)

			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.status, svcErr.Status)
			assert.Equal(t, tt.want, svcErr.Message)

			err = client.InstallModules(context.Background(), "prod", []string{"x"})
			require.ErrorIs(t, err, domain.ErrCommandExecution)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHTTPClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewHTTPClient(Options{BaseURL: url, Timeout: time.Second})

	_, err := client.FetchInstalled(context.Background(), "prod")
	require.ErrorIs(t, err, domain.ErrCatalogFetch)
	assert.Contains(t, err.Error(), "module/list")
}
