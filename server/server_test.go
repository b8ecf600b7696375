package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrianliechti/portrait/config"
	"github.com/adrianliechti/portrait/server"

	"github.com/stretchr/testify/require"
)

const testBody = `{"faceImage":"data:image/png;base64,iVBORw0KGgo="}`

func newTestServer(t *testing.T, yaml string) *httptest.Server {
	t.Helper()

	t.Setenv("REPLICATE_API_TOKEN", "")

	path := ""

	if yaml != "" {
		path = filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))
	}

	cfg, err := config.Parse(context.Background(), path)
	require.NoError(t, err)

	s, err := server.New(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	return ts
}

func TestServerWithoutToken(t *testing.T) {
	ts := newTestServer(t, "")

	resp, err := http.Post(ts.URL+"/api/generate", "application/json", strings.NewReader(testBody))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerAuth(t *testing.T) {
	ts := newTestServer(t, `
authorizers:
  - type: static
    token: secret
`)

	resp, err := http.Post(ts.URL+"/api/generate", "application/json", strings.NewReader(testBody))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/generate", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer secret")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// the page itself is public
	resp, err = http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerCORS(t *testing.T) {
	ts := newTestServer(t, "")

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/generate", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
