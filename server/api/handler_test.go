package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/portrait/pkg/portrait"
	"github.com/adrianliechti/portrait/pkg/provider"
	"github.com/adrianliechti/portrait/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/png;base64,iVBORw0KGgo="

type fakeRenderer struct {
	url string
	err error

	calls atomic.Int64
}

func (r *fakeRenderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Rendering, error) {
	r.calls.Add(1)

	if r.err != nil {
		return nil, r.err
	}

	return &provider.Rendering{URL: r.url}, nil
}

func newTestServer(t *testing.T, renderer provider.Renderer) *httptest.Server {
	t.Helper()

	h, err := api.New(portrait.New(renderer))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/api", h.Attach)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func post(t *testing.T, server *httptest.Server, body string) (int, map[string]string) {
	t.Helper()

	resp, err := http.Post(server.URL+"/api/generate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	return resp.StatusCode, result
}

func TestGenerateMissingImage(t *testing.T) {
	renderer := &fakeRenderer{url: "https://example.com/out.webp"}

	for _, server := range []*httptest.Server{
		newTestServer(t, renderer),
		newTestServer(t, nil),
	} {
		for _, body := range []string{`{}`, `{"faceImage":""}`, `{"faceImage":null}`, `not json`} {
			code, result := post(t, server, body)

			require.Equal(t, http.StatusBadRequest, code, body)
			require.Equal(t, "Face image is required", result["error"])
		}
	}

	require.Zero(t, renderer.calls.Load())
}

func TestGenerateNotConfigured(t *testing.T) {
	server := newTestServer(t, nil)

	code, result := post(t, server, `{"faceImage":"`+testImage+`"}`)

	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "REPLICATE_API_TOKEN is not configured", result["error"])
}

func TestGenerateSuccess(t *testing.T) {
	renderer := &fakeRenderer{url: "https://replicate.delivery/out-0.webp"}
	server := newTestServer(t, renderer)

	code, result := post(t, server, `{"faceImage":"`+testImage+`"}`)

	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "https://replicate.delivery/out-0.webp", result["output"])
	require.Equal(t, int64(1), renderer.calls.Load())
}

func TestGenerateProviderError(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("Invalid input: prompt_strength must be <= 1")}
	server := newTestServer(t, renderer)

	code, result := post(t, server, `{"faceImage":"`+testImage+`"}`)

	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "Invalid input: prompt_strength must be <= 1", result["error"])
}

func TestPreset(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/preset")
	require.NoError(t, err)
	defer resp.Body.Close()

	var preset api.Preset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preset))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, portrait.DefaultPreset().Model, preset.Model)
	require.Equal(t, 28, preset.Steps)
	require.Equal(t, "3:4", preset.AspectRatio)
}
