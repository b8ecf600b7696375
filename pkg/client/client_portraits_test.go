package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/portrait/pkg/client"

	"github.com/stretchr/testify/require"
)

func TestPortraitsNew(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")

		if req["faceImage"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Face image is required"}`))
			return
		}

		w.Write([]byte(`{"output":"https://example.com/out.webp"}`))
	}))

	defer server.Close()

	c := client.New(server.URL, client.WithToken("secret"))

	output, err := c.Portraits.New(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/out.webp", output)

	_, err = c.Portraits.New(context.Background(), "")

	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Face image is required", apiErr.Message)
}

func TestPortraitsNewFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	defer server.Close()

	c := client.New(server.URL)

	_, err := c.Portraits.New(context.Background(), "data:image/png;base64,AAAA")
	require.EqualError(t, err, client.FallbackMessage)
}

func TestPortraitsDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		w.Write([]byte("RIFF....WEBP"))
	}))

	defer server.Close()

	c := client.New(server.URL)

	var buf bytes.Buffer
	require.NoError(t, c.Portraits.Download(context.Background(), server.URL+"/out.webp", &buf))
	require.Equal(t, "RIFF....WEBP", buf.String())
}

func TestPortraitsPreset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/preset", r.URL.Path)
		w.Write([]byte(`{"model":"lucataco/flux-dev-lora","num_inference_steps":28,"aspect_ratio":"3:4"}`))
	}))

	defer server.Close()

	c := client.New(server.URL)

	preset, err := c.Portraits.Preset(context.Background())
	require.NoError(t, err)
	require.Equal(t, "lucataco/flux-dev-lora", preset.Model)
	require.Equal(t, 28, preset.Steps)
}
