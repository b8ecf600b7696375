package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/adrianliechti/portrait/server/api"
)

// FallbackMessage is shown when the server fails without an error message.
const FallbackMessage = "Có lỗi xảy ra khi tạo ảnh"

type PortraitService struct {
	Options []RequestOption
}

func NewPortraitService(opts ...RequestOption) PortraitService {
	return PortraitService{
		Options: opts,
	}
}

type Preset = api.Preset

// Error is a non-2xx answer of the generation endpoint.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// New requests a portrait for the face image (a data URL) and returns the
// generated image URL.
func (s *PortraitService) New(ctx context.Context, faceImage string, opts ...RequestOption) (string, error) {
	cfg := newRequestConfig(append(s.Options, opts...)...)

	body, err := json.Marshal(api.GenerateRequest{
		FaceImage: faceImage,
	})

	if err != nil {
		return "", err
	}

	u, err := url.JoinPath(cfg.URL, "/api/generate")

	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))

	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := do(cfg, req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	var result struct {
		api.GenerateResponse
		api.ErrorResponse
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode < 300 {
		return "", err
	}

	if resp.StatusCode >= 300 {
		message := result.Error

		if message == "" {
			message = FallbackMessage
		}

		return "", &Error{
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	return result.Output, nil
}

func (s *PortraitService) Preset(ctx context.Context, opts ...RequestOption) (*Preset, error) {
	cfg := newRequestConfig(append(s.Options, opts...)...)

	u, err := url.JoinPath(cfg.URL, "/api/preset")

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)

	if err != nil {
		return nil, err
	}

	resp, err := do(cfg, req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(data))
	}

	var preset Preset

	if err := json.NewDecoder(resp.Body).Decode(&preset); err != nil {
		return nil, err
	}

	return &preset, nil
}

// Download fetches the generated image at imageURL and copies it to w.
func (s *PortraitService) Download(ctx context.Context, imageURL string, w io.Writer, opts ...RequestOption) error {
	cfg := newRequestConfig(append(s.Options, opts...)...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)

	if err != nil {
		return err
	}

	resp, err := cfg.Client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

func do(cfg *RequestConfig, req *http.Request) (*http.Response, error) {
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	return cfg.Client.Do(req)
}
