package portrait

import (
	"context"
	"log/slog"
	"strings"

	"github.com/adrianliechti/portrait/pkg/provider"

	"github.com/vincent-petithory/dataurl"
)

type Service struct {
	renderer provider.Renderer
	preset   Preset
}

type Option func(*Service)

func WithPreset(preset Preset) Option {
	return func(s *Service) {
		s.preset = preset
	}
}

type Portrait struct {
	ID    string
	Model string

	URL string
}

// New creates the service. A nil renderer is allowed and reported as a
// configuration error on every Generate call.
func New(renderer provider.Renderer, options ...Option) *Service {
	s := &Service{
		renderer: renderer,
		preset:   DefaultPreset(),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *Service) Preset() Preset {
	return s.preset
}

func (s *Service) Generate(ctx context.Context, faceImage string) (*Portrait, error) {
	if strings.TrimSpace(faceImage) == "" {
		return nil, ErrMissingImage
	}

	var images []provider.File

	if s.preset.Conditioning {
		file, err := decodeImage(faceImage)

		if err != nil {
			return nil, err
		}

		images = append(images, *file)
	}

	if s.renderer == nil {
		return nil, ErrNotConfigured
	}

	slog.DebugContext(ctx, "generating portrait", "model", s.preset.Model, "conditioning", s.preset.Conditioning)

	rendering, err := s.renderer.Render(ctx, s.preset.Prompt, s.preset.renderOptions(images...))

	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	return &Portrait{
		ID:    rendering.ID,
		Model: rendering.Model,

		URL: rendering.URL,
	}, nil
}

func decodeImage(val string) (*provider.File, error) {
	url, err := dataurl.DecodeString(val)

	if err != nil {
		return nil, ErrInvalidImage
	}

	if url.Type != "image" {
		return nil, ErrInvalidImage
	}

	return &provider.File{
		Name: "face." + url.Subtype,

		Content:     url.Data,
		ContentType: url.ContentType(),
	}, nil
}
