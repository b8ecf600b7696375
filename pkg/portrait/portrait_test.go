package portrait_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/portrait/pkg/portrait"
	"github.com/adrianliechti/portrait/pkg/provider"

	"github.com/stretchr/testify/require"
	"github.com/vincent-petithory/dataurl"
)

type fakeRenderer struct {
	prompt  string
	options *provider.RenderOptions

	result *provider.Rendering
	err    error
}

func (r *fakeRenderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Rendering, error) {
	r.prompt = input
	r.options = options

	return r.result, r.err
}

var testImage = dataurl.New([]byte("\x89PNG\r\n\x1a\n"), "image/png").String()

func TestGenerateRequiresImage(t *testing.T) {
	for _, s := range []*portrait.Service{
		portrait.New(nil),
		portrait.New(&fakeRenderer{}),
	} {
		_, err := s.Generate(context.Background(), "")

		var verr *portrait.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "Face image is required", verr.Message)
	}
}

func TestGenerateRequiresRenderer(t *testing.T) {
	s := portrait.New(nil)

	_, err := s.Generate(context.Background(), testImage)

	var cerr *portrait.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "REPLICATE_API_TOKEN is not configured", cerr.Message)
}

func TestGenerateSendsPreset(t *testing.T) {
	r := &fakeRenderer{
		result: &provider.Rendering{ID: "1", Model: "m", URL: "https://example.com/out.webp"},
	}

	s := portrait.New(r)

	result, err := s.Generate(context.Background(), testImage)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/out.webp", result.URL)

	preset := portrait.DefaultPreset()

	require.Equal(t, preset.Prompt, r.prompt)
	require.Equal(t, "alvdansen/frosting_lane_flux", r.options.Adapter)
	require.Equal(t, 1, r.options.Count)
	require.Equal(t, "3:4", r.options.AspectRatio)
	require.Equal(t, "webp", r.options.Format)
	require.Equal(t, 90, r.options.Quality)
	require.Equal(t, 3.5, r.options.Guidance)
	require.Equal(t, 0.8, r.options.Strength)
	require.Equal(t, 28, r.options.Steps)

	// the face image is not forwarded unless conditioning is enabled
	require.Empty(t, r.options.Images)
}

func TestGenerateDoesNotShareOptions(t *testing.T) {
	r := &fakeRenderer{result: &provider.Rendering{URL: "u"}}
	s := portrait.New(r)

	_, err := s.Generate(context.Background(), testImage)
	require.NoError(t, err)

	r.options.Steps = 1
	r.options.Adapter = "changed"

	_, err = s.Generate(context.Background(), testImage)
	require.NoError(t, err)

	require.Equal(t, 28, r.options.Steps)
	require.Equal(t, "alvdansen/frosting_lane_flux", r.options.Adapter)
	require.Equal(t, 28, s.Preset().Steps)
}

func TestGenerateWithConditioning(t *testing.T) {
	preset := portrait.DefaultPreset()
	preset.Conditioning = true

	r := &fakeRenderer{result: &provider.Rendering{URL: "u"}}
	s := portrait.New(r, portrait.WithPreset(preset))

	_, err := s.Generate(context.Background(), testImage)
	require.NoError(t, err)

	require.Len(t, r.options.Images, 1)
	require.Equal(t, "image/png", r.options.Images[0].ContentType)
	require.Equal(t, "face.png", r.options.Images[0].Name)
	require.Equal(t, []byte("\x89PNG\r\n\x1a\n"), r.options.Images[0].Content)

	_, err = s.Generate(context.Background(), "not a data url")

	var verr *portrait.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGenerateProviderError(t *testing.T) {
	cause := errors.New("Prediction failed: CUDA out of memory")

	s := portrait.New(&fakeRenderer{err: cause})

	_, err := s.Generate(context.Background(), testImage)

	var perr *portrait.ProviderError
	require.ErrorAs(t, err, &perr)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "Prediction failed: CUDA out of memory", err.Error())
}
