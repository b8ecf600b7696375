package lora

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adrianliechti/portrait/pkg/provider"
	"github.com/adrianliechti/portrait/pkg/provider/replicate"

	"github.com/google/uuid"
)

var _ provider.Renderer = (*Renderer)(nil)

// FluxDevLora is the flux-dev checkpoint with runtime LoRA loading.
// https://replicate.com/lucataco/flux-dev-lora/api/schema#input-schema
const FluxDevLora = "lucataco/flux-dev-lora:091495765fa5ef2725a175a57b276ec30dc9d39c22d30410f2ede68a3eab66b3"

type Renderer struct {
	*replicate.Client
}

func NewRenderer(model string, options ...replicate.Option) (*Renderer, error) {
	if model == "" {
		model = FluxDevLora
	}

	client, err := replicate.New(model, options...)

	if err != nil {
		return nil, err
	}

	return &Renderer{
		Client: client,
	}, nil
}

func (r *Renderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	var imageURL string

	if len(options.Images) > 0 {
		if len(options.Images) > 1 {
			return nil, errors.New("only one image input is supported")
		}

		file, err := r.UploadFile(ctx, options.Images[0])

		if err != nil {
			return nil, err
		}

		fileID := file.ID
		imageURL = file.URLs["get"]

		defer func() {
			r.DeleteFile(context.Background(), fileID)
		}()
	}

	input := convertInput(prompt, imageURL, options)

	output, err := r.Run(ctx, input)

	if err != nil {
		return nil, err
	}

	url, err := convertOutput(output)

	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()

	if err != nil {
		return nil, err
	}

	return &provider.Rendering{
		ID:    id.String(),
		Model: r.Model(),

		URL: url,
	}, nil
}

func convertInput(prompt, imageURL string, options *provider.RenderOptions) replicate.PredictionInput {
	input := replicate.PredictionInput{
		"prompt": prompt,
	}

	if imageURL != "" {
		input["image"] = imageURL
	}

	if options.Adapter != "" {
		input["hf_lora"] = options.Adapter
	}

	if options.Count > 0 {
		input["num_outputs"] = options.Count
	}

	if options.AspectRatio != "" {
		input["aspect_ratio"] = options.AspectRatio
	}

	if options.Format != "" {
		input["output_format"] = strings.ToLower(options.Format)
	}

	if options.Quality > 0 {
		input["output_quality"] = options.Quality
	}

	if options.Guidance > 0 {
		input["guidance_scale"] = options.Guidance
	}

	if options.Strength > 0 {
		input["prompt_strength"] = options.Strength
	}

	if options.Steps > 0 {
		input["num_inference_steps"] = options.Steps
	}

	return input
}

// convertOutput picks the first element of a list output and passes a single value through.
func convertOutput(output replicate.PredictionOutput) (string, error) {
	switch v := output.(type) {
	case string:
		return v, nil

	case []string:
		if len(v) == 0 {
			return "", provider.ErrEmptyOutput
		}

		return v[0], nil

	case []any:
		if len(v) == 0 {
			return "", provider.ErrEmptyOutput
		}

		return convertOutput(v[0])

	case nil:
		return "", provider.ErrEmptyOutput
	}

	return "", fmt.Errorf("unsupported output type %T", output)
}
