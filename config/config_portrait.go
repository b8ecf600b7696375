package config

import (
	"github.com/adrianliechti/portrait/pkg/limiter"
	"github.com/adrianliechti/portrait/pkg/otel"
	"github.com/adrianliechti/portrait/pkg/portrait"
	"github.com/adrianliechti/portrait/pkg/provider/replicate"
	"github.com/adrianliechti/portrait/pkg/provider/replicate/lora"
)

type portraitConfig struct {
	Model  *string `yaml:"model"`
	Prompt *string `yaml:"prompt"`

	LoRA *string `yaml:"lora"`

	Outputs     *int    `yaml:"num_outputs"`
	AspectRatio *string `yaml:"aspect_ratio"`

	Format  *string `yaml:"output_format"`
	Quality *int    `yaml:"output_quality"`

	Guidance *float64 `yaml:"guidance_scale"`
	Strength *float64 `yaml:"prompt_strength"`
	Steps    *int     `yaml:"num_inference_steps"`

	Conditioning *bool `yaml:"conditioning"`
}

func (cfg portraitConfig) apply(p portrait.Preset) portrait.Preset {
	set(&p.Model, cfg.Model)
	set(&p.Prompt, cfg.Prompt)
	set(&p.LoRA, cfg.LoRA)
	set(&p.Outputs, cfg.Outputs)
	set(&p.AspectRatio, cfg.AspectRatio)
	set(&p.Format, cfg.Format)
	set(&p.Quality, cfg.Quality)
	set(&p.Guidance, cfg.Guidance)
	set(&p.Strength, cfg.Strength)
	set(&p.Steps, cfg.Steps)
	set(&p.Conditioning, cfg.Conditioning)

	return p
}

func set[T any](dst *T, val *T) {
	if val != nil {
		*dst = *val
	}
}

func (c *Config) registerPortrait(f *configFile, e environment) error {
	c.Preset = f.Portrait.apply(c.Preset)

	// without a token the service still starts and reports a configuration error per request
	if e.Token == "" {
		return nil
	}

	options := []replicate.Option{
		replicate.WithToken(e.Token),
	}

	if e.URL != "" {
		options = append(options, replicate.WithURL(e.URL))
	}

	client, err := f.Proxy.proxyClient()

	if err != nil {
		return err
	}

	if client != nil {
		options = append(options, replicate.WithClient(client))
	}

	r, err := lora.NewRenderer(c.Preset.Model, options...)

	if err != nil {
		return err
	}

	c.renderer = otel.NewRenderer("replicate", c.Preset.Model, limiter.NewRenderer(createLimiter(f.Limit), r))

	return nil
}
