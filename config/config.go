package config

import (
	"bytes"
	"context"
	"os"

	"github.com/adrianliechti/portrait/pkg/auth"
	"github.com/adrianliechti/portrait/pkg/portrait"
	"github.com/adrianliechti/portrait/pkg/provider"

	"github.com/caarlos0/env/v9"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Authorizers []auth.Provider

	Preset portrait.Preset

	renderer provider.Renderer
}

type environment struct {
	Address string `env:"ADDRESS" envDefault:":8080"`

	Token string `env:"REPLICATE_API_TOKEN"`
	URL   string `env:"REPLICATE_API_URL"`
}

// Parse reads the process environment and, if path is not empty, the YAML
// config file at path.
func Parse(ctx context.Context, path string) (*Config, error) {
	var e environment

	if err := env.Parse(&e); err != nil {
		return nil, err
	}

	if e.Address == "" {
		e.Address = ":8080"
	}

	file := &configFile{}

	if path != "" {
		f, err := parseFile(path)

		if err != nil {
			return nil, err
		}

		file = f
	}

	c := &Config{
		Address: e.Address,

		Preset: portrait.DefaultPreset(),
	}

	if err := c.registerAuthorizers(ctx, file); err != nil {
		return nil, err
	}

	if err := c.registerPortrait(file, e); err != nil {
		return nil, err
	}

	return c, nil
}

// Renderer returns the configured renderer or nil when no provider token is set.
func (c *Config) Renderer() provider.Renderer {
	return c.renderer
}

func (c *Config) Portrait() *portrait.Service {
	return portrait.New(c.renderer, portrait.WithPreset(c.Preset))
}

type configFile struct {
	Authorizers []authorizerConfig `yaml:"authorizers"`

	Limit *int `yaml:"limit"`

	Proxy *proxyConfig `yaml:"proxy"`

	Portrait portraitConfig `yaml:"portrait"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
