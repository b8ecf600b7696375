package config

import (
	"net/http"
	"net/url"
	"time"
)

// proxyConfig shapes the HTTP client used to reach the image provider.
type proxyConfig struct {
	URL string `yaml:"url"`

	// bounds a whole generation, including upload and polling
	Timeout time.Duration `yaml:"timeout"`
}

func (cfg *proxyConfig) proxyClient() (*http.Client, error) {
	if cfg == nil || (cfg.URL == "" && cfg.Timeout <= 0) {
		return nil, nil
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.URL != "" {
		proxyURL, err := url.Parse(cfg.URL)

		if err != nil {
			return nil, err
		}

		tr.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Transport: tr,
		Timeout:   max(cfg.Timeout, 0),
	}, nil
}
