// Package config loads process settings for the formflow command from the
// environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds the endpoints and knobs the CLI wires into the pipeline.
type Config struct {
	// AuthURL is the credentials sign-in endpoint. ENV: FORMFLOW_AUTH_URL
	AuthURL string `env:"FORMFLOW_AUTH_URL,default=http://localhost:3000/api/auth/callback/credentials"`
	// APIURL is the base URL records are created under. ENV: FORMFLOW_API_URL
	APIURL string `env:"FORMFLOW_API_URL,default=http://localhost:3000/api"`
	// LandingPath is where a successful sign-in navigates. ENV: FORMFLOW_LANDING_PATH
	LandingPath string `env:"FORMFLOW_LANDING_PATH,default=/dashboard"`
	// HTTPTimeout bounds each submission request. ENV: FORMFLOW_HTTP_TIMEOUT
	HTTPTimeout time.Duration `env:"FORMFLOW_HTTP_TIMEOUT,default=10s"`
	// OpenAPI optionally points at a document forms are derived from. ENV: FORMFLOW_OPENAPI
	OpenAPI string `env:"FORMFLOW_OPENAPI"`
}

// Load decodes the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that endpoints are absolute URLs and the timeout is positive.
func (c Config) Validate() error {
	for name, raw := range map[string]string{"FORMFLOW_AUTH_URL": c.AuthURL, "FORMFLOW_API_URL": c.APIURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: %s must be an absolute URL, got %q", name, raw)
		}
	}
	if !strings.HasPrefix(c.LandingPath, "/") {
		return fmt.Errorf("config: FORMFLOW_LANDING_PATH must start with /, got %q", c.LandingPath)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: FORMFLOW_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}
