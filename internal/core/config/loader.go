package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// ErrMissingCredentials is returned when the Europlaza credentials are
// absent. This is a fatal configuration error: the loader refuses to
// start before any network call is attempted.
var ErrMissingCredentials = errors.New(
	"missing credentials: set EUROPLAZA_USER and EUROPLAZA_PASSWORD")

// Production endpoints, overridable via the config file.
const (
	defaultEuroplazaTokenURL = "https://europlaza.pockethouse.io/oauth/token" +
		"?grant_type=client_credentials&scope=read" +
		"&redirect_uri=https://app.pockethouse.at&response-type=token"
	defaultEuroplazaAPIURL  = "https://europlaza.pockethouse.io/api/graphql"
	defaultSaiCookArtAPIURL = "https://api.sai-cookart.at/foods"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration without reading a file, for setups that
// rely entirely on defaults and environment variables.
func Default() *AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.ContentDir == "" {
		cfg.ContentDir = "src/content/menu"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Vienna"
	}

	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.InitialDelay == 0 {
		cfg.Retry.InitialDelay = 256 * time.Millisecond
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = 30 * time.Second
	}
	if cfg.Retry.BackoffMultiple == 0 {
		cfg.Retry.BackoffMultiple = 2.0
	}
	if cfg.Retry.AttemptTimeout == 0 {
		cfg.Retry.AttemptTimeout = 30 * time.Second
	}

	ep := &cfg.Sources.Europlaza
	if ep.TokenURL == "" {
		ep.TokenURL = defaultEuroplazaTokenURL
	}
	if ep.APIURL == "" {
		ep.APIURL = defaultEuroplazaAPIURL
	}
	if ep.Username == "" {
		ep.Username = os.Getenv("EUROPLAZA_USER")
	}
	if ep.Password == "" {
		ep.Password = os.Getenv("EUROPLAZA_PASSWORD")
	}

	if cfg.Sources.SaiCookArt.APIURL == "" {
		cfg.Sources.SaiCookArt.APIURL = defaultSaiCookArtAPIURL
	}
}

// Validate checks configuration invariants that must hold before any
// network activity begins.
func (c *AppConfig) Validate() error {
	if c.Sources.Europlaza.Username == "" || c.Sources.Europlaza.Password == "" {
		return ErrMissingCredentials
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}
