package config

import (
	"time"

	redisstore "github.com/mittagsplan/loader/internal/infra/store/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	ContentDir string            `yaml:"content_dir"`
	Timezone   string            `yaml:"timezone"`
	Logging    LoggingConfig     `yaml:"logging"`
	Redis      redisstore.Config `yaml:"redis"`
	Retry      RetryConfig       `yaml:"retry"`
	Sources    SourcesConfig     `yaml:"sources"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RetryConfig holds the per-source retry budget.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts"`
	InitialDelay    time.Duration `yaml:"initial_delay"`
	MaxDelay        time.Duration `yaml:"max_delay"`
	BackoffMultiple float64       `yaml:"backoff_multiple"`
	Jitter          bool          `yaml:"jitter"`
	AttemptTimeout  time.Duration `yaml:"attempt_timeout"`
}

// SourcesConfig holds per-upstream settings.
type SourcesConfig struct {
	Europlaza  EuroplazaConfig  `yaml:"europlaza"`
	SaiCookArt SaiCookArtConfig `yaml:"sai_cookart"`
}

// EuroplazaConfig holds the GraphQL upstream's endpoints and credentials.
// Username and password fall back to EUROPLAZA_USER / EUROPLAZA_PASSWORD
// when not set in the file.
type EuroplazaConfig struct {
	TokenURL  string `yaml:"token_url"`
	APIURL    string `yaml:"api_url"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	PageLimit int    `yaml:"page_limit"`
}

// SaiCookArtConfig holds the REST upstream's endpoint.
type SaiCookArtConfig struct {
	APIURL string `yaml:"api_url"`
}
