package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_EP_USER", "service-account")

	path := writeConfig(t, `
sources:
  europlaza:
    username: ${TEST_EP_USER}
    password: hunter2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sources.Europlaza.Username != "service-account" {
		t.Errorf("username = %q, want service-account", cfg.Sources.Europlaza.Username)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "content_dir: out/menu\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ContentDir != "out/menu" {
		t.Errorf("content_dir = %q", cfg.ContentDir)
	}
	if cfg.Timezone != "Europe/Vienna" {
		t.Errorf("timezone default = %q", cfg.Timezone)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("retry.max_attempts default = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.InitialDelay != 256*time.Millisecond {
		t.Errorf("retry.initial_delay default = %v", cfg.Retry.InitialDelay)
	}
	if cfg.Sources.SaiCookArt.APIURL == "" {
		t.Error("sai cookart API URL default missing")
	}
	if cfg.Sources.Europlaza.TokenURL == "" || cfg.Sources.Europlaza.APIURL == "" {
		t.Error("europlaza endpoint defaults missing")
	}
}

func TestDefault_CredentialsFromEnv(t *testing.T) {
	t.Setenv("EUROPLAZA_USER", "svc")
	t.Setenv("EUROPLAZA_PASSWORD", "pw")

	cfg := Default()
	if cfg.Sources.Europlaza.Username != "svc" || cfg.Sources.Europlaza.Password != "pw" {
		t.Errorf("credentials not taken from env: %+v", cfg.Sources.Europlaza)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed with credentials present: %v", err)
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	t.Setenv("EUROPLAZA_USER", "")
	t.Setenv("EUROPLAZA_PASSWORD", "")

	cfg := Default()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Validate = %v, want ErrMissingCredentials", err)
	}
}

func TestValidate_BadTimezone(t *testing.T) {
	t.Setenv("EUROPLAZA_USER", "svc")
	t.Setenv("EUROPLAZA_PASSWORD", "pw")

	cfg := Default()
	cfg.Timezone = "Mars/Olympus_Mons"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
