package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PLAUD_SERVER_URL", "PLAUD_TOKEN", "PLAUD_API_KEY", "PLAUD_LANGUAGE",
		"LOG_LEVEL", "PLAUD_POLL_INTERVAL_SECONDS", "PLAUD_HTTP_TIMEOUT_SECONDS",
		"PLAUD_HISTORY_PATH", "PLAUD_STAGING_DIR", "PLAUD_METRICS_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Language != "ru" {
		t.Errorf("language = %q, want ru", cfg.Language)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("poll interval = %v, want 5s", cfg.PollInterval)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("http timeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.HistoryPath != "./data/history.json" {
		t.Errorf("history path = %q", cfg.HistoryPath)
	}
	if cfg.StagingDir != "./data/staging" {
		t.Errorf("staging dir = %q", cfg.StagingDir)
	}
	if cfg.MetricsPort != "" {
		t.Errorf("metrics port = %q, want empty", cfg.MetricsPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAUD_SERVER_URL", "https://transcriber.example.com")
	t.Setenv("PLAUD_TOKEN", "tok-1")
	t.Setenv("PLAUD_LANGUAGE", "en")
	t.Setenv("PLAUD_POLL_INTERVAL_SECONDS", "10")
	t.Setenv("PLAUD_METRICS_PORT", "9101")

	cfg := Load()
	if cfg.ServerURL != "https://transcriber.example.com" {
		t.Errorf("server url = %q", cfg.ServerURL)
	}
	if cfg.Token != "tok-1" {
		t.Errorf("token = %q", cfg.Token)
	}
	if cfg.Language != "en" {
		t.Errorf("language = %q, want en", cfg.Language)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("poll interval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.MetricsPort != "9101" {
		t.Errorf("metrics port = %q, want 9101", cfg.MetricsPort)
	}
}

func TestLoadMalformedIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAUD_POLL_INTERVAL_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("poll interval = %v, want default 5s", cfg.PollInterval)
	}
}

func TestAuthContext(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAUD_SERVER_URL", "https://transcriber.example.com")
	t.Setenv("PLAUD_API_KEY", "key-1")

	auth := Load().AuthContext()
	if auth.ServerURL != "https://transcriber.example.com" {
		t.Errorf("server url = %q", auth.ServerURL)
	}
	if auth.APIKey != "key-1" || auth.Token != "" {
		t.Errorf("auth = %+v", auth)
	}
}
