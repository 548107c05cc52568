package config

import (
	"os"
	"strconv"
	"time"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

type Config struct {
	ServerURL string
	Token     string
	APIKey    string
	Language  string
	LogLevel  string

	PollInterval time.Duration
	HTTPTimeout  time.Duration

	HistoryPath string
	StagingDir  string

	MetricsPort string
}

func Load() Config {
	return Config{
		ServerURL: mustEnv("PLAUD_SERVER_URL", ""),
		Token:     mustEnv("PLAUD_TOKEN", ""),
		APIKey:    mustEnv("PLAUD_API_KEY", ""),
		Language:  mustEnv("PLAUD_LANGUAGE", "ru"),
		LogLevel:  mustEnv("LOG_LEVEL", "info"),

		PollInterval: time.Duration(mustEnvInt("PLAUD_POLL_INTERVAL_SECONDS", 5)) * time.Second,
		HTTPTimeout:  time.Duration(mustEnvInt("PLAUD_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		HistoryPath: mustEnv("PLAUD_HISTORY_PATH", "./data/history.json"),
		StagingDir:  mustEnv("PLAUD_STAGING_DIR", "./data/staging"),

		MetricsPort: mustEnv("PLAUD_METRICS_PORT", ""),
	}
}

// AuthContext builds the per-call credential value from configuration.
func (c Config) AuthContext() domain.AuthContext {
	return domain.AuthContext{
		ServerURL: c.ServerURL,
		Token:     c.Token,
		APIKey:    c.APIKey,
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
