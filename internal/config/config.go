package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModePublic   = "public"
	ModeReadonly = "readonly"
	ModeMock     = "mock"
)

type Config struct {
	Port            string
	CollectorMode   string
	BaseURL         string
	UserAgent       string
	RequestInterval time.Duration
	RequestTimeout  time.Duration
	SessionTTL      time.Duration
	MaxRetries      int
	CategoriesFile  string
	DefaultCategory string
	DataFile        string
}

// Load reads .env (if present) and then the process environment
func Load() (Config, error) {
	godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:            orDefault(getenv("PORT"), "8080"),
		CollectorMode:   orDefault(getenv("COLLECTOR_MODE"), ModePublic),
		BaseURL:         orDefault(getenv("REDDIT_BASE_URL"), "https://www.reddit.com"),
		UserAgent:       getenv("REDDIT_USER_AGENT"),
		CategoriesFile:  getenv("CATEGORIES_FILE"),
		DefaultCategory: orDefault(getenv("DEFAULT_CATEGORY"), "Viral"),
		DataFile:        orDefault(getenv("DATA_FILE"), "data/served.json"),
	}

	var err error
	if cfg.RequestInterval, err = parseDuration(getenv, "REQUEST_INTERVAL", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration(getenv, "REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = parseDuration(getenv, "SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}

	cfg.MaxRetries = 30
	if raw := getenv("MAX_RETRIES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid MAX_RETRIES %q", raw)
		}
		cfg.MaxRetries = n
	}

	switch cfg.CollectorMode {
	case ModePublic, ModeReadonly, ModeMock:
	default:
		return Config{}, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'public', 'readonly', or 'mock')", cfg.CollectorMode)
	}
	return cfg, nil
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
