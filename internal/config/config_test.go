package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envOf(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ModePublic, cfg.CollectorMode)
	require.Equal(t, "https://www.reddit.com", cfg.BaseURL)
	require.Equal(t, 2*time.Second, cfg.RequestInterval)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, 30, cfg.MaxRetries)
	require.Equal(t, "Viral", cfg.DefaultCategory)
	require.Equal(t, "data/served.json", cfg.DataFile)
	require.Empty(t, cfg.UserAgent)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":              "9000",
		"COLLECTOR_MODE":    "mock",
		"REQUEST_INTERVAL":  "0s",
		"REQUEST_TIMEOUT":   "3s",
		"SESSION_TTL":       "5m",
		"MAX_RETRIES":       "5",
		"CATEGORIES_FILE":   "input/categories.csv",
		"DEFAULT_CATEGORY":  "Hot",
		"REDDIT_USER_AGENT": "feed/1.0",
	}))
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, ModeMock, cfg.CollectorMode)
	require.Zero(t, cfg.RequestInterval)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
	require.Equal(t, 5, cfg.MaxRetries)
	require.Equal(t, "input/categories.csv", cfg.CategoriesFile)
	require.Equal(t, "Hot", cfg.DefaultCategory)
	require.Equal(t, "feed/1.0", cfg.UserAgent)
}

func TestFromEnv_Invalid(t *testing.T) {
	for _, kv := range []map[string]string{
		{"COLLECTOR_MODE": "api"},
		{"MAX_RETRIES": "-1"},
		{"MAX_RETRIES": "many"},
		{"REQUEST_TIMEOUT": "0s"},
		{"REQUEST_INTERVAL": "soon"},
		{"SESSION_TTL": "-1m"},
	} {
		_, err := FromEnv(envOf(kv))
		require.Error(t, err, kv)
	}
}
