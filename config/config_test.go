package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "ODDS_API_BASE_URL", "ODDS_CACHE_BACKEND", "ODDS_CACHE_TTL", "HTTP_PORT", "SCHEDULE_TIMEZONE", "DISCORD_BOT_TOKEN"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "sqlite:instance/users.db" {
		t.Errorf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.CacheTTL != 20*time.Minute || cfg.OddsHTTPTimeout != 15*time.Second {
		t.Errorf("unexpected durations %v %v", cfg.CacheTTL, cfg.OddsHTTPTimeout)
	}
	if cfg.OddsAPICallLimit != 500 || cfg.HTTPPort != "5000" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if _, err := cfg.Location(); err != nil {
		t.Errorf("default timezone must load: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ODDS_CACHE_TTL", "300")
	t.Setenv("ODDS_HTTP_TIMEOUT", "2s")
	t.Setenv("ODDS_API_CALL_LIMIT", "not-a-number")
	t.Setenv("RANDOM_SEED", "42")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("bare seconds: expected 5m, got %v", cfg.CacheTTL)
	}
	if cfg.OddsHTTPTimeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.OddsHTTPTimeout)
	}
	if cfg.OddsAPICallLimit != 500 {
		t.Errorf("bad int falls back to default, got %d", cfg.OddsAPICallLimit)
	}
	if cfg.RandomSeed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.RandomSeed)
	}
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown cache backend", map[string]string{"ODDS_CACHE_BACKEND": "memcached"}},
		{"redis without url", map[string]string{"ODDS_CACHE_BACKEND": "redis", "REDIS_URL": ""}},
		{"bad timezone", map[string]string{"SCHEDULE_TIMEZONE": "Mars/Olympus"}},
		{"token without channel", map[string]string{"DISCORD_BOT_TOKEN": "abc", "DISCORD_CHANNEL_ID": ""}},
		{"non numeric port", map[string]string{"HTTP_PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := FromEnv(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
