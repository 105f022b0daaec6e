package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mermend/mermend/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_addr = "redis.internal:6379"

[server]
addr = ":9000"

[history]
backend = "mongo"
mongo_uri = "mongodb://db:27017"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendRedis || cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("cache config not applied: %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.History.Backend != HistoryBackendMongo {
		t.Errorf("history backend = %q, want mongo", cfg.History.Backend)
	}
	// Unset sections keep their defaults.
	if cfg.Render.Format != "svg" {
		t.Errorf("render format default lost: %q", cfg.Render.Format)
	}
	if cfg.History.Limit != 50 {
		t.Errorf("history limit default lost: %d", cfg.History.Limit)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("want INVALID_CONFIG, got %v", err)
	}
}

func TestLoadInvalidBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("want INVALID_CONFIG, got %v", err)
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
