// Package config loads mermend configuration from TOML.
//
// Configuration is read from an explicit path when given, otherwise from
// ~/.config/mermend/config.toml. A missing file is not an error; every field
// has a working default so the CLI runs with no configuration at all.
//
// Example config.toml:
//
//	[cache]
//	backend = "file"        # file | redis | none
//	dir = "~/.cache/mermend"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[history]
//	backend = "memory"      # memory | mongo
//	mongo_uri = "mongodb://localhost:27017"
//	database = "mermend"
//	limit = 50
//
//	[render]
//	format = "svg"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mermend/mermend/pkg/errors"
)

// Cache backends.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// History backends.
const (
	HistoryBackendMemory = "memory"
	HistoryBackendMongo  = "mongo"
)

// Config is the full mermend configuration.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	History HistoryConfig `toml:"history"`
	Render  RenderConfig  `toml:"render"`
}

// CacheConfig selects and configures the markup cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// HistoryConfig selects and configures the render-history backend.
type HistoryConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
	Limit    int    `toml:"limit"`
}

// RenderConfig sets render defaults that flags can override.
type RenderConfig struct {
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			Dir:       defaultCacheDir(),
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		History: HistoryConfig{
			Backend:  HistoryBackendMemory,
			MongoURI: "mongodb://localhost:27017",
			Database: "mermend",
			Limit:    50,
		},
		Render: RenderConfig{
			Format: "svg",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mermend", "config.toml")
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "mermend")
	}
	return ".mermend-cache"
}

// Load reads configuration from path, or from DefaultPath when path is
// empty. A missing file yields the defaults; a file that exists but cannot
// be parsed or validated is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend selectors.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.History.Backend {
	case HistoryBackendMemory, HistoryBackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid history backend: %q (must be one of: memory, mongo)", c.History.Backend)
	}
	return nil
}
