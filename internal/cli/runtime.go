package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/mermend/mermend/pkg/cache"
	"github.com/mermend/mermend/pkg/config"
	"github.com/mermend/mermend/pkg/pipeline"
)

// loadConfig resolves the configuration for a command invocation.
// cfgPath comes from the persistent --config flag; empty means the default
// location, and a missing default file yields working defaults.
func loadConfig(cfgPath *string) (config.Config, error) {
	path := ""
	if cfgPath != nil {
		path = *cfgPath
	}
	return config.Load(path)
}

// newRunner builds a pipeline runner with the cache backend the config
// selects. noCache forces the null cache regardless of configuration.
func newRunner(ctx context.Context, cfg config.Config, logger *log.Logger, noCache bool) (*pipeline.Runner, error) {
	c, err := newCache(ctx, cfg, logger, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, logger, nil), nil
}

// newCache constructs the configured cache backend.
func newCache(ctx context.Context, cfg config.Config, logger *log.Logger, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		logger.Debug("using redis cache", "addr", cfg.Cache.RedisAddr)
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		logger.Debug("using file cache", "dir", cfg.Cache.Dir)
		return cache.NewFileCache(cfg.Cache.Dir)
	}
}
