package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stoik/phishing-detector/internal/adapters/cache"
	"github.com/stoik/phishing-detector/internal/config"
	"github.com/stoik/phishing-detector/internal/ports"
)

// CacheFactory creates analysis caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalysisCache creates the configured cache. A nil cache disables caching.
func (f *CacheFactory) CreateAnalysisCache() (ports.AnalysisCache, error) {
	cacheCfg, err := f.cfg.GetCache()
	if err != nil {
		return nil, err
	}

	switch cacheCfg.Type {
	case "none":
		return nil, nil
	case "memory":
		return cache.NewMemoryCache(cacheCfg.TTL, cacheCfg.CleanupFrequency, f.logger), nil
	case "redis":
		return cache.NewRedisCache(cacheCfg.RedisAddr, cacheCfg.RedisPassword, cacheCfg.RedisDB, cacheCfg.TTL, f.logger)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}
