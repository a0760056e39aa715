package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sushmit94/solana-project/internal/adapters/cache"
	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"go.uber.org/zap"
)

// CacheTTL is the lifetime of a cached verdict
type CacheTTL struct {
	time.Duration
}

// CacheFactory creates verdict caches based on configuration
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

// CreateVerdictCache creates the configured verdict cache. It returns nil
// without error when caching is disabled.
func (f *CacheFactory) CreateVerdictCache() (core.VerdictCache, error) {
	cc := f.cfg.GetCache()
	if !cc.Enabled {
		f.logger.Info("Verdict cache disabled")
		return nil, nil
	}

	switch cc.Type {
	case "memory":
		return cache.NewMemoryCache(f.logger, cc.CleanupFrequency), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cc.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteCache(cc.SQLitePath, f.logger, cc.CleanupFrequency)
	case "mysql":
		return cache.NewMySQLCache(cc.MySQLDSN, f.logger, cc.CleanupFrequency)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cc.Type)
	}
}

// GetCacheTTL returns the configured verdict TTL
func (f *CacheFactory) GetCacheTTL() CacheTTL {
	return CacheTTL{f.cfg.GetCache().TTL}
}
