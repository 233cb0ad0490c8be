package cache

import (
	"context"
	"sync"
	"time"

	"github.com/stoik/phishing-detector/internal/domain"
	"go.uber.org/zap"
)

type memoryEntry struct {
	analysis  *domain.CachedAnalysis
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of ports.AnalysisCache
type MemoryCache struct {
	entries     map[string]memoryEntry
	mu          sync.RWMutex
	ttl         time.Duration
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup task
func NewMemoryCache(ttl time.Duration, cleanupFreq time.Duration, logger *zap.Logger) *MemoryCache {
	cache := &MemoryCache{
		entries:     make(map[string]memoryEntry),
		ttl:         ttl,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go cache.startCleanupTask()

	return cache
}

// Get retrieves a cached analysis, (nil, nil) on miss or expiry
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.CachedAnalysis, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.analysis, nil
}

// Set stores an analysis for the configured TTL
func (c *MemoryCache) Set(ctx context.Context, key string, analysis *domain.CachedAnalysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		analysis:  analysis,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Cleanup removes expired entries
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expiredCount := 0

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			expiredCount++
		}
	}

	c.logger.Debug("Cleaned up expired cache entries",
		zap.Int("expired_count", expiredCount),
		zap.Int("remaining", len(c.entries)))
}

// startCleanupTask starts a background task to clean up expired entries
func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// Close stops the background cleanup task
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	return nil
}
