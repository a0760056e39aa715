package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no verdict is cached for a fingerprint
	ErrNotFound = errors.New("cache entry not found")
	// ErrExpired is returned when the cached verdict is past its TTL
	ErrExpired = errors.New("cache entry expired")
)

// MemoryCache keeps verdicts in process memory
type MemoryCache struct {
	entries     map[string]core.VerdictEntry
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewMemoryCache creates a new in-memory verdict cache
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration) *MemoryCache {
	cache := &MemoryCache{
		entries:     make(map[string]core.VerdictEntry),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}
	if cleanupFreq > 0 {
		go cache.startCleanupTask()
	}
	return cache
}

// Get returns the verdict stored for fingerprint
func (c *MemoryCache) Get(_ context.Context, fingerprint string) (*core.VerdictEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[fingerprint]
	if !ok {
		return nil, ErrNotFound
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, ErrExpired
	}
	return &entry, nil
}

// Set stores a verdict
func (c *MemoryCache) Set(_ context.Context, entry *core.VerdictEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Fingerprint] = *entry
	return nil
}

// Delete removes a verdict
func (c *MemoryCache) Delete(_ context.Context, fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, fingerprint)
	return nil
}

// Cleanup removes expired verdicts
func (c *MemoryCache) Cleanup(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expired := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			expired++
		}
	}

	c.logger.Debug("Cleaned up expired verdicts", zap.Int("expired_count", expired))
	return nil
}

// Len returns the number of stored verdicts, expired ones included
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) startCleanupTask() {
	runCleanup(c.cleanupFreq, c.stopCh, c.Cleanup, c.logger)
}

// Stop stops the background cleanup task
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// runCleanup calls cleanup every freq until stop is closed
func runCleanup(freq time.Duration, stop <-chan struct{}, cleanup func(context.Context) error, logger *zap.Logger) {
	ticker := time.NewTicker(freq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := cleanup(context.Background()); err != nil {
				logger.Error("Failed to clean up verdict cache", zap.Error(err))
			}
		case <-stop:
			return
		}
	}
}
