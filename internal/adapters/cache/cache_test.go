package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func verdict(fp string, expires time.Time) *core.VerdictEntry {
	return &core.VerdictEntry{
		Fingerprint: fp,
		Result: core.ClassificationResult{
			IsMalicious:      true,
			ThreatLevel:      core.ThreatHigh,
			EventType:        core.EventPhishing,
			Confidence:       0.87,
			DetectedKeywords: []string{"verify your account"},
		},
		CachedAt:  time.Now().Truncate(time.Second),
		ExpiresAt: expires.Truncate(time.Second),
	}
}

func exerciseCache(t *testing.T, c core.VerdictCache) {
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	live := verdict("live", time.Now().Add(time.Hour))
	require.NoError(t, c.Set(ctx, live))
	got, err := c.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live.Result, got.Result)
	assert.True(t, live.ExpiresAt.Equal(got.ExpiresAt))

	live.Result.Confidence = 0.99
	require.NoError(t, c.Set(ctx, live))
	got, err = c.Get(ctx, "live")
	require.NoError(t, err)
	assert.InDelta(t, 0.99, got.Result.Confidence, 1e-9)

	require.NoError(t, c.Set(ctx, verdict("stale", time.Now().Add(-time.Hour))))
	_, err = c.Get(ctx, "stale")
	assert.Error(t, err)

	require.NoError(t, c.Cleanup(ctx))
	require.NoError(t, c.Delete(ctx, "live"))
	_, err = c.Get(ctx, "live")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), 0)
	defer c.Stop()
	exerciseCache(t, c)
}

func TestMemoryCache_CleanupDropsExpired(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), 0)
	defer c.Stop()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, verdict("a", time.Now().Add(time.Hour))))
	require.NoError(t, c.Set(ctx, verdict("b", time.Now().Add(-time.Minute))))

	_, err := c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrExpired)
	require.NoError(t, c.Cleanup(ctx))
	assert.Equal(t, 1, c.Len())
}

func TestSQLiteCache(t *testing.T) {
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "verdicts.db"), zap.NewNop(), 0)
	require.NoError(t, err)
	defer c.Stop()
	exerciseCache(t, c)
}

func TestSQLiteCache_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdicts.db")
	ctx := context.Background()

	c, err := NewSQLiteCache(path, zap.NewNop(), 0)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, verdict("fp", time.Now().Add(time.Hour))))
	c.Stop()

	reopened, err := NewSQLiteCache(path, zap.NewNop(), 0)
	require.NoError(t, err)
	defer reopened.Stop()
	got, err := reopened.Get(ctx, "fp")
	require.NoError(t, err)
	assert.Equal(t, core.ThreatHigh, got.Result.ThreatLevel)
}
