package factory

import (
	"context"
	"testing"
	"time"

	"github.com/Sushmit94/solana-project/internal/adapters/cache"
	"github.com/Sushmit94/solana-project/internal/adapters/inbox"
	"github.com/Sushmit94/solana-project/internal/adapters/keyword"
	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConfig() *config.Config {
	return config.NewFromViper(config.NewEmptyViper())
}

func TestClassifierFactory_Backends(t *testing.T) {
	cfg := newConfig()
	f := NewClassifierFactory(cfg, zap.NewNop(), utils.NewTextProcessor(zap.NewNop()))

	backend, err := f.CreateBackend(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &keyword.Classifier{}, backend)

	cfg.Set("classifier.provider", "openai")
	_, err = f.CreateBackend(context.Background())
	assert.ErrorContains(t, err, "API key")

	cfg.Set("classifier.provider", "oracle")
	_, err = f.CreateBackend(context.Background())
	assert.ErrorContains(t, err, "unsupported classifier provider")
}

func TestClassifierFactory_WrapsBackend(t *testing.T) {
	cfg := newConfig()
	cfg.Set("classifier.trusted_senders", []string{"example.com"})
	f := NewClassifierFactory(cfg, zap.NewNop(), utils.NewTextProcessor(zap.NewNop()))

	svc := f.CreateClassifier(keyword.NewClassifier(keyword.DefaultRules, zap.NewNop()), nil, CacheTTL{time.Hour})
	require.NotNil(t, svc)
}

func TestCacheFactory(t *testing.T) {
	cfg := newConfig()
	cfg.Set("cache.cleanup_frequency", "0s")
	f := NewCacheFactory(cfg, zap.NewNop())

	c, err := f.CreateVerdictCache()
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, c)
	assert.Equal(t, 24*time.Hour, f.GetCacheTTL().Duration)

	cfg.Set("cache.type", "sqlite")
	cfg.Set("cache.sqlite_path", t.TempDir()+"/db/verdicts.db")
	c, err = f.CreateVerdictCache()
	require.NoError(t, err)
	assert.IsType(t, &cache.SQLiteCache{}, c)
	c.(*cache.SQLiteCache).Stop()

	cfg.Set("cache.type", "redis")
	_, err = f.CreateVerdictCache()
	assert.Error(t, err)

	cfg.Set("cache.enabled", false)
	c, err = f.CreateVerdictCache()
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestInboxFactory(t *testing.T) {
	cfg := newConfig()
	f := NewInboxFactory(cfg, zap.NewNop())

	in, err := f.CreateInbox()
	require.NoError(t, err)
	assert.IsType(t, &inbox.Mailbox{}, in.Source)
	assert.NotNil(t, in.Listener)

	cfg.Set("inbox.provider", "imap")
	in, err = f.CreateInbox()
	require.NoError(t, err)
	assert.IsType(t, &inbox.IMAPSource{}, in.Source)
	assert.Nil(t, in.Listener)

	cfg.Set("inbox.provider", "pop3")
	_, err = f.CreateInbox()
	assert.Error(t, err)
}
