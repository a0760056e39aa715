package factory

import (
	"context"
	"fmt"

	"github.com/Sushmit94/solana-project/internal/adapters/bedrock"
	"github.com/Sushmit94/solana-project/internal/adapters/gemini"
	"github.com/Sushmit94/solana-project/internal/adapters/keyword"
	"github.com/Sushmit94/solana-project/internal/adapters/openai"
	"github.com/Sushmit94/solana-project/internal/analyzer"
	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/utils"
	"github.com/Sushmit94/solana-project/internal/whitelist"
	"go.uber.org/zap"
)

// ClassifierFactory creates threat classifiers
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateBackend creates the classifier backend named by classifier.provider
func (f *ClassifierFactory) CreateBackend(ctx context.Context) (core.Classifier, error) {
	provider := f.cfg.GetClassifier().Provider

	switch provider {
	case "", "keyword":
		return keyword.NewClassifier(keyword.DefaultRules, f.logger), nil
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier(ctx)
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier(ctx)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", provider)
	}
}

// CreateClassifier wraps backend with the trusted-sender list, the verdict
// cache and the confidence threshold
func (f *ClassifierFactory) CreateClassifier(backend core.Classifier, cache core.VerdictCache, ttl CacheTTL) *analyzer.Service {
	cc := f.cfg.GetClassifier()
	if len(cc.TrustedSenders) > 0 {
		f.logger.Info("Loaded trusted senders", zap.Strings("senders", cc.TrustedSenders))
	}
	return analyzer.NewService(
		backend,
		cache,
		whitelist.NewChecker(cc.TrustedSenders, f.logger),
		f.logger,
		cache != nil,
		ttl.Duration,
		cc.Threshold,
	)
}
