package gemini

import (
	"context"
	"errors"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/utils"
	"go.uber.org/zap"
)

// Factory creates Gemini classifiers from configuration
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a new GeminiClient
func (f *Factory) CreateClassifier(ctx context.Context) (core.Classifier, error) {
	gc := f.cfg.GetGemini()
	if gc.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	return NewGeminiClient(
		ctx,
		gc.APIKey,
		gc.ModelName,
		gc.MaxTokens,
		gc.Temperature,
		gc.TopP,
		f.cfg.GetClassifier().MaxBodySize,
		f.logger,
		f.textProcessor,
	)
}
