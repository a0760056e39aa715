package bedrock

import (
	"context"
	"fmt"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/utils"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// Factory creates Bedrock classifiers from configuration
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new Bedrock factory
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier loads AWS credentials and creates a BedrockClient
func (f *Factory) CreateClassifier(ctx context.Context) (core.Classifier, error) {
	bc := f.cfg.GetBedrock()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(bc.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewBedrockClient(
		bedrockruntime.NewFromConfig(awsCfg),
		bc.ModelID,
		bc.MaxTokens,
		bc.Temperature,
		bc.TopP,
		f.cfg.GetClassifier().MaxBodySize,
		f.logger,
		f.textProcessor,
	), nil
}
