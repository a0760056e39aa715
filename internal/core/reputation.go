package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ReputationService looks up sender reputation on demand. It shares no state
// with the aggregator or the orchestrator and never caches results.
type ReputationService struct {
	scorer ReputationScorer
	logger *zap.Logger
}

// NewReputationService creates a new reputation lookup service
func NewReputationService(scorer ReputationScorer, logger *zap.Logger) *ReputationService {
	return &ReputationService{
		scorer: scorer,
		logger: logger,
	}
}

// Lookup returns the reputation of sender. The identifier is only trimmed;
// its format is left to the scorer.
func (s *ReputationService) Lookup(ctx context.Context, sender string) (*ReputationScore, error) {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return nil, ErrEmptySender
	}

	var score *ReputationScore
	err := guard(func() error {
		var err error
		score, err = s.scorer.LookupReputation(ctx, sender)
		return err
	})
	if err != nil {
		s.logger.Warn("Reputation lookup failed", zap.String("sender", sender), zap.Error(err))
		return nil, fmt.Errorf("failed to get reputation for %s: %w", sender, err)
	}
	if score == nil {
		return nil, fmt.Errorf("failed to get reputation for %s: empty response", sender)
	}

	s.logger.Debug("Reputation lookup",
		zap.String("sender", sender),
		zap.Float64("score", score.Score),
		zap.String("trust_level", string(score.TrustLevel)),
		zap.Int("total_proofs", score.TotalProofs))
	return score, nil
}
