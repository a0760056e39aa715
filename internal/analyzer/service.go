package analyzer

import (
	"context"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/whitelist"
	"go.uber.org/zap"
)

// Service is the classifier handed to the core. It skips trusted senders,
// serves repeated messages from the verdict cache and applies the
// confidence threshold to the backend's verdict.
type Service struct {
	backend      core.Classifier
	cache        core.VerdictCache
	trusted      *whitelist.Checker
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	threshold    float64
	now          func() time.Time
}

// NewService creates a new analyzer service. cache may be nil when caching
// is disabled.
func NewService(
	backend core.Classifier,
	cache core.VerdictCache,
	trusted *whitelist.Checker,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	threshold float64,
) *Service {
	return &Service{
		backend:      backend,
		cache:        cache,
		trusted:      trusted,
		logger:       logger,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
		threshold:    threshold,
		now:          time.Now,
	}
}

// Classify implements core.Classifier
func (s *Service) Classify(ctx context.Context, msg *core.Message) (*core.ClassificationResult, error) {
	if s.trusted != nil && s.trusted.IsWhitelisted(msg.From) {
		s.logger.Info("Skipping classification for trusted sender",
			zap.String("message_id", msg.ID),
			zap.String("sender", msg.From),
			zap.String("action", "whitelist_bypass"))
		return &core.ClassificationResult{
			ThreatLevel: core.ThreatSafe,
			EventType:   core.EventSpam,
			Confidence:  1.0,
			Reasons:     []string{"Sender is trusted"},
			ModelUsed:   "whitelist",
			AnalyzedAt:  s.now(),
		}, nil
	}

	fp := core.Fingerprint(msg)
	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, fp); err == nil {
			s.logger.Debug("Verdict cache hit", zap.String("message_id", msg.ID))
			result := entry.Result
			return &result, nil
		}
	}

	result, err := s.backend.Classify(ctx, msg)
	if err != nil {
		return nil, err
	}
	s.applyThreshold(msg, result)

	if s.cacheEnabled {
		now := s.now()
		entry := &core.VerdictEntry{
			Fingerprint: fp,
			Result:      *result,
			CachedAt:    now,
			ExpiresAt:   now.Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update verdict cache", zap.Error(err))
		}
	}

	return result, nil
}

// applyThreshold demotes malicious verdicts below the confidence threshold
func (s *Service) applyThreshold(msg *core.Message, result *core.ClassificationResult) {
	if !result.IsMalicious || result.Confidence >= s.threshold {
		return
	}
	s.logger.Debug("Verdict below threshold, treating as safe",
		zap.String("message_id", msg.ID),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("threshold", s.threshold))
	result.IsMalicious = false
	result.ThreatLevel = core.ThreatSafe
	result.Reasons = append(result.Reasons, "confidence below threshold")
}
