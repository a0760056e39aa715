package core

import (
	"context"

	"go.uber.org/zap"
)

// UnclassifiedPolicy decides how messages whose classification failed are counted
type UnclassifiedPolicy int

const (
	// ExcludeUnclassified counts failed messages in Total and Unclassified only
	ExcludeUnclassified UnclassifiedPolicy = iota
	// CountUnclassifiedAsSafe counts failed messages as safe
	CountUnclassifiedAsSafe
)

// Aggregator computes threat statistics over a message set
type Aggregator struct {
	classifier Classifier
	logger     *zap.Logger
	observer   Observer
	policy     UnclassifiedPolicy
	guard      RunGuard
}

// NewAggregator creates a new statistics aggregator
func NewAggregator(classifier Classifier, logger *zap.Logger, observer Observer, policy UnclassifiedPolicy) *Aggregator {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Aggregator{
		classifier: classifier,
		logger:     logger,
		observer:   observer,
		policy:     policy,
	}
}

// State returns whether an aggregation is running
func (a *Aggregator) State() RunState {
	return a.guard.State()
}

// Aggregate classifies every message and returns freshly computed statistics.
// A failed classification never stops the pass.
func (a *Aggregator) Aggregate(ctx context.Context, messages []Message) (*Statistics, error) {
	if !a.guard.TryStart() {
		return nil, ErrRunInProgress
	}
	defer a.guard.Finish()

	stats := NewStatistics()
	stats.Total = len(messages)

	for i := range messages {
		msg := &messages[i]

		var result *ClassificationResult
		err := guard(func() error {
			var err error
			result, err = a.classifier.Classify(ctx, msg)
			return err
		})
		if err == nil && result == nil {
			err = errClassifierNil
		}
		if err != nil {
			a.logger.Warn("Failed to classify message",
				zap.String("message_id", msg.ID),
				zap.String("sender", msg.From),
				zap.Error(err))
			a.observer.Observe(Event{Kind: KindClassificationFailed, MessageID: msg.ID, Stage: StageClassify, Err: err})

			if a.policy == CountUnclassifiedAsSafe {
				stats.SafeCount++
			} else {
				stats.Unclassified++
			}
			continue
		}

		a.observer.Observe(Event{Kind: KindClassified, MessageID: msg.ID, Result: result})
		if result.IsMalicious {
			stats.ThreatCount++
			stats.ByLevel[result.ThreatLevel]++
			stats.ByType[result.EventType]++
		} else {
			stats.SafeCount++
		}
	}

	a.logger.Info("Aggregated threat statistics",
		zap.Int("total", stats.Total),
		zap.Int("safe", stats.SafeCount),
		zap.Int("threats", stats.ThreatCount),
		zap.Int("unclassified", stats.Unclassified))
	a.observer.Observe(Event{Kind: KindAggregated, Stats: stats.Clone()})

	return stats, nil
}
