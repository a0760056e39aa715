package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumLevels(s *Statistics) int {
	n := 0
	for _, v := range s.ByLevel {
		n += v
	}
	return n
}

func sumTypes(s *Statistics) int {
	n := 0
	for _, v := range s.ByType {
		n += v
	}
	return n
}

func TestAggregate_FiveMessagesTwoThreats(t *testing.T) {
	msgs, classifier := inbox()
	agg := NewAggregator(classifier, testLogger, nil, ExcludeUnclassified)

	stats, err := agg.Aggregate(context.Background(), msgs)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.SafeCount)
	assert.Equal(t, 2, stats.ThreatCount)
	assert.Equal(t, 0, stats.Unclassified)
	assert.Equal(t, map[ThreatLevel]int{
		ThreatCritical: 1, ThreatHigh: 0, ThreatMedium: 1, ThreatLow: 0, ThreatSafe: 0,
	}, stats.ByLevel)
	assert.Equal(t, map[EventType]int{
		EventPhishing: 1, EventSpam: 1, EventMalware: 0, EventSocialEngineering: 0,
	}, stats.ByType)
}

func TestAggregate_Invariants(t *testing.T) {
	msgs, classifier := inbox()
	classifier.results["m1"] = &ClassificationResult{IsMalicious: true, ThreatLevel: ThreatLow, EventType: EventMalware}
	classifier.results["m5"] = &ClassificationResult{IsMalicious: true, ThreatLevel: ThreatHigh, EventType: EventSocialEngineering}
	classifier.errs["m3"] = errBoom

	for _, policy := range []UnclassifiedPolicy{ExcludeUnclassified, CountUnclassifiedAsSafe} {
		stats, err := NewAggregator(classifier, testLogger, nil, policy).Aggregate(context.Background(), msgs)
		require.NoError(t, err)

		assert.Equal(t, stats.ThreatCount, sumLevels(stats))
		assert.Equal(t, stats.ThreatCount, sumTypes(stats))
		assert.Equal(t, stats.Total, stats.SafeCount+stats.ThreatCount+stats.Unclassified)
	}
}

func TestAggregate_ExcludeUnclassified(t *testing.T) {
	msgs, classifier := inbox()
	classifier.errs["m1"] = errBoom
	classifier.panics["m3"] = true
	obs := &recordingObserver{}

	stats, err := NewAggregator(classifier, testLogger, obs, ExcludeUnclassified).Aggregate(context.Background(), msgs)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.SafeCount)
	assert.Equal(t, 2, stats.ThreatCount)
	assert.Equal(t, 2, stats.Unclassified)
	assert.Equal(t, stats.Total-stats.Unclassified, stats.SafeCount+stats.ThreatCount)
	assert.Equal(t, 2, obs.count(KindClassificationFailed))
	assert.Equal(t, 1, obs.count(KindAggregated))
}

func TestAggregate_CountUnclassifiedAsSafe(t *testing.T) {
	msgs, classifier := inbox()
	classifier.errs["m1"] = errBoom
	classifier.panics["m3"] = true

	stats, err := NewAggregator(classifier, testLogger, nil, CountUnclassifiedAsSafe).Aggregate(context.Background(), msgs)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.SafeCount)
	assert.Equal(t, 2, stats.ThreatCount)
	assert.Equal(t, 0, stats.Unclassified)
	assert.Equal(t, stats.Total, stats.SafeCount+stats.ThreatCount)
}

func TestAggregate_Idempotent(t *testing.T) {
	msgs, classifier := inbox()
	classifier.errs["m5"] = errBoom
	agg := NewAggregator(classifier, testLogger, nil, ExcludeUnclassified)

	first, err := agg.Aggregate(context.Background(), msgs)
	require.NoError(t, err)
	second, err := agg.Aggregate(context.Background(), msgs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Idle, agg.State())
}

func TestAggregate_Empty(t *testing.T) {
	stats, err := NewAggregator(newStubClassifier(), testLogger, nil, ExcludeUnclassified).Aggregate(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Len(t, stats.ByLevel, len(AllThreatLevels))
	assert.Len(t, stats.ByType, len(AllEventTypes))
}

type blockingClassifier struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingClassifier) Classify(context.Context, *Message) (*ClassificationResult, error) {
	close(b.started)
	<-b.release
	return &ClassificationResult{ThreatLevel: ThreatSafe}, nil
}

func TestAggregate_RejectsReentrantRun(t *testing.T) {
	blocker := &blockingClassifier{started: make(chan struct{}), release: make(chan struct{})}
	agg := NewAggregator(blocker, testLogger, nil, ExcludeUnclassified)

	done := make(chan error, 1)
	go func() {
		_, err := agg.Aggregate(context.Background(), []Message{{ID: "m1"}})
		done <- err
	}()
	<-blocker.started

	assert.Equal(t, Running, agg.State())
	_, err := agg.Aggregate(context.Background(), []Message{{ID: "m1"}})
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(blocker.release)
	require.NoError(t, <-done)
	assert.Equal(t, Idle, agg.State())
}
