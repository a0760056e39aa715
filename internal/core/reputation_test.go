package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScorer struct {
	mock.Mock
}

func (m *mockScorer) LookupReputation(ctx context.Context, sender string) (*ReputationScore, error) {
	args := m.Called(ctx, sender)
	var score *ReputationScore
	if s := args.Get(0); s != nil {
		score = s.(*ReputationScore)
	}
	return score, args.Error(1)
}

func TestReputationService_Lookup(t *testing.T) {
	scorer := &mockScorer{}
	scorer.On("LookupReputation", mock.Anything, "spammer@bad.example").Return(&ReputationScore{
		Sender:      "spammer@bad.example",
		Score:       12.5,
		TrustLevel:  TrustDangerous,
		TotalProofs: 4,
	}, nil)
	svc := NewReputationService(scorer, testLogger)

	score, err := svc.Lookup(context.Background(), "  spammer@bad.example \n")
	require.NoError(t, err)
	assert.Equal(t, TrustDangerous, score.TrustLevel)
	assert.Equal(t, 95, score.Confidence())
	scorer.AssertExpectations(t)
}

func TestReputationService_EmptySender(t *testing.T) {
	scorer := &mockScorer{}
	svc := NewReputationService(scorer, testLogger)

	for _, sender := range []string{"", "   ", "\t\n"} {
		_, err := svc.Lookup(context.Background(), sender)
		assert.ErrorIs(t, err, ErrEmptySender)
	}
	scorer.AssertNotCalled(t, "LookupReputation", mock.Anything, mock.Anything)
}

func TestReputationService_ScorerFailure(t *testing.T) {
	scorer := &mockScorer{}
	rpcErr := errors.New("account not found")
	scorer.On("LookupReputation", mock.Anything, "a@b.c").Return(nil, rpcErr)
	scorer.On("LookupReputation", mock.Anything, "nil@b.c").Return(nil, nil)
	svc := NewReputationService(scorer, testLogger)

	_, err := svc.Lookup(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, rpcErr)
	assert.Contains(t, err.Error(), "a@b.c")

	_, err = svc.Lookup(context.Background(), "nil@b.c")
	assert.Error(t, err)
}

func TestReputationService_NoCaching(t *testing.T) {
	scorer := &mockScorer{}
	scorer.On("LookupReputation", mock.Anything, "x@y.z").Return(&ReputationScore{TrustLevel: TrustNeutral}, nil)
	svc := NewReputationService(scorer, testLogger)

	for i := 0; i < 3; i++ {
		score, err := svc.Lookup(context.Background(), "x@y.z")
		require.NoError(t, err)
		assert.Equal(t, 50, score.Confidence())
	}
	scorer.AssertNumberOfCalls(t, "LookupReputation", 3)
}
