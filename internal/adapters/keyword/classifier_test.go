package keyword

import (
	"context"
	"testing"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func classify(t *testing.T, msg core.Message) *core.ClassificationResult {
	t.Helper()
	result, err := NewClassifier(DefaultRules, zap.NewNop()).Classify(context.Background(), &msg)
	require.NoError(t, err)
	return result
}

func TestClassify_Safe(t *testing.T) {
	result := classify(t, core.Message{ID: "1", Subject: "Lunch on Friday?", Body: "Tacos at noon."})
	assert.False(t, result.IsMalicious)
	assert.Equal(t, core.ThreatSafe, result.ThreatLevel)
	assert.Empty(t, result.DetectedKeywords)
	assert.Equal(t, ModelName, result.ModelUsed)
}

func TestClassify_Phishing(t *testing.T) {
	result := classify(t, core.Message{
		ID:      "2",
		Subject: "ACCOUNT SUSPENDED",
		Body:    "Please verify your account and confirm your password within 24 hours.",
	})
	assert.True(t, result.IsMalicious)
	assert.Equal(t, core.EventPhishing, result.EventType)
	assert.Equal(t, core.ThreatCritical, result.ThreatLevel)
	assert.Contains(t, result.DetectedKeywords, "verify your account")
}

func TestClassify_FullwidthLookalikes(t *testing.T) {
	result := classify(t, core.Message{ID: "3", Body: "Ｓｅｅｄ ｐｈｒａｓｅ needed to restore access"})
	assert.True(t, result.IsMalicious)
	assert.Equal(t, core.EventPhishing, result.EventType)
}

func TestClassify_MalwareAttachment(t *testing.T) {
	result := classify(t, core.Message{
		ID:          "4",
		Subject:     "Invoice",
		Body:        "See attached.",
		Attachments: []core.Attachment{{Filename: "invoice.PDF.exe", Size: 1024}},
	})
	assert.True(t, result.IsMalicious)
	assert.Equal(t, core.EventMalware, result.EventType)
	assert.Equal(t, core.ThreatMedium, result.ThreatLevel)
	assert.NotEmpty(t, result.Reasons)
}

func TestClassify_SocialEngineering(t *testing.T) {
	result := classify(t, core.Message{ID: "5", Body: "Urgent request: buy gift cards and keep this confidential."})
	assert.Equal(t, core.EventSocialEngineering, result.EventType)
	assert.Equal(t, core.ThreatCritical, result.ThreatLevel)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}
