package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/utils"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRuntime struct {
	mock.Mock
}

func (m *mockRuntime) InvokeModel(ctx context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	args := m.Called(ctx, in)
	var out *bedrockruntime.InvokeModelOutput
	if o := args.Get(0); o != nil {
		out = o.(*bedrockruntime.InvokeModelOutput)
	}
	return out, args.Error(1)
}

func newClient(rt InvokeModelAPI, model string) *BedrockClient {
	logger := zap.NewNop()
	return NewBedrockClient(rt, model, 500, 0.1, 0.9, 2048, logger, utils.NewTextProcessor(logger))
}

var suspicious = &core.Message{ID: "m9", From: "hr@payro11.example", Subject: "Bonus", Body: "Open the attached form"}

func TestBedrockClient_Claude(t *testing.T) {
	rt := &mockRuntime{}
	reply := `{"content":[{"type":"text","text":"{\"is_malicious\":true,\"threat_level\":\"medium\",\"event_type\":\"malware\",\"confidence\":0.7}"}]}`
	rt.On("InvokeModel", mock.Anything, mock.MatchedBy(func(in *bedrockruntime.InvokeModelInput) bool {
		var body map[string]interface{}
		if err := json.Unmarshal(in.Body, &body); err != nil {
			return false
		}
		_, hasMessages := body["messages"]
		return *in.ModelId == "anthropic.claude-3-haiku" && hasMessages
	})).Return(&bedrockruntime.InvokeModelOutput{Body: []byte(reply)}, nil)

	result, err := newClient(rt, "anthropic.claude-3-haiku").Classify(context.Background(), suspicious)
	require.NoError(t, err)
	assert.Equal(t, core.EventMalware, result.EventType)
	assert.Equal(t, core.ThreatMedium, result.ThreatLevel)
	rt.AssertExpectations(t)
}

func TestBedrockClient_Titan(t *testing.T) {
	rt := &mockRuntime{}
	reply := `{"results":[{"outputText":"{\"is_malicious\":false,\"threat_level\":\"safe\",\"confidence\":0.9}"}]}`
	rt.On("InvokeModel", mock.Anything, mock.Anything).Return(&bedrockruntime.InvokeModelOutput{Body: []byte(reply)}, nil)

	result, err := newClient(rt, "amazon.titan-text-express-v1").Classify(context.Background(), suspicious)
	require.NoError(t, err)
	assert.False(t, result.IsMalicious)
	assert.Equal(t, "amazon.titan-text-express-v1", result.ModelUsed)
}

func TestBedrockClient_InvokeError(t *testing.T) {
	rt := &mockRuntime{}
	rt.On("InvokeModel", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	_, err := newClient(rt, "anthropic.claude-v2").Classify(context.Background(), suspicious)
	assert.ErrorContains(t, err, "throttled")
}

func TestBedrockClient_EmptyTitan(t *testing.T) {
	rt := &mockRuntime{}
	rt.On("InvokeModel", mock.Anything, mock.Anything).Return(&bedrockruntime.InvokeModelOutput{Body: []byte(`{"results":[]}`)}, nil)

	_, err := newClient(rt, "amazon.titan-text-lite").Classify(context.Background(), suspicious)
	assert.Error(t, err)
}
