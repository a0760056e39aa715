package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProber struct {
	mock.Mock
	block chan struct{}
}

func (m *mockProber) Balance(ctx context.Context, identity string) (uint64, error) {
	if m.block != nil {
		<-m.block
	}
	args := m.Called(ctx, identity)
	return args.Get(0).(uint64), args.Error(1)
}

func TestManager_Connect(t *testing.T) {
	prober := &mockProber{}
	prober.On("Balance", mock.Anything, "Wa11et").Return(uint64(5000), nil).Once()
	m := NewManager(" Wa11et ", prober, zap.NewNop())

	assert.False(t, m.Status(context.Background()).Ready())
	require.NoError(t, m.RequestConnection(context.Background()))

	status := m.Status(context.Background())
	assert.True(t, status.Ready())
	assert.Equal(t, "Wa11et", status.Identity)
	assert.Equal(t, Active, m.State())
	assert.Equal(t, uint64(5000), m.Balance())

	require.NoError(t, m.RequestConnection(context.Background()))
	prober.AssertNumberOfCalls(t, "Balance", 1)

	m.Disconnect()
	assert.Equal(t, Disconnected, m.State())
	assert.False(t, m.Status(context.Background()).Connected)
}

func TestManager_ProbeFailure(t *testing.T) {
	prober := &mockProber{}
	prober.On("Balance", mock.Anything, "Wa11et").Return(uint64(0), errors.New("account not found"))
	m := NewManager("Wa11et", prober, zap.NewNop())

	err := m.RequestConnection(context.Background())
	assert.ErrorContains(t, err, "account not found")
	assert.Equal(t, Disconnected, m.State())
	assert.Equal(t, err, m.LastError())
}

func TestManager_NoIdentity(t *testing.T) {
	prober := &mockProber{}
	m := NewManager("", prober, zap.NewNop())

	assert.ErrorIs(t, m.RequestConnection(context.Background()), ErrNoIdentity)
	prober.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
}

func TestManager_ConcurrentRequest(t *testing.T) {
	prober := &mockProber{block: make(chan struct{})}
	prober.On("Balance", mock.Anything, "Wa11et").Return(uint64(1), nil)
	m := NewManager("Wa11et", prober, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- m.RequestConnection(context.Background()) }()
	require.Eventually(t, func() bool { return m.State() == Connecting }, time.Second, time.Millisecond)

	assert.ErrorIs(t, m.RequestConnection(context.Background()), ErrConnecting)
	assert.False(t, m.Status(context.Background()).Ready())

	close(prober.block)
	require.NoError(t, <-done)
	assert.Equal(t, "active", m.State().String())
}
