package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Sushmit94/solana-project/internal/core"
	"go.uber.org/zap"
)

// State is the connection lifecycle of the ledger identity
type State int

const (
	Disconnected State = iota
	Connecting
	Active
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Active:
		return "active"
	default:
		return "disconnected"
	}
}

var (
	// ErrNoIdentity is returned when no identity is configured
	ErrNoIdentity = errors.New("no wallet identity configured")
	// ErrConnecting is returned when a connection attempt is already running
	ErrConnecting = errors.New("wallet connection already in progress")
)

// Prober checks that an identity exists on the ledger
type Prober interface {
	Balance(ctx context.Context, identity string) (uint64, error)
}

// Manager holds the ledger identity used to sign submissions. It
// implements core.WalletConnector.
type Manager struct {
	identity string
	prober   Prober
	logger   *zap.Logger

	mu      sync.Mutex
	state   State
	balance uint64
	lastErr error
}

// NewManager creates a disconnected manager for identity
func NewManager(identity string, prober Prober, logger *zap.Logger) *Manager {
	return &Manager{
		identity: strings.TrimSpace(identity),
		prober:   prober,
		logger:   logger,
	}
}

// Status implements core.WalletConnector
func (m *Manager) Status(context.Context) core.WalletStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Active {
		return core.WalletStatus{}
	}
	return core.WalletStatus{Connected: true, Identity: m.identity}
}

// State returns the current connection state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Balance returns the balance observed at connection time
func (m *Manager) Balance() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// LastError returns the error of the last failed connection attempt
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// RequestConnection probes the ledger for the configured identity and moves
// to Active on success. A failed probe returns the manager to Disconnected.
func (m *Manager) RequestConnection(ctx context.Context) error {
	m.mu.Lock()
	switch {
	case m.identity == "":
		m.lastErr = ErrNoIdentity
		m.mu.Unlock()
		return ErrNoIdentity
	case m.state == Connecting:
		m.mu.Unlock()
		return ErrConnecting
	case m.state == Active:
		m.mu.Unlock()
		return nil
	}
	m.state = Connecting
	m.mu.Unlock()

	balance, err := m.prober.Balance(ctx, m.identity)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = Disconnected
		m.lastErr = fmt.Errorf("failed to verify wallet %s: %w", m.identity, err)
		m.logger.Warn("Wallet connection failed", zap.String("identity", m.identity), zap.Error(err))
		return m.lastErr
	}
	m.state = Active
	m.balance = balance
	m.lastErr = nil
	m.logger.Info("Wallet connected",
		zap.String("identity", m.identity),
		zap.Uint64("balance", balance))
	return nil
}

// Disconnect drops the active identity
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Disconnected {
		m.logger.Info("Wallet disconnected", zap.String("identity", m.identity))
	}
	m.state = Disconnected
	m.balance = 0
}
