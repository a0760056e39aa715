package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/present"
	"go.uber.org/zap"
)

// Options configures a Session
type Options struct {
	// FetchLimit is passed to the inbox provider on every refresh
	FetchLimit int
	// AutoConnect requests a wallet connection when a submission run is
	// triggered without an active identity. That run is still rejected.
	AutoConnect bool
	Policy      core.UnclassifiedPolicy
}

// Wallet is the ledger identity a session submits with
type Wallet interface {
	core.WalletConnector
	Disconnect()
}

// ParsePolicy maps the configured unclassified policy name. An empty name
// means exclude.
func ParsePolicy(name string) (core.UnclassifiedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exclude":
		return core.ExcludeUnclassified, nil
	case "safe", "count_as_safe":
		return core.CountUnclassifiedAsSafe, nil
	default:
		return core.ExcludeUnclassified, fmt.Errorf("unknown unclassified policy %q", name)
	}
}

// Session is the dashboard's view of one inbox: the current message set,
// its statistics and the last submission report.
type Session struct {
	source     core.MessageSource
	wallet     Wallet
	cache      *core.ClassificationCache
	aggregator *core.Aggregator
	submitter  *core.Orchestrator
	reputation *core.ReputationService
	opts       Options
	logger     *zap.Logger
	refreshing core.RunGuard

	mu         sync.RWMutex
	messages   []core.Message
	stats      *core.Statistics
	lastReport *core.SubmissionReport
}

// NewSession wires the core services around a single classification cache
func NewSession(
	source core.MessageSource,
	classifier core.Classifier,
	proofs core.ProofGenerator,
	ledger core.LedgerSubmitter,
	wallet Wallet,
	scorer core.ReputationScorer,
	observer core.Observer,
	logger *zap.Logger,
	opts Options,
) *Session {
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = 10
	}
	cache := core.NewClassificationCache(classifier, logger)
	return &Session{
		source:     source,
		wallet:     wallet,
		cache:      cache,
		aggregator: core.NewAggregator(cache, logger, observer, opts.Policy),
		submitter:  core.NewOrchestrator(cache, proofs, ledger, wallet, logger, observer),
		reputation: core.NewReputationService(scorer, logger),
		opts:       opts,
		logger:     logger,
		stats:      core.NewStatistics(),
	}
}

// Refresh fetches the inbox and recomputes statistics. On a fetch failure
// the previous message set and statistics are kept. A refresh is refused
// with core.ErrRunInProgress while another refresh or a submission run is
// active, leaving the classification cache bound to the current set.
func (s *Session) Refresh(ctx context.Context) (*core.Statistics, error) {
	if !s.refreshing.TryStart() {
		return nil, core.ErrRunInProgress
	}
	defer s.refreshing.Finish()
	if s.submitter.State() == core.Running {
		return nil, core.ErrRunInProgress
	}

	msgs, err := s.source.FetchMessages(ctx, s.opts.FetchLimit)
	if err != nil {
		s.logger.Error("Failed to fetch inbox", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", core.ErrFetch, err)
	}

	s.cache.Bind(msgs)
	stats, err := s.aggregator.Aggregate(ctx, msgs)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.messages = msgs
	s.stats = stats
	s.mu.Unlock()

	s.logger.Info("Inbox refreshed",
		zap.Int("messages", stats.Total),
		zap.Int("threats", stats.ThreatCount),
		zap.Int("unclassified", stats.Unclassified))
	return stats.Clone(), nil
}

// Statistics returns a copy of the statistics from the last refresh
func (s *Session) Statistics() *core.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.Clone()
}

// Messages returns the current message set with cached verdicts, filtered
func (s *Session) Messages(filter present.Filter) []present.InboxItem {
	s.mu.RLock()
	msgs := s.messages
	s.mu.RUnlock()

	items := make([]present.InboxItem, 0, len(msgs))
	for _, m := range msgs {
		item := present.InboxItem{Message: m}
		if result, ok := s.cache.Lookup(m.ID); ok {
			item.Result = result
		}
		items = append(items, item)
	}
	return present.FilterMessages(items, filter)
}

// SubmitProofs submits proofs for the threats in the current message set.
// Statistics are never modified by a submission run.
func (s *Session) SubmitProofs(ctx context.Context) *core.SubmissionReport {
	var report *core.SubmissionReport
	if s.opts.AutoConnect && !s.wallet.Status(ctx).Ready() {
		if err := s.wallet.RequestConnection(ctx); err != nil {
			s.logger.Warn("Wallet connection request failed", zap.Error(err))
		}
		report = s.submitter.Reject(core.ErrNotReady)
	} else {
		s.mu.RLock()
		msgs := s.messages
		s.mu.RUnlock()
		report = s.submitter.Submit(ctx, msgs)
	}

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()
	return report
}

// LastReport returns the report of the most recent submission run, if any
func (s *Session) LastReport() *core.SubmissionReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport
}

// Reputation looks up a sender and prepares it for display
func (s *Session) Reputation(ctx context.Context, sender string) (*present.ReputationView, error) {
	score, err := s.reputation.Lookup(ctx, sender)
	if err != nil {
		return nil, err
	}
	view := present.Reputation(score)
	return &view, nil
}

// Wallet returns the current wallet status
func (s *Session) Wallet(ctx context.Context) core.WalletStatus {
	return s.wallet.Status(ctx)
}

// Connect asks the wallet to connect and returns the resulting status
func (s *Session) Connect(ctx context.Context) (core.WalletStatus, error) {
	if err := s.wallet.RequestConnection(ctx); err != nil {
		return s.wallet.Status(ctx), fmt.Errorf("failed to connect wallet: %w", err)
	}
	return s.wallet.Status(ctx), nil
}

// Disconnect drops the active identity. Later submission runs are rejected
// until the wallet connects again.
func (s *Session) Disconnect(ctx context.Context) core.WalletStatus {
	s.wallet.Disconnect()
	return s.wallet.Status(ctx)
}

// Busy reports whether an aggregation or submission run is active
func (s *Session) Busy() bool {
	return s.refreshing.State() == core.Running ||
		s.aggregator.State() == core.Running ||
		s.submitter.State() == core.Running
}
