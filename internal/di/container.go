package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/Sushmit94/solana-project/internal/adapters/ledger"
	"github.com/Sushmit94/solana-project/internal/adapters/proof"
	"github.com/Sushmit94/solana-project/internal/analyzer"
	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/dashboard"
	"github.com/Sushmit94/solana-project/internal/factory"
	"github.com/Sushmit94/solana-project/internal/httpapi"
	"github.com/Sushmit94/solana-project/internal/logging"
	"github.com/Sushmit94/solana-project/internal/metrics"
	"github.com/Sushmit94/solana-project/internal/utils"
	"github.com/Sushmit94/solana-project/internal/wallet"
)

// BackendName is the dig name of the raw classifier backend
const BackendName = "backend"

// ClassifierParams collects what the analyzer service is built from
type ClassifierParams struct {
	dig.In

	Factory *factory.ClassifierFactory
	Backend core.Classifier `name:"backend"`
	Cache   core.VerdictCache
	TTL     factory.CacheTTL
}

// BuildContainer creates and configures a dependency injection container
// for the dashboard daemon
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideServices(container); err != nil {
		return nil, err
	}

	// Register API server
	if err := container.Provide(func(
		cfg *config.Config,
		session *dashboard.Session,
		collector *metrics.Collector,
		logger *zap.Logger,
	) *httpapi.Server {
		return httpapi.NewServer(session, collector.Registry(), cfg.GetHTTP(), logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideServices registers everything between the logger and the outer
// surfaces. Shared by the daemon and the CLI.
func provideServices(container *dig.Container) error {
	// Register text processor and factories
	for _, ctor := range []interface{}{
		utils.NewTextProcessor,
		factory.NewClassifierFactory,
		factory.NewCacheFactory,
		factory.NewInboxFactory,
		factory.NewLedgerFactory,
	} {
		if err := container.Provide(ctor); err != nil {
			return err
		}
	}

	// Register verdict cache and TTL
	if err := container.Provide(func(f *factory.CacheFactory) (core.VerdictCache, error) {
		return f.CreateVerdictCache()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.CacheFactory) factory.CacheTTL {
		return f.GetCacheTTL()
	}); err != nil {
		return err
	}

	// Register classifier backend and the analyzer wrapping it
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateBackend(context.Background())
	}, dig.Name(BackendName)); err != nil {
		return err
	}
	if err := container.Provide(func(p ClassifierParams) *analyzer.Service {
		return p.Factory.CreateClassifier(p.Backend, p.Cache, p.TTL)
	}); err != nil {
		return err
	}

	// Register inbox provider
	if err := container.Provide(func(f *factory.InboxFactory) (*factory.Inbox, error) {
		return f.CreateInbox()
	}); err != nil {
		return err
	}

	// Register ledger client, wallet and proof generator
	if err := container.Provide(func(f *factory.LedgerFactory) *ledger.Client {
		return f.CreateClient()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.LedgerFactory, client *ledger.Client) *wallet.Manager {
		return f.CreateWallet(client)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.LedgerFactory) *proof.Generator {
		return f.CreateProofGenerator()
	}); err != nil {
		return err
	}

	// Register metrics
	if err := container.Provide(metrics.NewCollector); err != nil {
		return err
	}

	// Register dashboard session
	return container.Provide(newSession)
}

func newSession(
	cfg *config.Config,
	inbox *factory.Inbox,
	classifier *analyzer.Service,
	proofs *proof.Generator,
	client *ledger.Client,
	w *wallet.Manager,
	collector *metrics.Collector,
	logger *zap.Logger,
) (*dashboard.Session, error) {
	dc := cfg.GetDashboard()
	policy, err := dashboard.ParsePolicy(dc.UnclassifiedPolicy)
	if err != nil {
		return nil, err
	}
	return dashboard.NewSession(
		inbox.Source,
		classifier,
		proofs,
		client,
		w,
		client,
		collector,
		logger,
		dashboard.Options{
			FetchLimit:  cfg.GetInbox().Limit,
			AutoConnect: cfg.GetWallet().AutoConnect,
			Policy:      policy,
		},
	), nil
}
