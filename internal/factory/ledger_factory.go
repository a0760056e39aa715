package factory

import (
	"github.com/Sushmit94/solana-project/internal/adapters/ledger"
	"github.com/Sushmit94/solana-project/internal/adapters/proof"
	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/wallet"
	"go.uber.org/zap"
)

// LedgerFactory creates the ledger client, the wallet and the proof generator
type LedgerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLedgerFactory creates a new ledger factory
func NewLedgerFactory(cfg *config.Config, logger *zap.Logger) *LedgerFactory {
	return &LedgerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates the JSON-RPC ledger client
func (f *LedgerFactory) CreateClient() *ledger.Client {
	lc := f.cfg.GetLedger()
	return ledger.NewClient(lc.RPCURL, lc.ProgramID, lc.Timeout, lc.RateLimit, lc.Burst, f.logger)
}

// CreateWallet creates a wallet manager probing identities through client
func (f *LedgerFactory) CreateWallet(client *ledger.Client) *wallet.Manager {
	return wallet.NewManager(f.cfg.GetWallet().Identity, client, f.logger)
}

// CreateProofGenerator creates the proof generator
func (f *LedgerFactory) CreateProofGenerator() *proof.Generator {
	return proof.NewGenerator(f.logger)
}
