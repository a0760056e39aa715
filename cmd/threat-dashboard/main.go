package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/dashboard"
	"github.com/Sushmit94/solana-project/internal/di"
	"github.com/Sushmit94/solana-project/internal/factory"
	"github.com/Sushmit94/solana-project/internal/httpapi"
	"github.com/Sushmit94/solana-project/internal/wallet"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

type runParams struct {
	dig.In

	Config  *config.Config
	Logger  *zap.Logger
	Inbox   *factory.Inbox
	Session *dashboard.Session
	Wallet  *wallet.Manager
	API     *httpapi.Server
	Backend core.Classifier `name:"backend"`
	Cache   core.VerdictCache
}

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(p runParams) error {
	logger := p.Logger
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if p.Inbox.Listener != nil {
		if err := p.Inbox.Listener.Start(); err != nil {
			logger.Error("Failed to start inbox listener", zap.Error(err))
			return err
		}
	}
	if err := p.API.Start(); err != nil {
		logger.Error("Failed to start API server", zap.Error(err))
		return err
	}

	if p.Config.GetWallet().AutoConnect {
		if err := p.Wallet.RequestConnection(ctx); err != nil {
			logger.Warn("Wallet connection failed", zap.Error(err))
		}
	}

	refresh := func() {
		if _, err := p.Session.Refresh(ctx); err != nil {
			logger.Warn("Inbox refresh failed", zap.Error(err))
		}
	}
	refresh()

	var tick <-chan time.Time
	if interval := p.Config.GetDashboard().RefreshInterval; interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for running := true; running; {
		select {
		case <-tick:
			refresh()
		case <-ctx.Done():
			running = false
		}
	}
	logger.Info("Shutting down...")

	if err := p.API.Stop(); err != nil {
		logger.Error("Failed to stop API server", zap.Error(err))
	}
	if p.Inbox.Listener != nil {
		if err := p.Inbox.Listener.Stop(); err != nil {
			logger.Error("Failed to stop inbox listener", zap.Error(err))
		}
	}
	p.Session.Disconnect(context.Background())

	// Close any resources that need closing
	if closer, ok := p.Backend.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier backend", zap.Error(err))
		}
	}
	if stopper, ok := p.Cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
