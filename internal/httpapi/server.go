package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/present"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dashboard is the session the API serves
type Dashboard interface {
	Refresh(ctx context.Context) (*core.Statistics, error)
	Statistics() *core.Statistics
	Messages(filter present.Filter) []present.InboxItem
	SubmitProofs(ctx context.Context) *core.SubmissionReport
	LastReport() *core.SubmissionReport
	Reputation(ctx context.Context, sender string) (*present.ReputationView, error)
	Wallet(ctx context.Context) core.WalletStatus
	Connect(ctx context.Context) (core.WalletStatus, error)
	Disconnect(ctx context.Context) core.WalletStatus
	Busy() bool
}

// Server exposes the dashboard over HTTP
type Server struct {
	dashboard Dashboard
	logger    *zap.Logger
	cfg       config.HTTPConfig
	router    *mux.Router
	server    *http.Server
}

// NewServer creates the API server. A nil gatherer disables /metrics.
func NewServer(dashboard Dashboard, gatherer prometheus.Gatherer, cfg config.HTTPConfig, logger *zap.Logger) *Server {
	s := &Server{
		dashboard: dashboard,
		logger:    logger,
		cfg:       cfg,
	}
	s.router = s.routes(gatherer)
	s.server = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes(gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.Path("/api/messages").HandlerFunc(s.handleMessages).Name("Messages").Methods(http.MethodGet)
	r.Path("/api/refresh").HandlerFunc(s.handleRefresh).Name("Refresh").Methods(http.MethodPost)
	r.Path("/api/statistics").HandlerFunc(s.handleStatistics).Name("Statistics").Methods(http.MethodGet)
	r.Path("/api/submissions").HandlerFunc(s.handleSubmit).Name("Submit").Methods(http.MethodPost)
	r.Path("/api/submissions/last").HandlerFunc(s.handleLastReport).Name("LastReport").Methods(http.MethodGet)
	r.Path("/api/reputation/{sender}").HandlerFunc(s.handleReputation).Name("Reputation").Methods(http.MethodGet)
	r.Path("/api/wallet").HandlerFunc(s.handleWallet).Name("Wallet").Methods(http.MethodGet)
	r.Path("/api/wallet/connect").HandlerFunc(s.handleConnect).Name("Connect").Methods(http.MethodPost)
	r.Path("/api/wallet/disconnect").HandlerFunc(s.handleDisconnect).Name("Disconnect").Methods(http.MethodPost)

	if gatherer != nil {
		r.Path("/metrics").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return r
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address in the background
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}
	s.logger.Info("HTTP API listening", zap.String("address", l.Addr().String()))
	go func() {
		if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}
