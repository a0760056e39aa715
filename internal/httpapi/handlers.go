package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/present"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type statisticsResponse struct {
	Statistics *core.Statistics      `json:"statistics"`
	Breakdown  present.BreakdownView `json:"breakdown"`
	Busy       bool                  `json:"busy"`
}

type reportResponse struct {
	*core.SubmissionReport
	Notice       string `json:"notice"`
	RejectReason string `json:"reject_reason,omitempty"`
}

type walletResponse struct {
	core.WalletStatus
	Short string `json:"short,omitempty"`
	Error string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	filter, err := present.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.dashboard.Messages(filter))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.Refresh(r.Context())
	switch {
	case errors.Is(err, core.ErrRunInProgress):
		s.writeError(w, http.StatusConflict, err)
		return
	case errors.Is(err, core.ErrFetch):
		s.writeError(w, http.StatusBadGateway, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statisticsResponse{
		Statistics: stats,
		Breakdown:  present.Breakdown(stats),
		Busy:       s.dashboard.Busy(),
	})
}

func (s *Server) handleStatistics(w http.ResponseWriter, _ *http.Request) {
	stats := s.dashboard.Statistics()
	s.writeJSON(w, http.StatusOK, statisticsResponse{
		Statistics: stats,
		Breakdown:  present.Breakdown(stats),
		Busy:       s.dashboard.Busy(),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	report := s.dashboard.SubmitProofs(r.Context())
	status := http.StatusOK
	if report.Rejected() {
		status = http.StatusUnprocessableEntity
		if errors.Is(report.RejectReason, core.ErrRunInProgress) {
			status = http.StatusConflict
		}
	}
	s.writeJSON(w, status, newReportResponse(report))
}

func (s *Server) handleLastReport(w http.ResponseWriter, _ *http.Request) {
	report := s.dashboard.LastReport()
	if report == nil {
		s.writeError(w, http.StatusNotFound, errors.New("no submission run yet"))
		return
	}
	s.writeJSON(w, http.StatusOK, newReportResponse(report))
}

func (s *Server) handleReputation(w http.ResponseWriter, r *http.Request) {
	view, err := s.dashboard.Reputation(r.Context(), mux.Vars(r)["sender"])
	switch {
	case errors.Is(err, core.ErrEmptySender):
		s.writeError(w, http.StatusBadRequest, err)
	case err != nil:
		s.writeError(w, http.StatusBadGateway, err)
	default:
		s.writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newWalletResponse(s.dashboard.Wallet(r.Context()), nil))
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	status, err := s.dashboard.Connect(r.Context())
	code := http.StatusOK
	if err != nil {
		code = http.StatusBadGateway
	}
	s.writeJSON(w, code, newWalletResponse(status, err))
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newWalletResponse(s.dashboard.Disconnect(r.Context()), nil))
}

func newReportResponse(report *core.SubmissionReport) reportResponse {
	resp := reportResponse{SubmissionReport: report, Notice: report.Notice()}
	if report.RejectReason != nil {
		resp.RejectReason = report.RejectReason.Error()
	}
	return resp
}

func newWalletResponse(status core.WalletStatus, err error) walletResponse {
	resp := walletResponse{WalletStatus: status}
	if status.Identity != "" {
		resp.Short = present.TruncateAddress(status.Identity)
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("API request failed", zap.Int("status", status), zap.Error(err))
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
