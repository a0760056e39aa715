package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// BatchStatus is the aggregate result of a submission run
type BatchStatus int

const (
	// AllSucceeded means every malicious message was confirmed by the ledger
	AllSucceeded BatchStatus = iota
	// PartialFailure means at least one message failed; see FailureCount
	PartialFailure
	// BatchRejected means the run never started; see RejectReason
	BatchRejected
)

func (s BatchStatus) String() string {
	switch s {
	case AllSucceeded:
		return "all_succeeded"
	case PartialFailure:
		return "partial_failure"
	case BatchRejected:
		return "batch_rejected"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status as its string form
func (s BatchStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// SubmissionReport is the result of one orchestration run
type SubmissionReport struct {
	RunID        string              `json:"run_id"`
	Status       BatchStatus         `json:"status"`
	RejectReason error               `json:"-"`
	SuccessCount int                 `json:"success_count"`
	Outcomes     []SubmissionOutcome `json:"outcomes"`
	Errors       []SubmissionError   `json:"errors"`
	StartedAt    time.Time           `json:"started_at"`
	FinishedAt   time.Time           `json:"finished_at"`
}

// FailureCount returns the number of messages that produced a SubmissionError
func (r *SubmissionReport) FailureCount() int {
	return len(r.Errors)
}

// Rejected reports whether the run was refused before any per-message work
func (r *SubmissionReport) Rejected() bool {
	return r.Status == BatchRejected
}

// Notice returns the user-facing summary line. The aggregate success notice
// is only produced when no message failed.
func (r *SubmissionReport) Notice() string {
	switch r.Status {
	case BatchRejected:
		if r.RejectReason != nil {
			return r.RejectReason.Error()
		}
		return "submission rejected"
	case AllSucceeded:
		return fmt.Sprintf("Successfully submitted all %d proofs to the ledger", r.SuccessCount)
	default:
		return fmt.Sprintf("Submitted %d proofs, %d failed", r.SuccessCount, r.FailureCount())
	}
}
