package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned when no ledger identity is active
	ErrNotReady = errors.New("ledger identity required: connect a wallet first")
	// ErrNoThreats is returned when a submission run has nothing to submit
	ErrNoThreats = errors.New("no threats detected to submit")
	// ErrRunInProgress is returned when a run is started while another is active
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrEmptySender is returned for a blank reputation query
	ErrEmptySender = errors.New("sender identifier is required")
	// ErrFetch wraps inbox provider failures
	ErrFetch = errors.New("failed to fetch messages")
)

// Default failure texts recorded in SubmissionError
const (
	MsgProofFailed  = "proof generation failed"
	MsgSubmitFailed = "Blockchain submission failed"
	MsgNoSignature  = "No signature returned"
	MsgUnknownError = "Unknown error"
)

// errorText returns the message carried by err, or fallback when it has none
func errorText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// guard runs fn and converts a panic into an error
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("collaborator panic: %w", e)
				return
			}
			err = fmt.Errorf("collaborator panic: %v", r)
		}
	}()
	return fn()
}

var errClassifierNil = errors.New("classifier returned no result")
