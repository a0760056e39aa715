package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator submits proofs for malicious messages one at a time
type Orchestrator struct {
	classifier Classifier
	proofs     ProofGenerator
	ledger     LedgerSubmitter
	wallet     WalletConnector
	logger     *zap.Logger
	observer   Observer
	guard      RunGuard
	now        func() time.Time
}

// NewOrchestrator creates a new submission orchestrator
func NewOrchestrator(
	classifier Classifier,
	proofs ProofGenerator,
	ledger LedgerSubmitter,
	wallet WalletConnector,
	logger *zap.Logger,
	observer Observer,
) *Orchestrator {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Orchestrator{
		classifier: classifier,
		proofs:     proofs,
		ledger:     ledger,
		wallet:     wallet,
		logger:     logger,
		observer:   observer,
		now:        time.Now,
	}
}

// State returns whether a submission run is active
func (o *Orchestrator) State() RunState {
	return o.guard.State()
}

// Submit runs the submission pipeline over messages in inbox order. It never
// returns an error: batch preconditions are reported through a rejected
// report and per-message failures through report.Errors.
func (o *Orchestrator) Submit(ctx context.Context, messages []Message) *SubmissionReport {
	report := o.newReport()

	if !o.guard.TryStart() {
		return o.reject(report, ErrRunInProgress)
	}
	defer o.guard.Finish()

	status := o.walletStatus(ctx)
	if !status.Ready() {
		return o.reject(report, ErrNotReady)
	}

	results, failures := o.classifyAll(ctx, messages)
	malicious := 0
	for _, r := range results {
		if r.err == nil && r.IsMalicious {
			malicious++
		}
	}
	if malicious == 0 && failures == 0 {
		return o.reject(report, ErrNoThreats)
	}

	o.logger.Info("Starting proof submission run",
		zap.String("run_id", report.RunID),
		zap.String("identity", status.Identity),
		zap.Int("messages", len(messages)),
		zap.Int("malicious", malicious))

	for i := range messages {
		msg := &messages[i]
		if results[i].err != nil {
			o.fail(report, msg, StageClassify, errorText(results[i].err, MsgUnknownError), results[i].err)
			continue
		}
		if !results[i].IsMalicious {
			continue
		}
		o.submitOne(ctx, report, msg, results[i].ClassificationResult, status.Identity)
	}

	report.FinishedAt = o.now()
	if len(report.Errors) == 0 {
		report.Status = AllSucceeded
	} else {
		report.Status = PartialFailure
	}

	o.logger.Info("Proof submission run finished",
		zap.String("run_id", report.RunID),
		zap.String("status", report.Status.String()),
		zap.Int("succeeded", report.SuccessCount),
		zap.Int("failed", report.FailureCount()),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))
	o.observer.Observe(Event{Kind: KindBatchFinished, Report: report})

	return report
}

// Reject records a run refused by the caller before it started, for example
// one that only triggered a wallet connection
func (o *Orchestrator) Reject(reason error) *SubmissionReport {
	return o.reject(o.newReport(), reason)
}

func (o *Orchestrator) newReport() *SubmissionReport {
	return &SubmissionReport{
		RunID:     uuid.NewString(),
		StartedAt: o.now(),
		Outcomes:  []SubmissionOutcome{},
		Errors:    []SubmissionError{},
	}
}

type classified struct {
	*ClassificationResult
	err error
}

// classifyAll classifies every message once up front so the empty-batch
// check and the submission loop see the same verdicts.
func (o *Orchestrator) classifyAll(ctx context.Context, messages []Message) ([]classified, int) {
	out := make([]classified, len(messages))
	failures := 0
	for i := range messages {
		msg := &messages[i]
		var result *ClassificationResult
		err := guard(func() error {
			var err error
			result, err = o.classifier.Classify(ctx, msg)
			return err
		})
		if err == nil && result == nil {
			err = errClassifierNil
		}
		if err != nil {
			failures++
			out[i] = classified{err: err}
			continue
		}
		out[i] = classified{ClassificationResult: result}
	}
	return out, failures
}

func (o *Orchestrator) submitOne(ctx context.Context, report *SubmissionReport, msg *Message, result *ClassificationResult, identity string) {
	var proof *ProofArtifact
	err := guard(func() error {
		var err error
		proof, err = o.proofs.GenerateProof(ctx, msg, result)
		return err
	})
	if err != nil || proof == nil {
		o.fail(report, msg, StageProof, MsgProofFailed, err)
		return
	}
	proof.Submitter = identity

	var confirmation string
	err = guard(func() error {
		var err error
		confirmation, err = o.ledger.SubmitProof(ctx, proof)
		return err
	})
	if err != nil {
		o.fail(report, msg, StageSubmit, errorText(err, MsgSubmitFailed), err)
		return
	}
	if confirmation == "" {
		o.fail(report, msg, StageSubmit, MsgNoSignature, nil)
		return
	}

	report.SuccessCount++
	report.Outcomes = append(report.Outcomes, SubmissionOutcome{MessageID: msg.ID, ConfirmationID: confirmation})
	o.logger.Debug("Proof submitted",
		zap.String("message_id", msg.ID),
		zap.String("confirmation", confirmation))
	o.observer.Observe(Event{Kind: KindProofSubmitted, MessageID: msg.ID, Stage: StageSubmit})
}

func (o *Orchestrator) fail(report *SubmissionReport, msg *Message, stage, text string, cause error) {
	subErr := SubmissionError{
		EmailIdentifier: msg.ID,
		Sender:          msg.From,
		Stage:           stage,
		Error:           text,
	}
	report.Errors = append(report.Errors, subErr)
	report.Outcomes = append(report.Outcomes, SubmissionOutcome{MessageID: msg.ID, Err: &subErr})

	o.logger.Warn("Proof submission failed",
		zap.String("message_id", msg.ID),
		zap.String("stage", stage),
		zap.String("reason", text),
		zap.Error(cause))
	o.observer.Observe(Event{Kind: KindSubmissionFailed, MessageID: msg.ID, Stage: stage, Err: cause})
}

func (o *Orchestrator) reject(report *SubmissionReport, reason error) *SubmissionReport {
	report.Status = BatchRejected
	report.RejectReason = reason
	report.FinishedAt = o.now()
	o.logger.Info("Proof submission rejected",
		zap.String("run_id", report.RunID),
		zap.Error(reason))
	o.observer.Observe(Event{Kind: KindBatchFinished, Report: report})
	return report
}

func (o *Orchestrator) walletStatus(ctx context.Context) WalletStatus {
	var status WalletStatus
	if err := guard(func() error {
		status = o.wallet.Status(ctx)
		return nil
	}); err != nil {
		o.logger.Error("Wallet status check failed", zap.Error(err))
		return WalletStatus{}
	}
	return status
}
