package core

import (
	"context"
)

// MessageSource fetches messages from the inbox provider
type MessageSource interface {
	// FetchMessages returns up to limit messages in inbox order
	FetchMessages(ctx context.Context, limit int) ([]Message, error)
}

// Classifier defines the interface for the external threat classifier
type Classifier interface {
	// Classify returns the verdict for a single message
	Classify(ctx context.Context, msg *Message) (*ClassificationResult, error)
}

// ProofGenerator builds ledger proofs for malicious messages
type ProofGenerator interface {
	// GenerateProof returns nil without error when no proof can be built
	GenerateProof(ctx context.Context, msg *Message, result *ClassificationResult) (*ProofArtifact, error)
}

// LedgerSubmitter submits proofs to the ledger
type LedgerSubmitter interface {
	// SubmitProof returns the ledger confirmation identifier. An empty
	// identifier means the ledger did not confirm the proof.
	SubmitProof(ctx context.Context, proof *ProofArtifact) (string, error)
}

// WalletStatus is the ledger identity currently held by the caller
type WalletStatus struct {
	Connected bool   `json:"connected"`
	Identity  string `json:"identity,omitempty"`
}

// Ready reports whether submissions may start
func (s WalletStatus) Ready() bool {
	return s.Connected && s.Identity != ""
}

// WalletConnector gates submissions on an active ledger identity
type WalletConnector interface {
	Status(ctx context.Context) WalletStatus
	RequestConnection(ctx context.Context) error
}

// ReputationScorer looks up sender reputation on the ledger
type ReputationScorer interface {
	LookupReputation(ctx context.Context, sender string) (*ReputationScore, error)
}

// VerdictCache defines the interface for caching classification results
type VerdictCache interface {
	// Get retrieves a cached verdict for a message fingerprint
	Get(ctx context.Context, fingerprint string) (*VerdictEntry, error)

	// Set stores a verdict
	Set(ctx context.Context, entry *VerdictEntry) error

	// Delete removes a verdict
	Delete(ctx context.Context, fingerprint string) error

	// Cleanup removes expired verdicts
	Cleanup(ctx context.Context) error
}
