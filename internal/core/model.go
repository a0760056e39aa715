package core

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ThreatLevel is the severity assigned to a classified message
type ThreatLevel string

const (
	ThreatCritical ThreatLevel = "critical"
	ThreatHigh     ThreatLevel = "high"
	ThreatMedium   ThreatLevel = "medium"
	ThreatLow      ThreatLevel = "low"
	ThreatSafe     ThreatLevel = "safe"
)

// AllThreatLevels lists the known threat levels from most to least severe
var AllThreatLevels = []ThreatLevel{ThreatCritical, ThreatHigh, ThreatMedium, ThreatLow, ThreatSafe}

// EventType is the category of malicious intent
type EventType string

const (
	EventPhishing          EventType = "phishing"
	EventSpam              EventType = "spam"
	EventMalware           EventType = "malware"
	EventSocialEngineering EventType = "social_engineering"
)

// AllEventTypes lists the known event types
var AllEventTypes = []EventType{EventPhishing, EventSpam, EventMalware, EventSocialEngineering}

// Attachment describes a file attached to a message
type Attachment struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Message is an inbox message as delivered by the inbox provider
type Message struct {
	ID          string       `json:"id"`
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Date        time.Time    `json:"date"`
	Attachments []Attachment `json:"attachments"`
}

// ClassificationResult is the verdict produced for a single message
type ClassificationResult struct {
	IsMalicious      bool        `json:"is_malicious"`
	ThreatLevel      ThreatLevel `json:"threat_level"`
	EventType        EventType   `json:"event_type"`
	Confidence       float64     `json:"confidence"`
	DetectedKeywords []string    `json:"detected_keywords"`
	Reasons          []string    `json:"reasons"`
	ModelUsed        string      `json:"model_used,omitempty"`
	AnalyzedAt       time.Time   `json:"analyzed_at"`
}

// PublicInputs are the values a proof commits to that the ledger can read
type PublicInputs struct {
	EventType   EventType   `json:"event_type"`
	ThreatLevel ThreatLevel `json:"threat_level"`
	Timestamp   time.Time   `json:"timestamp"`
	SenderHash  string      `json:"sender_hash"`
	MessageHash string      `json:"message_hash"`
	Confidence  float64     `json:"confidence"`
}

// ProofArtifact is a proof ready to be submitted to the ledger
type ProofArtifact struct {
	MessageID    string       `json:"message_id"`
	ProofBytes   []byte       `json:"proof_bytes"`
	PublicInputs PublicInputs `json:"public_inputs"`
	Submitter    string       `json:"submitter,omitempty"`
}

// ProofHash returns the hex encoded sha256 of the proof bytes
func (p *ProofArtifact) ProofHash() string {
	sum := sha256.Sum256(p.ProofBytes)
	return hex.EncodeToString(sum[:])
}

// Submission stages
const (
	StageClassify = "classify"
	StageProof    = "proof"
	StageSubmit   = "submit"
)

// SubmissionError records why a single message could not be submitted
type SubmissionError struct {
	EmailIdentifier string `json:"email"`
	Sender          string `json:"sender"`
	Stage           string `json:"stage"`
	Error           string `json:"error"`
}

// SubmissionOutcome is the result of one submission attempt. Exactly one of
// ConfirmationID and Err is set.
type SubmissionOutcome struct {
	MessageID      string           `json:"message_id"`
	ConfirmationID string           `json:"confirmation_id,omitempty"`
	Err            *SubmissionError `json:"error,omitempty"`
}

// Succeeded reports whether the ledger confirmed the submission
func (o SubmissionOutcome) Succeeded() bool {
	return o.Err == nil && o.ConfirmationID != ""
}

// Statistics summarises the classification of a message set
type Statistics struct {
	Total        int                 `json:"total"`
	SafeCount    int                 `json:"safe"`
	ThreatCount  int                 `json:"threats"`
	Unclassified int                 `json:"unclassified"`
	ByLevel      map[ThreatLevel]int `json:"by_level"`
	ByType       map[EventType]int   `json:"by_type"`
}

// NewStatistics returns zeroed statistics with every known level and type present
func NewStatistics() *Statistics {
	s := &Statistics{
		ByLevel: make(map[ThreatLevel]int, len(AllThreatLevels)),
		ByType:  make(map[EventType]int, len(AllEventTypes)),
	}
	for _, l := range AllThreatLevels {
		s.ByLevel[l] = 0
	}
	for _, t := range AllEventTypes {
		s.ByType[t] = 0
	}
	return s
}

// Clone returns a deep copy
func (s *Statistics) Clone() *Statistics {
	if s == nil {
		return nil
	}
	c := *s
	c.ByLevel = make(map[ThreatLevel]int, len(s.ByLevel))
	for k, v := range s.ByLevel {
		c.ByLevel[k] = v
	}
	c.ByType = make(map[EventType]int, len(s.ByType))
	for k, v := range s.ByType {
		c.ByType[k] = v
	}
	return &c
}

// TrustLevel is the reputation class assigned by the external scorer
type TrustLevel string

const (
	TrustTrusted    TrustLevel = "trusted"
	TrustNeutral    TrustLevel = "neutral"
	TrustSuspicious TrustLevel = "suspicious"
	TrustDangerous  TrustLevel = "dangerous"
)

// ProofRecord is a single ledger entry recorded against a sender
type ProofRecord struct {
	EventType EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ProofHash string    `json:"proof_hash"`
	Score     float64   `json:"score"`
	Verified  bool      `json:"verified"`
}

// ReputationScore is the scorer's view of a sender
type ReputationScore struct {
	Sender       string        `json:"sender"`
	Score        float64       `json:"score"`
	TrustLevel   TrustLevel    `json:"trust_level"`
	TotalProofs  int           `json:"total_proofs"`
	ProofRecords []ProofRecord `json:"proof_records"`
}

// Confidence is the percentage shown next to a score: 95 once the sender
// has ledger history, 50 otherwise.
func (r *ReputationScore) Confidence() int {
	if r.TotalProofs > 0 {
		return 95
	}
	return 50
}

// VerdictEntry is a cached classification keyed by message fingerprint
type VerdictEntry struct {
	Fingerprint string
	Result      ClassificationResult
	CachedAt    time.Time
	ExpiresAt   time.Time
}

// Fingerprint identifies a message by its content so cached verdicts survive
// re-fetching the same message under a different inbox position.
func Fingerprint(msg *Message) string {
	h := sha256.New()
	for _, part := range []string{msg.ID, msg.From, msg.Subject, msg.Body} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	for _, a := range msg.Attachments {
		h.Write([]byte(a.Filename))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
