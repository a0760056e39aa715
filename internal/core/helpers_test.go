package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type stubClassifier struct {
	mu      sync.Mutex
	results map[string]*ClassificationResult
	errs    map[string]error
	panics  map[string]bool
	calls   map[string]int
}

func newStubClassifier() *stubClassifier {
	return &stubClassifier{
		results: make(map[string]*ClassificationResult),
		errs:    make(map[string]error),
		panics:  make(map[string]bool),
		calls:   make(map[string]int),
	}
}

func (c *stubClassifier) Classify(_ context.Context, msg *Message) (*ClassificationResult, error) {
	c.mu.Lock()
	c.calls[msg.ID]++
	c.mu.Unlock()

	if c.panics[msg.ID] {
		panic("classifier exploded")
	}
	if err, ok := c.errs[msg.ID]; ok {
		return nil, err
	}
	if r, ok := c.results[msg.ID]; ok {
		return r, nil
	}
	return &ClassificationResult{ThreatLevel: ThreatSafe, Confidence: 0.9}, nil
}

func (c *stubClassifier) totalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

type mockProofs struct {
	mock.Mock
}

func (m *mockProofs) GenerateProof(ctx context.Context, msg *Message, result *ClassificationResult) (*ProofArtifact, error) {
	args := m.Called(ctx, msg, result)
	var proof *ProofArtifact
	if p := args.Get(0); p != nil {
		proof = p.(*ProofArtifact)
	}
	return proof, args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) SubmitProof(ctx context.Context, proof *ProofArtifact) (string, error) {
	args := m.Called(ctx, proof)
	return args.String(0), args.Error(1)
}

type stubWallet struct {
	status WalletStatus
}

func (w *stubWallet) Status(context.Context) WalletStatus { return w.status }

func (w *stubWallet) RequestConnection(context.Context) error {
	w.status = WalletStatus{Connected: true, Identity: "wallet-1"}
	return nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingObserver) Observe(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recordingObserver) count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// inbox returns five messages where m2 is a critical phishing attempt and
// m4 is medium spam.
func inbox() ([]Message, *stubClassifier) {
	msgs := make([]Message, 5)
	for i := range msgs {
		msgs[i] = Message{
			ID:      fmt.Sprintf("m%d", i+1),
			From:    fmt.Sprintf("sender%d@example.com", i+1),
			To:      []string{"me@example.com"},
			Subject: fmt.Sprintf("subject %d", i+1),
		}
	}
	c := newStubClassifier()
	c.results["m2"] = &ClassificationResult{IsMalicious: true, ThreatLevel: ThreatCritical, EventType: EventPhishing, Confidence: 0.95}
	c.results["m4"] = &ClassificationResult{IsMalicious: true, ThreatLevel: ThreatMedium, EventType: EventSpam, Confidence: 0.6}
	return msgs, c
}

func proofFor(id string) *ProofArtifact {
	return &ProofArtifact{MessageID: id, ProofBytes: []byte("proof-" + id)}
}

func readyWallet() *stubWallet {
	return &stubWallet{status: WalletStatus{Connected: true, Identity: "wallet-1"}}
}

func messageID(id string) interface{} {
	return mock.MatchedBy(func(m *Message) bool { return m.ID == id })
}

func proofID(id string) interface{} {
	return mock.MatchedBy(func(p *ProofArtifact) bool { return p.MessageID == id })
}

var errBoom = errors.New("boom")

var testLogger = zap.NewNop()
