package proof

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Generator builds hash commitments over a message and its verdict. The
// proof bytes are the sha256 of the public inputs plus a hash of the body,
// so the ledger can check consistency without ever seeing message content.
type Generator struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a new proof generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger, now: time.Now}
}

// GenerateProof implements core.ProofGenerator. It returns nil without an
// error for safe verdicts and for messages without an identifier.
func (g *Generator) GenerateProof(_ context.Context, msg *core.Message, result *core.ClassificationResult) (*core.ProofArtifact, error) {
	if msg == nil || result == nil || !result.IsMalicious || strings.TrimSpace(msg.ID) == "" {
		return nil, nil
	}

	inputs := core.PublicInputs{
		EventType:   result.EventType,
		ThreatLevel: result.ThreatLevel,
		Timestamp:   g.now().UTC().Truncate(time.Second),
		SenderHash:  SenderHash(msg.From),
		MessageHash: Text(msg.ID, msg.From, msg.Subject, msg.Body),
		Confidence:  result.Confidence,
	}

	commitment := Text(
		string(inputs.EventType),
		string(inputs.ThreatLevel),
		strconv.FormatInt(inputs.Timestamp.Unix(), 10),
		inputs.SenderHash,
		inputs.MessageHash,
		strconv.FormatFloat(inputs.Confidence, 'f', 4, 64),
	)
	raw, err := hex.DecodeString(commitment)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("Generated proof",
		zap.String("message_id", msg.ID),
		zap.String("commitment", commitment))

	return &core.ProofArtifact{
		MessageID:    msg.ID,
		ProofBytes:   raw,
		PublicInputs: inputs,
	}, nil
}

// SenderHash hashes a sender address case-insensitively so the same
// mailbox always maps to the same reputation key.
func SenderHash(sender string) string {
	return Text(cases.Fold().String(strings.TrimSpace(sender)))
}

// Text hashes trimmed parts joined by newlines
func Text(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.Write([]byte("\n"))
		}
		_, _ = h.Write([]byte(strings.TrimSpace(p)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
