package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Sushmit94/solana-project/internal/adapters/proof"
	"github.com/Sushmit94/solana-project/internal/core"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RPC method names exposed by the threat registry node
const (
	MethodSubmitThreatProof   = "submitThreatProof"
	MethodGetSenderReputation = "getSenderReputation"
	MethodGetBalance          = "getBalance"
)

const maxResponseBytes = 2 << 20

// ErrRPCURLRequired is returned when the client has no endpoint configured
var ErrRPCURLRequired = errors.New("ledger rpc_url is required")

// RPCError is an error object returned by the node
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// Client talks JSON-RPC 2.0 to the threat registry. It implements
// core.LedgerSubmitter and core.ReputationScorer.
type Client struct {
	rpcURL     string
	programID  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	nextID     atomic.Uint64
}

// NewClient creates a ledger client. Submissions are paced to rps per second
// with the given burst; rps <= 0 disables pacing.
func NewClient(rpcURL, programID string, timeout time.Duration, rps float64, burst int, logger *zap.Logger) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		rpcURL:     strings.TrimSpace(rpcURL),
		programID:  programID,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}
}

type submitParams struct {
	ProgramID    string            `json:"program_id,omitempty"`
	Submitter    string            `json:"submitter"`
	MessageID    string            `json:"message_id"`
	Proof        string            `json:"proof"`
	ProofHash    string            `json:"proof_hash"`
	PublicInputs core.PublicInputs `json:"public_inputs"`
}

// SubmitProof sends a proof and returns the transaction signature. A null
// result from the node is returned as an empty signature without error.
func (c *Client) SubmitProof(ctx context.Context, p *core.ProofArtifact) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for submission slot: %w", err)
	}

	params := submitParams{
		ProgramID:    c.programID,
		Submitter:    p.Submitter,
		MessageID:    p.MessageID,
		Proof:        base64.StdEncoding.EncodeToString(p.ProofBytes),
		ProofHash:    p.ProofHash(),
		PublicInputs: p.PublicInputs,
	}

	var signature *string
	if err := c.call(ctx, MethodSubmitThreatProof, []any{params}, &signature); err != nil {
		return "", err
	}
	if signature == nil {
		return "", nil
	}

	c.logger.Info("Threat proof submitted",
		zap.String("message_id", p.MessageID),
		zap.String("signature", *signature))
	return *signature, nil
}

type reputationParams struct {
	Sender     string `json:"sender"`
	SenderHash string `json:"sender_hash"`
}

type reputationResult struct {
	Score        float64            `json:"score"`
	TrustLevel   string             `json:"trust_level"`
	TotalProofs  int                `json:"total_proofs"`
	ProofRecords []core.ProofRecord `json:"proof_records"`
}

// LookupReputation implements core.ReputationScorer. The trust level is
// passed through exactly as the node reports it.
func (c *Client) LookupReputation(ctx context.Context, sender string) (*core.ReputationScore, error) {
	var res *reputationResult
	params := reputationParams{Sender: sender, SenderHash: proof.SenderHash(sender)}
	if err := c.call(ctx, MethodGetSenderReputation, []any{params}, &res); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("no reputation record for %s", sender)
	}
	return &core.ReputationScore{
		Sender:       sender,
		Score:        res.Score,
		TrustLevel:   core.TrustLevel(res.TrustLevel),
		TotalProofs:  res.TotalProofs,
		ProofRecords: res.ProofRecords,
	}, nil
}

// Balance returns the lamport balance held by identity
func (c *Client) Balance(ctx context.Context, identity string) (uint64, error) {
	var res struct {
		Value uint64 `json:"value"`
	}
	if err := c.call(ctx, MethodGetBalance, []any{identity}, &res); err != nil {
		return 0, err
	}
	return res.Value, nil
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	if c.rpcURL == "" {
		return ErrRPCURLRequired
	}

	raw, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", method, err)
	}
	c.logger.Debug("Ledger RPC call",
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: rpc http %d: %s", method, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var envelope rpcResponse
	if err := json.Unmarshal(b, &envelope); err != nil {
		return fmt.Errorf("%s: failed to decode rpc json: %w", method, err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("%s: failed to decode result: %w", method, err)
	}
	return nil
}
