package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
)

// row is the column layout shared by the SQL backends
type row struct {
	fingerprint string
	payload     []byte
	cachedAt    int64
	expiresAt   int64
}

func encodeEntry(entry *core.VerdictEntry) (row, error) {
	payload, err := json.Marshal(entry.Result)
	if err != nil {
		return row{}, fmt.Errorf("failed to encode verdict: %w", err)
	}
	return row{
		fingerprint: entry.Fingerprint,
		payload:     payload,
		cachedAt:    entry.CachedAt.Unix(),
		expiresAt:   entry.ExpiresAt.Unix(),
	}, nil
}

func (r row) decode() (*core.VerdictEntry, error) {
	entry := &core.VerdictEntry{
		Fingerprint: r.fingerprint,
		CachedAt:    time.Unix(r.cachedAt, 0),
		ExpiresAt:   time.Unix(r.expiresAt, 0),
	}
	if err := json.Unmarshal(r.payload, &entry.Result); err != nil {
		return nil, fmt.Errorf("failed to decode verdict: %w", err)
	}
	return entry, nil
}
