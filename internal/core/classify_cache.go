package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"go.uber.org/zap"
)

// ClassificationCache classifies each message at most once per message set.
// Entries are keyed by message ID and dropped when Bind sees a different set.
// Failed classifications are not cached.
type ClassificationCache struct {
	classifier  Classifier
	logger      *zap.Logger
	mu          sync.Mutex
	fingerprint string
	results     map[string]*ClassificationResult
}

// NewClassificationCache wraps classifier with a classify-once cache
func NewClassificationCache(classifier Classifier, logger *zap.Logger) *ClassificationCache {
	return &ClassificationCache{
		classifier: classifier,
		logger:     logger,
		results:    make(map[string]*ClassificationResult),
	}
}

// Bind associates the cache with a message set, invalidating cached results
// when the set differs from the previously bound one.
func (c *ClassificationCache) Bind(messages []Message) {
	fp := setFingerprint(messages)

	c.mu.Lock()
	defer c.mu.Unlock()
	if fp == c.fingerprint {
		return
	}
	c.logger.Debug("Message set changed, invalidating classification cache",
		zap.Int("cached", len(c.results)),
		zap.Int("messages", len(messages)))
	c.fingerprint = fp
	c.results = make(map[string]*ClassificationResult)
}

// Classify implements Classifier
func (c *ClassificationCache) Classify(ctx context.Context, msg *Message) (*ClassificationResult, error) {
	if result, ok := c.Lookup(msg.ID); ok {
		return result, nil
	}

	var result *ClassificationResult
	err := guard(func() error {
		var err error
		result, err = c.classifier.Classify(ctx, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errClassifierNil
	}

	c.mu.Lock()
	c.results[msg.ID] = result
	c.mu.Unlock()
	return result, nil
}

// Lookup returns the cached result for a message ID
func (c *ClassificationCache) Lookup(id string) (*ClassificationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.results[id]
	return result, ok
}

// Len returns the number of cached results
func (c *ClassificationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

func setFingerprint(messages []Message) string {
	h := sha256.New()
	for i := range messages {
		h.Write([]byte(messages[i].ID))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
