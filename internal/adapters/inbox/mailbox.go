package inbox

import (
	"context"
	"sync"

	"github.com/Sushmit94/solana-project/internal/core"
)

// Mailbox is a bounded in-memory inbox. Once full, the oldest message is
// dropped for every new one.
type Mailbox struct {
	mu       sync.RWMutex
	messages []core.Message
	capacity int
}

// NewMailbox creates a mailbox holding at most capacity messages
func NewMailbox(capacity int) *Mailbox {
	if capacity <= 0 {
		capacity = 100
	}
	return &Mailbox{capacity: capacity}
}

// Deliver appends a message
func (m *Mailbox) Deliver(msg core.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	if over := len(m.messages) - m.capacity; over > 0 {
		m.messages = append([]core.Message(nil), m.messages[over:]...)
	}
}

// FetchMessages implements core.MessageSource. It returns up to limit
// messages, newest first.
func (m *Mailbox) FetchMessages(_ context.Context, limit int) ([]core.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.messages)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]core.Message, 0, n)
	for i := len(m.messages) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.messages[i])
	}
	return out, nil
}

// Len returns the number of stored messages
func (m *Mailbox) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}
