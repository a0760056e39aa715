package inbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"go.uber.org/zap"
)

// IMAPSource reads the newest messages from an IMAP mailbox. Each fetch
// opens its own connection and logs out afterwards.
type IMAPSource struct {
	cfg    config.IMAPConfig
	logger *zap.Logger
}

// NewIMAPSource creates a new IMAP inbox provider
func NewIMAPSource(cfg config.IMAPConfig, logger *zap.Logger) *IMAPSource {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &IMAPSource{cfg: cfg, logger: logger}
}

// FetchMessages implements core.MessageSource. Messages are returned newest
// first and identified by their IMAP UID.
func (s *IMAPSource) FetchMessages(ctx context.Context, limit int) ([]core.Message, error) {
	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := c.Logout(); err != nil {
			s.logger.Debug("IMAP logout failed", zap.Error(err))
		}
	}()

	stop := context.AfterFunc(ctx, func() { _ = c.Terminate() })
	defer stop()

	status, err := c.Select(s.cfg.Mailbox, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", s.cfg.Mailbox, err)
	}
	if status.Messages == 0 {
		return []core.Message{}, nil
	}

	from := uint32(1)
	if limit > 0 && status.Messages > uint32(limit) {
		from = status.Messages - uint32(limit) + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, status.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	fetched := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, fetched)
	}()

	var out []core.Message
	for m := range fetched {
		body := m.GetBody(section)
		if body == nil {
			continue
		}
		raw, err := io.ReadAll(body)
		if err != nil {
			s.logger.Warn("Failed to read IMAP message", zap.Uint32("uid", m.Uid), zap.Error(err))
			continue
		}
		msg, err := ParseMessage(strconv.FormatUint(uint64(m.Uid), 10), raw)
		if err != nil {
			s.logger.Warn("Skipping unparsable IMAP message", zap.Uint32("uid", m.Uid), zap.Error(err))
			continue
		}
		out = append(out, *msg)
	}
	if err := <-done; err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	s.logger.Debug("Fetched IMAP messages",
		zap.String("mailbox", s.cfg.Mailbox),
		zap.Int("count", len(out)))
	return out, nil
}

func (s *IMAPSource) connect() (*client.Client, error) {
	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}

	var (
		c   *client.Client
		err error
	)
	if s.cfg.TLS {
		host := s.cfg.Address
		if h, _, splitErr := net.SplitHostPort(host); splitErr == nil {
			host = h
		}
		c, err = client.DialWithDialerTLS(dialer, s.cfg.Address, &tls.Config{ServerName: host})
	} else {
		c, err = client.DialWithDialer(dialer, s.cfg.Address)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", s.cfg.Address, err)
	}
	c.Timeout = timeout

	if err := c.Login(s.cfg.Username, s.cfg.Password); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("failed to login as %s: %w", strings.TrimSpace(s.cfg.Username), err)
	}
	return c, nil
}
