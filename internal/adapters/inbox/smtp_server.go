package inbox

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// SMTPServer accepts mail over SMTP and delivers it to a Mailbox
type SMTPServer struct {
	mailbox *Mailbox
	logger  *zap.Logger
	cfg     config.SMTPConfig
	server  *smtp.Server
	seq     atomic.Uint64
}

// NewSMTPServer creates a new SMTP listener for mailbox
func NewSMTPServer(mailbox *Mailbox, cfg config.SMTPConfig, logger *zap.Logger) *SMTPServer {
	s := &SMTPServer{
		mailbox: mailbox,
		logger:  logger,
		cfg:     cfg,
	}
	s.server = smtp.NewServer(&smtpBackend{srv: s})
	s.server.Addr = cfg.ListenAddress
	s.server.Domain = cfg.Domain
	s.server.ReadTimeout = cfg.Timeout
	s.server.WriteTimeout = cfg.Timeout
	s.server.MaxMessageBytes = cfg.MaxMessageBytes
	s.server.MaxRecipients = cfg.MaxRecipients
	s.server.AllowInsecureAuth = true
	if s.server.ReadTimeout <= 0 {
		s.server.ReadTimeout = 30 * time.Second
		s.server.WriteTimeout = 30 * time.Second
	}
	return s
}

// Start listens on the configured address in the background
func (s *SMTPServer) Start() error {
	l, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}
	return s.StartOn(l)
}

// StartOn serves SMTP on an existing listener
func (s *SMTPServer) StartOn(l net.Listener) error {
	s.logger.Info("SMTP inbox listening", zap.String("address", l.Addr().String()))
	go func() {
		if err := s.server.Serve(l); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			s.logger.Error("SMTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop closes the listener and all open sessions
func (s *SMTPServer) Stop() error {
	return s.server.Close()
}

func (s *SMTPServer) deliver(sender string, recipients []string, raw []byte) error {
	id := fmt.Sprintf("smtp-%d-%d", time.Now().Unix(), s.seq.Add(1))
	msg, err := ParseMessage(id, raw)
	if err != nil {
		s.logger.Error("Failed to parse incoming message", zap.String("sender", sender), zap.Error(err))
		return &smtp.SMTPError{
			Code:         554,
			EnhancedCode: smtp.EnhancedCode{5, 6, 0},
			Message:      "Message could not be parsed",
		}
	}
	if msg.From == "" {
		msg.From = sender
	}
	if len(msg.To) == 0 {
		msg.To = recipients
	}

	s.mailbox.Deliver(*msg)
	s.logger.Info("Message received",
		zap.String("message_id", msg.ID),
		zap.String("sender", msg.From),
		zap.Int("recipients", len(recipients)),
		zap.Int("size", len(raw)))
	return nil
}

type smtpBackend struct {
	srv *SMTPServer
}

// NewSession implements smtp.Backend
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{srv: b.srv}, nil
}

type smtpSession struct {
	srv        *SMTPServer
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

func (s *smtpSession) Logout() error {
	return nil
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

func (s *smtpSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.srv.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}
	return s.srv.deliver(s.sender, s.recipients, raw)
}
