package factory

import (
	"fmt"

	"github.com/Sushmit94/solana-project/internal/adapters/inbox"
	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/ports"
	"go.uber.org/zap"
)

// Inbox is the configured message source and, for providers that accept
// mail themselves, the listener feeding it
type Inbox struct {
	Source   core.MessageSource
	Listener ports.Server
}

// InboxFactory creates inbox providers based on configuration
type InboxFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewInboxFactory creates a new inbox factory
func NewInboxFactory(cfg *config.Config, logger *zap.Logger) *InboxFactory {
	return &InboxFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateInbox creates the provider named by inbox.provider
func (f *InboxFactory) CreateInbox() (*Inbox, error) {
	ic := f.cfg.GetInbox()

	switch ic.Provider {
	case "smtp":
		mailbox := inbox.NewMailbox(ic.Capacity)
		return &Inbox{
			Source:   mailbox,
			Listener: inbox.NewSMTPServer(mailbox, ic.SMTP, f.logger),
		}, nil
	case "imap":
		return &Inbox{Source: inbox.NewIMAPSource(ic.IMAP, f.logger)}, nil
	case "directory":
		return &Inbox{Source: inbox.NewDirectorySource(ic.Directory, f.logger)}, nil
	default:
		return nil, fmt.Errorf("unsupported inbox provider: %s", ic.Provider)
	}
}
