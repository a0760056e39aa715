package whitelist

import (
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Checker decides whether a sender is trusted enough to skip classification.
// Entries are either full addresses (alice@example.com) or domains
// (example.com); a domain entry also covers its subdomains.
type Checker struct {
	addresses map[string]struct{}
	domains   []string
	logger    *zap.Logger
}

// NewChecker creates a checker from trusted addresses and domains
func NewChecker(entries []string, logger *zap.Logger) *Checker {
	c := &Checker{
		addresses: make(map[string]struct{}),
		logger:    logger,
	}
	for _, e := range entries {
		e = fold(strings.TrimSpace(e))
		switch {
		case e == "":
		case strings.Contains(e, "@"):
			c.addresses[e] = struct{}{}
		default:
			c.domains = append(c.domains, strings.TrimPrefix(e, "."))
		}
	}

	if len(entries) > 0 && logger != nil {
		logger.Info("Initialized trusted sender list",
			zap.Int("addresses", len(c.addresses)),
			zap.Strings("domains", c.domains))
	}
	return c
}

// IsWhitelisted reports whether from is a trusted sender. from may carry a
// display name ("Alice <alice@example.com>").
func (c *Checker) IsWhitelisted(from string) bool {
	if len(c.addresses) == 0 && len(c.domains) == 0 {
		return false
	}

	addr := from
	if parsed, err := mail.ParseAddress(from); err == nil {
		addr = parsed.Address
	}
	addr = fold(strings.TrimSpace(addr))

	at := strings.LastIndex(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return false
	}

	if _, ok := c.addresses[addr]; ok {
		c.debug("Sender address is trusted", from)
		return true
	}
	domain := addr[at+1:]
	for _, trusted := range c.domains {
		if domain == trusted || strings.HasSuffix(domain, "."+trusted) {
			c.debug("Sender domain is trusted", from)
			return true
		}
	}
	return false
}

func (c *Checker) debug(msg, from string) {
	if c.logger != nil {
		c.logger.Debug(msg, zap.String("sender", from))
	}
}

// fold case-folds s. Casers hold state so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
