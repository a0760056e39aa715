package inbox

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/jhillyerd/enmime"
)

// ParseMessage decodes a raw RFC 5322 message. When id is empty the
// Message-ID header is used, falling back to a hash of the raw bytes.
func ParseMessage(id string, raw []byte) (*core.Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	if id == "" {
		id = strings.Trim(strings.TrimSpace(env.GetHeader("Message-ID")), "<>")
	}
	if id == "" {
		sum := sha256.Sum256(raw)
		id = hex.EncodeToString(sum[:8])
	}

	msg := &core.Message{
		ID:      id,
		From:    firstAddress(env, "From"),
		To:      addresses(env, "To"),
		Subject: env.GetHeader("Subject"),
		Body:    env.Text,
	}
	if strings.TrimSpace(msg.Body) == "" {
		msg.Body = env.HTML
	}
	if d, err := mail.ParseDate(env.GetHeader("Date")); err == nil {
		msg.Date = d
	}
	for _, part := range env.Attachments {
		msg.Attachments = append(msg.Attachments, core.Attachment{
			Filename: part.FileName,
			Size:     int64(len(part.Content)),
		})
	}
	return msg, nil
}

func firstAddress(env *enmime.Envelope, header string) string {
	list, err := env.AddressList(header)
	if err != nil || len(list) == 0 {
		return strings.TrimSpace(env.GetHeader(header))
	}
	return list[0].Address
}

func addresses(env *enmime.Envelope, header string) []string {
	list, err := env.AddressList(header)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Address)
	}
	return out
}
