package inbox

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const plainMessage = "From: Alice <alice@example.com>\r\n" +
	"To: bob@example.com, carol@example.com\r\n" +
	"Subject: Quarterly report\r\n" +
	"Date: Mon, 02 Jan 2006 15:04:05 -0700\r\n" +
	"Message-ID: <abc123@example.com>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Numbers attached.\r\n"

const multipartMessage = "From: billing@evil.test\r\n" +
	"To: victim@example.com\r\n" +
	"Subject: Invoice\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=XYZ\r\n" +
	"\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>Open the invoice</p>\r\n" +
	"--XYZ\r\n" +
	"Content-Type: application/octet-stream\r\n" +
	"Content-Disposition: attachment; filename=\"invoice.exe\"\r\n" +
	"\r\n" +
	"MZPAYLOAD\r\n" +
	"--XYZ--\r\n"

func TestParseMessage_Headers(t *testing.T) {
	msg, err := ParseMessage("", []byte(plainMessage))
	require.NoError(t, err)

	assert.Equal(t, "abc123@example.com", msg.ID)
	assert.Equal(t, "alice@example.com", msg.From)
	assert.Equal(t, []string{"bob@example.com", "carol@example.com"}, msg.To)
	assert.Equal(t, "Quarterly report", msg.Subject)
	assert.Contains(t, msg.Body, "Numbers attached.")
	assert.Equal(t, 2006, msg.Date.Year())
	assert.Empty(t, msg.Attachments)
}

func TestParseMessage_HTMLFallbackAndAttachments(t *testing.T) {
	msg, err := ParseMessage("m-1", []byte(multipartMessage))
	require.NoError(t, err)

	assert.Equal(t, "m-1", msg.ID)
	assert.Contains(t, msg.Body, "Open the invoice")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "invoice.exe", msg.Attachments[0].Filename)
	assert.Positive(t, msg.Attachments[0].Size)
	assert.True(t, msg.Date.IsZero())
}

func TestParseMessage_HashIDWithoutMessageID(t *testing.T) {
	raw := []byte("From: a@example.com\r\nSubject: hi\r\n\r\nbody\r\n")
	first, err := ParseMessage("", raw)
	require.NoError(t, err)
	second, err := ParseMessage("", raw)
	require.NoError(t, err)

	assert.Len(t, first.ID, 16)
	assert.Equal(t, first.ID, second.ID)
}

func TestMailbox_NewestFirstAndBounded(t *testing.T) {
	mb := NewMailbox(3)
	for i := 1; i <= 5; i++ {
		mb.Deliver(core.Message{ID: fmt.Sprintf("m%d", i)})
	}
	assert.Equal(t, 3, mb.Len())

	msgs, err := mb.FetchMessages(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m5", msgs[0].ID)
	assert.Equal(t, "m4", msgs[1].ID)

	all, err := mb.FetchMessages(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "m3", all[2].ID)
}

func TestMailbox_Empty(t *testing.T) {
	msgs, err := NewMailbox(0).FetchMessages(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSMTPServer_DeliversToMailbox(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	mb := NewMailbox(10)
	srv := NewSMTPServer(mb, config.SMTPConfig{
		Domain:          "localhost",
		MaxMessageBytes: 1 << 20,
		MaxRecipients:   10,
		Timeout:         5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, srv.StartOn(l))
	defer srv.Stop()

	err = smtp.SendMail(l.Addr().String(), nil, "alice@example.com",
		[]string{"bob@example.com"}, []byte(plainMessage))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return mb.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	msgs, err := mb.FetchMessages(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", msgs[0].From)
	assert.Equal(t, "Quarterly report", msgs[0].Subject)
	assert.Contains(t, msgs[0].ID, "smtp-")
}

func TestDirectorySource_ReadsNewestEML(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.eml")
	recent := filepath.Join(dir, "recent.eml")
	require.NoError(t, os.WriteFile(old, []byte(plainMessage), 0o600))
	require.NoError(t, os.WriteFile(recent, []byte(multipartMessage), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o600))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	src := NewDirectorySource(dir, zap.NewNop())
	msgs, err := src.FetchMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "recent", msgs[0].ID)
	assert.Equal(t, "old", msgs[1].ID)

	limited, err := src.FetchMessages(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestDirectorySource_MissingDirectory(t *testing.T) {
	_, err := NewDirectorySource(filepath.Join(t.TempDir(), "nope"), zap.NewNop()).
		FetchMessages(context.Background(), 10)
	assert.Error(t, err)
}
