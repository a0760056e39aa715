package inbox

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startIMAP(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(memory.New())
	srv.AllowInsecureAuth = true
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })
	return l.Addr().String()
}

func TestIMAPSource_FetchesInbox(t *testing.T) {
	addr := startIMAP(t)
	src := NewIMAPSource(config.IMAPConfig{
		Address:  addr,
		Username: "username",
		Password: "password",
		Timeout:  5 * time.Second,
	}, zap.NewNop())

	msgs, err := src.FetchMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.NotEmpty(t, msgs[0].ID)
	assert.Equal(t, "contact@example.org", msgs[0].From)
	assert.NotEmpty(t, msgs[0].Subject)
}

func TestIMAPSource_BadLogin(t *testing.T) {
	addr := startIMAP(t)
	src := NewIMAPSource(config.IMAPConfig{
		Address:  addr,
		Username: "username",
		Password: "wrong",
		Timeout:  5 * time.Second,
	}, zap.NewNop())

	_, err := src.FetchMessages(context.Background(), 10)
	assert.ErrorContains(t, err, "failed to login")
}
