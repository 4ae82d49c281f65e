package mailer

import (
	"context"
	"testing"

	"dailypay-backend/internal/config"
	"dailypay-backend/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPasswordReset(t *testing.T) {
	msg := PasswordReset("https://shop.example", "/reset-password", "Ada <3", "ada+1@x.com", "abc123")

	assert.Equal(t, "ada+1@x.com", msg.To)
	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Equal(t, "Reset your password: https://shop.example/reset-password?token=abc123&email=ada%2B1%40x.com", msg.Text)
	assert.Contains(t, msg.HTML, "Hello Ada &lt;3,")
	assert.Contains(t, msg.HTML, `href="https://shop.example/reset-password?token=abc123&amp;email=ada%2B1%40x.com"`)
}

func TestNew_FallsBackToLogMailer(t *testing.T) {
	m := New(config.SMTPConfig{})

	_, ok := m.(*LogMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: "a@x.com"}))
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "127.0.0.1", Port: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, Message{To: "a@x.com"}), context.Canceled)
}

func TestLogMailer_RedactsResetToken(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = prev })

	msg := PasswordReset("https://shop.example", "/reset-password", "Ada", "ada@x.com", "deadbeef42")
	require.NoError(t, LogMailer{}.Send(context.Background(), msg))

	entries := logs.All()
	require.Len(t, entries, 1)
	body := entries[0].ContextMap()["body"].(string)
	assert.NotContains(t, body, "deadbeef42")
	assert.Contains(t, body, "token=REDACTED&email=ada%40x.com")
}
