package mailer

import (
	"testing"

	"estate-hub/pkg/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBuildMessage_PlainOnly(t *testing.T) {
	m := New(&config.SMTPConfig{From: "noreply@estate-hub.test"}, zap.NewNop())

	msg := m.buildMessage("user@example.com", "Hello", "plain body", "")

	assert.Contains(t, msg, "From: noreply@estate-hub.test\r\n")
	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain")
	assert.Contains(t, msg, "plain body")
	assert.NotContains(t, msg, "multipart/alternative")
}

func TestBuildMessage_Alternative(t *testing.T) {
	m := New(&config.SMTPConfig{Username: "sender@example.com"}, zap.NewNop())

	msg := m.buildMessage("user@example.com", "OTP", "code: 123456", "<b>123456</b>")

	// From falls back to the SMTP username when unset.
	assert.Contains(t, msg, "From: sender@example.com\r\n")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "code: 123456")
	assert.Contains(t, msg, "<b>123456</b>")
}
