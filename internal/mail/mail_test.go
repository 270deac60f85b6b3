package mail

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, from, to, subject, body string) string {
	t.Helper()
	msg, err := buildMessage(from, to, subject, body)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestBuildMessage(t *testing.T) {
	raw := render(t, "noreply@example.com", "alice@example.com", "On hold\r\nBcc: evil@example.com", "line one\nline two")

	assert.Contains(t, raw, "alice@example.com")
	assert.NotContains(t, raw, "\r\nBcc:")
	assert.Contains(t, raw, "line one")
	assert.Contains(t, raw, "text/plain")
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	raw := render(t, "noreply@example.com", "alice@example.com", "Überprüfung abgeschlossen", "body")

	assert.NotContains(t, raw, "Subject: Überprüfung")
	assert.Contains(t, raw, "=?UTF-8?")
}

func TestBuildMessage_InvalidAddress(t *testing.T) {
	_, err := buildMessage("noreply@example.com", "not an address", "s", "b")
	assert.Error(t, err)

	_, err = buildMessage("", "alice@example.com", "s", "b")
	assert.Error(t, err)
}

func TestSMTPSender_UnreachableRelay(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	sender := NewSMTPSender(Config{Host: "127.0.0.1", Port: port, From: "noreply@example.com"})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = sender.Send(ctx, "alice@example.com", "Document completed", "done")
	assert.Error(t, err)
}

func TestNew_SelectsSender(t *testing.T) {
	assert.IsType(t, LogSender{}, New(Config{}))
	assert.IsType(t, &SMTPSender{}, New(Config{Host: "smtp.example.com"}))
	assert.Equal(t, 587, NewSMTPSender(Config{Host: "smtp.example.com"}).cfg.Port)
	assert.NoError(t, LogSender{}.Send(context.Background(), "a@example.com", "s", "b"))
}
