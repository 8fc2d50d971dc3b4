package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/hospital-api/internal/config"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

type captureDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSMTPServiceComposesMessage(t *testing.T) {
	d := &captureDialer{}
	svc := &smtpService{dialer: d, from: "clinic@example.com"}

	require.NoError(t, svc.Send(context.Background(), "doc@example.com", "New Appointment Request", "hello"))
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"clinic@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"doc@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"New Appointment Request"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hello")
}

func TestSMTPServiceWrapsTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := &smtpService{dialer: &captureDialer{err: boom}, from: "clinic@example.com"}

	err := svc.Send(context.Background(), "doc@example.com", "s", "b")
	assert.ErrorIs(t, err, boom)
}

func TestSMTPServiceHonoursCancelledContext(t *testing.T) {
	d := &captureDialer{}
	svc := &smtpService{dialer: d}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, svc.Send(ctx, "doc@example.com", "s", "b"), context.Canceled)
	assert.Empty(t, d.sent)
}

func TestNewSMTPServiceDialerSettings(t *testing.T) {
	svc := NewSMTPService(config.MailConfig{
		Host: "smtp.example.com", Port: 465, UseSSL: true,
		Username: "u", Password: "p", From: "clinic@example.com",
	}).(*smtpService)

	d, ok := svc.dialer.(*gomail.Dialer)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", d.Host)
	assert.Equal(t, 465, d.Port)
	assert.True(t, d.SSL)
	require.NotNil(t, d.TLSConfig)
	assert.Equal(t, "smtp.example.com", d.TLSConfig.ServerName)
}

func TestLogService(t *testing.T) {
	assert.NoError(t, NewLogService(logger.Nop()).Send(context.Background(), "doc@example.com", "s", "b"))
}
