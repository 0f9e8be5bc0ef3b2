package smtp

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/go-otp-signup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type captured struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newTestMailer(cfg *config.Config, sendErr error) (*mailer, *captured) {
	c := &captured{}
	m := NewMailer(cfg).(*mailer)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		c.addr, c.auth, c.from, c.to, c.msg = addr, a, from, to, string(msg)
		return sendErr
	}
	return m, c
}

func TestSendEmail_BuildsMessage(t *testing.T) {
	m, c := newTestMailer(&config.Config{SMTPHost: "mail", SMTPPort: "1025", SMTPFrom: "noreply@x.com"}, nil)

	require.NoError(t, m.SendEmail(context.Background(), "a@x.com", "Hi", "body"))

	assert.Equal(t, "mail:1025", c.addr)
	assert.Nil(t, c.auth)
	assert.Equal(t, "noreply@x.com", c.from)
	assert.Equal(t, []string{"a@x.com"}, c.to)
	assert.True(t, strings.HasPrefix(c.msg, "From: noreply@x.com\r\nTo: a@x.com\r\nSubject: Hi\r\n\r\n"))
	assert.True(t, strings.HasSuffix(c.msg, "body"))
}

func TestSendEmail_UsesAuthWhenConfigured(t *testing.T) {
	m, c := newTestMailer(&config.Config{SMTPHost: "mail", SMTPPort: "587", SMTPUsername: "u", SMTPPassword: "p"}, nil)
	require.NoError(t, m.SendEmail(context.Background(), "a@x.com", "s", "b"))
	assert.NotNil(t, c.auth)
}

func TestSendEmail_PropagatesError(t *testing.T) {
	m, _ := newTestMailer(&config.Config{SMTPHost: "mail", SMTPPort: "25"}, errors.New("connection refused"))
	assert.EqualError(t, m.SendEmail(context.Background(), "a@x.com", "s", "b"), "connection refused")
}

func TestSendEmail_CanceledContext(t *testing.T) {
	m, c := newTestMailer(&config.Config{SMTPHost: "mail", SMTPPort: "25"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.SendEmail(ctx, "a@x.com", "s", "b"), context.Canceled)
	assert.Empty(t, c.addr)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

func TestOTPSender_RendersCodeAndValidity(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, "a@x.com", "Your verification code", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "012345") && strings.Contains(body, "5 minutes")
	})).Return(nil)

	err := NewOTPSender(ml, 5*time.Minute).SendOTP(context.Background(), "a@x.com", "012345")

	require.NoError(t, err)
	ml.AssertExpectations(t)
}
