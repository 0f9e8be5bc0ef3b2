package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/go-otp-signup/internal/config"
)

// Mailer sends plain-text emails.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	send     sendFunc
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		send:     smtp.SendMail,
	}
}

func (m *mailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return m.send(addr, auth, m.from, []string{to}, []byte(msg))
}

// OTPSender renders the verification email and hands it to a Mailer.
type OTPSender struct {
	mailer   Mailer
	validity time.Duration
}

func NewOTPSender(m Mailer, validity time.Duration) *OTPSender {
	return &OTPSender{mailer: m, validity: validity}
}

func (s *OTPSender) SendOTP(ctx context.Context, to, code string) error {
	return s.mailer.SendEmail(ctx, to, "Your verification code", OTPBody(code, s.validity))
}

// OTPBody is the human-readable message carrying the code.
func OTPBody(code string, validity time.Duration) string {
	return fmt.Sprintf(
		"Your verification code is %s. It is valid for %d minutes.\r\n\r\nIf you did not request this code, you can ignore this email.",
		code, int(validity.Minutes()),
	)
}
