// Package mail delivers transactional e-mail through SMTP or Resend,
// guarded by a circuit breaker.
package mail

import (
	"context"
	"log/slog"

	"github.com/go-restaurant-api/internal/config"
)

// Mailer sends an HTML e-mail to a single recipient.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

// New builds the mailer selected by cfg.MailProvider and wraps it in a
// circuit breaker. In development without credentials mail is only logged.
func New(cfg *config.Config) Mailer {
	var m Mailer
	switch {
	case cfg.MailProvider == "log":
		m = logMailer{}
	case cfg.MailProvider == "resend":
		if cfg.ResendAPIKey == "" && cfg.IsDev() {
			m = logMailer{}
			break
		}
		m = NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	default:
		if cfg.SMTPUsername == "" && cfg.IsDev() {
			m = logMailer{}
			break
		}
		m = NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return NewBreaker(m, cfg.MailBreakerMaxFailures, cfg.MailBreakerTimeout)
}

type logMailer struct{}

func (logMailer) SendEmail(_ context.Context, to, subject, html string) error {
	slog.Info("email sent (dev mode)", "to", to, "subject", subject, "body", html)
	return nil
}
