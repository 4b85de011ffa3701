package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"golang.org/x/time/rate"
)

const mailSubject = "Confirmation code"

// Mailer delivers confirmation codes. Delivery is best-effort: the signup
// response never waits on it and failures are logged, not surfaced.
type Mailer interface {
	SendConfirmationCode(email, code string)
}

// SMTPMailer sends codes through a plain SMTP relay, throttled so a signup
// burst cannot flood the relay.
type SMTPMailer struct {
	addr    string // host:port
	from    string
	logger  *slog.Logger
	limiter *rate.Limiter
}

func NewSMTPMailer(addr, from string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		addr:   addr,
		from:   from,
		logger: logger,
		// one message per second with a small burst is plenty for signups
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// SendConfirmationCode dispatches the code asynchronously, fire and forget.
func (m *SMTPMailer) SendConfirmationCode(email, code string) {
	go func() {
		if err := m.limiter.Wait(context.Background()); err != nil {
			return
		}
		msg := fmt.Sprintf(
			"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\nYour confirmation code: %s\r\n",
			m.from, email, mailSubject, code,
		)
		if err := smtp.SendMail(m.addr, nil, m.from, []string{email}, []byte(msg)); err != nil {
			m.logger.Warn("confirmation mail delivery failed", "email", email, "error", err)
		}
	}()
}

// LogMailer stands in when no SMTP relay is configured (development, tests).
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(email, code string) {
	m.logger.Info("confirmation code issued", "email", email, "code", code)
}
