// Package notify delivers account emails.
package notify

import (
	"context"
	"fmt"

	"synergysphere/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTP sends plain text mail through a gomail dialer.
type SMTP struct {
	log    *zap.SugaredLogger
	from   string
	dialer *gomail.Dialer
}

// NewSMTP builds an SMTP notifier from config.
func NewSMTP(log *zap.SugaredLogger, cfg config.SMTPConfig) *SMTP {
	return &SMTP{
		log:    log.Named("notify.smtp"),
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Notify sends one message to email.
func (s *SMTP) Notify(ctx context.Context, email, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	s.log.Infow("email sent", "to", email, "subject", subject)
	return nil
}

// Log writes notifications to the logger instead of sending them.
type Log struct {
	log *zap.SugaredLogger
}

// NewLog returns a logging notifier.
func NewLog(log *zap.SugaredLogger) *Log {
	return &Log{log: log.Named("notify.log")}
}

// Notify logs the message.
func (l *Log) Notify(_ context.Context, email, subject, body string) error {
	l.log.Infow("notification", "to", email, "subject", subject, "body", body)
	return nil
}

// Notifier is satisfied by SMTP and Log.
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

// New picks SMTP when a host is configured.
func New(log *zap.SugaredLogger, cfg config.SMTPConfig) Notifier {
	if cfg.Host == "" {
		return NewLog(log)
	}
	return NewSMTP(log, cfg)
}
