// Package mailer is the outbound notification gateway. Delivery mechanics
// stay behind the Sender interface so handlers and tests never touch SMTP
// directly.
package mailer

import (
	"github.com/Ashura8/proyectobackend/pkg/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers one plain-text notification.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	cfg    *config.SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPSender creates a sender from SMTP configuration.
func NewSMTPSender(cfg *config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send delivers a single message. Each call dials a fresh SMTP session;
// volume is low enough that keeping a connection open is not worth it.
func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.dialer.DialAndSend(m)
}
