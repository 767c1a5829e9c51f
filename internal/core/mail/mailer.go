package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer is the outbound-notification collaborator. Delivery mechanics are
// not this service's concern beyond handing the message off.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTP(cfg SMTPConfig) *SMTPMailer { return &SMTPMailer{cfg: cfg} }

// LogMailer prints messages to the log instead of delivering them. Used in
// dev when no SMTP host is configured, so reset links show up on the
// server console.
type LogMailer struct {
	Log *zap.Logger
}

func (m *LogMailer) Send(to, subject, body string) error {
	m.Log.Info("outbound mail (not delivered, no smtp configured)",
		zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
	return nil
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body))
	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}
