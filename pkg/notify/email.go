// Package notify delivers price reports by email over SMTP.
package notify

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
	"github.com/David200308/crypto-price-mcp-server/pkg/logging"
	"github.com/David200308/crypto-price-mcp-server/pkg/metrics"
)

const defaultSMTPPort = 587

// Mailer sends plain-text reports through a configured SMTP server.
type Mailer struct {
	cfg    config.EmailConfig
	logger *logging.Logger
	send   func(m ...*gomail.Message) error // swapped out in tests
}

// NewMailer builds a mailer from the email configuration. An empty
// host means the notifier is disabled.
func NewMailer(cfg config.EmailConfig, logger *logging.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Port == 0 {
		cfg.Port = defaultSMTPPort
	}
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		send:   dialer.DialAndSend,
	}, nil
}

// Send delivers one plain-text message to the recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return ErrNoRecipient
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	start := time.Now()
	err := m.send(msg)
	metrics.RecordEmail(err == nil)
	if err != nil {
		m.logger.Error("Email delivery failed", "to", to, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("Email sent",
		"to", to,
		"subject", subject,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
