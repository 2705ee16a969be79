package mail

import (
	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/pkg/config"
)

// Message is a plain outgoing mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message. Delivery retries are handled by the jobs
// queue, so implementations stay synchronous and return errors.
type Sender interface {
	Send(msg Message) error
}

// New selects a sender implementation from the mail config.
func New(cfg config.MailConfig, logger *zap.Logger) Sender {
	switch cfg.Provider {
	case "sendgrid":
		if cfg.SendgridKey != "" {
			return NewSendgridSender(cfg.SendgridKey, cfg.FromName, cfg.FromAddress)
		}
		if logger != nil {
			logger.Warn("sendgrid selected but no API key set, falling back to console sender")
		}
		return NewConsoleSender(logger)
	default:
		return NewConsoleSender(logger)
	}
}

// ConsoleSender logs messages instead of delivering them. Default in
// development.
type ConsoleSender struct {
	logger *zap.Logger
}

// NewConsoleSender constructs a console sender.
func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleSender{logger: logger}
}

// Send logs the message.
func (s *ConsoleSender) Send(msg Message) error {
	s.logger.Info("outgoing mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
