package notify

import (
	"context"
	"strings"
	"text/template"

	"github.com/easygo-schools/backend/internal/domain/comms"
	"github.com/easygo-schools/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier fans out email and SMS notifications and records every attempt
// in the communication log. Delivery failures are logged and swallowed:
// a failed notification must never abort the operation that triggered it.
type Notifier struct {
	email  EmailSender
	sms    SMSSender
	logs   comms.LogRepository
	logger *zap.Logger
}

// NewNotifier creates a Notifier
func NewNotifier(email EmailSender, sms SMSSender, logs comms.LogRepository, logger *zap.Logger) *Notifier {
	return &Notifier{email: email, sms: sms, logs: logs, logger: logger}
}

// NewNotifierFromConfig builds the senders from configuration.
// Unknown providers fall back to console delivery.
func NewNotifierFromConfig(cfg *config.Config, logs comms.LogRepository, logger *zap.Logger) *Notifier {
	var email EmailSender
	switch cfg.Mail.Provider {
	case "sendgrid":
		email = NewSendGridEmailSender(cfg.Mail)
	default:
		email = NewConsoleEmailSender(logger)
	}

	var sms SMSSender
	switch cfg.SMS.Provider {
	case "http":
		sms = NewGatewaySMSSender(cfg.SMS)
	default:
		sms = NewConsoleSMSSender(logger)
	}

	return NewNotifier(email, sms, logs, logger)
}

// SendEmail delivers one email and records the attempt against the
// referenced document.
func (n *Notifier) SendEmail(ctx context.Context, to, subject, body, referenceType string, referenceID *uuid.UUID) {
	if to == "" {
		return
	}
	err := n.email.SendEmail(ctx, to, subject, body)
	n.record(ctx, comms.ChannelEmail, to, subject, referenceType, referenceID, err)
}

// SendSMS delivers one text message and records the attempt against the
// referenced document.
func (n *Notifier) SendSMS(ctx context.Context, to, message, referenceType string, referenceID *uuid.UUID) {
	if to == "" {
		return
	}
	err := n.sms.SendSMS(ctx, to, message)
	n.record(ctx, comms.ChannelSMS, to, firstLine(message), referenceType, referenceID, err)
}

func (n *Notifier) record(ctx context.Context, channel comms.Channel, recipient, subject, referenceType string, referenceID *uuid.UUID, sendErr error) {
	status := comms.DeliveryStatusSent
	errDetail := ""
	if sendErr != nil {
		status = comms.DeliveryStatusFailed
		errDetail = sendErr.Error()
		n.logger.Warn("notification delivery failed",
			zap.String("channel", channel.String()),
			zap.String("recipient", recipient),
			zap.String("reference_type", referenceType),
			zap.Error(sendErr),
		)
	}

	entry, err := comms.NewLogEntry(channel, recipient, subject, referenceType, referenceID, status, errDetail)
	if err != nil {
		n.logger.Error("building communication log entry", zap.Error(err))
		return
	}
	if err := n.logs.Append(ctx, entry); err != nil {
		n.logger.Error("appending communication log entry", zap.Error(err))
	}
}

// RenderTemplate renders a message template with the given data. On render
// failure it logs and returns the empty string so callers can skip the send.
func (n *Notifier) RenderTemplate(name, text string, data any) string {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		n.logger.Error("parsing message template", zap.String("template", name), zap.Error(err))
		return ""
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		n.logger.Error("rendering message template", zap.String("template", name), zap.Error(err))
		return ""
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
