package notify

import (
	"context"

	"go.uber.org/zap"
)

// EmailSender delivers one outbound email
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers one outbound text message
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// ConsoleEmailSender logs emails instead of sending them. Used in development
// and as the fallback when no provider is configured.
type ConsoleEmailSender struct {
	logger *zap.Logger
}

// NewConsoleEmailSender creates a console email sender
func NewConsoleEmailSender(logger *zap.Logger) *ConsoleEmailSender {
	return &ConsoleEmailSender{logger: logger}
}

// SendEmail logs the email
func (s *ConsoleEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	s.logger.Info("email (console)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// ConsoleSMSSender logs text messages instead of sending them
type ConsoleSMSSender struct {
	logger *zap.Logger
}

// NewConsoleSMSSender creates a console SMS sender
func NewConsoleSMSSender(logger *zap.Logger) *ConsoleSMSSender {
	return &ConsoleSMSSender{logger: logger}
}

// SendSMS logs the message
func (s *ConsoleSMSSender) SendSMS(ctx context.Context, to, message string) error {
	s.logger.Info("sms (console)",
		zap.String("to", to),
		zap.String("message", message),
	)
	return nil
}

var (
	_ EmailSender = (*ConsoleEmailSender)(nil)
	_ SMSSender   = (*ConsoleSMSSender)(nil)
)
