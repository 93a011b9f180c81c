package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/easygo-schools/backend/internal/infrastructure/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridEmailSender delivers email through the SendGrid v3 API
type SendGridEmailSender struct {
	key  string
	from *sgmail.Email
}

// NewSendGridEmailSender creates a SendGrid-backed email sender
func NewSendGridEmailSender(cfg config.MailConfig) *SendGridEmailSender {
	return &SendGridEmailSender{
		key:  cfg.APIKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

// SendEmail sends one plain-text email
func (s *SendGridEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

var _ EmailSender = (*SendGridEmailSender)(nil)
