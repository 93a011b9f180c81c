package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/easygo-schools/backend/internal/infrastructure/config"
)

// GatewaySMSSender posts messages to an HTTP SMS gateway as JSON.
// The gateway endpoint, key and sender name come from configuration.
type GatewaySMSSender struct {
	url    string
	apiKey string
	sender string
	client *http.Client
}

// NewGatewaySMSSender creates an HTTP gateway SMS sender
func NewGatewaySMSSender(cfg config.SMSConfig) *GatewaySMSSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GatewaySMSSender{
		url:    cfg.GatewayURL,
		apiKey: cfg.APIKey,
		sender: cfg.Sender,
		client: &http.Client{Timeout: timeout},
	}
}

type gatewayMessage struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

// SendSMS posts one message to the gateway
func (s *GatewaySMSSender) SendSMS(ctx context.Context, to, message string) error {
	payload, err := json.Marshal(gatewayMessage{To: to, From: s.sender, Message: message})
	if err != nil {
		return fmt.Errorf("encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sms gateway status %d", res.StatusCode)
	}
	return nil
}

var _ SMSSender = (*GatewaySMSSender)(nil)
