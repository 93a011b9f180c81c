package comms

import (
	"context"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Channel is the delivery channel of an outbound communication
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
)

// IsValid checks if the channel is a valid Channel
func (c Channel) IsValid() bool {
	return c == ChannelEmail || c == ChannelSMS
}

// String returns the string representation of Channel
func (c Channel) String() string {
	return string(c)
}

// DeliveryStatus records whether the send attempt succeeded
type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "SENT"
	DeliveryStatusFailed DeliveryStatus = "FAILED"
)

// LogEntry is one append-only record of an outbound email or SMS.
// Every notifier send is logged, successes and failures alike.
type LogEntry struct {
	shared.BaseEntity
	Channel       Channel        `json:"channel"`
	Recipient     string         `json:"recipient"`
	Subject       string         `json:"subject"`
	ReferenceType string         `json:"reference_type"`
	ReferenceID   *uuid.UUID     `json:"reference_id"`
	Status        DeliveryStatus `json:"status"`
	ErrorDetail   string         `json:"error_detail"`
	SentAt        time.Time      `json:"sent_at"`
}

// NewLogEntry creates a communication log entry
func NewLogEntry(channel Channel, recipient, subject, referenceType string, referenceID *uuid.UUID, status DeliveryStatus, errorDetail string) (*LogEntry, error) {
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Communication channel is not valid")
	}
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient is required")
	}
	return &LogEntry{
		BaseEntity:    shared.NewBaseEntity(),
		Channel:       channel,
		Recipient:     recipient,
		Subject:       subject,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Status:        status,
		ErrorDetail:   errorDetail,
		SentAt:        time.Now(),
	}, nil
}

// LogFilter defines filtering options for communication log queries
type LogFilter struct {
	Channel  Channel
	Status   DeliveryStatus
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PageSize int
}

// ChannelCount aggregates log entries by channel and status
type ChannelCount struct {
	Channel Channel        `json:"channel"`
	Status  DeliveryStatus `json:"status"`
	Count   int64          `json:"count"`
}

// LogRepository defines persistence operations for the communication log
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
	FindAll(ctx context.Context, filter LogFilter) ([]*LogEntry, int64, error)
	CountByChannel(ctx context.Context, from, to time.Time) ([]ChannelCount, error)
}
