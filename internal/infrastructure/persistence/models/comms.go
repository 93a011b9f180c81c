package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/comms"
	"github.com/google/uuid"
)

// CommunicationLogModel is the persistence model for the append-only communication log.
type CommunicationLogModel struct {
	BaseModel
	Channel       comms.Channel        `gorm:"type:varchar(10);not null;index:idx_comms_channel_status,priority:1"`
	Recipient     string               `gorm:"type:varchar(200);not null"`
	Subject       string               `gorm:"type:varchar(500)"`
	ReferenceType string               `gorm:"type:varchar(50);index:idx_comms_reference,priority:1"`
	ReferenceID   *uuid.UUID           `gorm:"type:uuid;index:idx_comms_reference,priority:2"`
	Status        comms.DeliveryStatus `gorm:"type:varchar(10);not null;index:idx_comms_channel_status,priority:2"`
	ErrorDetail   string               `gorm:"type:text"`
	SentAt        time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CommunicationLogModel) TableName() string {
	return "communication_logs"
}

// ToDomain converts the persistence model to a domain LogEntry.
func (m *CommunicationLogModel) ToDomain() *comms.LogEntry {
	return &comms.LogEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		Channel:       m.Channel,
		Recipient:     m.Recipient,
		Subject:       m.Subject,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Status:        m.Status,
		ErrorDetail:   m.ErrorDetail,
		SentAt:        m.SentAt,
	}
}

// CommunicationLogModelFromDomain creates a new persistence model from a domain LogEntry.
func CommunicationLogModelFromDomain(e *comms.LogEntry) *CommunicationLogModel {
	m := &CommunicationLogModel{}
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Channel = e.Channel
	m.Recipient = e.Recipient
	m.Subject = e.Subject
	m.ReferenceType = e.ReferenceType
	m.ReferenceID = e.ReferenceID
	m.Status = e.Status
	m.ErrorDetail = e.ErrorDetail
	m.SentAt = e.SentAt
	return m
}
