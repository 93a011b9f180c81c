package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/health"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HealthRecordModel is the persistence model for the health Record aggregate root.
type HealthRecordModel struct {
	AggregateModel
	StudentID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	BloodGroup        health.BloodGroup `gorm:"type:varchar(3)"`
	Allergies         string            `gorm:"type:text"`
	ChronicConditions string            `gorm:"type:text"`
	EmergencyContact  string            `gorm:"type:varchar(200);not null"`
	EmergencyPhone    string            `gorm:"type:varchar(30);not null"`
	HeightCM          decimal.Decimal   `gorm:"type:decimal(6,2)"`
	WeightKG          decimal.Decimal   `gorm:"type:decimal(6,2)"`
	BMI               decimal.Decimal   `gorm:"type:decimal(5,1)"`
	MeasuredAt        *time.Time
}

// TableName returns the table name for GORM
func (HealthRecordModel) TableName() string {
	return "health_records"
}

// ToDomain converts the persistence model to a domain Record entity.
func (m *HealthRecordModel) ToDomain() *health.Record {
	return &health.Record{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		BloodGroup:        m.BloodGroup,
		Allergies:         m.Allergies,
		ChronicConditions: m.ChronicConditions,
		EmergencyContact:  m.EmergencyContact,
		EmergencyPhone:    m.EmergencyPhone,
		HeightCM:          m.HeightCM,
		WeightKG:          m.WeightKG,
		BMI:               m.BMI,
		MeasuredAt:        m.MeasuredAt,
	}
}

// FromDomain populates the persistence model from a domain Record entity.
func (m *HealthRecordModel) FromDomain(r *health.Record) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.StudentID = r.StudentID
	m.BloodGroup = r.BloodGroup
	m.Allergies = r.Allergies
	m.ChronicConditions = r.ChronicConditions
	m.EmergencyContact = r.EmergencyContact
	m.EmergencyPhone = r.EmergencyPhone
	m.HeightCM = r.HeightCM
	m.WeightKG = r.WeightKG
	m.BMI = r.BMI
	m.MeasuredAt = r.MeasuredAt
}

// HealthRecordModelFromDomain creates a new persistence model from a domain Record.
func HealthRecordModelFromDomain(r *health.Record) *HealthRecordModel {
	m := &HealthRecordModel{}
	m.FromDomain(r)
	return m
}

// MedicalVisitModel is the persistence model for the MedicalVisit aggregate root.
type MedicalVisitModel struct {
	AggregateModel
	StudentID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	VisitedAt  time.Time           `gorm:"not null;index"`
	Reason     string              `gorm:"type:varchar(500);not null"`
	Diagnosis  string              `gorm:"type:varchar(500)"`
	Treatment  string              `gorm:"type:varchar(500)"`
	Outcome    health.VisitOutcome `gorm:"type:varchar(20);index"`
	Status     health.VisitStatus  `gorm:"type:varchar(10);not null;index"`
	AttendedBy uuid.UUID           `gorm:"type:uuid;not null"`
	ClosedAt   *time.Time
}

// TableName returns the table name for GORM
func (MedicalVisitModel) TableName() string {
	return "medical_visits"
}

// ToDomain converts the persistence model to a domain MedicalVisit entity.
func (m *MedicalVisitModel) ToDomain() *health.MedicalVisit {
	return &health.MedicalVisit{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		VisitedAt:         m.VisitedAt,
		Reason:            m.Reason,
		Diagnosis:         m.Diagnosis,
		Treatment:         m.Treatment,
		Outcome:           m.Outcome,
		Status:            m.Status,
		AttendedBy:        m.AttendedBy,
		ClosedAt:          m.ClosedAt,
	}
}

// FromDomain populates the persistence model from a domain MedicalVisit entity.
func (m *MedicalVisitModel) FromDomain(v *health.MedicalVisit) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.StudentID = v.StudentID
	m.VisitedAt = v.VisitedAt
	m.Reason = v.Reason
	m.Diagnosis = v.Diagnosis
	m.Treatment = v.Treatment
	m.Outcome = v.Outcome
	m.Status = v.Status
	m.AttendedBy = v.AttendedBy
	m.ClosedAt = v.ClosedAt
}

// MedicalVisitModelFromDomain creates a new persistence model from a domain MedicalVisit.
func MedicalVisitModelFromDomain(v *health.MedicalVisit) *MedicalVisitModel {
	m := &MedicalVisitModel{}
	m.FromDomain(v)
	return m
}
