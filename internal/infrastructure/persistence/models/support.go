package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/support"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RemedialPlanModel is the persistence model for the RemedialPlan aggregate root.
type RemedialPlanModel struct {
	AggregateModel
	StudentID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	Subject         string             `gorm:"type:varchar(100);not null"`
	AssignedTeacher uuid.UUID          `gorm:"type:uuid;not null"`
	StartDate       time.Time          `gorm:"not null"`
	EndDate         time.Time          `gorm:"not null"`
	Objective       string             `gorm:"type:text"`
	Sessions        []SessionModel     `gorm:"foreignKey:PlanID;references:ID"`
	ProgressPercent decimal.Decimal    `gorm:"type:decimal(5,2);not null"`
	Status          support.PlanStatus `gorm:"type:varchar(10);not null;index"`
	ActivatedAt     *time.Time
	CompletedAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (RemedialPlanModel) TableName() string {
	return "remedial_plans"
}

// SessionModel is the persistence model for a remediation session.
type SessionModel struct {
	BaseModel
	PlanID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Topic       string    `gorm:"type:varchar(200);not null"`
	PlannedDate time.Time `gorm:"not null"`
	Completed   bool      `gorm:"not null;default:false"`
	CompletedAt *time.Time
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "remedial_sessions"
}

// ToDomain converts the persistence model to a domain RemedialPlan entity.
func (m *RemedialPlanModel) ToDomain() *support.RemedialPlan {
	sessions := make([]support.Session, len(m.Sessions))
	for i, s := range m.Sessions {
		sessions[i] = support.Session{
			BaseEntity:  s.BaseModel.ToDomain(),
			PlanID:      s.PlanID,
			Topic:       s.Topic,
			PlannedDate: s.PlannedDate,
			Completed:   s.Completed,
			CompletedAt: s.CompletedAt,
			Notes:       s.Notes,
		}
	}
	return &support.RemedialPlan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		Subject:           m.Subject,
		AssignedTeacher:   m.AssignedTeacher,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Objective:         m.Objective,
		Sessions:          sessions,
		ProgressPercent:   m.ProgressPercent,
		Status:            m.Status,
		ActivatedAt:       m.ActivatedAt,
		CompletedAt:       m.CompletedAt,
		CancelReason:      m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain RemedialPlan entity.
func (m *RemedialPlanModel) FromDomain(p *support.RemedialPlan) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.StudentID = p.StudentID
	m.Subject = p.Subject
	m.AssignedTeacher = p.AssignedTeacher
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.Objective = p.Objective
	m.ProgressPercent = p.ProgressPercent
	m.Status = p.Status
	m.ActivatedAt = p.ActivatedAt
	m.CompletedAt = p.CompletedAt
	m.CancelReason = p.CancelReason
	m.Sessions = make([]SessionModel, len(p.Sessions))
	for i, s := range p.Sessions {
		session := SessionModel{
			PlanID:      s.PlanID,
			Topic:       s.Topic,
			PlannedDate: s.PlannedDate,
			Completed:   s.Completed,
			CompletedAt: s.CompletedAt,
			Notes:       s.Notes,
		}
		session.FromDomainBaseEntity(s.BaseEntity)
		m.Sessions[i] = session
	}
}

// RemedialPlanModelFromDomain creates a new persistence model from a domain RemedialPlan.
func RemedialPlanModelFromDomain(p *support.RemedialPlan) *RemedialPlanModel {
	m := &RemedialPlanModel{}
	m.FromDomain(p)
	return m
}

// OrientationPlanModel is the persistence model for the OrientationPlan aggregate root.
type OrientationPlanModel struct {
	AggregateModel
	StudentID         uuid.UUID                 `gorm:"type:uuid;not null;index:idx_orientation_student_year,priority:1"`
	AcademicYear      string                    `gorm:"type:varchar(10);not null;index:idx_orientation_student_year,priority:2"`
	CounselorID       uuid.UUID                 `gorm:"type:uuid;not null"`
	Choices           []StreamChoiceModel       `gorm:"foreignKey:PlanID;references:ID"`
	RecommendedStream string                    `gorm:"type:varchar(100)"`
	FinalStream       string                    `gorm:"type:varchar(100)"`
	Status            support.OrientationStatus `gorm:"type:varchar(10);not null;index"`
	SubmittedAt       *time.Time
	ReviewedBy        *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt        *time.Time
	ReviewComments    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrientationPlanModel) TableName() string {
	return "orientation_plans"
}

// StreamChoiceModel is the persistence model for a ranked stream choice.
type StreamChoiceModel struct {
	BaseModel
	PlanID uuid.UUID `gorm:"type:uuid;not null;index"`
	Stream string    `gorm:"type:varchar(100);not null"`
	Rank   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StreamChoiceModel) TableName() string {
	return "orientation_choices"
}

// ToDomain converts the persistence model to a domain OrientationPlan entity.
func (m *OrientationPlanModel) ToDomain() *support.OrientationPlan {
	choices := make([]support.StreamChoice, len(m.Choices))
	for i, c := range m.Choices {
		choices[i] = support.StreamChoice{
			BaseEntity: c.BaseModel.ToDomain(),
			PlanID:     c.PlanID,
			Stream:     c.Stream,
			Rank:       c.Rank,
		}
	}
	return &support.OrientationPlan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		AcademicYear:      m.AcademicYear,
		CounselorID:       m.CounselorID,
		Choices:           choices,
		RecommendedStream: m.RecommendedStream,
		FinalStream:       m.FinalStream,
		Status:            m.Status,
		SubmittedAt:       m.SubmittedAt,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
		ReviewComments:    m.ReviewComments,
	}
}

// FromDomain populates the persistence model from a domain OrientationPlan entity.
func (m *OrientationPlanModel) FromDomain(p *support.OrientationPlan) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.StudentID = p.StudentID
	m.AcademicYear = p.AcademicYear
	m.CounselorID = p.CounselorID
	m.RecommendedStream = p.RecommendedStream
	m.FinalStream = p.FinalStream
	m.Status = p.Status
	m.SubmittedAt = p.SubmittedAt
	m.ReviewedBy = p.ReviewedBy
	m.ReviewedAt = p.ReviewedAt
	m.ReviewComments = p.ReviewComments
	m.Choices = make([]StreamChoiceModel, len(p.Choices))
	for i, c := range p.Choices {
		choice := StreamChoiceModel{
			PlanID: c.PlanID,
			Stream: c.Stream,
			Rank:   c.Rank,
		}
		choice.FromDomainBaseEntity(c.BaseEntity)
		m.Choices[i] = choice
	}
}

// OrientationPlanModelFromDomain creates a new persistence model from a domain OrientationPlan.
func OrientationPlanModelFromDomain(p *support.OrientationPlan) *OrientationPlanModel {
	m := &OrientationPlanModel{}
	m.FromDomain(p)
	return m
}
