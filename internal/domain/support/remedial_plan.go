package support

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanStatus represents the lifecycle of a remedial plan
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "DRAFT"
	PlanStatusActive    PlanStatus = "ACTIVE"
	PlanStatusCompleted PlanStatus = "COMPLETED"
	PlanStatusCancelled PlanStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PlanStatus
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusDraft, PlanStatusActive, PlanStatusCompleted, PlanStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PlanStatus
func (s PlanStatus) String() string {
	return string(s)
}

// Session is one planned remediation session within a plan
type Session struct {
	shared.BaseEntity
	PlanID      uuid.UUID  `json:"plan_id"`
	Topic       string     `json:"topic"`
	PlannedDate time.Time  `json:"planned_date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Notes       string     `json:"notes"`
}

// RemedialPlan represents a student remediation plan aggregate root.
// Progress is the percentage of completed sessions; completion requires all
// sessions done.
type RemedialPlan struct {
	shared.BaseAggregateRoot
	StudentID       uuid.UUID       `json:"student_id"`
	Subject         string          `json:"subject"`
	AssignedTeacher uuid.UUID       `json:"assigned_teacher"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Objective       string          `json:"objective"`
	Sessions        []Session       `json:"sessions"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	Status          PlanStatus      `json:"status"`
	ActivatedAt     *time.Time      `json:"activated_at"`
	CompletedAt     *time.Time      `json:"completed_at"`
	CancelReason    string          `json:"cancel_reason"`
}

// NewRemedialPlan creates a draft remedial plan for a student and subject
func NewRemedialPlan(studentID uuid.UUID, subject string, assignedTeacher uuid.UUID, startDate, endDate time.Time, objective string) (*RemedialPlan, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject is required")
	}
	if assignedTeacher == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TEACHER", "Assigned teacher is required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}

	return &RemedialPlan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		Subject:           subject,
		AssignedTeacher:   assignedTeacher,
		StartDate:         startDate,
		EndDate:           endDate,
		Objective:         objective,
		ProgressPercent:   decimal.Zero,
		Status:            PlanStatusDraft,
	}, nil
}

// AddSession plans a session. Only allowed before the plan completes.
func (p *RemedialPlan) AddSession(topic string, plannedDate time.Time) error {
	if p.Status != PlanStatusDraft && p.Status != PlanStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add sessions to a %s plan", p.Status))
	}
	if topic == "" {
		return shared.NewDomainError("INVALID_SESSION", "Session topic is required")
	}
	if plannedDate.Before(p.StartDate) || plannedDate.After(p.EndDate) {
		return shared.NewDomainError("INVALID_SESSION", "Session date must fall within the plan period")
	}

	p.Sessions = append(p.Sessions, Session{
		BaseEntity:  shared.NewBaseEntity(),
		PlanID:      p.ID,
		Topic:       topic,
		PlannedDate: plannedDate,
	})
	p.recalcProgress()
	p.Touch()
	return nil
}

// Activate starts the plan; at least one session must be planned
func (p *RemedialPlan) Activate() error {
	if p.Status != PlanStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot activate plan in %s status", p.Status))
	}
	if len(p.Sessions) == 0 {
		return shared.NewDomainError("EMPTY_PLAN", "Plan must have at least one session before activation")
	}
	now := time.Now()
	p.Status = PlanStatusActive
	p.ActivatedAt = &now
	p.Touch()
	return nil
}

// CompleteSession marks a session done and updates progress
func (p *RemedialPlan) CompleteSession(sessionID uuid.UUID, notes string) error {
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Sessions can only be completed on an active plan")
	}
	for i := range p.Sessions {
		s := &p.Sessions[i]
		if s.ID != sessionID {
			continue
		}
		if s.Completed {
			return shared.NewDomainError("ALREADY_COMPLETED", "Session is already completed")
		}
		now := time.Now()
		s.Completed = true
		s.CompletedAt = &now
		s.Notes = notes
		s.Touch()
		p.recalcProgress()
		p.Touch()
		return nil
	}
	return shared.NewDomainError("NOT_FOUND", "Session not found on this plan")
}

// Complete closes the plan; every session must be completed first
func (p *RemedialPlan) Complete() error {
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete plan in %s status", p.Status))
	}
	for _, s := range p.Sessions {
		if !s.Completed {
			return shared.NewDomainError("SESSIONS_PENDING", "All sessions must be completed first")
		}
	}
	now := time.Now()
	p.Status = PlanStatusCompleted
	p.CompletedAt = &now
	p.Touch()
	return nil
}

// Cancel abandons a draft or active plan with a reason
func (p *RemedialPlan) Cancel(reason string) error {
	if p.Status != PlanStatusDraft && p.Status != PlanStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel plan in %s status", p.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	p.Status = PlanStatusCancelled
	p.CancelReason = reason
	p.Touch()
	return nil
}

func (p *RemedialPlan) recalcProgress() {
	if len(p.Sessions) == 0 {
		p.ProgressPercent = decimal.Zero
		return
	}
	done := 0
	for _, s := range p.Sessions {
		if s.Completed {
			done++
		}
	}
	p.ProgressPercent = decimal.NewFromInt(int64(done)).
		Div(decimal.NewFromInt(int64(len(p.Sessions)))).
		Mul(decimal.NewFromInt(100)).Round(2)
}

// RemedialPlanFilter defines filtering options for plan queries
type RemedialPlanFilter struct {
	StudentID *uuid.UUID
	Subject   string
	Status    PlanStatus
	Page      int
	PageSize  int
}
