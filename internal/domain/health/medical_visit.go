package health

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VisitOutcome is the disposition of a medical visit
type VisitOutcome string

const (
	VisitOutcomeBackToClass VisitOutcome = "BACK_TO_CLASS"
	VisitOutcomeSentHome    VisitOutcome = "SENT_HOME"
	VisitOutcomeReferred    VisitOutcome = "REFERRED"
)

// IsValid checks if the outcome is a valid VisitOutcome
func (o VisitOutcome) IsValid() bool {
	switch o {
	case VisitOutcomeBackToClass, VisitOutcomeSentHome, VisitOutcomeReferred:
		return true
	}
	return false
}

// String returns the string representation of VisitOutcome
func (o VisitOutcome) String() string {
	return string(o)
}

// RequiresGuardianAlert returns true when the guardian must be told right away
func (o VisitOutcome) RequiresGuardianAlert() bool {
	return o == VisitOutcomeSentHome || o == VisitOutcomeReferred
}

// VisitStatus tracks whether the visit is still open
type VisitStatus string

const (
	VisitStatusOpen   VisitStatus = "OPEN"
	VisitStatusClosed VisitStatus = "CLOSED"
)

// MedicalVisit records one infirmary visit by a student
type MedicalVisit struct {
	shared.BaseAggregateRoot
	StudentID  uuid.UUID    `json:"student_id"`
	VisitedAt  time.Time    `json:"visited_at"`
	Reason     string       `json:"reason"`
	Diagnosis  string       `json:"diagnosis"`
	Treatment  string       `json:"treatment"`
	Outcome    VisitOutcome `json:"outcome"`
	Status     VisitStatus  `json:"status"`
	AttendedBy uuid.UUID    `json:"attended_by"`
	ClosedAt   *time.Time   `json:"closed_at"`
}

// NewMedicalVisit opens a visit for a student
func NewMedicalVisit(studentID uuid.UUID, reason string, attendedBy uuid.UUID) (*MedicalVisit, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Visit reason is required")
	}
	if attendedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Attending user is required")
	}

	return &MedicalVisit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		VisitedAt:         time.Now(),
		Reason:            reason,
		Status:            VisitStatusOpen,
		AttendedBy:        attendedBy,
	}, nil
}

// Close records the diagnosis, treatment and outcome, closing the visit
func (v *MedicalVisit) Close(diagnosis, treatment string, outcome VisitOutcome) error {
	if v.Status != VisitStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Visit is already closed")
	}
	if !outcome.IsValid() {
		return shared.NewDomainError("INVALID_OUTCOME", "Visit outcome is not valid")
	}
	if diagnosis == "" {
		return shared.NewDomainError("INVALID_DIAGNOSIS", "Diagnosis is required to close a visit")
	}
	now := time.Now()
	v.Diagnosis = diagnosis
	v.Treatment = treatment
	v.Outcome = outcome
	v.Status = VisitStatusClosed
	v.ClosedAt = &now
	v.Touch()
	return nil
}

// VisitFilter defines filtering options for medical visit queries
type VisitFilter struct {
	StudentID *uuid.UUID
	Outcome   VisitOutcome
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
	PageSize  int
}
