package schooling

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JustificationStatus represents the review status of an attendance justification
type JustificationStatus string

const (
	JustificationStatusPending  JustificationStatus = "PENDING"
	JustificationStatusApproved JustificationStatus = "APPROVED"
	JustificationStatusRejected JustificationStatus = "REJECTED"
)

// IsValid checks if the status is a valid JustificationStatus
func (s JustificationStatus) IsValid() bool {
	switch s {
	case JustificationStatusPending, JustificationStatusApproved, JustificationStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of JustificationStatus
func (s JustificationStatus) String() string {
	return string(s)
}

// JustificationReason classifies why the student was absent
type JustificationReason string

const (
	JustificationReasonIllness   JustificationReason = "ILLNESS"
	JustificationReasonFamily    JustificationReason = "FAMILY"
	JustificationReasonTransport JustificationReason = "TRANSPORT"
	JustificationReasonOther     JustificationReason = "OTHER"
)

// IsValid checks if the reason is a valid JustificationReason
func (r JustificationReason) IsValid() bool {
	switch r {
	case JustificationReasonIllness, JustificationReasonFamily,
		JustificationReasonTransport, JustificationReasonOther:
		return true
	}
	return false
}

// AttendanceJustification is a guardian-submitted justification for an absence.
// At most one non-rejected justification may exist per (student, date).
type AttendanceJustification struct {
	shared.BaseAggregateRoot
	StudentID      uuid.UUID           `json:"student_id"`
	AttendanceDate time.Time           `json:"attendance_date"`
	Reason         JustificationReason `json:"reason"`
	Details        string              `json:"details"`
	Status         JustificationStatus `json:"status"`
	SubmittedBy    uuid.UUID           `json:"submitted_by"`
	SubmittedVia   string              `json:"submitted_via"`
	SubmittedAt    time.Time           `json:"submitted_at"`
	ReviewedBy     *uuid.UUID          `json:"reviewed_by"`
	ReviewedAt     *time.Time          `json:"reviewed_at"`
	ReviewComments string              `json:"review_comments"`
}

// NewAttendanceJustification creates a pending justification
func NewAttendanceJustification(studentID uuid.UUID, date time.Time, reason JustificationReason, details string, submittedBy uuid.UUID) (*AttendanceJustification, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	day := truncateToDay(date)
	if day.After(truncateToDay(time.Now())) {
		return nil, shared.NewDomainError("INVALID_DATE", "Attendance date cannot be in the future")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Justification reason is not valid")
	}
	if submittedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Submitter is required")
	}

	return &AttendanceJustification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		AttendanceDate:    day,
		Reason:            reason,
		Details:           details,
		Status:            JustificationStatusPending,
		SubmittedBy:       submittedBy,
		SubmittedVia:      "Portal",
		SubmittedAt:       time.Now(),
	}, nil
}

// Approve accepts the justification; the matching absence becomes excused
func (j *AttendanceJustification) Approve(reviewedBy uuid.UUID, comments string) error {
	return j.review(JustificationStatusApproved, reviewedBy, comments, false)
}

// Reject declines the justification; comments are required so the guardian
// knows why
func (j *AttendanceJustification) Reject(reviewedBy uuid.UUID, comments string) error {
	return j.review(JustificationStatusRejected, reviewedBy, comments, true)
}

func (j *AttendanceJustification) review(status JustificationStatus, reviewedBy uuid.UUID, comments string, commentsRequired bool) error {
	if j.Status != JustificationStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Justification is already %s", j.Status))
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewer is required")
	}
	if commentsRequired && comments == "" {
		return shared.NewDomainError("INVALID_COMMENTS", "Review comments are required when rejecting")
	}

	now := time.Now()
	j.Status = status
	j.ReviewedBy = &reviewedBy
	j.ReviewedAt = &now
	j.ReviewComments = comments
	j.Touch()
	return nil
}

// IsPending returns true while the justification awaits review
func (j *AttendanceJustification) IsPending() bool {
	return j.Status == JustificationStatusPending
}

// JustificationFilter defines filtering options for justification queries
type JustificationFilter struct {
	StudentID *uuid.UUID
	Status    JustificationStatus
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
	PageSize  int
}
