package support

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrientationStatus represents the review status of an orientation plan
type OrientationStatus string

const (
	OrientationStatusDraft     OrientationStatus = "DRAFT"
	OrientationStatusSubmitted OrientationStatus = "SUBMITTED"
	OrientationStatusApproved  OrientationStatus = "APPROVED"
	OrientationStatusRejected  OrientationStatus = "REJECTED"
)

// IsValid checks if the status is a valid OrientationStatus
func (s OrientationStatus) IsValid() bool {
	switch s {
	case OrientationStatusDraft, OrientationStatusSubmitted,
		OrientationStatusApproved, OrientationStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of OrientationStatus
func (s OrientationStatus) String() string {
	return string(s)
}

// StreamChoice is one ranked academic-stream preference
type StreamChoice struct {
	shared.BaseEntity
	PlanID uuid.UUID `json:"plan_id"`
	Stream string    `json:"stream"`
	Rank   int       `json:"rank"`
}

// OrientationPlan represents a student's academic-stream orientation plan.
// Choices are ranked; the counselor recommends and an education manager
// approves the final stream.
type OrientationPlan struct {
	shared.BaseAggregateRoot
	StudentID         uuid.UUID         `json:"student_id"`
	AcademicYear      string            `json:"academic_year"`
	CounselorID       uuid.UUID         `json:"counselor_id"`
	Choices           []StreamChoice    `json:"choices"`
	RecommendedStream string            `json:"recommended_stream"`
	FinalStream       string            `json:"final_stream"`
	Status            OrientationStatus `json:"status"`
	SubmittedAt       *time.Time        `json:"submitted_at"`
	ReviewedBy        *uuid.UUID        `json:"reviewed_by"`
	ReviewedAt        *time.Time        `json:"reviewed_at"`
	ReviewComments    string            `json:"review_comments"`
}

// NewOrientationPlan creates a draft orientation plan
func NewOrientationPlan(studentID uuid.UUID, academicYear string, counselorID uuid.UUID) (*OrientationPlan, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if academicYear == "" {
		return nil, shared.NewDomainError("INVALID_ACADEMIC_YEAR", "Academic year is required")
	}
	if counselorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNSELOR", "Counselor is required")
	}

	return &OrientationPlan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		AcademicYear:      academicYear,
		CounselorID:       counselorID,
		Status:            OrientationStatusDraft,
	}, nil
}

// AddChoice appends a ranked stream choice. Ranks are contiguous from 1 and
// streams may not repeat.
func (p *OrientationPlan) AddChoice(stream string) error {
	if p.Status != OrientationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Choices can only be added to a draft plan")
	}
	if stream == "" {
		return shared.NewDomainError("INVALID_STREAM", "Stream is required")
	}
	for _, c := range p.Choices {
		if c.Stream == stream {
			return shared.NewDomainError("DUPLICATE_STREAM", fmt.Sprintf("Stream %s is already chosen", stream))
		}
	}
	p.Choices = append(p.Choices, StreamChoice{
		BaseEntity: shared.NewBaseEntity(),
		PlanID:     p.ID,
		Stream:     stream,
		Rank:       len(p.Choices) + 1,
	})
	p.Touch()
	return nil
}

// Recommend records the counselor's recommended stream
func (p *OrientationPlan) Recommend(stream string) error {
	if p.Status != OrientationStatusDraft && p.Status != OrientationStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Recommendation is only allowed before review")
	}
	if stream == "" {
		return shared.NewDomainError("INVALID_STREAM", "Recommended stream is required")
	}
	p.RecommendedStream = stream
	p.Touch()
	return nil
}

// Submit sends the plan for review; at least one choice is required
func (p *OrientationPlan) Submit() error {
	if p.Status != OrientationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit plan in %s status", p.Status))
	}
	if len(p.Choices) == 0 {
		return shared.NewDomainError("EMPTY_PLAN", "At least one stream choice is required")
	}
	now := time.Now()
	p.Status = OrientationStatusSubmitted
	p.SubmittedAt = &now
	p.Touch()
	return nil
}

// Approve fixes the final stream. An empty stream falls back to the
// counselor's recommendation, then to the first choice.
func (p *OrientationPlan) Approve(reviewedBy uuid.UUID, finalStream, comments string) error {
	if p.Status != OrientationStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve plan in %s status", p.Status))
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewer is required")
	}
	if finalStream == "" {
		finalStream = p.RecommendedStream
	}
	if finalStream == "" && len(p.Choices) > 0 {
		finalStream = p.Choices[0].Stream
	}
	if finalStream == "" {
		return shared.NewDomainError("INVALID_STREAM", "A final stream could not be determined")
	}

	now := time.Now()
	p.Status = OrientationStatusApproved
	p.FinalStream = finalStream
	p.ReviewedBy = &reviewedBy
	p.ReviewedAt = &now
	p.ReviewComments = comments
	p.Touch()
	return nil
}

// Reject declines the plan; comments are required
func (p *OrientationPlan) Reject(reviewedBy uuid.UUID, comments string) error {
	if p.Status != OrientationStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject plan in %s status", p.Status))
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewer is required")
	}
	if comments == "" {
		return shared.NewDomainError("INVALID_COMMENTS", "Review comments are required when rejecting")
	}

	now := time.Now()
	p.Status = OrientationStatusRejected
	p.ReviewedBy = &reviewedBy
	p.ReviewedAt = &now
	p.ReviewComments = comments
	p.Touch()
	return nil
}

// OrientationFilter defines filtering options for orientation plan queries
type OrientationFilter struct {
	StudentID    *uuid.UUID
	AcademicYear string
	Status       OrientationStatus
	Page         int
	PageSize     int
}
