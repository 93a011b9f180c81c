package hr

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeaveStatus represents the review status of a leave application
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
)

// IsValid checks if the status is a valid LeaveStatus
func (s LeaveStatus) IsValid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of LeaveStatus
func (s LeaveStatus) String() string {
	return string(s)
}

// LeaveType classifies the leave being requested
type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "ANNUAL"
	LeaveTypeSick      LeaveType = "SICK"
	LeaveTypeMaternity LeaveType = "MATERNITY"
	LeaveTypeUnpaid    LeaveType = "UNPAID"
)

// IsValid checks if the type is a valid LeaveType
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeMaternity, LeaveTypeUnpaid:
		return true
	}
	return false
}

// LeaveApplication represents a leave request aggregate root.
// Total days are derived from the date range inclusively.
type LeaveApplication struct {
	shared.BaseAggregateRoot
	EmployeeID uuid.UUID   `json:"employee_id"`
	LeaveType  LeaveType   `json:"leave_type"`
	FromDate   time.Time   `json:"from_date"`
	ToDate     time.Time   `json:"to_date"`
	TotalDays  int         `json:"total_days"`
	Reason     string      `json:"reason"`
	Status     LeaveStatus `json:"status"`
	ReviewedBy *uuid.UUID  `json:"reviewed_by"`
	ReviewedAt *time.Time  `json:"reviewed_at"`
	ReviewNote string      `json:"review_note"`
}

// NewLeaveApplication creates a pending leave application
func NewLeaveApplication(employeeID uuid.UUID, leaveType LeaveType, fromDate, toDate time.Time, reason string) (*LeaveApplication, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee is required")
	}
	if !leaveType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEAVE_TYPE", "Leave type is not valid")
	}
	from := dayOf(fromDate)
	to := dayOf(toDate)
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "To date cannot be before from date")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Leave reason is required")
	}

	return &LeaveApplication{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		LeaveType:         leaveType,
		FromDate:          from,
		ToDate:            to,
		TotalDays:         daysInclusive(from, to),
		Reason:            reason,
		Status:            LeaveStatusPending,
	}, nil
}

// Overlaps reports whether this application's range overlaps the given range
func (l *LeaveApplication) Overlaps(from, to time.Time) bool {
	return !l.ToDate.Before(dayOf(from)) && !dayOf(to).Before(l.FromDate)
}

// Approve grants the leave
func (l *LeaveApplication) Approve(reviewedBy uuid.UUID, note string) error {
	return l.review(LeaveStatusApproved, reviewedBy, note, false)
}

// Reject declines the leave; a note is required
func (l *LeaveApplication) Reject(reviewedBy uuid.UUID, note string) error {
	return l.review(LeaveStatusRejected, reviewedBy, note, true)
}

// Cancel withdraws a pending application
func (l *LeaveApplication) Cancel() error {
	if l.Status != LeaveStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending applications can be cancelled")
	}
	l.Status = LeaveStatusCancelled
	l.Touch()
	return nil
}

func (l *LeaveApplication) review(status LeaveStatus, reviewedBy uuid.UUID, note string, noteRequired bool) error {
	if l.Status != LeaveStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Leave application is already %s", l.Status))
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewer is required")
	}
	if noteRequired && note == "" {
		return shared.NewDomainError("INVALID_NOTE", "A note is required when rejecting")
	}
	now := time.Now()
	l.Status = status
	l.ReviewedBy = &reviewedBy
	l.ReviewedAt = &now
	l.ReviewNote = note
	l.Touch()
	return nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysInclusive counts calendar days in [from, to]. Both dates are
// re-anchored in UTC so DST transitions cannot shorten a day.
func daysInclusive(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours()/24) + 1
}

// LeaveFilter defines filtering options for leave application queries
type LeaveFilter struct {
	EmployeeID *uuid.UUID
	Status     LeaveStatus
	LeaveType  LeaveType
	Page       int
	PageSize   int
}
