package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeaveService handles leave applications and their review
type LeaveService struct {
	leaveRepo    hr.LeaveRepository
	employeeRepo hr.EmployeeRepository
	notifier     *notify.Notifier
	logger       *zap.Logger
}

// NewLeaveService creates a new leave service
func NewLeaveService(leaveRepo hr.LeaveRepository, employeeRepo hr.EmployeeRepository, notifier *notify.Notifier, logger *zap.Logger) *LeaveService {
	return &LeaveService{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// ApplyLeaveRequest carries one leave application
type ApplyLeaveRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	LeaveType  string    `json:"leave_type" binding:"required"`
	FromDate   time.Time `json:"from_date" binding:"required"`
	ToDate     time.Time `json:"to_date" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
}

// ApplyLeave files a leave application. Overlap with already approved leave
// of the same employee is rejected.
func (s *LeaveService) ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (*hr.LeaveApplication, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee.Status == hr.EmployeeStatusRelieved {
		return nil, shared.NewDomainError("INVALID_STATE", "Relieved employees cannot apply for leave")
	}

	leave, err := hr.NewLeaveApplication(req.EmployeeID, hr.LeaveType(req.LeaveType), req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.leaveRepo.FindApprovedOverlapping(ctx, req.EmployeeID, leave.FromDate, leave.ToDate, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, shared.NewDomainError("OVERLAPPING_LEAVE", "Approved leave already covers part of this period")
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}
	s.logger.Info("leave applied",
		zap.String("employee_number", employee.EmployeeNumber),
		zap.String("leave_type", string(leave.LeaveType)),
		zap.Int("total_days", leave.TotalDays),
	)
	return leave, nil
}

// ReviewLeaveRequest carries the reviewer's note
type ReviewLeaveRequest struct {
	Note string `json:"note"`
}

// ApproveLeave grants a pending leave application
func (s *LeaveService) ApproveLeave(ctx context.Context, id, reviewedBy uuid.UUID, req ReviewLeaveRequest) (*hr.LeaveApplication, error) {
	return s.review(ctx, id, func(leave *hr.LeaveApplication) error {
		return leave.Approve(reviewedBy, req.Note)
	}, "approved")
}

// RejectLeave declines a pending leave application; a note is required
func (s *LeaveService) RejectLeave(ctx context.Context, id, reviewedBy uuid.UUID, req ReviewLeaveRequest) (*hr.LeaveApplication, error) {
	return s.review(ctx, id, func(leave *hr.LeaveApplication) error {
		return leave.Reject(reviewedBy, req.Note)
	}, "rejected")
}

// CancelLeave withdraws a pending application
func (s *LeaveService) CancelLeave(ctx context.Context, id uuid.UUID) (*hr.LeaveApplication, error) {
	leave, err := s.leaveRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := leave.Cancel(); err != nil {
		return nil, err
	}
	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// GetLeave fetches one leave application by ID
func (s *LeaveService) GetLeave(ctx context.Context, id uuid.UUID) (*hr.LeaveApplication, error) {
	return s.leaveRepo.FindByID(ctx, id)
}

// ListLeaves returns leave applications matching the filter
func (s *LeaveService) ListLeaves(ctx context.Context, filter hr.LeaveFilter) ([]*hr.LeaveApplication, int64, error) {
	return s.leaveRepo.FindAll(ctx, filter)
}

func (s *LeaveService) review(ctx context.Context, id uuid.UUID, apply func(*hr.LeaveApplication) error, decision string) (*hr.LeaveApplication, error) {
	leave, err := s.leaveRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(leave); err != nil {
		return nil, err
	}
	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	s.logger.Info("leave reviewed",
		zap.String("leave_id", leave.ID.String()),
		zap.String("decision", decision),
	)

	employee, err := s.employeeRepo.FindByID(ctx, leave.EmployeeID)
	if err != nil {
		s.logger.Error("looking up leave applicant", zap.Error(err))
		return leave, nil
	}
	subject := fmt.Sprintf("Leave application %s", decision)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour %s leave from %s to %s has been %s.",
		employee.FullName(), leave.LeaveType,
		leave.FromDate.Format("2006-01-02"), leave.ToDate.Format("2006-01-02"), decision,
	)
	if leave.ReviewNote != "" {
		body += "\n\nNote: " + leave.ReviewNote
	}
	s.notifier.SendEmail(ctx, employee.Email, subject, body, "LEAVE_APPLICATION", &leave.ID)
	return leave, nil
}
