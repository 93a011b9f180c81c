package schooling

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/identity"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JustificationService handles guardian absence justifications and their review
type JustificationService struct {
	justificationRepo schooling.JustificationRepository
	attendanceRepo    schooling.AttendanceRepository
	studentRepo       schooling.StudentRepository
	userRepo          identity.UserRepository
	notifier          *notify.Notifier
	logger            *zap.Logger
}

// NewJustificationService creates a new justification service
func NewJustificationService(
	justificationRepo schooling.JustificationRepository,
	attendanceRepo schooling.AttendanceRepository,
	studentRepo schooling.StudentRepository,
	userRepo identity.UserRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *JustificationService {
	return &JustificationService{
		justificationRepo: justificationRepo,
		attendanceRepo:    attendanceRepo,
		studentRepo:       studentRepo,
		userRepo:          userRepo,
		notifier:          notifier,
		logger:            logger,
	}
}

// SubmitJustificationRequest carries a guardian's absence justification
type SubmitJustificationRequest struct {
	StudentID      uuid.UUID `json:"student_id" binding:"required"`
	AttendanceDate time.Time `json:"attendance_date" binding:"required"`
	Reason         string    `json:"reason" binding:"required"`
	Details        string    `json:"details"`
}

// SubmitJustification files a justification for an absence and alerts the
// education managers that a review is pending.
func (s *JustificationService) SubmitJustification(ctx context.Context, submittedBy uuid.UUID, req SubmitJustificationRequest) (*schooling.AttendanceJustification, error) {
	student, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	justification, err := schooling.NewAttendanceJustification(req.StudentID, req.AttendanceDate, schooling.JustificationReason(req.Reason), req.Details, submittedBy)
	if err != nil {
		return nil, err
	}

	exists, err := s.justificationRepo.ExistsActiveForDate(ctx, req.StudentID, justification.AttendanceDate, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A justification for this date is already pending or approved")
	}

	if err := s.justificationRepo.Create(ctx, justification); err != nil {
		return nil, err
	}

	s.logger.Info("justification submitted",
		zap.String("massar_code", student.MassarCode),
		zap.Time("attendance_date", justification.AttendanceDate),
	)
	s.notifyReviewers(ctx, student, justification)
	return justification, nil
}

// ReviewJustificationRequest carries the reviewer's decision comments
type ReviewJustificationRequest struct {
	Comments string `json:"comments"`
}

// ApproveJustification accepts a justification and excuses the matching
// absence, if one is recorded.
func (s *JustificationService) ApproveJustification(ctx context.Context, id, reviewedBy uuid.UUID, req ReviewJustificationRequest) (*schooling.AttendanceJustification, error) {
	justification, err := s.justificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := justification.Approve(reviewedBy, req.Comments); err != nil {
		return nil, err
	}
	if err := s.justificationRepo.Update(ctx, justification); err != nil {
		return nil, err
	}

	attendance, err := s.attendanceRepo.FindByStudentAndDate(ctx, justification.StudentID, justification.AttendanceDate)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if attendance != nil && attendance.Status == schooling.AttendanceStatusAbsent {
		if err := attendance.Excuse(justification.ID); err != nil {
			return nil, err
		}
		if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
			return nil, err
		}
	}

	s.logger.Info("justification approved", zap.String("justification_id", justification.ID.String()))
	s.notifySubmitter(ctx, justification, "approved", req.Comments)
	return justification, nil
}

// RejectJustification declines a justification with mandatory comments
func (s *JustificationService) RejectJustification(ctx context.Context, id, reviewedBy uuid.UUID, req ReviewJustificationRequest) (*schooling.AttendanceJustification, error) {
	justification, err := s.justificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := justification.Reject(reviewedBy, req.Comments); err != nil {
		return nil, err
	}
	if err := s.justificationRepo.Update(ctx, justification); err != nil {
		return nil, err
	}

	s.logger.Info("justification rejected", zap.String("justification_id", justification.ID.String()))
	s.notifySubmitter(ctx, justification, "rejected", req.Comments)
	return justification, nil
}

// GetJustification fetches one justification by ID
func (s *JustificationService) GetJustification(ctx context.Context, id uuid.UUID) (*schooling.AttendanceJustification, error) {
	return s.justificationRepo.FindByID(ctx, id)
}

// ListJustifications returns justifications matching the filter
func (s *JustificationService) ListJustifications(ctx context.Context, filter schooling.JustificationFilter) ([]*schooling.AttendanceJustification, int64, error) {
	return s.justificationRepo.FindAll(ctx, filter)
}

func (s *JustificationService) notifyReviewers(ctx context.Context, student *schooling.Student, justification *schooling.AttendanceJustification) {
	managers, err := s.userRepo.FindByRole(ctx, identity.RoleEducationManager)
	if err != nil {
		s.logger.Error("looking up education managers", zap.Error(err))
		return
	}
	subject := fmt.Sprintf("Absence justification pending for %s", student.FullName())
	body := fmt.Sprintf(
		"A justification for the absence of %s (%s) on %s awaits review.",
		student.FullName(), student.MassarCode, justification.AttendanceDate.Format("2006-01-02"),
	)
	for _, manager := range managers {
		s.notifier.SendEmail(ctx, manager.Email, subject, body, "JUSTIFICATION", &justification.ID)
	}
}

func (s *JustificationService) notifySubmitter(ctx context.Context, justification *schooling.AttendanceJustification, decision, comments string) {
	submitter, err := s.userRepo.FindByID(ctx, justification.SubmittedBy)
	if err != nil {
		s.logger.Error("looking up justification submitter", zap.Error(err))
		return
	}
	subject := fmt.Sprintf("Absence justification %s", decision)
	body := fmt.Sprintf(
		"Your justification for the absence on %s has been %s.",
		justification.AttendanceDate.Format("2006-01-02"), decision,
	)
	if comments != "" {
		body += "\n\nComments: " + comments
	}
	s.notifier.SendEmail(ctx, submitter.Email, subject, body, "JUSTIFICATION", &justification.ID)
}
