package support

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/domain/support"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupportService handles remedial plans and academic-stream orientation
type SupportService struct {
	remedialRepo    support.RemedialPlanRepository
	orientationRepo support.OrientationPlanRepository
	studentRepo     schooling.StudentRepository
	notifier        *notify.Notifier
	logger          *zap.Logger
}

// NewSupportService creates a new student support service
func NewSupportService(
	remedialRepo support.RemedialPlanRepository,
	orientationRepo support.OrientationPlanRepository,
	studentRepo schooling.StudentRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *SupportService {
	return &SupportService{
		remedialRepo:    remedialRepo,
		orientationRepo: orientationRepo,
		studentRepo:     studentRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// SessionRequest is one planned session in a remedial plan request
type SessionRequest struct {
	Topic       string    `json:"topic" binding:"required"`
	PlannedDate time.Time `json:"planned_date" binding:"required"`
}

// CreateRemedialPlanRequest carries a new remedial plan
type CreateRemedialPlanRequest struct {
	StudentID       uuid.UUID        `json:"student_id" binding:"required"`
	Subject         string           `json:"subject" binding:"required"`
	AssignedTeacher uuid.UUID        `json:"assigned_teacher" binding:"required"`
	StartDate       time.Time        `json:"start_date" binding:"required"`
	EndDate         time.Time        `json:"end_date" binding:"required"`
	Objective       string           `json:"objective"`
	Sessions        []SessionRequest `json:"sessions"`
}

// CreateRemedialPlan drafts a remediation plan with its planned sessions
func (s *SupportService) CreateRemedialPlan(ctx context.Context, req CreateRemedialPlanRequest) (*support.RemedialPlan, error) {
	if _, err := s.studentRepo.FindByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	plan, err := support.NewRemedialPlan(req.StudentID, req.Subject, req.AssignedTeacher, req.StartDate, req.EndDate, req.Objective)
	if err != nil {
		return nil, err
	}
	for _, session := range req.Sessions {
		if err := plan.AddSession(session.Topic, session.PlannedDate); err != nil {
			return nil, err
		}
	}

	if err := s.remedialRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.logger.Info("remedial plan created",
		zap.String("student_id", plan.StudentID.String()),
		zap.String("subject", plan.Subject),
		zap.Int("sessions", len(plan.Sessions)),
	)
	return plan, nil
}

// AddSession plans an additional session on a draft or active plan
func (s *SupportService) AddSession(ctx context.Context, planID uuid.UUID, req SessionRequest) (*support.RemedialPlan, error) {
	plan, err := s.remedialRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.AddSession(req.Topic, req.PlannedDate); err != nil {
		return nil, err
	}
	if err := s.remedialRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ActivateRemedialPlan starts a drafted plan
func (s *SupportService) ActivateRemedialPlan(ctx context.Context, id uuid.UUID) (*support.RemedialPlan, error) {
	plan, err := s.remedialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Activate(); err != nil {
		return nil, err
	}
	if err := s.remedialRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// CompleteSessionRequest carries session completion notes
type CompleteSessionRequest struct {
	Notes string `json:"notes"`
}

// CompleteSession marks one session done; plan progress is re-derived
func (s *SupportService) CompleteSession(ctx context.Context, planID, sessionID uuid.UUID, req CompleteSessionRequest) (*support.RemedialPlan, error) {
	plan, err := s.remedialRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.CompleteSession(sessionID, req.Notes); err != nil {
		return nil, err
	}
	if err := s.remedialRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// CompleteRemedialPlan closes a plan once all sessions are done and tells
// the guardian.
func (s *SupportService) CompleteRemedialPlan(ctx context.Context, id uuid.UUID) (*support.RemedialPlan, error) {
	plan, err := s.remedialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Complete(); err != nil {
		return nil, err
	}
	if err := s.remedialRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("remedial plan completed",
		zap.String("student_id", plan.StudentID.String()),
		zap.String("subject", plan.Subject),
	)
	if student, err := s.studentRepo.FindByID(ctx, plan.StudentID); err == nil && student.Guardian.HasEmail() {
		subject := fmt.Sprintf("Remediation in %s completed", plan.Subject)
		body := fmt.Sprintf(
			"Dear %s,\n\n%s has completed all %d remediation sessions in %s.",
			student.Guardian.Name, student.FullName(), len(plan.Sessions), plan.Subject,
		)
		s.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "REMEDIAL_PLAN", &plan.ID)
	}
	return plan, nil
}

// CancelRemedialPlanRequest carries the cancellation reason
type CancelRemedialPlanRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelRemedialPlan abandons a draft or active plan
func (s *SupportService) CancelRemedialPlan(ctx context.Context, id uuid.UUID, req CancelRemedialPlanRequest) (*support.RemedialPlan, error) {
	plan, err := s.remedialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.remedialRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetRemedialPlan fetches one remedial plan by ID
func (s *SupportService) GetRemedialPlan(ctx context.Context, id uuid.UUID) (*support.RemedialPlan, error) {
	return s.remedialRepo.FindByID(ctx, id)
}

// ListRemedialPlans returns remedial plans matching the filter
func (s *SupportService) ListRemedialPlans(ctx context.Context, filter support.RemedialPlanFilter) ([]*support.RemedialPlan, int64, error) {
	return s.remedialRepo.FindAll(ctx, filter)
}

// CreateOrientationPlanRequest carries a new orientation plan
type CreateOrientationPlanRequest struct {
	StudentID    uuid.UUID `json:"student_id" binding:"required"`
	AcademicYear string    `json:"academic_year" binding:"required"`
	Choices      []string  `json:"choices"`
}

// CreateOrientationPlan drafts an orientation plan with ranked stream
// choices. One plan per (student, academic year).
func (s *SupportService) CreateOrientationPlan(ctx context.Context, counselorID uuid.UUID, req CreateOrientationPlanRequest) (*support.OrientationPlan, error) {
	if _, err := s.studentRepo.FindByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	exists, err := s.orientationRepo.ExistsForYear(ctx, req.StudentID, req.AcademicYear, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An orientation plan for this year already exists")
	}

	plan, err := support.NewOrientationPlan(req.StudentID, req.AcademicYear, counselorID)
	if err != nil {
		return nil, err
	}
	for _, stream := range req.Choices {
		if err := plan.AddChoice(stream); err != nil {
			return nil, err
		}
	}

	if err := s.orientationRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.logger.Info("orientation plan created",
		zap.String("student_id", plan.StudentID.String()),
		zap.String("academic_year", plan.AcademicYear),
	)
	return plan, nil
}

// RecommendStreamRequest carries the counselor's recommendation
type RecommendStreamRequest struct {
	Stream string `json:"stream" binding:"required"`
}

// RecommendStream records the counselor's recommended stream
func (s *SupportService) RecommendStream(ctx context.Context, id uuid.UUID, req RecommendStreamRequest) (*support.OrientationPlan, error) {
	plan, err := s.orientationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Recommend(req.Stream); err != nil {
		return nil, err
	}
	if err := s.orientationRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// SubmitOrientationPlan sends a drafted plan for review
func (s *SupportService) SubmitOrientationPlan(ctx context.Context, id uuid.UUID) (*support.OrientationPlan, error) {
	plan, err := s.orientationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Submit(); err != nil {
		return nil, err
	}
	if err := s.orientationRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ReviewOrientationRequest carries the reviewer's decision
type ReviewOrientationRequest struct {
	FinalStream string `json:"final_stream"`
	Comments    string `json:"comments"`
}

// ApproveOrientationPlan fixes the final stream and tells the guardian
func (s *SupportService) ApproveOrientationPlan(ctx context.Context, id, reviewedBy uuid.UUID, req ReviewOrientationRequest) (*support.OrientationPlan, error) {
	plan, err := s.orientationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Approve(reviewedBy, req.FinalStream, req.Comments); err != nil {
		return nil, err
	}
	if err := s.orientationRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("orientation plan approved",
		zap.String("student_id", plan.StudentID.String()),
		zap.String("final_stream", plan.FinalStream),
	)
	s.notifyOrientation(ctx, plan, fmt.Sprintf("The %s stream has been confirmed for the %s academic year.", plan.FinalStream, plan.AcademicYear))
	return plan, nil
}

// RejectOrientationPlan declines a submitted plan with mandatory comments
func (s *SupportService) RejectOrientationPlan(ctx context.Context, id, reviewedBy uuid.UUID, req ReviewOrientationRequest) (*support.OrientationPlan, error) {
	plan, err := s.orientationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Reject(reviewedBy, req.Comments); err != nil {
		return nil, err
	}
	if err := s.orientationRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.notifyOrientation(ctx, plan, "The orientation plan was returned for revision: "+plan.ReviewComments)
	return plan, nil
}

// GetOrientationPlan fetches one orientation plan by ID
func (s *SupportService) GetOrientationPlan(ctx context.Context, id uuid.UUID) (*support.OrientationPlan, error) {
	return s.orientationRepo.FindByID(ctx, id)
}

// ListOrientationPlans returns orientation plans matching the filter
func (s *SupportService) ListOrientationPlans(ctx context.Context, filter support.OrientationFilter) ([]*support.OrientationPlan, int64, error) {
	return s.orientationRepo.FindAll(ctx, filter)
}

func (s *SupportService) notifyOrientation(ctx context.Context, plan *support.OrientationPlan, message string) {
	student, err := s.studentRepo.FindByID(ctx, plan.StudentID)
	if err != nil {
		s.logger.Error("looking up oriented student", zap.Error(err))
		return
	}
	if !student.Guardian.HasEmail() {
		return
	}
	subject := fmt.Sprintf("Academic orientation for %s", student.FullName())
	body := fmt.Sprintf("Dear %s,\n\n%s", student.Guardian.Name, message)
	s.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "ORIENTATION_PLAN", &plan.ID)
}
