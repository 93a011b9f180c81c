package health

import (
	"context"
	"fmt"

	"github.com/easygo-schools/backend/internal/domain/health"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HealthService handles student health records and infirmary visits
type HealthService struct {
	recordRepo  health.RecordRepository
	visitRepo   health.VisitRepository
	studentRepo schooling.StudentRepository
	notifier    *notify.Notifier
	logger      *zap.Logger
}

// NewHealthService creates a new health service
func NewHealthService(
	recordRepo health.RecordRepository,
	visitRepo health.VisitRepository,
	studentRepo schooling.StudentRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *HealthService {
	return &HealthService{
		recordRepo:  recordRepo,
		visitRepo:   visitRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateRecordRequest carries a new health record
type CreateRecordRequest struct {
	StudentID         uuid.UUID `json:"student_id" binding:"required"`
	BloodGroup        string    `json:"blood_group"`
	Allergies         string    `json:"allergies"`
	ChronicConditions string    `json:"chronic_conditions"`
	EmergencyContact  string    `json:"emergency_contact" binding:"required"`
	EmergencyPhone    string    `json:"emergency_phone" binding:"required"`
}

// CreateRecord opens the health record for a student. One record per student.
func (s *HealthService) CreateRecord(ctx context.Context, req CreateRecordRequest) (*health.Record, error) {
	if _, err := s.studentRepo.FindByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	exists, err := s.recordRepo.ExistsForStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Student already has a health record")
	}

	record, err := health.NewRecord(req.StudentID, health.BloodGroup(req.BloodGroup), req.EmergencyContact, req.EmergencyPhone)
	if err != nil {
		return nil, err
	}
	if req.Allergies != "" {
		record.SetAllergies(req.Allergies)
	}
	if req.ChronicConditions != "" {
		record.SetChronicConditions(req.ChronicConditions)
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info("health record created", zap.String("student_id", record.StudentID.String()))
	return record, nil
}

// RecordMeasurementRequest carries one height/weight measurement
type RecordMeasurementRequest struct {
	HeightCM decimal.Decimal `json:"height_cm" binding:"required"`
	WeightKG decimal.Decimal `json:"weight_kg" binding:"required"`
}

// RecordMeasurement stores a measurement on the student's record; BMI is derived
func (s *HealthService) RecordMeasurement(ctx context.Context, studentID uuid.UUID, req RecordMeasurementRequest) (*health.Record, error) {
	record, err := s.recordRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := record.RecordMeasurement(req.HeightCM, req.WeightKG); err != nil {
		return nil, err
	}
	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateRecordRequest carries mutable health-record fields
type UpdateRecordRequest struct {
	Allergies         string `json:"allergies"`
	ChronicConditions string `json:"chronic_conditions"`
	EmergencyContact  string `json:"emergency_contact" binding:"required"`
	EmergencyPhone    string `json:"emergency_phone" binding:"required"`
}

// UpdateRecord updates allergies, conditions and the emergency contact
func (s *HealthService) UpdateRecord(ctx context.Context, studentID uuid.UUID, req UpdateRecordRequest) (*health.Record, error) {
	record, err := s.recordRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	record.SetAllergies(req.Allergies)
	record.SetChronicConditions(req.ChronicConditions)
	if err := record.UpdateEmergencyContact(req.EmergencyContact, req.EmergencyPhone); err != nil {
		return nil, err
	}
	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord fetches the health record of a student
func (s *HealthService) GetRecord(ctx context.Context, studentID uuid.UUID) (*health.Record, error) {
	return s.recordRepo.FindByStudent(ctx, studentID)
}

// OpenVisitRequest carries a new infirmary visit
type OpenVisitRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
}

// OpenVisit opens an infirmary visit for a student
func (s *HealthService) OpenVisit(ctx context.Context, attendedBy uuid.UUID, req OpenVisitRequest) (*health.MedicalVisit, error) {
	if _, err := s.studentRepo.FindByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	visit, err := health.NewMedicalVisit(req.StudentID, req.Reason, attendedBy)
	if err != nil {
		return nil, err
	}
	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}
	s.logger.Info("medical visit opened",
		zap.String("student_id", visit.StudentID.String()),
		zap.String("reason", visit.Reason),
	)
	return visit, nil
}

// CloseVisitRequest carries the visit disposition
type CloseVisitRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
	Treatment string `json:"treatment"`
	Outcome   string `json:"outcome" binding:"required"`
}

// CloseVisit closes a visit with its outcome. When the student is sent home
// or referred, the guardian is alerted by both email and SMS.
func (s *HealthService) CloseVisit(ctx context.Context, id uuid.UUID, req CloseVisitRequest) (*health.MedicalVisit, error) {
	visit, err := s.visitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := visit.Close(req.Diagnosis, req.Treatment, health.VisitOutcome(req.Outcome)); err != nil {
		return nil, err
	}
	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	s.logger.Info("medical visit closed",
		zap.String("student_id", visit.StudentID.String()),
		zap.String("outcome", visit.Outcome.String()),
	)
	if visit.Outcome.RequiresGuardianAlert() {
		s.alertGuardian(ctx, visit)
	}
	return visit, nil
}

// GetVisit fetches one medical visit by ID
func (s *HealthService) GetVisit(ctx context.Context, id uuid.UUID) (*health.MedicalVisit, error) {
	return s.visitRepo.FindByID(ctx, id)
}

// ListVisits returns medical visits matching the filter
func (s *HealthService) ListVisits(ctx context.Context, filter health.VisitFilter) ([]*health.MedicalVisit, int64, error) {
	return s.visitRepo.FindAll(ctx, filter)
}

func (s *HealthService) alertGuardian(ctx context.Context, visit *health.MedicalVisit) {
	student, err := s.studentRepo.FindByID(ctx, visit.StudentID)
	if err != nil {
		s.logger.Error("looking up visited student", zap.Error(err))
		return
	}

	var action string
	switch visit.Outcome {
	case health.VisitOutcomeSentHome:
		action = "has been sent home"
	case health.VisitOutcomeReferred:
		action = "has been referred for external care"
	}

	subject := fmt.Sprintf("Infirmary visit: %s", student.FullName())
	body := fmt.Sprintf(
		"Dear %s,\n\n%s visited the infirmary today and %s.\nDiagnosis: %s",
		student.Guardian.Name, student.FullName(), action, visit.Diagnosis,
	)
	s.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "MEDICAL_VISIT", &visit.ID)

	sms := fmt.Sprintf("%s %s. Please contact the school infirmary.", student.FullName(), action)
	s.notifier.SendSMS(ctx, student.Guardian.Phone, sms, "MEDICAL_VISIT", &visit.ID)
}
