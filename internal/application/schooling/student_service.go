package schooling

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StudentService handles admission and student-record operations
type StudentService struct {
	studentRepo schooling.StudentRepository
	notifier    *notify.Notifier
	schoolName  string
	logger      *zap.Logger
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo schooling.StudentRepository, notifier *notify.Notifier, schoolName string, logger *zap.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		notifier:    notifier,
		schoolName:  schoolName,
		logger:      logger,
	}
}

// RegisterApplicantRequest carries a new admission application
type RegisterApplicantRequest struct {
	MassarCode          string    `json:"massar_code" binding:"required"`
	FirstName           string    `json:"first_name" binding:"required"`
	LastName            string    `json:"last_name" binding:"required"`
	DateOfBirth         time.Time `json:"date_of_birth" binding:"required"`
	GuardianName        string    `json:"guardian_name" binding:"required"`
	GuardianEmail       string    `json:"guardian_email"`
	GuardianPhone       string    `json:"guardian_phone"`
	DietaryRestrictions string    `json:"dietary_restrictions"`
}

// RegisterApplicant files a new admission application
func (s *StudentService) RegisterApplicant(ctx context.Context, req RegisterApplicantRequest) (*schooling.Student, error) {
	student, err := schooling.NewStudent(req.MassarCode, req.FirstName, req.LastName, req.DateOfBirth, schooling.Guardian{
		Name:  req.GuardianName,
		Email: req.GuardianEmail,
		Phone: req.GuardianPhone,
	})
	if err != nil {
		return nil, err
	}
	if req.DietaryRestrictions != "" {
		student.SetDietaryRestrictions(req.DietaryRestrictions)
	}

	exists, err := s.studentRepo.ExistsByMassarCode(ctx, student.MassarCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A student with this Massar code already exists")
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("applicant registered",
		zap.String("massar_code", student.MassarCode),
		zap.String("student", student.FullName()),
	)
	return student, nil
}

// ApproveAdmissionRequest carries the class assignment for an admission
type ApproveAdmissionRequest struct {
	SchoolClass string `json:"school_class" binding:"required"`
}

// ApproveAdmission enrolls an applicant into a class and welcomes the guardian
func (s *StudentService) ApproveAdmission(ctx context.Context, id uuid.UUID, req ApproveAdmissionRequest) (*schooling.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := student.Enroll(req.SchoolClass); err != nil {
		return nil, err
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("admission approved",
		zap.String("massar_code", student.MassarCode),
		zap.String("school_class", student.SchoolClass),
	)

	if student.Guardian.HasEmail() {
		subject := fmt.Sprintf("Welcome to %s", s.schoolName)
		body := fmt.Sprintf(
			"Dear %s,\n\n%s has been enrolled in class %s. We look forward to the new school year.\n\n%s",
			student.Guardian.Name, student.FullName(), student.SchoolClass, s.schoolName,
		)
		s.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "STUDENT", &student.ID)
	}
	return student, nil
}

// UpdateStudentRequest carries mutable student-record fields
type UpdateStudentRequest struct {
	SchoolClass         string `json:"school_class"`
	GuardianName        string `json:"guardian_name" binding:"required"`
	GuardianEmail       string `json:"guardian_email"`
	GuardianPhone       string `json:"guardian_phone"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

// UpdateStudent updates guardian contacts, class assignment and dietary notes
func (s *StudentService) UpdateStudent(ctx context.Context, id uuid.UUID, req UpdateStudentRequest) (*schooling.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := student.UpdateGuardian(schooling.Guardian{
		Name:  req.GuardianName,
		Email: req.GuardianEmail,
		Phone: req.GuardianPhone,
	}); err != nil {
		return nil, err
	}
	if req.SchoolClass != "" && req.SchoolClass != student.SchoolClass {
		if err := student.AssignClass(req.SchoolClass); err != nil {
			return nil, err
		}
	}
	student.SetDietaryRestrictions(req.DietaryRestrictions)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// LeaveSchoolRequest carries the kind of departure and its reason
type LeaveSchoolRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=TRANSFERRED GRADUATED WITHDRAWN"`
	Reason string `json:"reason"`
}

// RecordDeparture closes out an enrolled student's record
func (s *StudentService) RecordDeparture(ctx context.Context, id uuid.UUID, req LeaveSchoolRequest) (*schooling.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch schooling.StudentStatus(req.Kind) {
	case schooling.StudentStatusTransferred:
		err = student.Transfer(req.Reason)
	case schooling.StudentStatusGraduated:
		err = student.Graduate()
	case schooling.StudentStatusWithdrawn:
		err = student.Withdraw(req.Reason)
	default:
		err = shared.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	s.logger.Info("student departure recorded",
		zap.String("massar_code", student.MassarCode),
		zap.String("status", student.Status.String()),
	)
	return student, nil
}

// GetStudent fetches one student by ID
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*schooling.Student, error) {
	return s.studentRepo.FindByID(ctx, id)
}

// GetStudentByMassarCode fetches one student by Massar code
func (s *StudentService) GetStudentByMassarCode(ctx context.Context, code string) (*schooling.Student, error) {
	return s.studentRepo.FindByMassarCode(ctx, code)
}

// ListStudents returns students matching the filter
func (s *StudentService) ListStudents(ctx context.Context, filter schooling.StudentFilter) ([]*schooling.Student, int64, error) {
	return s.studentRepo.FindAll(ctx, filter)
}
