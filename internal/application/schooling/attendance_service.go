package schooling

import (
	"context"
	"time"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AttendanceService handles daily attendance recording and reporting
type AttendanceService struct {
	attendanceRepo schooling.AttendanceRepository
	studentRepo    schooling.StudentRepository
	logger         *zap.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendanceRepo schooling.AttendanceRepository, studentRepo schooling.StudentRepository, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		logger:         logger,
	}
}

// RecordAttendanceRequest carries one attendance mark
type RecordAttendanceRequest struct {
	StudentID      uuid.UUID `json:"student_id" binding:"required"`
	AttendanceDate time.Time `json:"attendance_date" binding:"required"`
	Status         string    `json:"status" binding:"required"`
	Remark         string    `json:"remark"`
}

// RecordAttendance records one student's attendance for a date. Recording
// twice for the same (student, date) is rejected; use Correct instead.
func (s *AttendanceService) RecordAttendance(ctx context.Context, recordedBy uuid.UUID, req RecordAttendanceRequest) (*schooling.StudentAttendance, error) {
	student, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !student.Status.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Attendance can only be recorded for enrolled students")
	}

	existing, err := s.attendanceRepo.FindByStudentAndDate(ctx, req.StudentID, req.AttendanceDate)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Attendance is already recorded for this student and date")
	}

	attendance, err := schooling.NewStudentAttendance(req.StudentID, student.SchoolClass, req.AttendanceDate, schooling.AttendanceStatus(req.Status), recordedBy)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		if err := attendance.Correct(attendance.Status, req.Remark); err != nil {
			return nil, err
		}
	}

	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// RecordClassAttendance marks every enrolled student of a class for a date.
// Students listed in absentIDs are marked absent, those in lateIDs late, and
// everyone else present. Students with an existing record are skipped.
func (s *AttendanceService) RecordClassAttendance(ctx context.Context, recordedBy uuid.UUID, schoolClass string, date time.Time, absentIDs, lateIDs []uuid.UUID) (int, error) {
	students, err := s.studentRepo.FindByClass(ctx, schoolClass)
	if err != nil {
		return 0, err
	}

	absent := toSet(absentIDs)
	late := toSet(lateIDs)

	recorded := 0
	for _, student := range students {
		existing, err := s.attendanceRepo.FindByStudentAndDate(ctx, student.ID, date)
		if err != nil && err != shared.ErrNotFound {
			return recorded, err
		}
		if existing != nil {
			continue
		}

		status := schooling.AttendanceStatusPresent
		if absent[student.ID] {
			status = schooling.AttendanceStatusAbsent
		} else if late[student.ID] {
			status = schooling.AttendanceStatusLate
		}

		attendance, err := schooling.NewStudentAttendance(student.ID, schoolClass, date, status, recordedBy)
		if err != nil {
			return recorded, err
		}
		if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
			return recorded, err
		}
		recorded++
	}

	s.logger.Info("class attendance recorded",
		zap.String("school_class", schoolClass),
		zap.Time("date", date),
		zap.Int("records", recorded),
	)
	return recorded, nil
}

// CorrectAttendanceRequest carries a correction to an existing record
type CorrectAttendanceRequest struct {
	Status string `json:"status" binding:"required"`
	Remark string `json:"remark"`
}

// CorrectAttendance replaces the status on an existing attendance record
func (s *AttendanceService) CorrectAttendance(ctx context.Context, id uuid.UUID, req CorrectAttendanceRequest) (*schooling.StudentAttendance, error) {
	attendance, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := attendance.Correct(schooling.AttendanceStatus(req.Status), req.Remark); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// ListAttendance returns attendance records matching the filter
func (s *AttendanceService) ListAttendance(ctx context.Context, filter schooling.AttendanceFilter) ([]*schooling.StudentAttendance, int64, error) {
	return s.attendanceRepo.FindAll(ctx, filter)
}

// SummarizeAttendance aggregates attendance counts over the filter
func (s *AttendanceService) SummarizeAttendance(ctx context.Context, filter schooling.AttendanceFilter) (schooling.AttendanceSummary, error) {
	return s.attendanceRepo.Summarize(ctx, filter)
}

func toSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
