package schooling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StudentRepository defines persistence operations for students
type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	Update(ctx context.Context, student *Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)
	FindByMassarCode(ctx context.Context, massarCode string) (*Student, error)
	FindAll(ctx context.Context, filter StudentFilter) ([]*Student, int64, error)
	FindByClass(ctx context.Context, schoolClass string) ([]*Student, error)
	ExistsByMassarCode(ctx context.Context, massarCode string) (bool, error)
}

// AttendanceRepository defines persistence operations for attendance records
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *StudentAttendance) error
	Update(ctx context.Context, attendance *StudentAttendance) error
	FindByID(ctx context.Context, id uuid.UUID) (*StudentAttendance, error)
	FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*StudentAttendance, error)
	FindAll(ctx context.Context, filter AttendanceFilter) ([]*StudentAttendance, int64, error)
	FindUnexcusedAbsences(ctx context.Context, date time.Time) ([]*StudentAttendance, error)
	Summarize(ctx context.Context, filter AttendanceFilter) (AttendanceSummary, error)
}

// JustificationRepository defines persistence operations for attendance justifications
type JustificationRepository interface {
	Create(ctx context.Context, justification *AttendanceJustification) error
	Update(ctx context.Context, justification *AttendanceJustification) error
	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceJustification, error)
	FindAll(ctx context.Context, filter JustificationFilter) ([]*AttendanceJustification, int64, error)
	// ExistsActiveForDate reports whether a non-rejected justification already
	// covers the given (student, date), excluding the given justification ID.
	ExistsActiveForDate(ctx context.Context, studentID uuid.UUID, date time.Time, excludeID uuid.UUID) (bool, error)
}
