package schooling

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AttendanceStatus represents the attendance status for one student on one day
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
	AttendanceStatusLate    AttendanceStatus = "LATE"
	AttendanceStatusExcused AttendanceStatus = "EXCUSED"
)

// IsValid checks if the status is a valid AttendanceStatus
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	}
	return false
}

// String returns the string representation of AttendanceStatus
func (s AttendanceStatus) String() string {
	return string(s)
}

// StudentAttendance records the attendance of one student on one date.
// One record per (student, date); the date may not be in the future.
type StudentAttendance struct {
	shared.BaseAggregateRoot
	StudentID       uuid.UUID        `json:"student_id"`
	SchoolClass     string           `json:"school_class"`
	AttendanceDate  time.Time        `json:"attendance_date"`
	Status          AttendanceStatus `json:"status"`
	Remark          string           `json:"remark"`
	JustificationID *uuid.UUID       `json:"justification_id"`
	RecordedBy      uuid.UUID        `json:"recorded_by"`
}

// NewStudentAttendance creates an attendance record for a student
func NewStudentAttendance(studentID uuid.UUID, schoolClass string, date time.Time, status AttendanceStatus, recordedBy uuid.UUID) (*StudentAttendance, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Attendance status is not valid")
	}
	day := truncateToDay(date)
	if day.After(truncateToDay(time.Now())) {
		return nil, shared.NewDomainError("INVALID_DATE", "Attendance date cannot be in the future")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Recording user is required")
	}

	return &StudentAttendance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		SchoolClass:       schoolClass,
		AttendanceDate:    day,
		Status:            status,
		RecordedBy:        recordedBy,
	}, nil
}

// Correct replaces the recorded status, keeping any justification link intact
func (a *StudentAttendance) Correct(status AttendanceStatus, remark string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Attendance status is not valid")
	}
	a.Status = status
	a.Remark = remark
	a.Touch()
	return nil
}

// Excuse flips an absence to excused, linking the approved justification.
// Only absences can be excused.
func (a *StudentAttendance) Excuse(justificationID uuid.UUID) error {
	if a.Status != AttendanceStatusAbsent {
		return shared.NewDomainError("INVALID_STATE", "Only absences can be excused")
	}
	if justificationID == uuid.Nil {
		return shared.NewDomainError("INVALID_JUSTIFICATION", "Justification reference is required")
	}
	a.Status = AttendanceStatusExcused
	a.JustificationID = &justificationID
	a.Touch()
	return nil
}

// IsUnexcusedAbsence returns true for absences without an approved justification
func (a *StudentAttendance) IsUnexcusedAbsence() bool {
	return a.Status == AttendanceStatusAbsent && a.JustificationID == nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AttendanceFilter defines filtering options for attendance queries
type AttendanceFilter struct {
	StudentID   *uuid.UUID
	SchoolClass string
	Status      AttendanceStatus
	FromDate    *time.Time
	ToDate      *time.Time
	Page        int
	PageSize    int
}

// AttendanceSummary aggregates attendance counts for reporting
type AttendanceSummary struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	Excused int64 `json:"excused"`
}

// Total returns the number of recorded days in the summary
func (s AttendanceSummary) Total() int64 {
	return s.Present + s.Absent + s.Late + s.Excused
}

// AttendanceRate returns the percentage of days present or late out of all recorded days
func (s AttendanceSummary) AttendanceRate() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Present+s.Late) / float64(total) * 100
}
