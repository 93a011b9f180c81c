package models

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/google/uuid"
)

// StudentModel is the persistence model for the Student aggregate root.
type StudentModel struct {
	AggregateModel
	MassarCode          string                  `gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName           string                  `gorm:"type:varchar(100);not null"`
	LastName            string                  `gorm:"type:varchar(100);not null"`
	DateOfBirth         time.Time               `gorm:"not null"`
	SchoolClass         string                  `gorm:"type:varchar(50);index"`
	GuardianName        string                  `gorm:"type:varchar(200);not null"`
	GuardianEmail       string                  `gorm:"type:varchar(200)"`
	GuardianPhone       string                  `gorm:"type:varchar(30)"`
	DietaryRestrictions string                  `gorm:"type:text"`
	Status              schooling.StudentStatus `gorm:"type:varchar(20);not null;index"`
	EnrolledAt          *time.Time
	LeftAt              *time.Time
	LeaveReason         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the persistence model to a domain Student entity.
func (m *StudentModel) ToDomain() *schooling.Student {
	return &schooling.Student{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MassarCode:        m.MassarCode,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		DateOfBirth:       m.DateOfBirth,
		SchoolClass:       m.SchoolClass,
		Guardian: schooling.Guardian{
			Name:  m.GuardianName,
			Email: m.GuardianEmail,
			Phone: m.GuardianPhone,
		},
		DietaryRestrictions: m.DietaryRestrictions,
		Status:              m.Status,
		EnrolledAt:          m.EnrolledAt,
		LeftAt:              m.LeftAt,
		LeaveReason:         m.LeaveReason,
	}
}

// FromDomain populates the persistence model from a domain Student entity.
func (m *StudentModel) FromDomain(s *schooling.Student) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.MassarCode = s.MassarCode
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.DateOfBirth = s.DateOfBirth
	m.SchoolClass = s.SchoolClass
	m.GuardianName = s.Guardian.Name
	m.GuardianEmail = s.Guardian.Email
	m.GuardianPhone = s.Guardian.Phone
	m.DietaryRestrictions = s.DietaryRestrictions
	m.Status = s.Status
	m.EnrolledAt = s.EnrolledAt
	m.LeftAt = s.LeftAt
	m.LeaveReason = s.LeaveReason
}

// StudentModelFromDomain creates a new persistence model from a domain Student.
func StudentModelFromDomain(s *schooling.Student) *StudentModel {
	m := &StudentModel{}
	m.FromDomain(s)
	return m
}

// AttendanceModel is the persistence model for the StudentAttendance aggregate root.
type AttendanceModel struct {
	AggregateModel
	StudentID       uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_student_date,priority:1"`
	SchoolClass     string                     `gorm:"type:varchar(50);index"`
	AttendanceDate  time.Time                  `gorm:"not null;uniqueIndex:idx_attendance_student_date,priority:2;index"`
	Status          schooling.AttendanceStatus `gorm:"type:varchar(10);not null;index"`
	Remark          string                     `gorm:"type:varchar(500)"`
	JustificationID *uuid.UUID                 `gorm:"type:uuid"`
	RecordedBy      uuid.UUID                  `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "student_attendance"
}

// ToDomain converts the persistence model to a domain StudentAttendance entity.
func (m *AttendanceModel) ToDomain() *schooling.StudentAttendance {
	return &schooling.StudentAttendance{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		SchoolClass:       m.SchoolClass,
		AttendanceDate:    m.AttendanceDate,
		Status:            m.Status,
		Remark:            m.Remark,
		JustificationID:   m.JustificationID,
		RecordedBy:        m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain StudentAttendance entity.
func (m *AttendanceModel) FromDomain(a *schooling.StudentAttendance) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.StudentID = a.StudentID
	m.SchoolClass = a.SchoolClass
	m.AttendanceDate = a.AttendanceDate
	m.Status = a.Status
	m.Remark = a.Remark
	m.JustificationID = a.JustificationID
	m.RecordedBy = a.RecordedBy
}

// AttendanceModelFromDomain creates a new persistence model from a domain StudentAttendance.
func AttendanceModelFromDomain(a *schooling.StudentAttendance) *AttendanceModel {
	m := &AttendanceModel{}
	m.FromDomain(a)
	return m
}

// JustificationModel is the persistence model for the AttendanceJustification aggregate root.
type JustificationModel struct {
	AggregateModel
	StudentID      uuid.UUID                     `gorm:"type:uuid;not null;index"`
	AttendanceDate time.Time                     `gorm:"not null;index"`
	Reason         schooling.JustificationReason `gorm:"type:varchar(20);not null"`
	Details        string                        `gorm:"type:text"`
	Status         schooling.JustificationStatus `gorm:"type:varchar(10);not null;index"`
	SubmittedBy    uuid.UUID                     `gorm:"type:uuid;not null"`
	SubmittedVia   string                        `gorm:"type:varchar(20)"`
	SubmittedAt    time.Time                     `gorm:"not null"`
	ReviewedBy     *uuid.UUID                    `gorm:"type:uuid"`
	ReviewedAt     *time.Time
	ReviewComments string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (JustificationModel) TableName() string {
	return "attendance_justifications"
}

// ToDomain converts the persistence model to a domain AttendanceJustification entity.
func (m *JustificationModel) ToDomain() *schooling.AttendanceJustification {
	return &schooling.AttendanceJustification{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		AttendanceDate:    m.AttendanceDate,
		Reason:            m.Reason,
		Details:           m.Details,
		Status:            m.Status,
		SubmittedBy:       m.SubmittedBy,
		SubmittedVia:      m.SubmittedVia,
		SubmittedAt:       m.SubmittedAt,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
		ReviewComments:    m.ReviewComments,
	}
}

// FromDomain populates the persistence model from a domain AttendanceJustification entity.
func (m *JustificationModel) FromDomain(j *schooling.AttendanceJustification) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.StudentID = j.StudentID
	m.AttendanceDate = j.AttendanceDate
	m.Reason = j.Reason
	m.Details = j.Details
	m.Status = j.Status
	m.SubmittedBy = j.SubmittedBy
	m.SubmittedVia = j.SubmittedVia
	m.SubmittedAt = j.SubmittedAt
	m.ReviewedBy = j.ReviewedBy
	m.ReviewedAt = j.ReviewedAt
	m.ReviewComments = j.ReviewComments
}

// JustificationModelFromDomain creates a new persistence model from a domain AttendanceJustification.
func JustificationModelFromDomain(j *schooling.AttendanceJustification) *JustificationModel {
	m := &JustificationModel{}
	m.FromDomain(j)
	return m
}
