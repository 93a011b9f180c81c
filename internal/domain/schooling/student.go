package schooling

import (
	"fmt"
	"strings"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
)

// StudentStatus represents the enrollment status of a student
type StudentStatus string

const (
	StudentStatusApplicant   StudentStatus = "APPLICANT"
	StudentStatusEnrolled    StudentStatus = "ENROLLED"
	StudentStatusTransferred StudentStatus = "TRANSFERRED"
	StudentStatusGraduated   StudentStatus = "GRADUATED"
	StudentStatusWithdrawn   StudentStatus = "WITHDRAWN"
)

// IsValid checks if the status is a valid StudentStatus
func (s StudentStatus) IsValid() bool {
	switch s {
	case StudentStatusApplicant, StudentStatusEnrolled, StudentStatusTransferred,
		StudentStatusGraduated, StudentStatusWithdrawn:
		return true
	}
	return false
}

// String returns the string representation of StudentStatus
func (s StudentStatus) String() string {
	return string(s)
}

// IsActive returns true if the student currently attends the school
func (s StudentStatus) IsActive() bool {
	return s == StudentStatusEnrolled
}

// Guardian holds the contact details of a student's legal guardian
type Guardian struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// HasEmail returns true if the guardian can be reached by email
func (g Guardian) HasEmail() bool {
	return g.Email != ""
}

// HasPhone returns true if the guardian can be reached by SMS
func (g Guardian) HasPhone() bool {
	return g.Phone != ""
}

// Student represents a student aggregate root.
// A student starts as an applicant and becomes enrolled on admission approval.
type Student struct {
	shared.BaseAggregateRoot
	MassarCode          string        `json:"massar_code"`
	FirstName           string        `json:"first_name"`
	LastName            string        `json:"last_name"`
	DateOfBirth         time.Time     `json:"date_of_birth"`
	SchoolClass         string        `json:"school_class"`
	Guardian            Guardian      `json:"guardian"`
	DietaryRestrictions string        `json:"dietary_restrictions"`
	Status              StudentStatus `json:"status"`
	EnrolledAt          *time.Time    `json:"enrolled_at"`
	LeftAt              *time.Time    `json:"left_at"`
	LeaveReason         string        `json:"leave_reason"`
}

// NewStudent creates a new student in applicant status
func NewStudent(massarCode, firstName, lastName string, dateOfBirth time.Time, guardian Guardian) (*Student, error) {
	massarCode = strings.ToUpper(strings.TrimSpace(massarCode))
	if massarCode == "" {
		return nil, shared.NewDomainError("INVALID_MASSAR_CODE", "Massar code cannot be empty")
	}
	if len(massarCode) > 20 {
		return nil, shared.NewDomainError("INVALID_MASSAR_CODE", "Massar code cannot exceed 20 characters")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}
	if dateOfBirth.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_DATE_OF_BIRTH", "Date of birth cannot be in the future")
	}
	if guardian.Name == "" {
		return nil, shared.NewDomainError("INVALID_GUARDIAN", "Guardian name is required")
	}

	return &Student{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MassarCode:        massarCode,
		FirstName:         firstName,
		LastName:          lastName,
		DateOfBirth:       dateOfBirth,
		Guardian:          guardian,
		Status:            StudentStatusApplicant,
	}, nil
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Enroll admits an applicant into a class
func (s *Student) Enroll(schoolClass string) error {
	if s.Status != StudentStatusApplicant {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot enroll student in %s status", s.Status))
	}
	if schoolClass == "" {
		return shared.NewDomainError("INVALID_CLASS", "School class is required for enrollment")
	}

	now := time.Now()
	s.Status = StudentStatusEnrolled
	s.SchoolClass = schoolClass
	s.EnrolledAt = &now
	s.Touch()
	return nil
}

// AssignClass moves an enrolled student to another class
func (s *Student) AssignClass(schoolClass string) error {
	if s.Status != StudentStatusEnrolled {
		return shared.NewDomainError("INVALID_STATE", "Only enrolled students can change class")
	}
	if schoolClass == "" {
		return shared.NewDomainError("INVALID_CLASS", "School class cannot be empty")
	}
	s.SchoolClass = schoolClass
	s.Touch()
	return nil
}

// Transfer marks the student as transferred to another school
func (s *Student) Transfer(reason string) error {
	return s.leave(StudentStatusTransferred, reason)
}

// Graduate marks the student as graduated
func (s *Student) Graduate() error {
	return s.leave(StudentStatusGraduated, "")
}

// Withdraw marks the student as withdrawn
func (s *Student) Withdraw(reason string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Withdrawal reason is required")
	}
	return s.leave(StudentStatusWithdrawn, reason)
}

func (s *Student) leave(status StudentStatus, reason string) error {
	if s.Status != StudentStatusEnrolled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change status from %s to %s", s.Status, status))
	}
	now := time.Now()
	s.Status = status
	s.LeftAt = &now
	s.LeaveReason = reason
	s.Touch()
	return nil
}

// UpdateGuardian replaces the guardian contact details
func (s *Student) UpdateGuardian(guardian Guardian) error {
	if guardian.Name == "" {
		return shared.NewDomainError("INVALID_GUARDIAN", "Guardian name is required")
	}
	s.Guardian = guardian
	s.Touch()
	return nil
}

// SetDietaryRestrictions records the student's dietary restrictions
func (s *Student) SetDietaryRestrictions(restrictions string) {
	s.DietaryRestrictions = restrictions
	s.Touch()
}

// StudentFilter defines filtering options for student list queries
type StudentFilter struct {
	Search      string
	SchoolClass string
	Status      StudentStatus
	Page        int
	PageSize    int
}
