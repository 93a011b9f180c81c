package hr

import (
	"strings"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeStatus represents the employment status
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "ACTIVE"
	EmployeeStatusOnLeave  EmployeeStatus = "ON_LEAVE"
	EmployeeStatusRelieved EmployeeStatus = "RELIEVED"
)

// IsValid checks if the status is a valid EmployeeStatus
func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusOnLeave, EmployeeStatusRelieved:
		return true
	}
	return false
}

// String returns the string representation of EmployeeStatus
func (s EmployeeStatus) String() string {
	return string(s)
}

// ComponentKind distinguishes earnings from deductions
type ComponentKind string

const (
	ComponentKindEarning   ComponentKind = "EARNING"
	ComponentKindDeduction ComponentKind = "DEDUCTION"
)

// SalaryComponent is one earning or deduction rule in a salary structure.
// The amount is either a fixed value or a percentage of the basic salary.
type SalaryComponent struct {
	shared.BaseEntity
	EmployeeID     uuid.UUID       `json:"employee_id"`
	Name           string          `json:"name"`
	Kind           ComponentKind   `json:"kind"`
	FixedAmount    decimal.Decimal `json:"fixed_amount"`
	PercentOfBasic decimal.Decimal `json:"percent_of_basic"`
}

// AmountFor resolves the component amount for a given basic salary
func (c SalaryComponent) AmountFor(basic decimal.Decimal) decimal.Decimal {
	if c.PercentOfBasic.GreaterThan(decimal.Zero) {
		return basic.Mul(c.PercentOfBasic).Div(decimal.NewFromInt(100)).Round(2)
	}
	return c.FixedAmount.Round(2)
}

// Employee represents a school employee aggregate root with an inline salary
// structure (basic salary plus earning/deduction components).
type Employee struct {
	shared.BaseAggregateRoot
	EmployeeNumber string            `json:"employee_number"`
	UserID         *uuid.UUID        `json:"user_id"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Designation    string            `json:"designation"`
	JoiningDate    time.Time         `json:"joining_date"`
	RelievingDate  *time.Time        `json:"relieving_date"`
	Status         EmployeeStatus    `json:"status"`
	BasicSalary    decimal.Decimal   `json:"basic_salary"`
	Components     []SalaryComponent `json:"components"`
}

// NewEmployee creates an active employee
func NewEmployee(employeeNumber, firstName, lastName, email, designation string, joiningDate time.Time, basicSalary decimal.Decimal) (*Employee, error) {
	employeeNumber = strings.ToUpper(strings.TrimSpace(employeeNumber))
	if employeeNumber == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_NUMBER", "Employee number cannot be empty")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}
	if basicSalary.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_SALARY", "Basic salary must be positive")
	}
	if joiningDate.IsZero() {
		joiningDate = time.Now()
	}

	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeNumber:    employeeNumber,
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		Designation:       designation,
		JoiningDate:       joiningDate,
		Status:            EmployeeStatusActive,
		BasicSalary:       basicSalary,
	}, nil
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// LinkUser associates the employee with a portal user account
func (e *Employee) LinkUser(userID uuid.UUID) {
	if userID != uuid.Nil {
		e.UserID = &userID
		e.Touch()
	}
}

// AddComponent adds a salary structure component. A component carries either
// a fixed amount or a percentage of basic, not both.
func (e *Employee) AddComponent(name string, kind ComponentKind, fixedAmount, percentOfBasic decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_COMPONENT", "Component name is required")
	}
	if kind != ComponentKindEarning && kind != ComponentKindDeduction {
		return shared.NewDomainError("INVALID_COMPONENT", "Component kind must be earning or deduction")
	}
	if fixedAmount.IsNegative() || percentOfBasic.IsNegative() {
		return shared.NewDomainError("INVALID_COMPONENT", "Component amounts cannot be negative")
	}
	if fixedAmount.GreaterThan(decimal.Zero) && percentOfBasic.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_COMPONENT", "Component cannot have both a fixed amount and a percentage")
	}
	if fixedAmount.IsZero() && percentOfBasic.IsZero() {
		return shared.NewDomainError("INVALID_COMPONENT", "Component must have a fixed amount or a percentage")
	}
	for _, c := range e.Components {
		if c.Name == name {
			return shared.NewDomainError("DUPLICATE_COMPONENT", "Component with this name already exists")
		}
	}

	e.Components = append(e.Components, SalaryComponent{
		BaseEntity:     shared.NewBaseEntity(),
		EmployeeID:     e.ID,
		Name:           name,
		Kind:           kind,
		FixedAmount:    fixedAmount,
		PercentOfBasic: percentOfBasic,
	})
	e.Touch()
	return nil
}

// SetBasicSalary updates the basic salary for future slips
func (e *Employee) SetBasicSalary(basic decimal.Decimal) error {
	if basic.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_SALARY", "Basic salary must be positive")
	}
	e.BasicSalary = basic
	e.Touch()
	return nil
}

// Relieve ends the employment as of the given date
func (e *Employee) Relieve(relievingDate time.Time) error {
	if e.Status == EmployeeStatusRelieved {
		return shared.NewDomainError("INVALID_STATE", "Employee is already relieved")
	}
	if relievingDate.Before(e.JoiningDate) {
		return shared.NewDomainError("INVALID_DATE", "Relieving date cannot precede joining date")
	}
	e.Status = EmployeeStatusRelieved
	e.RelievingDate = &relievingDate
	e.Touch()
	return nil
}

// IsActive returns true when salary slips may be generated for the employee
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// EmployeeFilter defines filtering options for employee list queries
type EmployeeFilter struct {
	Search   string
	Status   EmployeeStatus
	Page     int
	PageSize int
}
