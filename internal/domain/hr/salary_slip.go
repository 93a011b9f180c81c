package hr

import (
	"fmt"
	"regexp"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalarySlipStatus represents the processing status of a salary slip
type SalarySlipStatus string

const (
	SalarySlipStatusDraft     SalarySlipStatus = "DRAFT"
	SalarySlipStatusProcessed SalarySlipStatus = "PROCESSED"
	SalarySlipStatusCancelled SalarySlipStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SalarySlipStatus
func (s SalarySlipStatus) IsValid() bool {
	switch s {
	case SalarySlipStatusDraft, SalarySlipStatusProcessed, SalarySlipStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SalarySlipStatus
func (s SalarySlipStatus) String() string {
	return string(s)
}

// SlipComponent is one computed earning or deduction line on a slip
type SlipComponent struct {
	shared.BaseEntity
	SalarySlipID uuid.UUID       `json:"salary_slip_id"`
	Name         string          `json:"name"`
	Kind         ComponentKind   `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
}

var payPeriodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// SalarySlip represents a monthly salary slip aggregate root.
// gross = basic + Σ earnings; net = gross − Σ deductions; one slip per
// (employee, period).
type SalarySlip struct {
	shared.BaseAggregateRoot
	EmployeeID      uuid.UUID        `json:"employee_id"`
	PayPeriod       string           `json:"pay_period"` // YYYY-MM
	BasicSalary     decimal.Decimal  `json:"basic_salary"`
	Components      []SlipComponent  `json:"components"`
	GrossSalary     decimal.Decimal  `json:"gross_salary"`
	TotalDeductions decimal.Decimal  `json:"total_deductions"`
	NetSalary       decimal.Decimal  `json:"net_salary"`
	WorkingDays     int              `json:"working_days"`
	PresentDays     int              `json:"present_days"`
	LeaveDays       int              `json:"leave_days"`
	AbsentDays      int              `json:"absent_days"`
	Status          SalarySlipStatus `json:"status"`
	ProcessedAt     *time.Time       `json:"processed_at"`
	ProcessedBy     *uuid.UUID       `json:"processed_by"`
}

// NewSalarySlip computes a draft slip from the employee's salary structure.
// Only active employees are eligible.
func NewSalarySlip(employee *Employee, payPeriod string) (*SalarySlip, error) {
	if employee == nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee is required")
	}
	if !employee.IsActive() {
		return nil, shared.NewDomainError("INACTIVE_EMPLOYEE", "Cannot create salary slip for an inactive employee")
	}
	if !payPeriodRe.MatchString(payPeriod) {
		return nil, shared.NewDomainError("INVALID_PAY_PERIOD", "Pay period must be in YYYY-MM format")
	}

	slip := &SalarySlip{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employee.ID,
		PayPeriod:         payPeriod,
		BasicSalary:       employee.BasicSalary,
		Status:            SalarySlipStatusDraft,
	}

	for _, c := range employee.Components {
		amount := c.AmountFor(employee.BasicSalary)
		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		slip.Components = append(slip.Components, SlipComponent{
			BaseEntity:   shared.NewBaseEntity(),
			SalarySlipID: slip.ID,
			Name:         c.Name,
			Kind:         c.Kind,
			Amount:       amount,
		})
	}
	slip.recalcTotals()

	if slip.NetSalary.IsNegative() {
		return nil, shared.NewDomainError("NEGATIVE_NET_SALARY", "Deductions exceed gross salary")
	}
	return slip, nil
}

// SetAttendance records the attendance day counts for the period
func (s *SalarySlip) SetAttendance(workingDays, presentDays, leaveDays, absentDays int) error {
	if s.Status != SalarySlipStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Attendance can only be set on a draft slip")
	}
	if workingDays < 0 || presentDays < 0 || leaveDays < 0 || absentDays < 0 {
		return shared.NewDomainError("INVALID_ATTENDANCE", "Day counts cannot be negative")
	}
	if presentDays+leaveDays+absentDays > workingDays {
		return shared.NewDomainError("INVALID_ATTENDANCE", "Day counts exceed working days")
	}
	s.WorkingDays = workingDays
	s.PresentDays = presentDays
	s.LeaveDays = leaveDays
	s.AbsentDays = absentDays
	s.Touch()
	return nil
}

// Process finalizes the slip, stamping the processor and time
func (s *SalarySlip) Process(processedBy uuid.UUID) error {
	if s.Status != SalarySlipStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process slip in %s status", s.Status))
	}
	if processedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Processing user is required")
	}
	now := time.Now()
	s.Status = SalarySlipStatusProcessed
	s.ProcessedAt = &now
	s.ProcessedBy = &processedBy
	s.Touch()
	return nil
}

// Cancel voids a draft slip
func (s *SalarySlip) Cancel() error {
	if s.Status != SalarySlipStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft slips can be cancelled")
	}
	s.Status = SalarySlipStatusCancelled
	s.Touch()
	return nil
}

// TotalEarnings returns the sum of earning components (excluding basic)
func (s *SalarySlip) TotalEarnings() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Components {
		if c.Kind == ComponentKindEarning {
			total = total.Add(c.Amount)
		}
	}
	return total
}

func (s *SalarySlip) recalcTotals() {
	earnings := decimal.Zero
	deductions := decimal.Zero
	for _, c := range s.Components {
		switch c.Kind {
		case ComponentKindEarning:
			earnings = earnings.Add(c.Amount)
		case ComponentKindDeduction:
			deductions = deductions.Add(c.Amount)
		}
	}
	s.GrossSalary = s.BasicSalary.Add(earnings)
	s.TotalDeductions = deductions
	s.NetSalary = s.GrossSalary.Sub(deductions)
}

// SalarySlipFilter defines filtering options for salary slip queries
type SalarySlipFilter struct {
	EmployeeID *uuid.UUID
	PayPeriod  string
	Status     SalarySlipStatus
	Page       int
	PageSize   int
}

// PayrollSummary aggregates slip totals for one pay period
type PayrollSummary struct {
	PayPeriod       string          `json:"pay_period"`
	SlipCount       int64           `json:"slip_count"`
	ProcessedCount  int64           `json:"processed_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}
