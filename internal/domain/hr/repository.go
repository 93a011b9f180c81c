package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmployeeRepository defines persistence operations for employees
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	Update(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*Employee, error)
	FindAll(ctx context.Context, filter EmployeeFilter) ([]*Employee, int64, error)
	FindActive(ctx context.Context) ([]*Employee, error)
	ExistsByEmployeeNumber(ctx context.Context, employeeNumber string) (bool, error)
}

// SalarySlipRepository defines persistence operations for salary slips
type SalarySlipRepository interface {
	Create(ctx context.Context, slip *SalarySlip) error
	Update(ctx context.Context, slip *SalarySlip) error
	FindByID(ctx context.Context, id uuid.UUID) (*SalarySlip, error)
	FindAll(ctx context.Context, filter SalarySlipFilter) ([]*SalarySlip, int64, error)
	ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, payPeriod string) (bool, error)
	SummarizePeriod(ctx context.Context, payPeriod string) (PayrollSummary, error)
}

// LeaveRepository defines persistence operations for leave applications
type LeaveRepository interface {
	Create(ctx context.Context, leave *LeaveApplication) error
	Update(ctx context.Context, leave *LeaveApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveApplication, error)
	FindAll(ctx context.Context, filter LeaveFilter) ([]*LeaveApplication, int64, error)
	// FindApprovedOverlapping returns approved applications of the employee
	// overlapping the given range, excluding the given application ID.
	FindApprovedOverlapping(ctx context.Context, employeeID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]*LeaveApplication, error)
}
