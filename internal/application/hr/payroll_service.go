package hr

import (
	"context"
	"fmt"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayrollService handles salary slip generation and processing
type PayrollService struct {
	slipRepo     hr.SalarySlipRepository
	employeeRepo hr.EmployeeRepository
	ledgerRepo   finance.LedgerRepository
	notifier     *notify.Notifier
	logger       *zap.Logger
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	slipRepo hr.SalarySlipRepository,
	employeeRepo hr.EmployeeRepository,
	ledgerRepo finance.LedgerRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *PayrollService {
	return &PayrollService{
		slipRepo:     slipRepo,
		employeeRepo: employeeRepo,
		ledgerRepo:   ledgerRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// GenerateSlipRequest carries one slip generation
type GenerateSlipRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	PayPeriod  string    `json:"pay_period" binding:"required"`
}

// GenerateSlip drafts a salary slip from the employee's salary structure.
// One slip per (employee, period).
func (s *PayrollService) GenerateSlip(ctx context.Context, req GenerateSlipRequest) (*hr.SalarySlip, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.slipRepo.ExistsForPeriod(ctx, req.EmployeeID, req.PayPeriod)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A slip already exists for this employee and period")
	}

	slip, err := hr.NewSalarySlip(employee, req.PayPeriod)
	if err != nil {
		return nil, err
	}
	if err := s.slipRepo.Create(ctx, slip); err != nil {
		return nil, err
	}
	s.logger.Info("salary slip drafted",
		zap.String("employee_number", employee.EmployeeNumber),
		zap.String("pay_period", slip.PayPeriod),
		zap.String("net", slip.NetSalary.String()),
	)
	return slip, nil
}

// GenerateSlipsForPeriod drafts slips for every active employee without one
// for the period. It returns how many were created.
func (s *PayrollService) GenerateSlipsForPeriod(ctx context.Context, payPeriod string) (int, error) {
	employees, err := s.employeeRepo.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, employee := range employees {
		exists, err := s.slipRepo.ExistsForPeriod(ctx, employee.ID, payPeriod)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		slip, err := hr.NewSalarySlip(employee, payPeriod)
		if err != nil {
			// One broken salary structure must not sink the whole run.
			s.logger.Error("drafting salary slip",
				zap.String("employee_number", employee.EmployeeNumber),
				zap.String("pay_period", payPeriod),
				zap.Error(err),
			)
			continue
		}
		if err := s.slipRepo.Create(ctx, slip); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info("payroll drafts generated",
		zap.String("pay_period", payPeriod),
		zap.Int("created", created),
	)
	return created, nil
}

// SetSlipAttendanceRequest carries the attendance day counts for a slip
type SetSlipAttendanceRequest struct {
	WorkingDays int `json:"working_days" binding:"required"`
	PresentDays int `json:"present_days"`
	LeaveDays   int `json:"leave_days"`
	AbsentDays  int `json:"absent_days"`
}

// SetSlipAttendance records the attendance counts on a draft slip
func (s *PayrollService) SetSlipAttendance(ctx context.Context, id uuid.UUID, req SetSlipAttendanceRequest) (*hr.SalarySlip, error) {
	slip, err := s.slipRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := slip.SetAttendance(req.WorkingDays, req.PresentDays, req.LeaveDays, req.AbsentDays); err != nil {
		return nil, err
	}
	if err := s.slipRepo.Update(ctx, slip); err != nil {
		return nil, err
	}
	return slip, nil
}

// ProcessSlip finalizes a draft slip, posts the salary expense to the ledger
// and emails the employee their slip summary.
func (s *PayrollService) ProcessSlip(ctx context.Context, id, processedBy uuid.UUID) (*hr.SalarySlip, error) {
	slip, err := s.slipRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := slip.Process(processedBy); err != nil {
		return nil, err
	}
	if err := s.slipRepo.Update(ctx, slip); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Salary for %s", slip.PayPeriod)
	debit, err := finance.NewLedgerEntry(finance.AccountSalaryExpense, finance.LedgerRefSalarySlip, slip.ID, slip.NetSalary, decimal.Zero, description)
	if err != nil {
		return nil, err
	}
	credit, err := finance.NewLedgerEntry(finance.AccountCashAndBank, finance.LedgerRefSalarySlip, slip.ID, decimal.Zero, slip.NetSalary, description)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Append(ctx, debit); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Append(ctx, credit); err != nil {
		return nil, err
	}

	s.logger.Info("salary slip processed",
		zap.String("pay_period", slip.PayPeriod),
		zap.String("net", slip.NetSalary.String()),
	)
	s.notifyEmployee(ctx, slip)
	return slip, nil
}

// CancelSlip voids a draft slip
func (s *PayrollService) CancelSlip(ctx context.Context, id uuid.UUID) (*hr.SalarySlip, error) {
	slip, err := s.slipRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := slip.Cancel(); err != nil {
		return nil, err
	}
	if err := s.slipRepo.Update(ctx, slip); err != nil {
		return nil, err
	}
	return slip, nil
}

// GetSlip fetches one salary slip by ID
func (s *PayrollService) GetSlip(ctx context.Context, id uuid.UUID) (*hr.SalarySlip, error) {
	return s.slipRepo.FindByID(ctx, id)
}

// ListSlips returns salary slips matching the filter
func (s *PayrollService) ListSlips(ctx context.Context, filter hr.SalarySlipFilter) ([]*hr.SalarySlip, int64, error) {
	return s.slipRepo.FindAll(ctx, filter)
}

// PeriodSummary aggregates slip totals for one pay period
func (s *PayrollService) PeriodSummary(ctx context.Context, payPeriod string) (hr.PayrollSummary, error) {
	return s.slipRepo.SummarizePeriod(ctx, payPeriod)
}

func (s *PayrollService) notifyEmployee(ctx context.Context, slip *hr.SalarySlip) {
	employee, err := s.employeeRepo.FindByID(ctx, slip.EmployeeID)
	if err != nil {
		s.logger.Error("looking up slip employee", zap.Error(err))
		return
	}
	subject := fmt.Sprintf("Salary slip for %s", slip.PayPeriod)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour salary for %s has been processed.\nGross: %s MAD\nDeductions: %s MAD\nNet: %s MAD",
		employee.FullName(), slip.PayPeriod,
		slip.GrossSalary.StringFixed(2), slip.TotalDeductions.StringFixed(2), slip.NetSalary.StringFixed(2),
	)
	s.notifier.SendEmail(ctx, employee.Email, subject, body, "SALARY_SLIP", &slip.ID)
}
