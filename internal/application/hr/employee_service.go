package hr

import (
	"context"
	"time"

	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EmployeeService handles employee records and salary structures
type EmployeeService struct {
	employeeRepo hr.EmployeeRepository
	logger       *zap.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo hr.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, logger: logger}
}

// SalaryComponentRequest is one earning or deduction rule
type SalaryComponentRequest struct {
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=EARNING DEDUCTION"`
	FixedAmount    decimal.Decimal `json:"fixed_amount"`
	PercentOfBasic decimal.Decimal `json:"percent_of_basic"`
}

// CreateEmployeeRequest carries a new employee record
type CreateEmployeeRequest struct {
	EmployeeNumber string                   `json:"employee_number" binding:"required"`
	FirstName      string                   `json:"first_name" binding:"required"`
	LastName       string                   `json:"last_name" binding:"required"`
	Email          string                   `json:"email"`
	Designation    string                   `json:"designation"`
	JoiningDate    time.Time                `json:"joining_date"`
	BasicSalary    decimal.Decimal          `json:"basic_salary" binding:"required"`
	UserID         *uuid.UUID               `json:"user_id"`
	Components     []SalaryComponentRequest `json:"components"`
}

// CreateEmployee registers a new employee with their salary structure
func (s *EmployeeService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*hr.Employee, error) {
	employee, err := hr.NewEmployee(req.EmployeeNumber, req.FirstName, req.LastName, req.Email, req.Designation, req.JoiningDate, req.BasicSalary)
	if err != nil {
		return nil, err
	}
	if req.UserID != nil {
		employee.LinkUser(*req.UserID)
	}
	for _, c := range req.Components {
		if err := employee.AddComponent(c.Name, hr.ComponentKind(c.Kind), c.FixedAmount, c.PercentOfBasic); err != nil {
			return nil, err
		}
	}

	exists, err := s.employeeRepo.ExistsByEmployeeNumber(ctx, employee.EmployeeNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An employee with this number already exists")
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("employee created",
		zap.String("employee_number", employee.EmployeeNumber),
		zap.String("designation", employee.Designation),
	)
	return employee, nil
}

// AddComponent adds a salary structure component to an employee
func (s *EmployeeService) AddComponent(ctx context.Context, id uuid.UUID, req SalaryComponentRequest) (*hr.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.AddComponent(req.Name, hr.ComponentKind(req.Kind), req.FixedAmount, req.PercentOfBasic); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// SetBasicSalaryRequest carries a basic salary revision
type SetBasicSalaryRequest struct {
	BasicSalary decimal.Decimal `json:"basic_salary" binding:"required"`
}

// SetBasicSalary revises the basic salary used for future slips
func (s *EmployeeService) SetBasicSalary(ctx context.Context, id uuid.UUID, req SetBasicSalaryRequest) (*hr.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.SetBasicSalary(req.BasicSalary); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("basic salary revised", zap.String("employee_number", employee.EmployeeNumber))
	return employee, nil
}

// RelieveEmployeeRequest carries the relieving date
type RelieveEmployeeRequest struct {
	RelievingDate time.Time `json:"relieving_date" binding:"required"`
}

// RelieveEmployee ends an employment
func (s *EmployeeService) RelieveEmployee(ctx context.Context, id uuid.UUID, req RelieveEmployeeRequest) (*hr.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.Relieve(req.RelievingDate); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("employee relieved", zap.String("employee_number", employee.EmployeeNumber))
	return employee, nil
}

// GetEmployee fetches one employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	return s.employeeRepo.FindByID(ctx, id)
}

// ListEmployees returns employees matching the filter
func (s *EmployeeService) ListEmployees(ctx context.Context, filter hr.EmployeeFilter) ([]*hr.Employee, int64, error) {
	return s.employeeRepo.FindAll(ctx, filter)
}
