package finance

import (
	"context"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetService handles fiscal-year budget operations
type BudgetService struct {
	budgetRepo finance.BudgetRepository
	logger     *zap.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgetRepo finance.BudgetRepository, logger *zap.Logger) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo, logger: logger}
}

// BudgetLineRequest is one cost-center allocation in a budget request
type BudgetLineRequest struct {
	CostCenter string          `json:"cost_center" binding:"required"`
	Allocated  decimal.Decimal `json:"allocated" binding:"required"`
}

// CreateBudgetRequest carries a new draft budget with its lines
type CreateBudgetRequest struct {
	FiscalYear string              `json:"fiscal_year" binding:"required"`
	Title      string              `json:"title" binding:"required"`
	Lines      []BudgetLineRequest `json:"lines"`
}

// CreateBudget creates a draft budget. At most one non-closed budget may
// exist per fiscal year.
func (s *BudgetService) CreateBudget(ctx context.Context, req CreateBudgetRequest) (*finance.Budget, error) {
	budget, err := finance.NewBudget(req.FiscalYear, req.Title)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if err := budget.AddLine(line.CostCenter, line.Allocated); err != nil {
			return nil, err
		}
	}

	exists, err := s.budgetRepo.ExistsForFiscalYear(ctx, budget.FiscalYear, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An open budget already exists for this fiscal year")
	}

	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}
	s.logger.Info("budget created", zap.String("fiscal_year", budget.FiscalYear))
	return budget, nil
}

// AddBudgetLine adds a cost-center allocation to a draft budget
func (s *BudgetService) AddBudgetLine(ctx context.Context, id uuid.UUID, req BudgetLineRequest) (*finance.Budget, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := budget.AddLine(req.CostCenter, req.Allocated); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// ActivateBudget opens the budget for expense recording
func (s *BudgetService) ActivateBudget(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := budget.Activate(); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}
	s.logger.Info("budget activated", zap.String("fiscal_year", budget.FiscalYear))
	return budget, nil
}

// CloseBudget closes an active budget for good
func (s *BudgetService) CloseBudget(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := budget.Close(); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}
	s.logger.Info("budget closed", zap.String("fiscal_year", budget.FiscalYear))
	return budget, nil
}

// RecordExpenseRequest carries one expense against a cost center
type RecordExpenseRequest struct {
	CostCenter string          `json:"cost_center" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// RecordExpense consumes budget from a cost-center line. Crossing the
// warning threshold is logged but does not block the expense.
func (s *BudgetService) RecordExpense(ctx context.Context, id uuid.UUID, req RecordExpenseRequest) (*finance.Budget, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	warned, err := budget.RecordExpense(req.CostCenter, req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}
	if warned {
		s.logger.Warn("budget line crossed warning threshold",
			zap.String("fiscal_year", budget.FiscalYear),
			zap.String("cost_center", req.CostCenter),
		)
	}
	return budget, nil
}

// GetBudget fetches one budget by ID
func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	return s.budgetRepo.FindByID(ctx, id)
}

// ListBudgets returns budgets matching the filter
func (s *BudgetService) ListBudgets(ctx context.Context, filter finance.BudgetFilter) ([]*finance.Budget, int64, error) {
	return s.budgetRepo.FindAll(ctx, filter)
}
