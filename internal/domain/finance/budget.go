package finance

import (
	"fmt"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle status of a budget
type BudgetStatus string

const (
	BudgetStatusDraft  BudgetStatus = "DRAFT"
	BudgetStatusActive BudgetStatus = "ACTIVE"
	BudgetStatusClosed BudgetStatus = "CLOSED"
)

// IsValid checks if the status is a valid BudgetStatus
func (s BudgetStatus) IsValid() bool {
	switch s {
	case BudgetStatusDraft, BudgetStatusActive, BudgetStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of BudgetStatus
func (s BudgetStatus) String() string {
	return string(s)
}

// BudgetLine allocates an amount to a cost center within a budget
type BudgetLine struct {
	shared.BaseEntity
	BudgetID   uuid.UUID       `json:"budget_id"`
	CostCenter string          `json:"cost_center"`
	Allocated  decimal.Decimal `json:"allocated"`
	Consumed   decimal.Decimal `json:"consumed"`
}

// Remaining returns the unconsumed allocation of the line
func (l *BudgetLine) Remaining() decimal.Decimal {
	return l.Allocated.Sub(l.Consumed)
}

// UtilizationPercent returns consumed/allocated as a percentage
func (l *BudgetLine) UtilizationPercent() decimal.Decimal {
	if l.Allocated.IsZero() {
		return decimal.Zero
	}
	return l.Consumed.Div(l.Allocated).Mul(decimal.NewFromInt(100)).Round(2)
}

// Budget represents a fiscal-year budget aggregate root with cost-center lines
type Budget struct {
	shared.BaseAggregateRoot
	FiscalYear    string          `json:"fiscal_year"`
	Title         string          `json:"title"`
	Lines         []BudgetLine    `json:"lines"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalConsumed decimal.Decimal `json:"total_consumed"`
	Status        BudgetStatus    `json:"status"`
	// WarnThresholdPercent triggers an over-consumption warning when a line
	// utilization crosses it. Default 80.
	WarnThresholdPercent decimal.Decimal `json:"warn_threshold_percent"`
}

// NewBudget creates a draft budget for a fiscal year
func NewBudget(fiscalYear, title string) (*Budget, error) {
	if fiscalYear == "" {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year is required")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Budget title is required")
	}

	return &Budget{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		FiscalYear:           fiscalYear,
		Title:                title,
		TotalAmount:          decimal.Zero,
		TotalConsumed:        decimal.Zero,
		Status:               BudgetStatusDraft,
		WarnThresholdPercent: decimal.NewFromInt(80),
	}, nil
}

// AddLine adds a cost-center allocation. Only allowed while the budget is draft.
func (b *Budget) AddLine(costCenter string, allocated decimal.Decimal) error {
	if b.Status != BudgetStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to a draft budget")
	}
	if costCenter == "" {
		return shared.NewDomainError("INVALID_COST_CENTER", "Cost center is required")
	}
	if allocated.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocated amount must be positive")
	}
	for _, line := range b.Lines {
		if line.CostCenter == costCenter {
			return shared.NewDomainError("DUPLICATE_COST_CENTER", fmt.Sprintf("Cost center %s already has an allocation", costCenter))
		}
	}

	b.Lines = append(b.Lines, BudgetLine{
		BaseEntity: shared.NewBaseEntity(),
		BudgetID:   b.ID,
		CostCenter: costCenter,
		Allocated:  allocated,
		Consumed:   decimal.Zero,
	})
	b.recalcTotals()
	b.Touch()
	return nil
}

// Activate moves a draft budget with at least one line into active status
func (b *Budget) Activate() error {
	if b.Status != BudgetStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot activate budget in %s status", b.Status))
	}
	if len(b.Lines) == 0 {
		return shared.NewDomainError("EMPTY_BUDGET", "Budget must have at least one line before activation")
	}
	b.Status = BudgetStatusActive
	b.Touch()
	return nil
}

// Close closes an active budget; no further consumption is allowed
func (b *Budget) Close() error {
	if b.Status != BudgetStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close budget in %s status", b.Status))
	}
	b.Status = BudgetStatusClosed
	b.Touch()
	return nil
}

// RecordExpense consumes budget from a cost-center line. It returns true when
// the line utilization crossed the warning threshold with this expense.
func (b *Budget) RecordExpense(costCenter string, amount decimal.Decimal) (warned bool, err error) {
	if b.Status != BudgetStatusActive {
		return false, shared.NewDomainError("INVALID_STATE", "Expenses can only be recorded against an active budget")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	for i := range b.Lines {
		line := &b.Lines[i]
		if line.CostCenter != costCenter {
			continue
		}
		if amount.GreaterThan(line.Remaining()) {
			return false, shared.NewDomainError("BUDGET_EXCEEDED", fmt.Sprintf("Expense exceeds remaining allocation for %s", costCenter))
		}
		before := line.UtilizationPercent()
		line.Consumed = line.Consumed.Add(amount)
		line.Touch()
		b.recalcTotals()
		b.Touch()
		after := line.UtilizationPercent()
		crossed := before.LessThan(b.WarnThresholdPercent) && after.GreaterThanOrEqual(b.WarnThresholdPercent)
		return crossed, nil
	}
	return false, shared.NewDomainError("UNKNOWN_COST_CENTER", fmt.Sprintf("No allocation for cost center %s", costCenter))
}

// UtilizationPercent returns total consumed over total allocated as a percentage
func (b *Budget) UtilizationPercent() decimal.Decimal {
	if b.TotalAmount.IsZero() {
		return decimal.Zero
	}
	return b.TotalConsumed.Div(b.TotalAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

func (b *Budget) recalcTotals() {
	total := decimal.Zero
	consumed := decimal.Zero
	for _, line := range b.Lines {
		total = total.Add(line.Allocated)
		consumed = consumed.Add(line.Consumed)
	}
	b.TotalAmount = total
	b.TotalConsumed = consumed
}

// BudgetFilter defines filtering options for budget list queries
type BudgetFilter struct {
	FiscalYear string
	Status     BudgetStatus
	Page       int
	PageSize   int
}
