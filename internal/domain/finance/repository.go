package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BudgetRepository defines persistence operations for budgets
type BudgetRepository interface {
	Create(ctx context.Context, budget *Budget) error
	Update(ctx context.Context, budget *Budget) error
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindAll(ctx context.Context, filter BudgetFilter) ([]*Budget, int64, error)
	ExistsForFiscalYear(ctx context.Context, fiscalYear string, excludeID uuid.UUID) (bool, error)
}

// FeeBillRepository defines persistence operations for fee bills
type FeeBillRepository interface {
	Create(ctx context.Context, bill *FeeBill) error
	Update(ctx context.Context, bill *FeeBill) error
	FindByID(ctx context.Context, id uuid.UUID) (*FeeBill, error)
	FindByBillNumber(ctx context.Context, billNumber string) (*FeeBill, error)
	FindAll(ctx context.Context, filter FeeBillFilter) ([]*FeeBill, int64, error)
	FindOverdue(ctx context.Context, asOf time.Time) ([]*FeeBill, error)
	Summarize(ctx context.Context, academicYear string) (FeeCollectionSummary, error)
	NextBillNumber(ctx context.Context, year int) (string, error)
}

// PaymentEntryRepository defines persistence operations for payment entries
type PaymentEntryRepository interface {
	Create(ctx context.Context, payment *PaymentEntry) error
	Update(ctx context.Context, payment *PaymentEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentEntry, error)
	FindAll(ctx context.Context, filter PaymentEntryFilter) ([]*PaymentEntry, int64, error)
	NextPaymentNumber(ctx context.Context, year int) (string, error)
}

// LedgerRepository defines persistence operations for the school ledger
type LedgerRepository interface {
	Append(ctx context.Context, entry *LedgerEntry) error
	FindAll(ctx context.Context, filter LedgerFilter) ([]*LedgerEntry, int64, error)
	FindByReference(ctx context.Context, refType LedgerReferenceType, refID uuid.UUID) ([]*LedgerEntry, error)
	BalanceByAccount(ctx context.Context, from, to time.Time) ([]AccountBalance, error)
}
