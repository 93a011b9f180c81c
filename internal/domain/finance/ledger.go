package finance

import (
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known ledger accounts
const (
	AccountStudentFeesReceivable = "Student Fees Receivable"
	AccountFeeIncome             = "Fee Income"
	AccountCashAndBank           = "Cash and Bank"
	AccountSalaryExpense         = "Salary Expense"
)

// LedgerReferenceType identifies the document a ledger entry originates from
type LedgerReferenceType string

const (
	LedgerRefFeeBill      LedgerReferenceType = "FEE_BILL"
	LedgerRefPaymentEntry LedgerReferenceType = "PAYMENT_ENTRY"
	LedgerRefSalarySlip   LedgerReferenceType = "SALARY_SLIP"
	LedgerRefMealOrder    LedgerReferenceType = "MEAL_ORDER"
)

// LedgerEntry is one append-only debit/credit row in the school ledger.
// Entries are never mutated; cancellations append a reversal.
type LedgerEntry struct {
	shared.BaseEntity
	PostingDate   time.Time           `json:"posting_date"`
	Account       string              `json:"account"`
	StudentID     *uuid.UUID          `json:"student_id"`
	ReferenceType LedgerReferenceType `json:"reference_type"`
	ReferenceID   uuid.UUID           `json:"reference_id"`
	Debit         decimal.Decimal     `json:"debit"`
	Credit        decimal.Decimal     `json:"credit"`
	Description   string              `json:"description"`
	IsReversal    bool                `json:"is_reversal"`
}

// NewLedgerEntry creates a ledger entry. Exactly one of debit/credit must be
// positive and the other zero.
func NewLedgerEntry(account string, refType LedgerReferenceType, refID uuid.UUID, debit, credit decimal.Decimal, description string) (*LedgerEntry, error) {
	if account == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Ledger account is required")
	}
	if refID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Ledger reference is required")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Ledger amounts cannot be negative")
	}
	if debit.IsZero() == credit.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Exactly one of debit or credit must be set")
	}

	return &LedgerEntry{
		BaseEntity:    shared.NewBaseEntity(),
		PostingDate:   time.Now(),
		Account:       account,
		ReferenceType: refType,
		ReferenceID:   refID,
		Debit:         debit,
		Credit:        credit,
		Description:   description,
	}, nil
}

// ForStudent tags the entry with the student it concerns
func (e *LedgerEntry) ForStudent(studentID uuid.UUID) *LedgerEntry {
	if studentID != uuid.Nil {
		e.StudentID = &studentID
	}
	return e
}

// Reversal returns a new entry that cancels this one
func (e *LedgerEntry) Reversal(description string) *LedgerEntry {
	rev := &LedgerEntry{
		BaseEntity:    shared.NewBaseEntity(),
		PostingDate:   time.Now(),
		Account:       e.Account,
		StudentID:     e.StudentID,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Debit:         e.Credit,
		Credit:        e.Debit,
		Description:   description,
		IsReversal:    true,
	}
	return rev
}

// LedgerFilter defines filtering options for ledger queries
type LedgerFilter struct {
	Account       string
	StudentID     *uuid.UUID
	ReferenceType LedgerReferenceType
	ReferenceID   *uuid.UUID
	FromDate      *time.Time
	ToDate        *time.Time
	Page          int
	PageSize      int
}

// AccountBalance is the aggregate of an account over a period
type AccountBalance struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// Net returns debit minus credit
func (b AccountBalance) Net() decimal.Decimal {
	return b.Debit.Sub(b.Credit)
}
