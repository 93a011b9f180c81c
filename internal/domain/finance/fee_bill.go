package finance

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeBillStatus represents the payment lifecycle of a fee bill
type FeeBillStatus string

const (
	FeeBillStatusDraft         FeeBillStatus = "DRAFT"
	FeeBillStatusSubmitted     FeeBillStatus = "SUBMITTED"
	FeeBillStatusPartiallyPaid FeeBillStatus = "PARTIALLY_PAID"
	FeeBillStatusPaid          FeeBillStatus = "PAID"
	FeeBillStatusOverdue       FeeBillStatus = "OVERDUE"
	FeeBillStatusCancelled     FeeBillStatus = "CANCELLED"
)

// IsValid checks if the status is a valid FeeBillStatus
func (s FeeBillStatus) IsValid() bool {
	switch s {
	case FeeBillStatusDraft, FeeBillStatusSubmitted, FeeBillStatusPartiallyPaid,
		FeeBillStatusPaid, FeeBillStatusOverdue, FeeBillStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of FeeBillStatus
func (s FeeBillStatus) String() string {
	return string(s)
}

// IsOpen returns true while the bill can still receive payments
func (s FeeBillStatus) IsOpen() bool {
	switch s {
	case FeeBillStatusSubmitted, FeeBillStatusPartiallyPaid, FeeBillStatusOverdue:
		return true
	}
	return false
}

// FeeItem is one charged line on a fee bill
type FeeItem struct {
	shared.BaseEntity
	FeeBillID   uuid.UUID       `json:"fee_bill_id"`
	FeeType     string          `json:"fee_type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// FeeBill represents a student fee bill aggregate root.
// Totals are recomputed on every mutation; outstanding never goes negative.
type FeeBill struct {
	shared.BaseAggregateRoot
	BillNumber   string          `json:"bill_number"`
	StudentID    uuid.UUID       `json:"student_id"`
	AcademicYear string          `json:"academic_year"`
	PostingDate  time.Time       `json:"posting_date"`
	DueDate      time.Time       `json:"due_date"`
	Items        []FeeItem       `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Status       FeeBillStatus   `json:"status"`
	SubmittedAt  *time.Time      `json:"submitted_at"`
	CancelledAt  *time.Time      `json:"cancelled_at"`
	Remark       string          `json:"remark"`
}

// DefaultPaymentTermDays is applied when a bill is submitted without a due date
const DefaultPaymentTermDays = 30

// NewFeeBill creates a draft fee bill for a student
func NewFeeBill(billNumber string, studentID uuid.UUID, academicYear string, postingDate time.Time) (*FeeBill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if academicYear == "" {
		return nil, shared.NewDomainError("INVALID_ACADEMIC_YEAR", "Academic year is required")
	}
	if postingDate.IsZero() {
		postingDate = time.Now()
	}

	return &FeeBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		StudentID:         studentID,
		AcademicYear:      academicYear,
		PostingDate:       postingDate,
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		Outstanding:       decimal.Zero,
		Status:            FeeBillStatusDraft,
	}, nil
}

// AddItem adds a fee line. Only allowed while the bill is draft.
func (b *FeeBill) AddItem(feeType, description string, amount decimal.Decimal) error {
	if b.Status != FeeBillStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to a draft bill")
	}
	if feeType == "" {
		return shared.NewDomainError("INVALID_FEE_TYPE", "Fee type is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Fee amount must be positive")
	}

	b.Items = append(b.Items, FeeItem{
		BaseEntity:  shared.NewBaseEntity(),
		FeeBillID:   b.ID,
		FeeType:     feeType,
		Description: description,
		Amount:      amount,
	})
	b.recalcTotals()
	b.Touch()
	return nil
}

// SetDueDate sets the payment due date; it may not precede the posting date
func (b *FeeBill) SetDueDate(dueDate time.Time) error {
	if b.Status != FeeBillStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Due date can only be set on a draft bill")
	}
	if dueDate.Before(b.PostingDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before posting date")
	}
	b.DueDate = dueDate
	b.Touch()
	return nil
}

// Submit freezes the totals and opens the bill for payment.
// A missing due date defaults to posting date plus the payment term.
func (b *FeeBill) Submit() error {
	if b.Status != FeeBillStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit bill in %s status", b.Status))
	}
	if len(b.Items) == 0 {
		return shared.NewDomainError("EMPTY_BILL", "Fee items are required before submission")
	}
	if b.DueDate.IsZero() {
		b.DueDate = b.PostingDate.AddDate(0, 0, DefaultPaymentTermDays)
	}

	now := time.Now()
	b.recalcTotals()
	b.Status = FeeBillStatusSubmitted
	b.SubmittedAt = &now
	b.RefreshStatus(now)
	b.Touch()
	return nil
}

// ApplyPayment records a payment against the bill and re-derives its status
func (b *FeeBill) ApplyPayment(amount decimal.Decimal) error {
	if !b.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay bill in %s status", b.Status))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(b.Outstanding) {
		return shared.NewDomainError("OVERPAYMENT", "Payment exceeds outstanding amount")
	}

	b.PaidAmount = b.PaidAmount.Add(amount)
	b.recalcTotals()
	b.RefreshStatus(time.Now())
	b.Touch()
	return nil
}

// Cancel voids the bill; its ledger entries must be reversed by the caller
func (b *FeeBill) Cancel() error {
	if b.Status == FeeBillStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "A fully paid bill cannot be cancelled")
	}
	if b.Status == FeeBillStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Bill is already cancelled")
	}
	now := time.Now()
	b.Status = FeeBillStatusCancelled
	b.CancelledAt = &now
	b.Touch()
	return nil
}

// RefreshStatus re-derives the open-bill status from amounts and due date.
// Draft and cancelled bills are untouched.
func (b *FeeBill) RefreshStatus(asOf time.Time) {
	if b.Status == FeeBillStatusDraft || b.Status == FeeBillStatusCancelled {
		return
	}
	switch {
	case b.Outstanding.LessThanOrEqual(decimal.Zero):
		b.Status = FeeBillStatusPaid
	case b.PaidAmount.GreaterThan(decimal.Zero):
		b.Status = FeeBillStatusPartiallyPaid
	case !b.DueDate.IsZero() && b.DueDate.Before(truncateToDay(asOf)):
		b.Status = FeeBillStatusOverdue
	default:
		b.Status = FeeBillStatusSubmitted
	}
}

// IsOverdue returns true when the bill is open past its due date
func (b *FeeBill) IsOverdue(asOf time.Time) bool {
	return b.Status.IsOpen() && !b.DueDate.IsZero() && b.DueDate.Before(truncateToDay(asOf))
}

func (b *FeeBill) recalcTotals() {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Amount)
	}
	b.TotalAmount = total
	b.Outstanding = b.TotalAmount.Sub(b.PaidAmount)
	if b.Outstanding.IsNegative() {
		b.Outstanding = decimal.Zero
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FeeBillFilter defines filtering options for fee bill list queries
type FeeBillFilter struct {
	StudentID    *uuid.UUID
	AcademicYear string
	Status       FeeBillStatus
	OverdueOnly  bool
	Page         int
	PageSize     int
}

// FeeCollectionSummary aggregates billing totals for reporting
type FeeCollectionSummary struct {
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	BillCount        int64           `json:"bill_count"`
	OverdueCount     int64           `json:"overdue_count"`
}

// CollectionRate returns collected/billed as a percentage
func (s FeeCollectionSummary) CollectionRate() decimal.Decimal {
	if s.TotalBilled.IsZero() {
		return decimal.Zero
	}
	return s.TotalCollected.Div(s.TotalBilled).Mul(decimal.NewFromInt(100)).Round(2)
}
