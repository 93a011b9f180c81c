package finance

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheque, PaymentMethodBankTransfer,
		PaymentMethodCard, PaymentMethodOnline:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentEntryStatus represents the lifecycle of a payment entry
type PaymentEntryStatus string

const (
	PaymentEntryStatusDraft     PaymentEntryStatus = "DRAFT"
	PaymentEntryStatusSubmitted PaymentEntryStatus = "SUBMITTED"
	PaymentEntryStatusCancelled PaymentEntryStatus = "CANCELLED"
)

// String returns the string representation of PaymentEntryStatus
func (s PaymentEntryStatus) String() string {
	return string(s)
}

// PaymentEntry records one payment received against a fee bill
type PaymentEntry struct {
	shared.BaseAggregateRoot
	PaymentNumber string             `json:"payment_number"`
	FeeBillID     uuid.UUID          `json:"fee_bill_id"`
	StudentID     uuid.UUID          `json:"student_id"`
	Amount        decimal.Decimal    `json:"amount"`
	Method        PaymentMethod      `json:"method"`
	Reference     string             `json:"reference"`
	PaymentDate   time.Time          `json:"payment_date"`
	Status        PaymentEntryStatus `json:"status"`
	ReceivedBy    uuid.UUID          `json:"received_by"`
	SubmittedAt   *time.Time         `json:"submitted_at"`
	CancelledAt   *time.Time         `json:"cancelled_at"`
}

// NewPaymentEntry creates a draft payment for a fee bill
func NewPaymentEntry(paymentNumber string, bill *FeeBill, amount decimal.Decimal, method PaymentMethod, receivedBy uuid.UUID) (*PaymentEntry, error) {
	if paymentNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot be empty")
	}
	if bill == nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Fee bill is required")
	}
	if !bill.Status.IsOpen() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment against a %s bill", bill.Status))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(bill.Outstanding) {
		return nil, shared.NewDomainError("OVERPAYMENT", "Payment exceeds the bill's outstanding amount")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if receivedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Receiving user is required")
	}

	return &PaymentEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentNumber:     paymentNumber,
		FeeBillID:         bill.ID,
		StudentID:         bill.StudentID,
		Amount:            amount,
		Method:            method,
		PaymentDate:       time.Now(),
		Status:            PaymentEntryStatusDraft,
		ReceivedBy:        receivedBy,
	}, nil
}

// SetReference attaches an external reference (cheque number, transfer ID)
func (p *PaymentEntry) SetReference(reference string) {
	p.Reference = reference
	p.Touch()
}

// Submit finalizes the payment; the caller applies it to the bill and ledger
func (p *PaymentEntry) Submit() error {
	if p.Status != PaymentEntryStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit payment in %s status", p.Status))
	}
	now := time.Now()
	p.Status = PaymentEntryStatusSubmitted
	p.SubmittedAt = &now
	p.Touch()
	return nil
}

// Cancel voids a draft payment. Submitted payments are immutable; issue a
// correcting entry instead.
func (p *PaymentEntry) Cancel() error {
	if p.Status != PaymentEntryStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft payments can be cancelled")
	}
	now := time.Now()
	p.Status = PaymentEntryStatusCancelled
	p.CancelledAt = &now
	p.Touch()
	return nil
}

// PaymentEntryFilter defines filtering options for payment list queries
type PaymentEntryFilter struct {
	StudentID *uuid.UUID
	FeeBillID *uuid.UUID
	Method    PaymentMethod
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
	PageSize  int
}
