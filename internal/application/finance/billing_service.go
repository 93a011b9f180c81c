package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingService handles fee billing, payment collection and the ledger
// postings both produce.
type BillingService struct {
	billRepo    finance.FeeBillRepository
	paymentRepo finance.PaymentEntryRepository
	ledgerRepo  finance.LedgerRepository
	studentRepo schooling.StudentRepository
	notifier    *notify.Notifier
	logger      *zap.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo finance.FeeBillRepository,
	paymentRepo finance.PaymentEntryRepository,
	ledgerRepo finance.LedgerRepository,
	studentRepo schooling.StudentRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		ledgerRepo:  ledgerRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// FeeItemRequest is one charged line in a bill request
type FeeItemRequest struct {
	FeeType     string          `json:"fee_type" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateFeeBillRequest carries a new draft fee bill
type CreateFeeBillRequest struct {
	StudentID    uuid.UUID        `json:"student_id" binding:"required"`
	AcademicYear string           `json:"academic_year" binding:"required"`
	PostingDate  time.Time        `json:"posting_date"`
	DueDate      time.Time        `json:"due_date"`
	Items        []FeeItemRequest `json:"items" binding:"required,min=1"`
	Remark       string           `json:"remark"`
}

// CreateFeeBill drafts a numbered fee bill for an enrolled student
func (s *BillingService) CreateFeeBill(ctx context.Context, req CreateFeeBillRequest) (*finance.FeeBill, error) {
	student, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	postingDate := req.PostingDate
	if postingDate.IsZero() {
		postingDate = time.Now()
	}
	billNumber, err := s.billRepo.NextBillNumber(ctx, postingDate.Year())
	if err != nil {
		return nil, err
	}

	bill, err := finance.NewFeeBill(billNumber, student.ID, req.AcademicYear, postingDate)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if err := bill.AddItem(item.FeeType, item.Description, item.Amount); err != nil {
			return nil, err
		}
	}
	if !req.DueDate.IsZero() {
		if err := bill.SetDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}
	bill.Remark = req.Remark

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	s.logger.Info("fee bill drafted",
		zap.String("bill_number", bill.BillNumber),
		zap.String("massar_code", student.MassarCode),
		zap.String("total", bill.TotalAmount.String()),
	)
	return bill, nil
}

// SubmitFeeBill opens the bill for payment, posts the receivable to the
// ledger and emails the guardian.
func (s *BillingService) SubmitFeeBill(ctx context.Context, id uuid.UUID) (*finance.FeeBill, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bill.Submit(); err != nil {
		return nil, err
	}
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Fee bill %s", bill.BillNumber)
	if err := s.postPair(ctx,
		finance.AccountStudentFeesReceivable, finance.AccountFeeIncome,
		bill.TotalAmount, finance.LedgerRefFeeBill, bill.ID, bill.StudentID, description,
	); err != nil {
		return nil, err
	}

	s.logger.Info("fee bill submitted",
		zap.String("bill_number", bill.BillNumber),
		zap.Time("due_date", bill.DueDate),
	)
	s.notifyBill(ctx, bill)
	return bill, nil
}

// CancelFeeBill voids the bill and reverses its ledger entries
func (s *BillingService) CancelFeeBill(ctx context.Context, id uuid.UUID) (*finance.FeeBill, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasOpen := bill.Status.IsOpen()
	if err := bill.Cancel(); err != nil {
		return nil, err
	}
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	if wasOpen {
		entries, err := s.ledgerRepo.FindByReference(ctx, finance.LedgerRefFeeBill, bill.ID)
		if err != nil {
			return nil, err
		}
		description := fmt.Sprintf("Cancellation of fee bill %s", bill.BillNumber)
		for _, entry := range entries {
			if entry.IsReversal {
				continue
			}
			if err := s.ledgerRepo.Append(ctx, entry.Reversal(description)); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("fee bill cancelled", zap.String("bill_number", bill.BillNumber))
	return bill, nil
}

// RecordPaymentRequest carries one payment against a fee bill
type RecordPaymentRequest struct {
	FeeBillID uuid.UUID       `json:"fee_bill_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
}

// RecordPayment collects a payment: the entry is created and submitted, the
// bill's balance updated, the cash movement posted and a receipt emailed.
func (s *BillingService) RecordPayment(ctx context.Context, receivedBy uuid.UUID, req RecordPaymentRequest) (*finance.PaymentEntry, error) {
	bill, err := s.billRepo.FindByID(ctx, req.FeeBillID)
	if err != nil {
		return nil, err
	}

	paymentNumber, err := s.paymentRepo.NextPaymentNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}
	payment, err := finance.NewPaymentEntry(paymentNumber, bill, req.Amount, finance.PaymentMethod(req.Method), receivedBy)
	if err != nil {
		return nil, err
	}
	if req.Reference != "" {
		payment.SetReference(req.Reference)
	}
	if err := payment.Submit(); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := bill.ApplyPayment(payment.Amount); err != nil {
		return nil, err
	}
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Payment %s against bill %s", payment.PaymentNumber, bill.BillNumber)
	if err := s.postPair(ctx,
		finance.AccountCashAndBank, finance.AccountStudentFeesReceivable,
		payment.Amount, finance.LedgerRefPaymentEntry, payment.ID, bill.StudentID, description,
	); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("bill_number", bill.BillNumber),
		zap.String("amount", payment.Amount.String()),
		zap.String("bill_status", bill.Status.String()),
	)
	s.notifyReceipt(ctx, bill, payment)
	return payment, nil
}

// GetFeeBill fetches one fee bill by ID
func (s *BillingService) GetFeeBill(ctx context.Context, id uuid.UUID) (*finance.FeeBill, error) {
	return s.billRepo.FindByID(ctx, id)
}

// ListFeeBills returns fee bills matching the filter
func (s *BillingService) ListFeeBills(ctx context.Context, filter finance.FeeBillFilter) ([]*finance.FeeBill, int64, error) {
	return s.billRepo.FindAll(ctx, filter)
}

// ListPayments returns payment entries matching the filter
func (s *BillingService) ListPayments(ctx context.Context, filter finance.PaymentEntryFilter) ([]*finance.PaymentEntry, int64, error) {
	return s.paymentRepo.FindAll(ctx, filter)
}

// ListLedger returns ledger entries matching the filter
func (s *BillingService) ListLedger(ctx context.Context, filter finance.LedgerFilter) ([]*finance.LedgerEntry, int64, error) {
	return s.ledgerRepo.FindAll(ctx, filter)
}

// CollectionSummary aggregates billing totals for an academic year
func (s *BillingService) CollectionSummary(ctx context.Context, academicYear string) (finance.FeeCollectionSummary, error) {
	return s.billRepo.Summarize(ctx, academicYear)
}

// TrialBalance returns per-account debit/credit totals over a period
func (s *BillingService) TrialBalance(ctx context.Context, from, to time.Time) ([]finance.AccountBalance, error) {
	return s.ledgerRepo.BalanceByAccount(ctx, from, to)
}

// RefreshOverdueBills re-derives the status of open bills past their due
// date, returning how many were flipped to overdue.
func (s *BillingService) RefreshOverdueBills(ctx context.Context, asOf time.Time) (int, error) {
	bills, err := s.billRepo.FindOverdue(ctx, asOf)
	if err != nil {
		return 0, err
	}
	flipped := 0
	for _, bill := range bills {
		if bill.Status == finance.FeeBillStatusOverdue {
			continue
		}
		bill.RefreshStatus(asOf)
		if bill.Status != finance.FeeBillStatusOverdue {
			continue
		}
		if err := s.billRepo.Update(ctx, bill); err != nil {
			return flipped, err
		}
		flipped++
	}
	return flipped, nil
}

// postPair appends a balanced debit/credit pair for one amount
func (s *BillingService) postPair(ctx context.Context, debitAccount, creditAccount string, amount decimal.Decimal, refType finance.LedgerReferenceType, refID, studentID uuid.UUID, description string) error {
	debit, err := finance.NewLedgerEntry(debitAccount, refType, refID, amount, decimal.Zero, description)
	if err != nil {
		return err
	}
	credit, err := finance.NewLedgerEntry(creditAccount, refType, refID, decimal.Zero, amount, description)
	if err != nil {
		return err
	}
	if err := s.ledgerRepo.Append(ctx, debit.ForStudent(studentID)); err != nil {
		return err
	}
	return s.ledgerRepo.Append(ctx, credit.ForStudent(studentID))
}

func (s *BillingService) notifyBill(ctx context.Context, bill *finance.FeeBill) {
	student, err := s.studentRepo.FindByID(ctx, bill.StudentID)
	if err != nil {
		s.logger.Error("looking up billed student", zap.Error(err))
		return
	}
	if !student.Guardian.HasEmail() {
		return
	}
	subject := fmt.Sprintf("Fee bill %s for %s", bill.BillNumber, student.FullName())
	body := fmt.Sprintf(
		"Dear %s,\n\nA fee bill of %s MAD has been issued for %s (%s academic year). Payment is due by %s.",
		student.Guardian.Name, bill.TotalAmount.StringFixed(2), student.FullName(),
		bill.AcademicYear, bill.DueDate.Format("2006-01-02"),
	)
	s.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "FEE_BILL", &bill.ID)
}

func (s *BillingService) notifyReceipt(ctx context.Context, bill *finance.FeeBill, payment *finance.PaymentEntry) {
	student, err := s.studentRepo.FindByID(ctx, bill.StudentID)
	if err != nil {
		s.logger.Error("looking up paying student", zap.Error(err))
		return
	}
	if !student.Guardian.HasEmail() {
		return
	}
	subject := fmt.Sprintf("Payment receipt %s", payment.PaymentNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nWe received %s MAD against bill %s. Remaining balance: %s MAD.",
		student.Guardian.Name, payment.Amount.StringFixed(2), bill.BillNumber, bill.Outstanding.StringFixed(2),
	)
	s.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "PAYMENT_ENTRY", &payment.ID)
}
