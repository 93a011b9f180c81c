package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentEntry(t *testing.T) {
	t.Run("creates draft payment against open bill", func(t *testing.T) {
		bill := newSubmittedBill(t)
		receivedBy := uuid.New()

		payment, err := NewPaymentEntry("PE-2026-0001", bill, decimal.NewFromInt(1000), PaymentMethodCash, receivedBy)
		require.NoError(t, err)

		assert.Equal(t, "PE-2026-0001", payment.PaymentNumber)
		assert.Equal(t, bill.ID, payment.FeeBillID)
		assert.Equal(t, bill.StudentID, payment.StudentID)
		assert.Equal(t, PaymentEntryStatusDraft, payment.Status)
		assert.Equal(t, receivedBy, payment.ReceivedBy)
	})

	t.Run("rejects payment against draft bill", func(t *testing.T) {
		bill := newDraftBill(t)
		_, err := NewPaymentEntry("PE-2026-0002", bill, decimal.NewFromInt(100), PaymentMethodCash, uuid.New())
		require.Error(t, err)
	})

	t.Run("rejects amount over outstanding", func(t *testing.T) {
		bill := newSubmittedBill(t)
		_, err := NewPaymentEntry("PE-2026-0003", bill, decimal.NewFromInt(99999), PaymentMethodCash, uuid.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outstanding")
	})

	t.Run("rejects invalid method", func(t *testing.T) {
		bill := newSubmittedBill(t)
		_, err := NewPaymentEntry("PE-2026-0004", bill, decimal.NewFromInt(100), PaymentMethod("BARTER"), uuid.New())
		require.Error(t, err)
	})

	t.Run("rejects missing receiving user", func(t *testing.T) {
		bill := newSubmittedBill(t)
		_, err := NewPaymentEntry("PE-2026-0005", bill, decimal.NewFromInt(100), PaymentMethodCash, uuid.Nil)
		require.Error(t, err)
	})
}

func TestPaymentEntry_Lifecycle(t *testing.T) {
	newDraftPayment := func(t *testing.T) *PaymentEntry {
		bill := newSubmittedBill(t)
		payment, err := NewPaymentEntry("PE-2026-0010", bill, decimal.NewFromInt(500), PaymentMethodBankTransfer, uuid.New())
		require.NoError(t, err)
		return payment
	}

	t.Run("submit finalizes the payment", func(t *testing.T) {
		payment := newDraftPayment(t)
		require.NoError(t, payment.Submit())

		assert.Equal(t, PaymentEntryStatusSubmitted, payment.Status)
		require.NotNil(t, payment.SubmittedAt)
	})

	t.Run("submitted payment cannot be submitted again", func(t *testing.T) {
		payment := newDraftPayment(t)
		require.NoError(t, payment.Submit())
		require.Error(t, payment.Submit())
	})

	t.Run("draft payment can be cancelled", func(t *testing.T) {
		payment := newDraftPayment(t)
		require.NoError(t, payment.Cancel())
		assert.Equal(t, PaymentEntryStatusCancelled, payment.Status)
	})

	t.Run("submitted payment cannot be cancelled", func(t *testing.T) {
		payment := newDraftPayment(t)
		require.NoError(t, payment.Submit())
		require.Error(t, payment.Cancel())
	})
}

func TestNewLedgerEntry(t *testing.T) {
	refID := uuid.New()

	t.Run("creates debit entry", func(t *testing.T) {
		entry, err := NewLedgerEntry(AccountStudentFeesReceivable, LedgerRefFeeBill, refID, decimal.NewFromInt(3500), decimal.Zero, "Fee bill FB-2026-0001")
		require.NoError(t, err)

		assert.Equal(t, AccountStudentFeesReceivable, entry.Account)
		assert.True(t, entry.Debit.Equal(decimal.NewFromInt(3500)))
		assert.True(t, entry.Credit.IsZero())
		assert.False(t, entry.IsReversal)
	})

	t.Run("rejects both sides set", func(t *testing.T) {
		_, err := NewLedgerEntry(AccountFeeIncome, LedgerRefFeeBill, refID, decimal.NewFromInt(10), decimal.NewFromInt(10), "")
		require.Error(t, err)
	})

	t.Run("rejects both sides zero", func(t *testing.T) {
		_, err := NewLedgerEntry(AccountFeeIncome, LedgerRefFeeBill, refID, decimal.Zero, decimal.Zero, "")
		require.Error(t, err)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewLedgerEntry(AccountFeeIncome, LedgerRefFeeBill, refID, decimal.NewFromInt(-5), decimal.Zero, "")
		require.Error(t, err)
	})

	t.Run("rejects empty account", func(t *testing.T) {
		_, err := NewLedgerEntry("", LedgerRefFeeBill, refID, decimal.NewFromInt(10), decimal.Zero, "")
		require.Error(t, err)
	})

	t.Run("rejects nil reference", func(t *testing.T) {
		_, err := NewLedgerEntry(AccountFeeIncome, LedgerRefFeeBill, uuid.Nil, decimal.NewFromInt(10), decimal.Zero, "")
		require.Error(t, err)
	})
}

func TestLedgerEntry_Reversal(t *testing.T) {
	t.Run("swaps debit and credit", func(t *testing.T) {
		studentID := uuid.New()
		entry, err := NewLedgerEntry(AccountCashAndBank, LedgerRefPaymentEntry, uuid.New(), decimal.NewFromInt(500), decimal.Zero, "Payment PE-2026-0001")
		require.NoError(t, err)
		entry.ForStudent(studentID)

		rev := entry.Reversal("Reversal of PE-2026-0001")
		assert.True(t, rev.Debit.IsZero())
		assert.True(t, rev.Credit.Equal(decimal.NewFromInt(500)))
		assert.True(t, rev.IsReversal)
		assert.Equal(t, entry.Account, rev.Account)
		assert.Equal(t, entry.ReferenceID, rev.ReferenceID)
		require.NotNil(t, rev.StudentID)
		assert.Equal(t, studentID, *rev.StudentID)
		assert.NotEqual(t, entry.ID, rev.ID)
	})
}

func TestAccountBalance_Net(t *testing.T) {
	b := AccountBalance{
		Account: AccountCashAndBank,
		Debit:   decimal.NewFromInt(800),
		Credit:  decimal.NewFromInt(300),
	}
	assert.True(t, b.Net().Equal(decimal.NewFromInt(500)))
}

func TestLedgerEntry_PostingDateIsSet(t *testing.T) {
	entry, err := NewLedgerEntry(AccountSalaryExpense, LedgerRefSalarySlip, uuid.New(), decimal.NewFromInt(9000), decimal.Zero, "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), entry.PostingDate, time.Minute)
}
