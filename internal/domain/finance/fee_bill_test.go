package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftBill(t *testing.T) *FeeBill {
	bill, err := NewFeeBill("FB-2026-0001", uuid.New(), "2025-2026", time.Now())
	require.NoError(t, err)
	require.NoError(t, bill.AddItem("TUITION", "First trimester tuition", decimal.NewFromInt(3000)))
	require.NoError(t, bill.AddItem("CANTEEN", "Meal plan", decimal.NewFromInt(500)))
	return bill
}

func newSubmittedBill(t *testing.T) *FeeBill {
	bill := newDraftBill(t)
	require.NoError(t, bill.Submit())
	return bill
}

func TestNewFeeBill(t *testing.T) {
	t.Run("creates draft bill", func(t *testing.T) {
		studentID := uuid.New()
		bill, err := NewFeeBill("FB-2026-0001", studentID, "2025-2026", time.Now())
		require.NoError(t, err)

		assert.Equal(t, "FB-2026-0001", bill.BillNumber)
		assert.Equal(t, studentID, bill.StudentID)
		assert.Equal(t, FeeBillStatusDraft, bill.Status)
		assert.True(t, bill.TotalAmount.IsZero())
		assert.True(t, bill.Outstanding.IsZero())
	})

	t.Run("defaults zero posting date to now", func(t *testing.T) {
		bill, err := NewFeeBill("FB-2026-0002", uuid.New(), "2025-2026", time.Time{})
		require.NoError(t, err)
		assert.False(t, bill.PostingDate.IsZero())
	})

	t.Run("fails with empty bill number", func(t *testing.T) {
		_, err := NewFeeBill("", uuid.New(), "2025-2026", time.Now())
		require.Error(t, err)
	})

	t.Run("fails with nil student", func(t *testing.T) {
		_, err := NewFeeBill("FB-2026-0003", uuid.Nil, "2025-2026", time.Now())
		require.Error(t, err)
	})

	t.Run("fails with empty academic year", func(t *testing.T) {
		_, err := NewFeeBill("FB-2026-0004", uuid.New(), "", time.Now())
		require.Error(t, err)
	})
}

func TestFeeBill_AddItem(t *testing.T) {
	t.Run("accumulates totals", func(t *testing.T) {
		bill := newDraftBill(t)
		assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(3500)))
		assert.True(t, bill.Outstanding.Equal(decimal.NewFromInt(3500)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		bill := newDraftBill(t)
		err := bill.AddItem("TRANSPORT", "", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects items after submission", func(t *testing.T) {
		bill := newSubmittedBill(t)
		err := bill.AddItem("TRANSPORT", "", decimal.NewFromInt(100))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "draft bill")
	})
}

func TestFeeBill_Submit(t *testing.T) {
	t.Run("opens the bill for payment", func(t *testing.T) {
		bill := newDraftBill(t)
		require.NoError(t, bill.Submit())

		assert.Equal(t, FeeBillStatusSubmitted, bill.Status)
		require.NotNil(t, bill.SubmittedAt)
	})

	t.Run("defaults due date to posting plus payment term", func(t *testing.T) {
		bill := newDraftBill(t)
		require.NoError(t, bill.Submit())

		expected := bill.PostingDate.AddDate(0, 0, DefaultPaymentTermDays)
		assert.Equal(t, expected, bill.DueDate)
	})

	t.Run("keeps explicit due date", func(t *testing.T) {
		bill := newDraftBill(t)
		due := bill.PostingDate.AddDate(0, 2, 0)
		require.NoError(t, bill.SetDueDate(due))
		require.NoError(t, bill.Submit())
		assert.Equal(t, due, bill.DueDate)
	})

	t.Run("fails without items", func(t *testing.T) {
		bill, err := NewFeeBill("FB-2026-0005", uuid.New(), "2025-2026", time.Now())
		require.NoError(t, err)

		err = bill.Submit()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fee items are required")
	})

	t.Run("fails when already submitted", func(t *testing.T) {
		bill := newSubmittedBill(t)
		require.Error(t, bill.Submit())
	})
}

func TestFeeBill_SetDueDate(t *testing.T) {
	t.Run("rejects due date before posting date", func(t *testing.T) {
		bill := newDraftBill(t)
		err := bill.SetDueDate(bill.PostingDate.AddDate(0, 0, -1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "before posting date")
	})
}

func TestFeeBill_ApplyPayment(t *testing.T) {
	t.Run("partial payment leaves bill partially paid", func(t *testing.T) {
		bill := newSubmittedBill(t)

		require.NoError(t, bill.ApplyPayment(decimal.NewFromInt(1000)))
		assert.Equal(t, FeeBillStatusPartiallyPaid, bill.Status)
		assert.True(t, bill.Outstanding.Equal(decimal.NewFromInt(2500)))
	})

	t.Run("full payment settles the bill", func(t *testing.T) {
		bill := newSubmittedBill(t)

		require.NoError(t, bill.ApplyPayment(decimal.NewFromInt(3500)))
		assert.Equal(t, FeeBillStatusPaid, bill.Status)
		assert.True(t, bill.Outstanding.IsZero())
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		bill := newSubmittedBill(t)

		err := bill.ApplyPayment(decimal.NewFromInt(4000))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds outstanding")
	})

	t.Run("rejects payment on draft bill", func(t *testing.T) {
		bill := newDraftBill(t)
		require.Error(t, bill.ApplyPayment(decimal.NewFromInt(100)))
	})

	t.Run("rejects payment on paid bill", func(t *testing.T) {
		bill := newSubmittedBill(t)
		require.NoError(t, bill.ApplyPayment(decimal.NewFromInt(3500)))
		require.Error(t, bill.ApplyPayment(decimal.NewFromInt(1)))
	})
}

func TestFeeBill_Cancel(t *testing.T) {
	t.Run("cancels an open bill", func(t *testing.T) {
		bill := newSubmittedBill(t)
		require.NoError(t, bill.Cancel())
		assert.Equal(t, FeeBillStatusCancelled, bill.Status)
		require.NotNil(t, bill.CancelledAt)
	})

	t.Run("cannot cancel a fully paid bill", func(t *testing.T) {
		bill := newSubmittedBill(t)
		require.NoError(t, bill.ApplyPayment(decimal.NewFromInt(3500)))

		err := bill.Cancel()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fully paid")
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		bill := newSubmittedBill(t)
		require.NoError(t, bill.Cancel())
		require.Error(t, bill.Cancel())
	})
}

func TestFeeBill_Overdue(t *testing.T) {
	t.Run("open bill past due date becomes overdue", func(t *testing.T) {
		bill := newSubmittedBill(t)

		asOf := bill.DueDate.AddDate(0, 0, 2)
		assert.True(t, bill.IsOverdue(asOf))

		bill.RefreshStatus(asOf)
		assert.Equal(t, FeeBillStatusOverdue, bill.Status)
	})

	t.Run("paid bill is never overdue", func(t *testing.T) {
		bill := newSubmittedBill(t)
		require.NoError(t, bill.ApplyPayment(decimal.NewFromInt(3500)))

		assert.False(t, bill.IsOverdue(bill.DueDate.AddDate(0, 0, 2)))
	})

	t.Run("bill due today is not overdue", func(t *testing.T) {
		bill := newSubmittedBill(t)
		assert.False(t, bill.IsOverdue(bill.DueDate))
	})
}

func TestFeeCollectionSummary_CollectionRate(t *testing.T) {
	t.Run("returns zero when nothing billed", func(t *testing.T) {
		s := FeeCollectionSummary{}
		assert.True(t, s.CollectionRate().IsZero())
	})

	t.Run("computes percentage", func(t *testing.T) {
		s := FeeCollectionSummary{
			TotalBilled:    decimal.NewFromInt(2000),
			TotalCollected: decimal.NewFromInt(500),
		}
		assert.True(t, s.CollectionRate().Equal(decimal.NewFromInt(25)))
	})
}
