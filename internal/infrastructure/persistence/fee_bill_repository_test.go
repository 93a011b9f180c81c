package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBill(t *testing.T, repo *GormFeeBillRepository, billNumber string, submit bool) *finance.FeeBill {
	t.Helper()
	bill, err := finance.NewFeeBill(billNumber, uuid.New(), "2025-2026", time.Now())
	require.NoError(t, err)
	require.NoError(t, bill.AddItem("TUITION", "Tuition term 1", decimal.NewFromInt(3000)))
	require.NoError(t, bill.AddItem("CANTEEN", "Canteen term 1", decimal.NewFromInt(500)))
	if submit {
		require.NoError(t, bill.Submit())
	}
	require.NoError(t, repo.Create(context.Background(), bill))
	return bill
}

func TestGormFeeBillRepository_CreateAndFind(t *testing.T) {
	repo := NewGormFeeBillRepository(newTestDB(t))
	ctx := context.Background()

	bill := seedBill(t, repo, "FB-2026-00001", true)

	t.Run("round trips items and totals", func(t *testing.T) {
		found, err := repo.FindByID(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, "FB-2026-00001", found.BillNumber)
		require.Len(t, found.Items, 2)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(3500)))
		assert.True(t, found.Outstanding.Equal(decimal.NewFromInt(3500)))
		assert.Equal(t, finance.FeeBillStatusSubmitted, found.Status)
	})

	t.Run("find by bill number", func(t *testing.T) {
		found, err := repo.FindByBillNumber(ctx, "FB-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, bill.ID, found.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormFeeBillRepository_Update(t *testing.T) {
	repo := NewGormFeeBillRepository(newTestDB(t))
	ctx := context.Background()

	bill := seedBill(t, repo, "FB-2026-00001", true)

	require.NoError(t, bill.ApplyPayment(decimal.NewFromInt(1500)))
	require.NoError(t, repo.Update(ctx, bill))

	found, err := repo.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.FeeBillStatusPartiallyPaid, found.Status)
	assert.True(t, found.PaidAmount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, found.Outstanding.Equal(decimal.NewFromInt(2000)))
	require.Len(t, found.Items, 2)

	t.Run("stale version conflicts", func(t *testing.T) {
		stale := *bill
		stale.Version = bill.Version - 1
		err := repo.Update(ctx, &stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormFeeBillRepository_FindOverdue(t *testing.T) {
	repo := NewGormFeeBillRepository(newTestDB(t))
	ctx := context.Background()

	bill := seedBill(t, repo, "FB-2026-00001", true)
	seedBill(t, repo, "FB-2026-00002", false) // draft, never overdue

	overdue, err := repo.FindOverdue(ctx, bill.DueDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, bill.ID, overdue[0].ID)

	none, err := repo.FindOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormFeeBillRepository_NextBillNumber(t *testing.T) {
	repo := NewGormFeeBillRepository(newTestDB(t))
	ctx := context.Background()

	number, err := repo.NextBillNumber(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "FB-2026-00001", number)

	seedBill(t, repo, number, false)

	number, err = repo.NextBillNumber(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "FB-2026-00002", number)

	t.Run("continues from the highest sequence after gaps", func(t *testing.T) {
		seedBill(t, repo, "FB-2026-00005", false)

		number, err := repo.NextBillNumber(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "FB-2026-00006", number)
	})

	t.Run("years number independently", func(t *testing.T) {
		number, err := repo.NextBillNumber(ctx, 2027)
		require.NoError(t, err)
		assert.Equal(t, "FB-2027-00001", number)
	})
}

func TestGormFeeBillRepository_Summarize(t *testing.T) {
	repo := NewGormFeeBillRepository(newTestDB(t))
	ctx := context.Background()

	paid := seedBill(t, repo, "FB-2026-00001", true)
	require.NoError(t, paid.ApplyPayment(decimal.NewFromInt(3500)))
	require.NoError(t, repo.Update(ctx, paid))

	seedBill(t, repo, "FB-2026-00002", true)
	seedBill(t, repo, "FB-2026-00003", false) // drafts are excluded

	summary, err := repo.Summarize(ctx, "2025-2026")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.BillCount)
	assert.True(t, summary.TotalBilled.Equal(decimal.NewFromInt(7000)))
	assert.True(t, summary.TotalCollected.Equal(decimal.NewFromInt(3500)))
	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(3500)))
	assert.Zero(t, summary.OverdueCount)
}
