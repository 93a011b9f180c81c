package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBudget(t *testing.T) {
	t.Run("creates draft budget with valid inputs", func(t *testing.T) {
		budget, err := NewBudget("2026", "Operating budget")
		require.NoError(t, err)
		require.NotNil(t, budget)

		assert.Equal(t, "2026", budget.FiscalYear)
		assert.Equal(t, "Operating budget", budget.Title)
		assert.Equal(t, BudgetStatusDraft, budget.Status)
		assert.True(t, budget.TotalAmount.IsZero())
		assert.True(t, budget.TotalConsumed.IsZero())
		assert.True(t, budget.WarnThresholdPercent.Equal(decimal.NewFromInt(80)))
		assert.NotEmpty(t, budget.ID)
		assert.Equal(t, 1, budget.GetVersion())
	})

	t.Run("fails with empty fiscal year", func(t *testing.T) {
		_, err := NewBudget("", "Operating budget")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fiscal year is required")
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewBudget("2026", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title is required")
	})
}

func TestBudget_AddLine(t *testing.T) {
	t.Run("adds line and recalculates totals", func(t *testing.T) {
		budget, err := NewBudget("2026", "Operating budget")
		require.NoError(t, err)

		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(10000)))
		require.NoError(t, budget.AddLine("TRANSPORT", decimal.NewFromInt(5000)))

		assert.Len(t, budget.Lines, 2)
		assert.True(t, budget.TotalAmount.Equal(decimal.NewFromInt(15000)))
		assert.Equal(t, budget.ID, budget.Lines[0].BudgetID)
	})

	t.Run("rejects duplicate cost center", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(10000)))

		err := budget.AddLine("CANTEEN", decimal.NewFromInt(2000))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has an allocation")
	})

	t.Run("rejects non-positive allocation", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		err := budget.AddLine("CANTEEN", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("rejects empty cost center", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		err := budget.AddLine("", decimal.NewFromInt(100))
		require.Error(t, err)
	})

	t.Run("rejects lines after activation", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(10000)))
		require.NoError(t, budget.Activate())

		err := budget.AddLine("TRANSPORT", decimal.NewFromInt(5000))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "draft budget")
	})
}

func TestBudget_Activate(t *testing.T) {
	t.Run("activates draft budget with lines", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(10000)))

		require.NoError(t, budget.Activate())
		assert.Equal(t, BudgetStatusActive, budget.Status)
	})

	t.Run("fails without lines", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		err := budget.Activate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one line")
	})

	t.Run("fails when already active", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(10000)))
		require.NoError(t, budget.Activate())

		err := budget.Activate()
		require.Error(t, err)
	})
}

func TestBudget_Close(t *testing.T) {
	t.Run("closes active budget", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(10000)))
		require.NoError(t, budget.Activate())

		require.NoError(t, budget.Close())
		assert.Equal(t, BudgetStatusClosed, budget.Status)
	})

	t.Run("cannot close draft budget", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		err := budget.Close()
		require.Error(t, err)
	})
}

func TestBudget_RecordExpense(t *testing.T) {
	newActiveBudget := func(t *testing.T) *Budget {
		budget, err := NewBudget("2026", "Operating budget")
		require.NoError(t, err)
		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(1000)))
		require.NoError(t, budget.Activate())
		return budget
	}

	t.Run("consumes from the matching line", func(t *testing.T) {
		budget := newActiveBudget(t)

		warned, err := budget.RecordExpense("CANTEEN", decimal.NewFromInt(300))
		require.NoError(t, err)
		assert.False(t, warned)
		assert.True(t, budget.TotalConsumed.Equal(decimal.NewFromInt(300)))
		assert.True(t, budget.Lines[0].Remaining().Equal(decimal.NewFromInt(700)))
	})

	t.Run("warns once when crossing the threshold", func(t *testing.T) {
		budget := newActiveBudget(t)

		warned, err := budget.RecordExpense("CANTEEN", decimal.NewFromInt(850))
		require.NoError(t, err)
		assert.True(t, warned)

		// Already past the threshold, no second warning
		warned, err = budget.RecordExpense("CANTEEN", decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.False(t, warned)
	})

	t.Run("rejects expense over remaining allocation", func(t *testing.T) {
		budget := newActiveBudget(t)

		_, err := budget.RecordExpense("CANTEEN", decimal.NewFromInt(1500))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds remaining allocation")
	})

	t.Run("rejects unknown cost center", func(t *testing.T) {
		budget := newActiveBudget(t)

		_, err := budget.RecordExpense("LIBRARY", decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No allocation")
	})

	t.Run("rejects expense on closed budget", func(t *testing.T) {
		budget := newActiveBudget(t)
		require.NoError(t, budget.Close())

		_, err := budget.RecordExpense("CANTEEN", decimal.NewFromInt(10))
		require.Error(t, err)
	})
}

func TestBudget_UtilizationPercent(t *testing.T) {
	t.Run("returns zero for empty budget", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		assert.True(t, budget.UtilizationPercent().IsZero())
	})

	t.Run("computes overall utilization", func(t *testing.T) {
		budget, _ := NewBudget("2026", "Operating budget")
		require.NoError(t, budget.AddLine("CANTEEN", decimal.NewFromInt(1000)))
		require.NoError(t, budget.AddLine("TRANSPORT", decimal.NewFromInt(1000)))
		require.NoError(t, budget.Activate())

		_, err := budget.RecordExpense("CANTEEN", decimal.NewFromInt(500))
		require.NoError(t, err)

		assert.True(t, budget.UtilizationPercent().Equal(decimal.NewFromInt(25)))
	})
}
