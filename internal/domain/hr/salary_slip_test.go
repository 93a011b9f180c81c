package hr

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalarySlip(t *testing.T) {
	t.Run("computes totals from the salary structure", func(t *testing.T) {
		emp := newTestEmployee(t)
		require.NoError(t, emp.AddComponent("Housing Allowance", ComponentKindEarning, decimal.NewFromInt(1000), decimal.Zero))
		require.NoError(t, emp.AddComponent("Transport Allowance", ComponentKindEarning, decimal.Zero, decimal.NewFromInt(5)))
		require.NoError(t, emp.AddComponent("Social Security", ComponentKindDeduction, decimal.Zero, decimal.NewFromInt(10)))

		slip, err := NewSalarySlip(emp, "2026-08")
		require.NoError(t, err)

		// basic 8000 + 1000 fixed + 400 (5%) = 9400 gross, 800 (10%) deducted
		assert.True(t, slip.GrossSalary.Equal(decimal.NewFromInt(9400)), "gross = %s", slip.GrossSalary)
		assert.True(t, slip.TotalDeductions.Equal(decimal.NewFromInt(800)))
		assert.True(t, slip.NetSalary.Equal(decimal.NewFromInt(8600)))
		assert.True(t, slip.TotalEarnings().Equal(decimal.NewFromInt(1400)))
		assert.Equal(t, SalarySlipStatusDraft, slip.Status)
		assert.Equal(t, emp.ID, slip.EmployeeID)
		assert.Len(t, slip.Components, 3)
	})

	t.Run("slip without components equals basic", func(t *testing.T) {
		emp := newTestEmployee(t)
		slip, err := NewSalarySlip(emp, "2026-08")
		require.NoError(t, err)

		assert.True(t, slip.GrossSalary.Equal(emp.BasicSalary))
		assert.True(t, slip.NetSalary.Equal(emp.BasicSalary))
	})

	t.Run("rejects inactive employee", func(t *testing.T) {
		emp := newTestEmployee(t)
		require.NoError(t, emp.Relieve(emp.JoiningDate.AddDate(1, 0, 0)))

		_, err := NewSalarySlip(emp, "2026-08")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inactive employee")
	})

	t.Run("rejects bad pay period format", func(t *testing.T) {
		emp := newTestEmployee(t)
		for _, period := range []string{"2026-13", "2026-1", "08-2026", "202608", ""} {
			_, err := NewSalarySlip(emp, period)
			require.Error(t, err, "period %q", period)
		}
	})

	t.Run("rejects deductions exceeding gross", func(t *testing.T) {
		emp := newTestEmployee(t)
		require.NoError(t, emp.AddComponent("Garnishment", ComponentKindDeduction, decimal.NewFromInt(20000), decimal.Zero))

		_, err := NewSalarySlip(emp, "2026-08")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Deductions exceed gross")
	})

	t.Run("nil employee", func(t *testing.T) {
		_, err := NewSalarySlip(nil, "2026-08")
		require.Error(t, err)
	})
}

func TestSalarySlip_SetAttendance(t *testing.T) {
	newDraftSlip := func(t *testing.T) *SalarySlip {
		slip, err := NewSalarySlip(newTestEmployee(t), "2026-08")
		require.NoError(t, err)
		return slip
	}

	t.Run("records day counts", func(t *testing.T) {
		slip := newDraftSlip(t)
		require.NoError(t, slip.SetAttendance(22, 20, 1, 1))

		assert.Equal(t, 22, slip.WorkingDays)
		assert.Equal(t, 20, slip.PresentDays)
		assert.Equal(t, 1, slip.LeaveDays)
		assert.Equal(t, 1, slip.AbsentDays)
	})

	t.Run("rejects counts over working days", func(t *testing.T) {
		slip := newDraftSlip(t)
		require.Error(t, slip.SetAttendance(20, 18, 2, 2))
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		slip := newDraftSlip(t)
		require.Error(t, slip.SetAttendance(22, -1, 0, 0))
	})

	t.Run("rejects attendance on processed slip", func(t *testing.T) {
		slip := newDraftSlip(t)
		require.NoError(t, slip.Process(uuid.New()))
		require.Error(t, slip.SetAttendance(22, 22, 0, 0))
	})
}

func TestSalarySlip_Process(t *testing.T) {
	t.Run("processes draft slip", func(t *testing.T) {
		slip, err := NewSalarySlip(newTestEmployee(t), "2026-08")
		require.NoError(t, err)

		processedBy := uuid.New()
		require.NoError(t, slip.Process(processedBy))

		assert.Equal(t, SalarySlipStatusProcessed, slip.Status)
		require.NotNil(t, slip.ProcessedAt)
		require.NotNil(t, slip.ProcessedBy)
		assert.Equal(t, processedBy, *slip.ProcessedBy)
	})

	t.Run("rejects nil processor", func(t *testing.T) {
		slip, _ := NewSalarySlip(newTestEmployee(t), "2026-08")
		require.Error(t, slip.Process(uuid.Nil))
	})

	t.Run("cannot process twice", func(t *testing.T) {
		slip, _ := NewSalarySlip(newTestEmployee(t), "2026-08")
		require.NoError(t, slip.Process(uuid.New()))
		require.Error(t, slip.Process(uuid.New()))
	})
}

func TestSalarySlip_Cancel(t *testing.T) {
	t.Run("cancels draft slip", func(t *testing.T) {
		slip, _ := NewSalarySlip(newTestEmployee(t), "2026-08")
		require.NoError(t, slip.Cancel())
		assert.Equal(t, SalarySlipStatusCancelled, slip.Status)
	})

	t.Run("processed slip cannot be cancelled", func(t *testing.T) {
		slip, _ := NewSalarySlip(newTestEmployee(t), "2026-08")
		require.NoError(t, slip.Process(uuid.New()))
		require.Error(t, slip.Cancel())
	})
}
