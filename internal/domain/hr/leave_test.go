package hr

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewLeaveApplication(t *testing.T) {
	employeeID := uuid.New()

	t.Run("creates pending application with inclusive day count", func(t *testing.T) {
		leave, err := NewLeaveApplication(employeeID, LeaveTypeAnnual, date(2026, 9, 7), date(2026, 9, 11), "Family trip")
		require.NoError(t, err)

		assert.Equal(t, LeaveStatusPending, leave.Status)
		assert.Equal(t, 5, leave.TotalDays)
		assert.Equal(t, employeeID, leave.EmployeeID)
	})

	t.Run("single day leave counts as one", func(t *testing.T) {
		leave, err := NewLeaveApplication(employeeID, LeaveTypeSick, date(2026, 9, 7), date(2026, 9, 7), "Flu")
		require.NoError(t, err)
		assert.Equal(t, 1, leave.TotalDays)
	})

	t.Run("counts calendar days across a DST transition", func(t *testing.T) {
		paris, err := time.LoadLocation("Europe/Paris")
		require.NoError(t, err)

		// Clocks spring forward on March 29, so the wall-clock span is
		// 71 hours. Still three calendar days.
		from := time.Date(2026, 3, 28, 0, 0, 0, 0, paris)
		to := time.Date(2026, 3, 30, 0, 0, 0, 0, paris)
		leave, err := NewLeaveApplication(employeeID, LeaveTypeAnnual, from, to, "Long weekend")
		require.NoError(t, err)
		assert.Equal(t, 3, leave.TotalDays)
	})

	t.Run("normalizes times within the same day", func(t *testing.T) {
		from := time.Date(2026, 9, 7, 15, 30, 0, 0, time.UTC)
		to := time.Date(2026, 9, 8, 8, 0, 0, 0, time.UTC)
		leave, err := NewLeaveApplication(employeeID, LeaveTypeSick, from, to, "Flu")
		require.NoError(t, err)
		assert.Equal(t, 2, leave.TotalDays)
		assert.Equal(t, date(2026, 9, 7), leave.FromDate)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := NewLeaveApplication(employeeID, LeaveTypeAnnual, date(2026, 9, 11), date(2026, 9, 7), "Trip")
		require.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewLeaveApplication(employeeID, LeaveType("SABBATICAL"), date(2026, 9, 7), date(2026, 9, 8), "Trip")
		require.Error(t, err)
	})

	t.Run("rejects empty reason", func(t *testing.T) {
		_, err := NewLeaveApplication(employeeID, LeaveTypeAnnual, date(2026, 9, 7), date(2026, 9, 8), "")
		require.Error(t, err)
	})

	t.Run("rejects nil employee", func(t *testing.T) {
		_, err := NewLeaveApplication(uuid.Nil, LeaveTypeAnnual, date(2026, 9, 7), date(2026, 9, 8), "Trip")
		require.Error(t, err)
	})
}

func TestLeaveApplication_Overlaps(t *testing.T) {
	leave, err := NewLeaveApplication(uuid.New(), LeaveTypeAnnual, date(2026, 9, 7), date(2026, 9, 11), "Trip")
	require.NoError(t, err)

	t.Run("overlapping ranges", func(t *testing.T) {
		assert.True(t, leave.Overlaps(date(2026, 9, 10), date(2026, 9, 15)))
		assert.True(t, leave.Overlaps(date(2026, 9, 1), date(2026, 9, 7)))
		assert.True(t, leave.Overlaps(date(2026, 9, 8), date(2026, 9, 9)))
		assert.True(t, leave.Overlaps(date(2026, 9, 1), date(2026, 9, 30)))
	})

	t.Run("disjoint ranges", func(t *testing.T) {
		assert.False(t, leave.Overlaps(date(2026, 9, 12), date(2026, 9, 20)))
		assert.False(t, leave.Overlaps(date(2026, 9, 1), date(2026, 9, 6)))
	})
}

func TestLeaveApplication_Review(t *testing.T) {
	newPending := func(t *testing.T) *LeaveApplication {
		leave, err := NewLeaveApplication(uuid.New(), LeaveTypeAnnual, date(2026, 9, 7), date(2026, 9, 11), "Trip")
		require.NoError(t, err)
		return leave
	}

	t.Run("approve", func(t *testing.T) {
		leave := newPending(t)
		reviewer := uuid.New()

		require.NoError(t, leave.Approve(reviewer, "Enjoy"))
		assert.Equal(t, LeaveStatusApproved, leave.Status)
		require.NotNil(t, leave.ReviewedBy)
		assert.Equal(t, reviewer, *leave.ReviewedBy)
		assert.NotNil(t, leave.ReviewedAt)
	})

	t.Run("approve without note is fine", func(t *testing.T) {
		leave := newPending(t)
		require.NoError(t, leave.Approve(uuid.New(), ""))
	})

	t.Run("reject requires a note", func(t *testing.T) {
		leave := newPending(t)
		err := leave.Reject(uuid.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "note is required")

		require.NoError(t, leave.Reject(uuid.New(), "Short staffed that week"))
		assert.Equal(t, LeaveStatusRejected, leave.Status)
	})

	t.Run("cannot review twice", func(t *testing.T) {
		leave := newPending(t)
		require.NoError(t, leave.Approve(uuid.New(), ""))
		require.Error(t, leave.Reject(uuid.New(), "changed my mind"))
	})

	t.Run("reviewer is required", func(t *testing.T) {
		leave := newPending(t)
		require.Error(t, leave.Approve(uuid.Nil, ""))
	})

	t.Run("cancel pending application", func(t *testing.T) {
		leave := newPending(t)
		require.NoError(t, leave.Cancel())
		assert.Equal(t, LeaveStatusCancelled, leave.Status)
	})

	t.Run("cannot cancel approved application", func(t *testing.T) {
		leave := newPending(t)
		require.NoError(t, leave.Approve(uuid.New(), ""))
		require.Error(t, leave.Cancel())
	})
}
