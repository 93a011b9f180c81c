package transport

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCityRoute(t *testing.T) *Route {
	route, err := NewRoute("RT-AGD", "Agdal Loop", 3, "07:15", "17:30", decimal.NewFromInt(300))
	require.NoError(t, err)
	require.NoError(t, route.AddStop("Agdal Center", "07:20"))
	require.NoError(t, route.AddStop("Avenue de France", "07:35"))
	return route
}

func TestNewRoute(t *testing.T) {
	t.Run("creates active route", func(t *testing.T) {
		route := newCityRoute(t)

		assert.Equal(t, "RT-AGD", route.RouteCode)
		assert.Equal(t, RouteStatusActive, route.Status)
		assert.Equal(t, "Monday to Friday", route.OperatingDays)
		assert.Equal(t, 3, route.Capacity)
	})

	t.Run("derives code from name when empty", func(t *testing.T) {
		route, err := NewRoute("", "Hassan District", 20, "07:00", "17:00", decimal.NewFromInt(250))
		require.NoError(t, err)
		assert.Equal(t, "RT-HAS", route.RouteCode)
	})

	t.Run("uppercases the code", func(t *testing.T) {
		route, err := NewRoute("rt-sud", "South Route", 20, "07:00", "17:00", decimal.NewFromInt(250))
		require.NoError(t, err)
		assert.Equal(t, "RT-SUD", route.RouteCode)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRoute("RT-X", "", 20, "07:00", "17:00", decimal.NewFromInt(250))
		require.Error(t, err)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := NewRoute("RT-X", "North", 0, "07:00", "17:00", decimal.NewFromInt(250))
		require.Error(t, err)
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		_, err := NewRoute("RT-X", "North", 20, "7am", "17:00", decimal.NewFromInt(250))
		require.Error(t, err)

		_, err = NewRoute("RT-X", "North", 20, "07:00", "25:99", decimal.NewFromInt(250))
		require.Error(t, err)
	})

	t.Run("return must be after departure", func(t *testing.T) {
		_, err := NewRoute("RT-X", "North", 20, "17:00", "07:00", decimal.NewFromInt(250))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after departure")
	})

	t.Run("rejects negative fee", func(t *testing.T) {
		_, err := NewRoute("RT-X", "North", 20, "07:00", "17:00", decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestRoute_AddStop(t *testing.T) {
	route := newCityRoute(t)

	t.Run("sequences stops in order", func(t *testing.T) {
		require.Len(t, route.Stops, 2)
		assert.Equal(t, 1, route.Stops[0].Sequence)
		assert.Equal(t, 2, route.Stops[1].Sequence)
		assert.Equal(t, route.ID, route.Stops[0].RouteID)
	})

	t.Run("rejects duplicate stop name", func(t *testing.T) {
		err := route.AddStop("Agdal Center", "07:50")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("rejects empty name and bad time", func(t *testing.T) {
		require.Error(t, route.AddStop("", "07:50"))
		require.Error(t, route.AddStop("Gare", "seven"))
	})
}

func TestRoute_AddStudent(t *testing.T) {
	t.Run("enrolls at a known stop", func(t *testing.T) {
		route := newCityRoute(t)
		studentID := uuid.New()

		require.NoError(t, route.AddStudent(studentID, "Agdal Center", decimal.NewFromInt(280)))
		assert.Equal(t, 1, route.ActiveEnrollmentCount())
		assert.True(t, route.Enrollments[0].MonthlyFee.Equal(decimal.NewFromInt(280)))
		assert.Equal(t, EnrollmentStatusActive, route.Enrollments[0].Status)
	})

	t.Run("zero fee falls back to the route fee", func(t *testing.T) {
		route := newCityRoute(t)
		require.NoError(t, route.AddStudent(uuid.New(), "Agdal Center", decimal.Zero))
		assert.True(t, route.Enrollments[0].MonthlyFee.Equal(decimal.NewFromInt(300)))
	})

	t.Run("rejects unknown stop", func(t *testing.T) {
		route := newCityRoute(t)
		err := route.AddStudent(uuid.New(), "Nowhere", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not on this route")
	})

	t.Run("rejects duplicate enrollment", func(t *testing.T) {
		route := newCityRoute(t)
		studentID := uuid.New()
		require.NoError(t, route.AddStudent(studentID, "Agdal Center", decimal.Zero))

		err := route.AddStudent(studentID, "Avenue de France", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already enrolled")
	})

	t.Run("enforces capacity", func(t *testing.T) {
		route := newCityRoute(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, route.AddStudent(uuid.New(), "Agdal Center", decimal.Zero))
		}

		err := route.AddStudent(uuid.New(), "Agdal Center", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "capacity")
	})

	t.Run("rejects nil student and negative fee", func(t *testing.T) {
		route := newCityRoute(t)
		require.Error(t, route.AddStudent(uuid.Nil, "Agdal Center", decimal.Zero))
		require.Error(t, route.AddStudent(uuid.New(), "Agdal Center", decimal.NewFromInt(-5)))
	})

	t.Run("rejects suspended route", func(t *testing.T) {
		route := newCityRoute(t)
		require.NoError(t, route.Suspend())
		require.Error(t, route.AddStudent(uuid.New(), "Agdal Center", decimal.Zero))
	})
}

func TestRoute_RemoveStudent(t *testing.T) {
	t.Run("frees the seat", func(t *testing.T) {
		route := newCityRoute(t)
		studentID := uuid.New()
		require.NoError(t, route.AddStudent(studentID, "Agdal Center", decimal.Zero))

		require.NoError(t, route.RemoveStudent(studentID, "Family moved"))
		assert.Zero(t, route.ActiveEnrollmentCount())
		assert.Equal(t, EnrollmentStatusRemoved, route.Enrollments[0].Status)
		assert.Equal(t, "Family moved", route.Enrollments[0].RemovalReason)
		require.NotNil(t, route.Enrollments[0].RemovedAt)

		// Re-enrollment after removal is allowed.
		require.NoError(t, route.AddStudent(studentID, "Agdal Center", decimal.Zero))
	})

	t.Run("fails when not enrolled", func(t *testing.T) {
		route := newCityRoute(t)
		err := route.RemoveStudent(uuid.New(), "whatever")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enrolled")
	})
}

func TestRoute_Utilization(t *testing.T) {
	route := newCityRoute(t)
	assert.True(t, route.UtilizationPercent().IsZero())

	require.NoError(t, route.AddStudent(uuid.New(), "Agdal Center", decimal.Zero))
	require.NoError(t, route.AddStudent(uuid.New(), "Agdal Center", decimal.Zero))
	assert.Equal(t, "66.67", route.UtilizationPercent().StringFixed(2))
}

func TestRoute_SuspendResume(t *testing.T) {
	route := newCityRoute(t)

	require.NoError(t, route.Suspend())
	assert.Equal(t, RouteStatusSuspended, route.Status)
	require.Error(t, route.Suspend())

	require.NoError(t, route.Resume())
	assert.Equal(t, RouteStatusActive, route.Status)
	require.Error(t, route.Resume())
}
