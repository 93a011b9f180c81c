package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day int, weekday time.Weekday, hour int) time.Time {
	// 2026-06-01 is a Monday; walk forward to the requested weekday.
	base := time.Date(2026, 6, day, hour, 0, 0, 0, time.UTC)
	for base.Weekday() != weekday {
		base = base.AddDate(0, 0, 1)
	}
	return base
}

func TestDailyAt_Due(t *testing.T) {
	s := DailyAt{Hour: 8}
	morning := time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC)

	assert.True(t, s.Due(morning, time.Time{}))
	assert.False(t, s.Due(morning.Add(-2*time.Hour), time.Time{}), "before the hour")
	assert.False(t, s.Due(morning, morning.Add(-time.Hour)), "already ran today")
	assert.True(t, s.Due(morning, morning.AddDate(0, 0, -1)), "ran yesterday")
}

func TestWeeklyOn_Due(t *testing.T) {
	s := WeeklyOn{Weekday: time.Monday, Hour: 7}
	monday := at(1, time.Monday, 9)

	assert.True(t, s.Due(monday, time.Time{}))
	assert.False(t, s.Due(at(1, time.Tuesday, 9), time.Time{}), "wrong weekday")
	assert.False(t, s.Due(at(1, time.Monday, 6), time.Time{}), "before the hour")
	assert.False(t, s.Due(monday, monday.Add(-time.Hour)), "already ran today")
	assert.True(t, s.Due(monday, monday.AddDate(0, 0, -7)), "ran last week")
}

func TestMonthlyOn_Due(t *testing.T) {
	s := MonthlyOn{Day: 28, Hour: 6}
	payday := time.Date(2026, 6, 28, 6, 15, 0, 0, time.UTC)

	assert.True(t, s.Due(payday, time.Time{}))
	assert.False(t, s.Due(time.Date(2026, 6, 27, 9, 0, 0, 0, time.UTC), time.Time{}), "wrong day")
	assert.False(t, s.Due(time.Date(2026, 6, 28, 5, 0, 0, 0, time.UTC), time.Time{}), "before the hour")
	assert.False(t, s.Due(payday, payday.Add(-time.Hour)), "already ran today")
	assert.True(t, s.Due(payday, payday.AddDate(0, -1, 0)), "ran last month")
}

func TestParseWeekday(t *testing.T) {
	assert.Equal(t, time.Friday, ParseWeekday("Friday"))
	assert.Equal(t, time.Sunday, ParseWeekday("  sunday "))
	assert.Equal(t, time.Monday, ParseWeekday("someday"), "unknown defaults to Monday")
	assert.Equal(t, time.Monday, ParseWeekday(""))
}
