package scheduler

import (
	"strings"
	"time"
)

// Schedule decides when a periodic occurrence is due
type Schedule interface {
	Due(now, lastRun time.Time) bool
}

// DailyAt fires once per day at or after the given hour
type DailyAt struct {
	Hour int
}

// Due reports whether the daily occurrence should run
func (d DailyAt) Due(now, lastRun time.Time) bool {
	if now.Hour() < d.Hour {
		return false
	}
	return lastRun.IsZero() || !sameDay(now, lastRun)
}

// WeeklyOn fires once per week on the given weekday at or after the given hour
type WeeklyOn struct {
	Weekday time.Weekday
	Hour    int
}

// Due reports whether the weekly occurrence should run
func (w WeeklyOn) Due(now, lastRun time.Time) bool {
	if now.Weekday() != w.Weekday || now.Hour() < w.Hour {
		return false
	}
	return lastRun.IsZero() || !sameDay(now, lastRun)
}

// MonthlyOn fires once per month on the given day at or after the given hour
type MonthlyOn struct {
	Day  int
	Hour int
}

// Due reports whether the monthly occurrence should run
func (m MonthlyOn) Due(now, lastRun time.Time) bool {
	if now.Day() != m.Day || now.Hour() < m.Hour {
		return false
	}
	return lastRun.IsZero() || !sameDay(now, lastRun)
}

// ParseWeekday maps a configured weekday name to time.Weekday,
// defaulting to Monday.
func ParseWeekday(name string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday
	case "monday":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
