package persistence

import (
	"time"

	"gorm.io/gorm"
)

// applyPagination applies page-based offset/limit when both values are positive
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}
	return query
}

// dayStart truncates a timestamp to midnight, matching how the domain
// stores calendar dates for attendance and menus.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
