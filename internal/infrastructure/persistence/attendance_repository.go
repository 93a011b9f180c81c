package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttendanceRepository implements AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Create persists a new attendance record
func (r *GormAttendanceRepository) Create(ctx context.Context, attendance *schooling.StudentAttendance) error {
	model := models.AttendanceModelFromDomain(attendance)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves an attendance record with optimistic locking
func (r *GormAttendanceRepository) Update(ctx context.Context, attendance *schooling.StudentAttendance) error {
	attendance.IncrementVersion()
	model := models.AttendanceModelFromDomain(attendance)
	result := r.db.WithContext(ctx).
		Model(&models.AttendanceModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds an attendance record by its ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*schooling.StudentAttendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudentAndDate finds the attendance record of a student on one day
func (r *GormAttendanceRepository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*schooling.StudentAttendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND attendance_date = ?", studentID, dayStart(date)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all attendance records matching the filter with a total count
func (r *GormAttendanceRepository) FindAll(ctx context.Context, filter schooling.AttendanceFilter) ([]*schooling.StudentAttendance, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AttendanceModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var attendanceModels []models.AttendanceModel
	if err := query.Order("attendance_date DESC").Find(&attendanceModels).Error; err != nil {
		return nil, 0, err
	}

	records := make([]*schooling.StudentAttendance, len(attendanceModels))
	for i := range attendanceModels {
		records[i] = attendanceModels[i].ToDomain()
	}
	return records, total, nil
}

// FindUnexcusedAbsences finds absences on the given day that carry no justification
func (r *GormAttendanceRepository) FindUnexcusedAbsences(ctx context.Context, date time.Time) ([]*schooling.StudentAttendance, error) {
	var attendanceModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("attendance_date = ? AND status = ? AND justification_id IS NULL",
			dayStart(date), schooling.AttendanceStatusAbsent).
		Find(&attendanceModels).Error; err != nil {
		return nil, err
	}

	records := make([]*schooling.StudentAttendance, len(attendanceModels))
	for i := range attendanceModels {
		records[i] = attendanceModels[i].ToDomain()
	}
	return records, nil
}

// Summarize aggregates attendance counts per status for the filter
func (r *GormAttendanceRepository) Summarize(ctx context.Context, filter schooling.AttendanceFilter) (schooling.AttendanceSummary, error) {
	var rows []struct {
		Status schooling.AttendanceStatus
		Count  int64
	}
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AttendanceModel{}), filter)
	if err := query.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return schooling.AttendanceSummary{}, err
	}

	var summary schooling.AttendanceSummary
	for _, row := range rows {
		switch row.Status {
		case schooling.AttendanceStatusPresent:
			summary.Present = row.Count
		case schooling.AttendanceStatusAbsent:
			summary.Absent = row.Count
		case schooling.AttendanceStatusLate:
			summary.Late = row.Count
		case schooling.AttendanceStatusExcused:
			summary.Excused = row.Count
		}
	}
	return summary, nil
}

func (r *GormAttendanceRepository) applyFilter(query *gorm.DB, filter schooling.AttendanceFilter) *gorm.DB {
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.SchoolClass != "" {
		query = query.Where("school_class = ?", filter.SchoolClass)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("attendance_date >= ?", dayStart(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("attendance_date <= ?", dayStart(*filter.ToDate))
	}
	return query
}

var _ schooling.AttendanceRepository = (*GormAttendanceRepository)(nil)
