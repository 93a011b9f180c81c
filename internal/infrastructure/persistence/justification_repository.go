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

// GormJustificationRepository implements JustificationRepository using GORM
type GormJustificationRepository struct {
	db *gorm.DB
}

// NewGormJustificationRepository creates a new GormJustificationRepository
func NewGormJustificationRepository(db *gorm.DB) *GormJustificationRepository {
	return &GormJustificationRepository{db: db}
}

// Create persists a new justification
func (r *GormJustificationRepository) Create(ctx context.Context, justification *schooling.AttendanceJustification) error {
	model := models.JustificationModelFromDomain(justification)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a justification with optimistic locking
func (r *GormJustificationRepository) Update(ctx context.Context, justification *schooling.AttendanceJustification) error {
	justification.IncrementVersion()
	model := models.JustificationModelFromDomain(justification)
	result := r.db.WithContext(ctx).
		Model(&models.JustificationModel{}).
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

// FindByID finds a justification by its ID
func (r *GormJustificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*schooling.AttendanceJustification, error) {
	var model models.JustificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all justifications matching the filter with a total count
func (r *GormJustificationRepository) FindAll(ctx context.Context, filter schooling.JustificationFilter) ([]*schooling.AttendanceJustification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.JustificationModel{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
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

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var justificationModels []models.JustificationModel
	if err := query.Order("submitted_at DESC").Find(&justificationModels).Error; err != nil {
		return nil, 0, err
	}

	justifications := make([]*schooling.AttendanceJustification, len(justificationModels))
	for i := range justificationModels {
		justifications[i] = justificationModels[i].ToDomain()
	}
	return justifications, total, nil
}

// ExistsActiveForDate reports whether a non-rejected justification already
// covers the given (student, date), excluding the given justification ID.
func (r *GormJustificationRepository) ExistsActiveForDate(ctx context.Context, studentID uuid.UUID, date time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.JustificationModel{}).
		Where("student_id = ? AND attendance_date = ? AND status <> ?",
			studentID, dayStart(date), schooling.JustificationStatusRejected)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ schooling.JustificationRepository = (*GormJustificationRepository)(nil)
