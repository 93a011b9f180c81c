package persistence

import (
	"context"
	"errors"

	"github.com/easygo-schools/backend/internal/domain/health"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormHealthRecordRepository implements RecordRepository using GORM
type GormHealthRecordRepository struct {
	db *gorm.DB
}

// NewGormHealthRecordRepository creates a new GormHealthRecordRepository
func NewGormHealthRecordRepository(db *gorm.DB) *GormHealthRecordRepository {
	return &GormHealthRecordRepository{db: db}
}

// Create persists a new health record
func (r *GormHealthRecordRepository) Create(ctx context.Context, record *health.Record) error {
	model := models.HealthRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a health record with optimistic locking
func (r *GormHealthRecordRepository) Update(ctx context.Context, record *health.Record) error {
	record.IncrementVersion()
	model := models.HealthRecordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&models.HealthRecordModel{}).
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

// FindByID finds a health record by its ID
func (r *GormHealthRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*health.Record, error) {
	var model models.HealthRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudent finds the health record of a student
func (r *GormHealthRecordRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) (*health.Record, error) {
	var model models.HealthRecordModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForStudent checks if the student already has a health record
func (r *GormHealthRecordRepository) ExistsForStudent(ctx context.Context, studentID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.HealthRecordModel{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ health.RecordRepository = (*GormHealthRecordRepository)(nil)

// GormVisitRepository implements VisitRepository using GORM
type GormVisitRepository struct {
	db *gorm.DB
}

// NewGormVisitRepository creates a new GormVisitRepository
func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// Create persists a new medical visit
func (r *GormVisitRepository) Create(ctx context.Context, visit *health.MedicalVisit) error {
	model := models.MedicalVisitModelFromDomain(visit)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a medical visit with optimistic locking
func (r *GormVisitRepository) Update(ctx context.Context, visit *health.MedicalVisit) error {
	visit.IncrementVersion()
	model := models.MedicalVisitModelFromDomain(visit)
	result := r.db.WithContext(ctx).
		Model(&models.MedicalVisitModel{}).
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

// FindByID finds a medical visit by its ID
func (r *GormVisitRepository) FindByID(ctx context.Context, id uuid.UUID) (*health.MedicalVisit, error) {
	var model models.MedicalVisitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all medical visits matching the filter with a total count
func (r *GormVisitRepository) FindAll(ctx context.Context, filter health.VisitFilter) ([]*health.MedicalVisit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MedicalVisitModel{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}
	if filter.FromDate != nil {
		query = query.Where("visited_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("visited_at <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var visitModels []models.MedicalVisitModel
	if err := query.Order("visited_at DESC").Find(&visitModels).Error; err != nil {
		return nil, 0, err
	}

	visits := make([]*health.MedicalVisit, len(visitModels))
	for i := range visitModels {
		visits[i] = visitModels[i].ToDomain()
	}
	return visits, total, nil
}

var _ health.VisitRepository = (*GormVisitRepository)(nil)
