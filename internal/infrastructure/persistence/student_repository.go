package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStudentRepository implements StudentRepository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// Create persists a new student
func (r *GormStudentRepository) Create(ctx context.Context, student *schooling.Student) error {
	model := models.StudentModelFromDomain(student)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a student with optimistic locking
func (r *GormStudentRepository) Update(ctx context.Context, student *schooling.Student) error {
	student.IncrementVersion()
	model := models.StudentModelFromDomain(student)
	result := r.db.WithContext(ctx).
		Model(&models.StudentModel{}).
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

// FindByID finds a student by its ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*schooling.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMassarCode finds a student by the national MASSAR code
func (r *GormStudentRepository) FindByMassarCode(ctx context.Context, massarCode string) (*schooling.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).
		Where("massar_code = ?", strings.ToUpper(strings.TrimSpace(massarCode))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all students matching the filter with a total count
func (r *GormStudentRepository) FindAll(ctx context.Context, filter schooling.StudentFilter) ([]*schooling.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StudentModel{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(massar_code) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.SchoolClass != "" {
		query = query.Where("school_class = ?", filter.SchoolClass)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var studentModels []models.StudentModel
	if err := query.Order("last_name ASC, first_name ASC").Find(&studentModels).Error; err != nil {
		return nil, 0, err
	}

	students := make([]*schooling.Student, len(studentModels))
	for i := range studentModels {
		students[i] = studentModels[i].ToDomain()
	}
	return students, total, nil
}

// FindByClass finds all students of one school class
func (r *GormStudentRepository) FindByClass(ctx context.Context, schoolClass string) ([]*schooling.Student, error) {
	var studentModels []models.StudentModel
	if err := r.db.WithContext(ctx).
		Where("school_class = ?", schoolClass).
		Order("last_name ASC, first_name ASC").
		Find(&studentModels).Error; err != nil {
		return nil, err
	}

	students := make([]*schooling.Student, len(studentModels))
	for i := range studentModels {
		students[i] = studentModels[i].ToDomain()
	}
	return students, nil
}

// ExistsByMassarCode checks if a student with the given MASSAR code exists
func (r *GormStudentRepository) ExistsByMassarCode(ctx context.Context, massarCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StudentModel{}).
		Where("massar_code = ?", strings.ToUpper(strings.TrimSpace(massarCode))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ schooling.StudentRepository = (*GormStudentRepository)(nil)
