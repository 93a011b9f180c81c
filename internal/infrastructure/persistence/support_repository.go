package persistence

import (
	"context"
	"errors"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/domain/support"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRemedialPlanRepository implements RemedialPlanRepository using GORM
type GormRemedialPlanRepository struct {
	db *gorm.DB
}

// NewGormRemedialPlanRepository creates a new GormRemedialPlanRepository
func NewGormRemedialPlanRepository(db *gorm.DB) *GormRemedialPlanRepository {
	return &GormRemedialPlanRepository{db: db}
}

// Create persists a new remedial plan with its sessions
func (r *GormRemedialPlanRepository) Create(ctx context.Context, plan *support.RemedialPlan) error {
	model := models.RemedialPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a remedial plan with optimistic locking, replacing its sessions
func (r *GormRemedialPlanRepository) Update(ctx context.Context, plan *support.RemedialPlan) error {
	plan.IncrementVersion()
	model := models.RemedialPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RemedialPlanModel{}).
			Where("id = ? AND version = ?", model.ID, model.Version-1).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		if err := tx.Where("plan_id = ?", model.ID).Delete(&models.SessionModel{}).Error; err != nil {
			return err
		}
		if len(model.Sessions) == 0 {
			return nil
		}
		return tx.Create(&model.Sessions).Error
	})
}

// FindByID finds a remedial plan by its ID with sessions preloaded
func (r *GormRemedialPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.RemedialPlan, error) {
	var model models.RemedialPlanModel
	if err := r.db.WithContext(ctx).
		Preload("Sessions", sessionOrder).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all remedial plans matching the filter with a total count
func (r *GormRemedialPlanRepository) FindAll(ctx context.Context, filter support.RemedialPlanFilter) ([]*support.RemedialPlan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RemedialPlanModel{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var planModels []models.RemedialPlanModel
	if err := query.
		Preload("Sessions", sessionOrder).
		Order("start_date DESC").
		Find(&planModels).Error; err != nil {
		return nil, 0, err
	}

	plans := make([]*support.RemedialPlan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToDomain()
	}
	return plans, total, nil
}

// sessionOrder keeps sessions in planned order when preloading
func sessionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("planned_date ASC")
}

var _ support.RemedialPlanRepository = (*GormRemedialPlanRepository)(nil)

// GormOrientationPlanRepository implements OrientationPlanRepository using GORM
type GormOrientationPlanRepository struct {
	db *gorm.DB
}

// NewGormOrientationPlanRepository creates a new GormOrientationPlanRepository
func NewGormOrientationPlanRepository(db *gorm.DB) *GormOrientationPlanRepository {
	return &GormOrientationPlanRepository{db: db}
}

// Create persists a new orientation plan with its stream choices
func (r *GormOrientationPlanRepository) Create(ctx context.Context, plan *support.OrientationPlan) error {
	model := models.OrientationPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves an orientation plan with optimistic locking, replacing its choices
func (r *GormOrientationPlanRepository) Update(ctx context.Context, plan *support.OrientationPlan) error {
	plan.IncrementVersion()
	model := models.OrientationPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrientationPlanModel{}).
			Where("id = ? AND version = ?", model.ID, model.Version-1).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		if err := tx.Where("plan_id = ?", model.ID).Delete(&models.StreamChoiceModel{}).Error; err != nil {
			return err
		}
		if len(model.Choices) == 0 {
			return nil
		}
		return tx.Create(&model.Choices).Error
	})
}

// FindByID finds an orientation plan by its ID with choices preloaded
func (r *GormOrientationPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.OrientationPlan, error) {
	var model models.OrientationPlanModel
	if err := r.db.WithContext(ctx).
		Preload("Choices", choiceOrder).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orientation plans matching the filter with a total count
func (r *GormOrientationPlanRepository) FindAll(ctx context.Context, filter support.OrientationFilter) ([]*support.OrientationPlan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrientationPlanModel{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.AcademicYear != "" {
		query = query.Where("academic_year = ?", filter.AcademicYear)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var planModels []models.OrientationPlanModel
	if err := query.
		Preload("Choices", choiceOrder).
		Order("academic_year DESC").
		Find(&planModels).Error; err != nil {
		return nil, 0, err
	}

	plans := make([]*support.OrientationPlan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToDomain()
	}
	return plans, total, nil
}

// ExistsForYear checks whether the student already has an orientation plan
// for the academic year, excluding the given plan ID.
func (r *GormOrientationPlanRepository) ExistsForYear(ctx context.Context, studentID uuid.UUID, academicYear string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.OrientationPlanModel{}).
		Where("student_id = ? AND academic_year = ?", studentID, academicYear)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// choiceOrder keeps stream choices ranked when preloading
func choiceOrder(db *gorm.DB) *gorm.DB {
	return db.Order("rank ASC")
}

var _ support.OrientationPlanRepository = (*GormOrientationPlanRepository)(nil)
