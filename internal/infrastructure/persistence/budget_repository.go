package persistence

import (
	"context"
	"errors"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBudgetRepository implements BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// Create persists a new budget with its lines
func (r *GormBudgetRepository) Create(ctx context.Context, budget *finance.Budget) error {
	model := models.BudgetModelFromDomain(budget)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a budget with optimistic locking. Lines are replaced as a whole
// since they only change through the aggregate.
func (r *GormBudgetRepository) Update(ctx context.Context, budget *finance.Budget) error {
	budget.IncrementVersion()
	model := models.BudgetModelFromDomain(budget)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BudgetModel{}).
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
		if err := tx.Where("budget_id = ?", model.ID).Delete(&models.BudgetLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
}

// FindByID finds a budget by its ID with lines preloaded
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all budgets matching the filter with a total count
func (r *GormBudgetRepository) FindAll(ctx context.Context, filter finance.BudgetFilter) ([]*finance.Budget, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BudgetModel{})

	if filter.FiscalYear != "" {
		query = query.Where("fiscal_year = ?", filter.FiscalYear)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var budgetModels []models.BudgetModel
	if err := query.Preload("Lines").Order("fiscal_year DESC").Find(&budgetModels).Error; err != nil {
		return nil, 0, err
	}

	budgets := make([]*finance.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToDomain()
	}
	return budgets, total, nil
}

// ExistsForFiscalYear checks whether an active or draft budget already exists
// for the fiscal year, excluding the given budget ID.
func (r *GormBudgetRepository) ExistsForFiscalYear(ctx context.Context, fiscalYear string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.BudgetModel{}).
		Where("fiscal_year = ? AND status <> ?", fiscalYear, finance.BudgetStatusClosed)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ finance.BudgetRepository = (*GormBudgetRepository)(nil)
