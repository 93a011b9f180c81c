package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/easygo-schools/backend/internal/domain/canteen"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMenuRepository implements MenuRepository using GORM
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GormMenuRepository
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Create persists a new menu
func (r *GormMenuRepository) Create(ctx context.Context, menu *canteen.Menu) error {
	model := models.MenuModelFromDomain(menu)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a menu with optimistic locking. The version check matters here:
// serving reservations race with each other on popular menus.
func (r *GormMenuRepository) Update(ctx context.Context, menu *canteen.Menu) error {
	menu.IncrementVersion()
	model := models.MenuModelFromDomain(menu)
	result := r.db.WithContext(ctx).
		Model(&models.MenuModel{}).
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

// FindByID finds a menu by its ID
func (r *GormMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*canteen.Menu, error) {
	var model models.MenuModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDateAndType finds the menu for a day and meal type
func (r *GormMenuRepository) FindByDateAndType(ctx context.Context, date time.Time, mealType canteen.MealType) (*canteen.Menu, error) {
	var model models.MenuModel
	if err := r.db.WithContext(ctx).
		Where("menu_date = ? AND meal_type = ?", dayStart(date), mealType).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all menus matching the filter with a total count
func (r *GormMenuRepository) FindAll(ctx context.Context, filter canteen.MenuFilter) ([]*canteen.Menu, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuModel{})

	if filter.FromDate != nil {
		query = query.Where("menu_date >= ?", dayStart(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("menu_date <= ?", dayStart(*filter.ToDate))
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", filter.MealType)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var menuModels []models.MenuModel
	if err := query.Order("menu_date ASC, meal_type ASC").Find(&menuModels).Error; err != nil {
		return nil, 0, err
	}

	menus := make([]*canteen.Menu, len(menuModels))
	for i := range menuModels {
		menus[i] = menuModels[i].ToDomain()
	}
	return menus, total, nil
}

var _ canteen.MenuRepository = (*GormMenuRepository)(nil)
