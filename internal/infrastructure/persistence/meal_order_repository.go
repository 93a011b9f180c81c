package persistence

import (
	"context"
	"errors"

	"github.com/easygo-schools/backend/internal/domain/canteen"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a new meal order
func (r *GormOrderRepository) Create(ctx context.Context, order *canteen.MealOrder) error {
	model := models.MealOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a meal order with optimistic locking
func (r *GormOrderRepository) Update(ctx context.Context, order *canteen.MealOrder) error {
	order.IncrementVersion()
	model := models.MealOrderModelFromDomain(order)
	result := r.db.WithContext(ctx).
		Model(&models.MealOrderModel{}).
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

// FindByID finds a meal order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*canteen.MealOrder, error) {
	var model models.MealOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all meal orders matching the filter with a total count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter canteen.OrderFilter) ([]*canteen.MealOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MealOrderModel{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.MenuID != nil {
		query = query.Where("menu_id = ?", *filter.MenuID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("menu_date >= ?", dayStart(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("menu_date <= ?", dayStart(*filter.ToDate))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orderModels []models.MealOrderModel
	if err := query.Order("ordered_at DESC").Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*canteen.MealOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, total, nil
}

// ExistsForMenu checks if the student already has a non-cancelled order for the menu
func (r *GormOrderRepository) ExistsForMenu(ctx context.Context, studentID, menuID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MealOrderModel{}).
		Where("student_id = ? AND menu_id = ? AND status <> ?",
			studentID, menuID, canteen.OrderStatusCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ canteen.OrderRepository = (*GormOrderRepository)(nil)
