package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/domain/transport"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements RouteRepository using GORM
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// Create persists a new route with its stops and enrollments
func (r *GormRouteRepository) Create(ctx context.Context, route *transport.Route) error {
	model := models.RouteModelFromDomain(route)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a route with optimistic locking, replacing stops and enrollments.
// The version check guards concurrent seat reservations against the capacity.
func (r *GormRouteRepository) Update(ctx context.Context, route *transport.Route) error {
	route.IncrementVersion()
	model := models.RouteModelFromDomain(route)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RouteModel{}).
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
		if err := tx.Where("route_id = ?", model.ID).Delete(&models.StopModel{}).Error; err != nil {
			return err
		}
		if len(model.Stops) > 0 {
			if err := tx.Create(&model.Stops).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("route_id = ?", model.ID).Delete(&models.EnrollmentModel{}).Error; err != nil {
			return err
		}
		if len(model.Enrollments) > 0 {
			if err := tx.Create(&model.Enrollments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a route by its ID with stops and enrollments preloaded
func (r *GormRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*transport.Route, error) {
	var model models.RouteModel
	if err := r.preloaded(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a route by its route code
func (r *GormRouteRepository) FindByCode(ctx context.Context, routeCode string) (*transport.Route, error) {
	var model models.RouteModel
	if err := r.preloaded(ctx).
		Where("route_code = ?", strings.ToUpper(strings.TrimSpace(routeCode))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all routes matching the filter with a total count
func (r *GormRouteRepository) FindAll(ctx context.Context, filter transport.RouteFilter) ([]*transport.Route, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RouteModel{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(route_code) LIKE ? OR LOWER(route_name) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var routeModels []models.RouteModel
	if err := query.
		Preload("Stops", stopOrder).
		Preload("Enrollments").
		Order("route_code ASC").
		Find(&routeModels).Error; err != nil {
		return nil, 0, err
	}

	routes := make([]*transport.Route, len(routeModels))
	for i := range routeModels {
		routes[i] = routeModels[i].ToDomain()
	}
	return routes, total, nil
}

// ExistsByCode checks if a route with the given code exists, excluding the given ID
func (r *GormRouteRepository) ExistsByCode(ctx context.Context, routeCode string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.RouteModel{}).
		Where("route_code = ?", strings.ToUpper(strings.TrimSpace(routeCode)))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRouteRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Stops", stopOrder).
		Preload("Enrollments")
}

// stopOrder keeps stops in pickup sequence when preloading
func stopOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sequence ASC")
}

var _ transport.RouteRepository = (*GormRouteRepository)(nil)
