package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create persists a new employee with its salary structure
func (r *GormEmployeeRepository) Create(ctx context.Context, employee *hr.Employee) error {
	model := models.EmployeeModelFromDomain(employee)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves an employee with optimistic locking, replacing the salary structure
func (r *GormEmployeeRepository) Update(ctx context.Context, employee *hr.Employee) error {
	employee.IncrementVersion()
	model := models.EmployeeModelFromDomain(employee)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.EmployeeModel{}).
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
		if err := tx.Where("employee_id = ?", model.ID).Delete(&models.SalaryComponentModel{}).Error; err != nil {
			return err
		}
		if len(model.Components) == 0 {
			return nil
		}
		return tx.Create(&model.Components).Error
	})
}

// FindByID finds an employee by its ID with the salary structure preloaded
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployeeNumber finds an employee by its employee number
func (r *GormEmployeeRepository) FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*hr.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
		Where("employee_number = ?", strings.ToUpper(strings.TrimSpace(employeeNumber))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all employees matching the filter with a total count
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter hr.EmployeeFilter) ([]*hr.Employee, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EmployeeModel{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(employee_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var employeeModels []models.EmployeeModel
	if err := query.Preload("Components").Order("employee_number ASC").Find(&employeeModels).Error; err != nil {
		return nil, 0, err
	}

	employees := make([]*hr.Employee, len(employeeModels))
	for i := range employeeModels {
		employees[i] = employeeModels[i].ToDomain()
	}
	return employees, total, nil
}

// FindActive finds all active employees, used for payroll generation
func (r *GormEmployeeRepository) FindActive(ctx context.Context) ([]*hr.Employee, error) {
	var employeeModels []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
		Where("status = ?", hr.EmployeeStatusActive).
		Order("employee_number ASC").
		Find(&employeeModels).Error; err != nil {
		return nil, err
	}

	employees := make([]*hr.Employee, len(employeeModels))
	for i := range employeeModels {
		employees[i] = employeeModels[i].ToDomain()
	}
	return employees, nil
}

// ExistsByEmployeeNumber checks if an employee with the given number exists
func (r *GormEmployeeRepository) ExistsByEmployeeNumber(ctx context.Context, employeeNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("employee_number = ?", strings.ToUpper(strings.TrimSpace(employeeNumber))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ hr.EmployeeRepository = (*GormEmployeeRepository)(nil)
