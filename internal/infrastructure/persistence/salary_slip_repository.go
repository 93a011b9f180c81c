package persistence

import (
	"context"
	"errors"

	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSalarySlipRepository implements SalarySlipRepository using GORM
type GormSalarySlipRepository struct {
	db *gorm.DB
}

// NewGormSalarySlipRepository creates a new GormSalarySlipRepository
func NewGormSalarySlipRepository(db *gorm.DB) *GormSalarySlipRepository {
	return &GormSalarySlipRepository{db: db}
}

// Create persists a new salary slip with its component lines
func (r *GormSalarySlipRepository) Create(ctx context.Context, slip *hr.SalarySlip) error {
	model := models.SalarySlipModelFromDomain(slip)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a salary slip with optimistic locking, replacing its component lines
func (r *GormSalarySlipRepository) Update(ctx context.Context, slip *hr.SalarySlip) error {
	slip.IncrementVersion()
	model := models.SalarySlipModelFromDomain(slip)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SalarySlipModel{}).
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
		if err := tx.Where("salary_slip_id = ?", model.ID).Delete(&models.SlipComponentModel{}).Error; err != nil {
			return err
		}
		if len(model.Components) == 0 {
			return nil
		}
		return tx.Create(&model.Components).Error
	})
}

// FindByID finds a salary slip by its ID with component lines preloaded
func (r *GormSalarySlipRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.SalarySlip, error) {
	var model models.SalarySlipModel
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

// FindAll finds all salary slips matching the filter with a total count
func (r *GormSalarySlipRepository) FindAll(ctx context.Context, filter hr.SalarySlipFilter) ([]*hr.SalarySlip, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SalarySlipModel{})

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.PayPeriod != "" {
		query = query.Where("pay_period = ?", filter.PayPeriod)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var slipModels []models.SalarySlipModel
	if err := query.Preload("Components").Order("pay_period DESC").Find(&slipModels).Error; err != nil {
		return nil, 0, err
	}

	slips := make([]*hr.SalarySlip, len(slipModels))
	for i := range slipModels {
		slips[i] = slipModels[i].ToDomain()
	}
	return slips, total, nil
}

// ExistsForPeriod checks if a non-cancelled slip already exists for the
// employee and pay period
func (r *GormSalarySlipRepository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, payPeriod string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalarySlipModel{}).
		Where("employee_id = ? AND pay_period = ? AND status <> ?",
			employeeID, payPeriod, hr.SalarySlipStatusCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SummarizePeriod aggregates slip totals for one pay period, ignoring
// cancelled slips
func (r *GormSalarySlipRepository) SummarizePeriod(ctx context.Context, payPeriod string) (hr.PayrollSummary, error) {
	summary := hr.PayrollSummary{PayPeriod: payPeriod}

	base := r.db.WithContext(ctx).
		Model(&models.SalarySlipModel{}).
		Where("pay_period = ? AND status <> ?", payPeriod, hr.SalarySlipStatusCancelled)

	if err := base.Session(&gorm.Session{}).
		Select("COUNT(*) AS slip_count, " +
			"COALESCE(SUM(gross_salary), 0) AS total_gross, " +
			"COALESCE(SUM(total_deductions), 0) AS total_deductions, " +
			"COALESCE(SUM(net_salary), 0) AS total_net").
		Scan(&summary).Error; err != nil {
		return hr.PayrollSummary{}, err
	}

	if err := base.Session(&gorm.Session{}).
		Where("status = ?", hr.SalarySlipStatusProcessed).
		Count(&summary.ProcessedCount).Error; err != nil {
		return hr.PayrollSummary{}, err
	}
	return summary, nil
}

var _ hr.SalarySlipRepository = (*GormSalarySlipRepository)(nil)
