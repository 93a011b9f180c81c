package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/easygo-schools/backend/internal/domain/hr"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeaveRepository implements LeaveRepository using GORM
type GormLeaveRepository struct {
	db *gorm.DB
}

// NewGormLeaveRepository creates a new GormLeaveRepository
func NewGormLeaveRepository(db *gorm.DB) *GormLeaveRepository {
	return &GormLeaveRepository{db: db}
}

// Create persists a new leave application
func (r *GormLeaveRepository) Create(ctx context.Context, leave *hr.LeaveApplication) error {
	model := models.LeaveApplicationModelFromDomain(leave)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a leave application with optimistic locking
func (r *GormLeaveRepository) Update(ctx context.Context, leave *hr.LeaveApplication) error {
	leave.IncrementVersion()
	model := models.LeaveApplicationModelFromDomain(leave)
	result := r.db.WithContext(ctx).
		Model(&models.LeaveApplicationModel{}).
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

// FindByID finds a leave application by its ID
func (r *GormLeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.LeaveApplication, error) {
	var model models.LeaveApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all leave applications matching the filter with a total count
func (r *GormLeaveRepository) FindAll(ctx context.Context, filter hr.LeaveFilter) ([]*hr.LeaveApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LeaveApplicationModel{})

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		query = query.Where("leave_type = ?", filter.LeaveType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var leaveModels []models.LeaveApplicationModel
	if err := query.Order("from_date DESC").Find(&leaveModels).Error; err != nil {
		return nil, 0, err
	}

	leaves := make([]*hr.LeaveApplication, len(leaveModels))
	for i := range leaveModels {
		leaves[i] = leaveModels[i].ToDomain()
	}
	return leaves, total, nil
}

// FindApprovedOverlapping returns approved applications of the employee
// overlapping the given range, excluding the given application ID.
func (r *GormLeaveRepository) FindApprovedOverlapping(ctx context.Context, employeeID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]*hr.LeaveApplication, error) {
	query := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ? AND from_date <= ? AND to_date >= ?",
			employeeID, hr.LeaveStatusApproved, to, from)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var leaveModels []models.LeaveApplicationModel
	if err := query.Order("from_date ASC").Find(&leaveModels).Error; err != nil {
		return nil, err
	}

	leaves := make([]*hr.LeaveApplication, len(leaveModels))
	for i := range leaveModels {
		leaves[i] = leaveModels[i].ToDomain()
	}
	return leaves, nil
}

var _ hr.LeaveRepository = (*GormLeaveRepository)(nil)
