package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentEntryRepository implements PaymentEntryRepository using GORM
type GormPaymentEntryRepository struct {
	db *gorm.DB
}

// NewGormPaymentEntryRepository creates a new GormPaymentEntryRepository
func NewGormPaymentEntryRepository(db *gorm.DB) *GormPaymentEntryRepository {
	return &GormPaymentEntryRepository{db: db}
}

// Create persists a new payment entry
func (r *GormPaymentEntryRepository) Create(ctx context.Context, payment *finance.PaymentEntry) error {
	model := models.PaymentEntryModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a payment entry with optimistic locking
func (r *GormPaymentEntryRepository) Update(ctx context.Context, payment *finance.PaymentEntry) error {
	payment.IncrementVersion()
	model := models.PaymentEntryModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&models.PaymentEntryModel{}).
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

// FindByID finds a payment entry by its ID
func (r *GormPaymentEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PaymentEntry, error) {
	var model models.PaymentEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payment entries matching the filter with a total count
func (r *GormPaymentEntryRepository) FindAll(ctx context.Context, filter finance.PaymentEntryFilter) ([]*finance.PaymentEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentEntryModel{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.FeeBillID != nil {
		query = query.Where("fee_bill_id = ?", *filter.FeeBillID)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.FromDate != nil {
		query = query.Where("payment_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("payment_date <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var paymentModels []models.PaymentEntryModel
	if err := query.Order("payment_date DESC").Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*finance.PaymentEntry, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments, total, nil
}

// NextPaymentNumber returns the next sequential payment number for the year,
// formatted as PE-<year>-<seq>
func (r *GormPaymentEntryRepository) NextPaymentNumber(ctx context.Context, year int) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentEntryModel{}).
		Where("payment_number LIKE ?", fmt.Sprintf("PE-%d-%%", year)).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("PE-%d-%05d", year, count+1), nil
}

var _ finance.PaymentEntryRepository = (*GormPaymentEntryRepository)(nil)
