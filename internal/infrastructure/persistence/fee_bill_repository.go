package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFeeBillRepository implements FeeBillRepository using GORM
type GormFeeBillRepository struct {
	db *gorm.DB
}

// NewGormFeeBillRepository creates a new GormFeeBillRepository
func NewGormFeeBillRepository(db *gorm.DB) *GormFeeBillRepository {
	return &GormFeeBillRepository{db: db}
}

// openBillStatuses are bills still awaiting collection
var openBillStatuses = []finance.FeeBillStatus{
	finance.FeeBillStatusSubmitted,
	finance.FeeBillStatusPartiallyPaid,
	finance.FeeBillStatusOverdue,
}

// Create persists a new fee bill with its items
func (r *GormFeeBillRepository) Create(ctx context.Context, bill *finance.FeeBill) error {
	model := models.FeeBillModelFromDomain(bill)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a fee bill with optimistic locking, replacing its items
func (r *GormFeeBillRepository) Update(ctx context.Context, bill *finance.FeeBill) error {
	bill.IncrementVersion()
	model := models.FeeBillModelFromDomain(bill)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.FeeBillModel{}).
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
		if err := tx.Where("fee_bill_id = ?", model.ID).Delete(&models.FeeItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
}

// FindByID finds a fee bill by its ID with items preloaded
func (r *GormFeeBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FeeBill, error) {
	var model models.FeeBillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBillNumber finds a fee bill by its bill number
func (r *GormFeeBillRepository) FindByBillNumber(ctx context.Context, billNumber string) (*finance.FeeBill, error) {
	var model models.FeeBillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("bill_number = ?", billNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all fee bills matching the filter with a total count
func (r *GormFeeBillRepository) FindAll(ctx context.Context, filter finance.FeeBillFilter) ([]*finance.FeeBill, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeeBillModel{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.AcademicYear != "" {
		query = query.Where("academic_year = ?", filter.AcademicYear)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OverdueOnly {
		query = query.Where("status IN ? AND due_date < ?", openBillStatuses, time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var billModels []models.FeeBillModel
	if err := query.Preload("Items").Order("posting_date DESC").Find(&billModels).Error; err != nil {
		return nil, 0, err
	}

	bills := make([]*finance.FeeBill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToDomain()
	}
	return bills, total, nil
}

// FindOverdue finds open bills whose due date has passed as of the given time
func (r *GormFeeBillRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*finance.FeeBill, error) {
	var billModels []models.FeeBillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ? AND due_date < ?", openBillStatuses, asOf).
		Order("due_date ASC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]*finance.FeeBill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToDomain()
	}
	return bills, nil
}

// Summarize aggregates billing totals for an academic year, ignoring drafts
// and cancelled bills
func (r *GormFeeBillRepository) Summarize(ctx context.Context, academicYear string) (finance.FeeCollectionSummary, error) {
	var summary finance.FeeCollectionSummary

	base := r.db.WithContext(ctx).
		Model(&models.FeeBillModel{}).
		Where("academic_year = ? AND status NOT IN ?", academicYear,
			[]finance.FeeBillStatus{finance.FeeBillStatusDraft, finance.FeeBillStatusCancelled})

	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_billed, " +
			"COALESCE(SUM(paid_amount), 0) AS total_collected, " +
			"COALESCE(SUM(outstanding), 0) AS total_outstanding, " +
			"COUNT(*) AS bill_count").
		Scan(&summary).Error; err != nil {
		return finance.FeeCollectionSummary{}, err
	}

	if err := base.Session(&gorm.Session{}).
		Where("status = ?", finance.FeeBillStatusOverdue).
		Count(&summary.OverdueCount).Error; err != nil {
		return finance.FeeCollectionSummary{}, err
	}
	return summary, nil
}

// NextBillNumber returns the next sequential bill number for the year,
// formatted as FB-<year>-<seq>. The sequence comes from the highest
// existing number, not the row count, so cancelled or deleted bills never
// cause a reissue; the unique index on bill_number backstops races.
func (r *GormFeeBillRepository) NextBillNumber(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("FB-%d-", year)
	var last string
	if err := r.db.WithContext(ctx).
		Model(&models.FeeBillModel{}).
		Where("bill_number LIKE ?", prefix+"%").
		Select("COALESCE(MAX(bill_number), '')").
		Scan(&last).Error; err != nil {
		return "", err
	}

	seq := 0
	if last != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed bill number %q: %w", last, err)
		}
		seq = n
	}
	return fmt.Sprintf("%s%05d", prefix, seq+1), nil
}

var _ finance.FeeBillRepository = (*GormFeeBillRepository)(nil)
