package persistence

import (
	"context"
	"time"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM.
// The ledger is append-only: entries are never updated or deleted, and
// corrections are posted as reversal entries.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists a new ledger entry
func (r *GormLedgerRepository) Append(ctx context.Context, entry *finance.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAll finds all ledger entries matching the filter with a total count
func (r *GormLedgerRepository) FindAll(ctx context.Context, filter finance.LedgerFilter) ([]*finance.LedgerEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{})

	if filter.Account != "" {
		query = query.Where("account = ?", filter.Account)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.ReferenceType != "" {
		query = query.Where("reference_type = ?", filter.ReferenceType)
	}
	if filter.ReferenceID != nil {
		query = query.Where("reference_id = ?", *filter.ReferenceID)
	}
	if filter.FromDate != nil {
		query = query.Where("posting_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("posting_date <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var entryModels []models.LedgerEntryModel
	if err := query.Order("posting_date DESC, created_at DESC").Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*finance.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// FindByReference finds all ledger entries posted against one source document
func (r *GormLedgerRepository) FindByReference(ctx context.Context, refType finance.LedgerReferenceType, refID uuid.UUID) ([]*finance.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*finance.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// BalanceByAccount aggregates debit and credit totals per account over a period
func (r *GormLedgerRepository) BalanceByAccount(ctx context.Context, from, to time.Time) ([]finance.AccountBalance, error) {
	var balances []finance.AccountBalance
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("account, COALESCE(SUM(debit), 0) AS debit, COALESCE(SUM(credit), 0) AS credit").
		Where("posting_date >= ? AND posting_date <= ?", from, to).
		Group("account").
		Order("account ASC").
		Scan(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

var _ finance.LedgerRepository = (*GormLedgerRepository)(nil)
