package persistence

import (
	"context"
	"time"

	"github.com/easygo-schools/backend/internal/domain/comms"
	"github.com/easygo-schools/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommunicationLogRepository implements LogRepository using GORM.
// The log is append-only.
type GormCommunicationLogRepository struct {
	db *gorm.DB
}

// NewGormCommunicationLogRepository creates a new GormCommunicationLogRepository
func NewGormCommunicationLogRepository(db *gorm.DB) *GormCommunicationLogRepository {
	return &GormCommunicationLogRepository{db: db}
}

// Append persists a new communication log entry
func (r *GormCommunicationLogRepository) Append(ctx context.Context, entry *comms.LogEntry) error {
	model := models.CommunicationLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAll finds all log entries matching the filter with a total count
func (r *GormCommunicationLogRepository) FindAll(ctx context.Context, filter comms.LogFilter) ([]*comms.LogEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CommunicationLogModel{})

	if filter.Channel != "" {
		query = query.Where("channel = ?", filter.Channel)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("sent_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("sent_at <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var logModels []models.CommunicationLogModel
	if err := query.Order("sent_at DESC").Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*comms.LogEntry, len(logModels))
	for i := range logModels {
		entries[i] = logModels[i].ToDomain()
	}
	return entries, total, nil
}

// CountByChannel aggregates log entries per channel and delivery status over a period
func (r *GormCommunicationLogRepository) CountByChannel(ctx context.Context, from, to time.Time) ([]comms.ChannelCount, error) {
	var counts []comms.ChannelCount
	if err := r.db.WithContext(ctx).
		Model(&models.CommunicationLogModel{}).
		Select("channel, status, COUNT(*) AS count").
		Where("sent_at >= ? AND sent_at <= ?", from, to).
		Group("channel").
		Group("status").
		Order("channel ASC, status ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

var _ comms.LogRepository = (*GormCommunicationLogRepository)(nil)
