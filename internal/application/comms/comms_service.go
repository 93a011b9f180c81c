package comms

import (
	"context"
	"time"

	"github.com/easygo-schools/backend/internal/domain/comms"
)

// CommsService exposes the communication log for auditing and reporting
type CommsService struct {
	logRepo comms.LogRepository
}

// NewCommsService creates a new communications service
func NewCommsService(logRepo comms.LogRepository) *CommsService {
	return &CommsService{logRepo: logRepo}
}

// ListLogs returns communication log entries matching the filter
func (s *CommsService) ListLogs(ctx context.Context, filter comms.LogFilter) ([]*comms.LogEntry, int64, error) {
	return s.logRepo.FindAll(ctx, filter)
}

// ChannelStats returns per-channel delivery counts over a period
func (s *CommsService) ChannelStats(ctx context.Context, from, to time.Time) ([]comms.ChannelCount, error) {
	return s.logRepo.CountByChannel(ctx, from, to)
}
