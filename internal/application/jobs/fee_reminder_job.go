package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/finance"
	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/infrastructure/cache"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/easygo-schools/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// feeReminderTTL spans a whole week so each bill is chased at most once
// per weekly run.
const feeReminderTTL = 8 * 24 * time.Hour

// FeeReminderJob emails guardians of students with overdue fee bills. Bills
// past due are flipped to overdue status as a side effect, so list filters
// stay truthful even between reminder runs.
type FeeReminderJob struct {
	scheduler.WeeklyOn
	billRepo    finance.FeeBillRepository
	studentRepo schooling.StudentRepository
	notifier    *notify.Notifier
	store       cache.IdempotencyStore
	logger      *zap.Logger
}

// NewFeeReminderJob creates the weekly fee reminder job
func NewFeeReminderJob(
	weekday time.Weekday,
	hour int,
	billRepo finance.FeeBillRepository,
	studentRepo schooling.StudentRepository,
	notifier *notify.Notifier,
	store cache.IdempotencyStore,
	logger *zap.Logger,
) *FeeReminderJob {
	return &FeeReminderJob{
		WeeklyOn:    scheduler.WeeklyOn{Weekday: weekday, Hour: hour},
		billRepo:    billRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
		store:       store,
		logger:      logger,
	}
}

// Name identifies the job in logs
func (j *FeeReminderJob) Name() string { return "fee-reminders" }

// Run chases every overdue bill once per week
func (j *FeeReminderJob) Run(ctx context.Context) error {
	now := time.Now()
	bills, err := j.billRepo.FindOverdue(ctx, now)
	if err != nil {
		return fmt.Errorf("loading overdue bills: %w", err)
	}

	year, week := now.ISOWeek()
	sent := 0
	for _, bill := range bills {
		if bill.Status != finance.FeeBillStatusOverdue {
			bill.RefreshStatus(now)
			if err := j.billRepo.Update(ctx, bill); err != nil {
				j.logger.Error("flipping bill to overdue",
					zap.String("bill_number", bill.BillNumber),
					zap.Error(err),
				)
				continue
			}
		}

		key := fmt.Sprintf("fee:%s:%d-W%02d", bill.ID, year, week)
		fresh, err := j.store.MarkProcessed(ctx, key, feeReminderTTL)
		if err != nil {
			return fmt.Errorf("marking reminder key: %w", err)
		}
		if !fresh {
			continue
		}

		student, err := j.studentRepo.FindByID(ctx, bill.StudentID)
		if err != nil {
			j.logger.Error("looking up billed student",
				zap.String("bill_number", bill.BillNumber),
				zap.Error(err),
			)
			continue
		}
		if !student.Guardian.HasEmail() {
			continue
		}

		subject := fmt.Sprintf("Payment reminder: bill %s is overdue", bill.BillNumber)
		body := fmt.Sprintf(
			"Dear %s,\n\nBill %s for %s was due on %s. Outstanding amount: %s MAD. Please settle it at your earliest convenience.",
			student.Guardian.Name, bill.BillNumber, student.FullName(),
			bill.DueDate.Format("2006-01-02"), bill.Outstanding.StringFixed(2),
		)
		j.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "FEE_BILL", &bill.ID)
		sent++
	}

	j.logger.Info("fee reminders sent",
		zap.Int("overdue_bills", len(bills)),
		zap.Int("reminders", sent),
	)
	return nil
}

var _ scheduler.Job = (*FeeReminderJob)(nil)
