package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/infrastructure/cache"
	"github.com/easygo-schools/backend/internal/infrastructure/notify"
	"github.com/easygo-schools/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// absenceReminderTTL keeps the dedup key alive well past the next run
const absenceReminderTTL = 48 * time.Hour

// AbsenceReminderJob emails guardians of students who were absent the
// previous day without a justification. The idempotency store keeps one
// reminder per (student, date) even across restarts.
type AbsenceReminderJob struct {
	scheduler.DailyAt
	attendanceRepo schooling.AttendanceRepository
	studentRepo    schooling.StudentRepository
	notifier       *notify.Notifier
	store          cache.IdempotencyStore
	logger         *zap.Logger
}

// NewAbsenceReminderJob creates the daily absence reminder job
func NewAbsenceReminderJob(
	hour int,
	attendanceRepo schooling.AttendanceRepository,
	studentRepo schooling.StudentRepository,
	notifier *notify.Notifier,
	store cache.IdempotencyStore,
	logger *zap.Logger,
) *AbsenceReminderJob {
	return &AbsenceReminderJob{
		DailyAt:        scheduler.DailyAt{Hour: hour},
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		notifier:       notifier,
		store:          store,
		logger:         logger,
	}
}

// Name identifies the job in logs
func (j *AbsenceReminderJob) Name() string { return "absence-reminders" }

// Run sends reminders for yesterday's unexcused absences
func (j *AbsenceReminderJob) Run(ctx context.Context) error {
	yesterday := time.Now().AddDate(0, 0, -1)
	absences, err := j.attendanceRepo.FindUnexcusedAbsences(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("loading unexcused absences: %w", err)
	}

	sent := 0
	for _, absence := range absences {
		key := fmt.Sprintf("absence:%s:%s", absence.StudentID, absence.AttendanceDate.Format("2006-01-02"))
		fresh, err := j.store.MarkProcessed(ctx, key, absenceReminderTTL)
		if err != nil {
			return fmt.Errorf("marking reminder key: %w", err)
		}
		if !fresh {
			continue
		}

		student, err := j.studentRepo.FindByID(ctx, absence.StudentID)
		if err != nil {
			j.logger.Error("looking up absent student",
				zap.String("student_id", absence.StudentID.String()),
				zap.Error(err),
			)
			continue
		}
		if !student.Guardian.HasEmail() {
			continue
		}

		subject := fmt.Sprintf("Unjustified absence of %s", student.FullName())
		body := fmt.Sprintf(
			"Dear %s,\n\n%s was marked absent on %s and no justification has been received. Please submit one through the portal or contact the school.",
			student.Guardian.Name, student.FullName(), absence.AttendanceDate.Format("2006-01-02"),
		)
		j.notifier.SendEmail(ctx, student.Guardian.Email, subject, body, "ATTENDANCE", &absence.ID)
		sent++
	}

	j.logger.Info("absence reminders sent",
		zap.Int("absences", len(absences)),
		zap.Int("reminders", sent),
	)
	return nil
}

var _ scheduler.Job = (*AbsenceReminderJob)(nil)
