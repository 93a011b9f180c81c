package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/application/hr"
	"github.com/easygo-schools/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// payrollHour keeps payroll generation out of the school's busy hours
const payrollHour = 6

// PayrollGenerationJob drafts salary slips for all active employees for the
// month that just ended. Employees with an existing slip for the period are
// skipped, so a re-run never duplicates slips.
type PayrollGenerationJob struct {
	scheduler.MonthlyOn
	payroll *hr.PayrollService
	logger  *zap.Logger
}

// NewPayrollGenerationJob creates the monthly payroll draft job
func NewPayrollGenerationJob(day int, payroll *hr.PayrollService, logger *zap.Logger) *PayrollGenerationJob {
	return &PayrollGenerationJob{
		MonthlyOn: scheduler.MonthlyOn{Day: day, Hour: payrollHour},
		payroll:   payroll,
		logger:    logger,
	}
}

// Name identifies the job in logs
func (j *PayrollGenerationJob) Name() string { return "payroll-generation" }

// Run drafts slips for the previous month
func (j *PayrollGenerationJob) Run(ctx context.Context) error {
	period := time.Now().AddDate(0, -1, 0).Format("2006-01")
	created, err := j.payroll.GenerateSlipsForPeriod(ctx, period)
	if err != nil {
		return fmt.Errorf("generating payroll drafts for %s: %w", period, err)
	}
	j.logger.Info("payroll drafts created",
		zap.String("pay_period", period),
		zap.Int("created", created),
	)
	return nil
}

var _ scheduler.Job = (*PayrollGenerationJob)(nil)
