package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/easygo-schools/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Job is a unit of periodic work. The scheduler asks each job whether it is
// due on every tick; a due job runs once and its run time is recorded so the
// same occurrence is not started twice.
type Job interface {
	Name() string
	// Due reports whether the job should run now, given its last run time.
	// lastRun is the zero time when the job has never run in this process.
	Due(now, lastRun time.Time) bool
	Run(ctx context.Context) error
}

// Scheduler drives the registered jobs off a single ticker. Job failures are
// logged and never stop the loop or the other jobs.
type Scheduler struct {
	cfg    config.SchedulerConfig
	jobs   []Job
	logger *zap.Logger

	mu      sync.Mutex
	lastRun map[string]time.Time
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewScheduler creates a scheduler for the given jobs
func NewScheduler(cfg config.SchedulerConfig, logger *zap.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		jobs:    jobs,
		logger:  logger,
		lastRun: make(map[string]time.Time),
	}
}

// Start begins the scheduling loop. It returns immediately; the loop runs
// until Stop is called or the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || !s.cfg.Enabled {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("scheduler started",
		zap.Duration("tick_interval", s.cfg.TickInterval),
		zap.Int("jobs", len(s.jobs)),
	)
}

// Stop halts the scheduling loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.runDue(ctx, now)
		}
	}
}

// RunDueNow checks and runs due jobs immediately, outside the ticker.
// Used by tests and by operators triggering a manual pass.
func (s *Scheduler) RunDueNow(ctx context.Context, now time.Time) {
	s.runDue(ctx, now)
}

func (s *Scheduler) runDue(ctx context.Context, now time.Time) {
	for _, job := range s.jobs {
		s.mu.Lock()
		last := s.lastRun[job.Name()]
		s.mu.Unlock()

		if !job.Due(now, last) {
			continue
		}

		s.mu.Lock()
		s.lastRun[job.Name()] = now
		s.mu.Unlock()

		s.runOne(ctx, job)
	}
}

func (s *Scheduler) runOne(ctx context.Context, job Job) {
	jobCtx := ctx
	if s.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, s.cfg.JobTimeout)
		defer cancel()
	}

	started := time.Now()
	s.logger.Info("job started", zap.String("job", job.Name()))

	if err := job.Run(jobCtx); err != nil {
		s.logger.Error("job failed",
			zap.String("job", job.Name()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("job completed",
		zap.String("job", job.Name()),
		zap.Duration("elapsed", time.Since(started)),
	)
}
