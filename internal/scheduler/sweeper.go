package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/middleware"
)

// SweepRunner runs the overdue sweep on a fixed interval until its context ends.
// Overlapping with a sweep started elsewhere is safe; a tick that arrives while a run is
// still in progress is dropped by the ticker.
type SweepRunner struct {
	sweeper    portssvc.OverdueSweepSvc
	interval   time.Duration
	runAtStart bool
	logger     *slog.Logger
}

// SweepRunnerOption configures a SweepRunner.
type SweepRunnerOption func(*SweepRunner)

// WithRunAtStart makes the runner sweep once immediately instead of waiting for the first tick.
func WithRunAtStart() SweepRunnerOption {
	return func(r *SweepRunner) {
		r.runAtStart = true
	}
}

// WithLogger sets the base logger of the runner.
func WithLogger(logger *slog.Logger) SweepRunnerOption {
	return func(r *SweepRunner) {
		r.logger = logger
	}
}

func NewSweepRunner(sweeper portssvc.OverdueSweepSvc, interval time.Duration, opts ...SweepRunnerOption) *SweepRunner {
	r := &SweepRunner{
		sweeper:  sweeper,
		interval: interval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(slog.String("job", "overdue-sweep"))
	return r
}

// Run blocks until ctx is done. A non-positive interval returns immediately.
func (r *SweepRunner) Run(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("Scheduled overdue sweep disabled")
		return
	}
	r.logger.Info("Starting scheduled overdue sweep", slog.String("interval", r.interval.String()))

	if r.runAtStart {
		r.runOnce(ctx)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Stopping scheduled overdue sweep")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *SweepRunner) runOnce(ctx context.Context) {
	ctx = middleware.WithLogger(ctx, r.logger)
	started := time.Now()

	// zero now: the sweeper reads its own clock
	result, err := r.sweeper.SweepOverdue(ctx, time.Time{})
	if err != nil {
		if errors.Is(err, apperrors.ErrCancelled) {
			r.logger.Warn("Overdue sweep interrupted", slog.String("error", err.Error()))
			return
		}
		r.logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Info("Overdue sweep finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("transitioned", len(result.Transitioned)),
		slog.Int("failed", len(result.Failed)),
		slog.Int("reminders_sent", result.RemindersSent),
		slog.Int("reminder_failures", result.ReminderFailures),
		slog.Duration("took", time.Since(started)))
}
