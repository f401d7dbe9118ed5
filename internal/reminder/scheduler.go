package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/taskflow/taskflow-api/internal/config"
)

// Scheduler runs the scanner on a fixed cadence using a cron runner.
// SkipIfStillRunning guarantees scans never overlap: a slow scan causes the
// next tick to be dropped rather than queued or run concurrently.
type Scheduler struct {
	cron    *cron.Cron
	scanner *Scanner
	cadence time.Duration
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler for the given scanner. The lookahead
// window must be at least as long as the scan cadence, otherwise reminders
// could fall between two consecutive scans and never be delivered.
func NewScheduler(scanner *Scanner, cfg config.ReminderConfig, log *slog.Logger) (*Scheduler, error) {
	if scanner == nil {
		return nil, fmt.Errorf("scanner cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "reminder_scheduler"))

	if cfg.Lookahead() < cfg.ScanInterval() {
		return nil, fmt.Errorf("reminder lookahead (%s) must be at least the scan interval (%s)",
			cfg.Lookahead(), cfg.ScanInterval())
	}

	cl := &cronLogger{logger: log}
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cl),
		cron.Recover(cl),
	))

	s := &Scheduler{
		cron:    c,
		scanner: scanner,
		cadence: cfg.ScanInterval(),
		logger:  log,
	}

	spec := fmt.Sprintf("@every %ds", cfg.ScanIntervalSeconds)
	if _, err := c.AddFunc(spec, s.runScan); err != nil {
		return nil, fmt.Errorf("failed to schedule reminder scan: %w", err)
	}

	return s, nil
}

// Start begins periodic scanning. The first scan happens one cadence after
// Start, not immediately.
func (s *Scheduler) Start() {
	s.logger.Info("starting reminder scheduler",
		slog.Duration("cadence", s.cadence))
	s.cron.Start()
}

// Stop halts scheduling and waits for an in-flight scan to finish or the
// context to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("stopping reminder scheduler")

	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		s.logger.Info("reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("timed out waiting for in-flight scan to finish")
		return ctx.Err()
	}
}

func (s *Scheduler) runScan() {
	if _, err := s.scanner.Scan(context.Background()); err != nil {
		s.logger.Error("reminder scan failed",
			slog.String("error", err.Error()))
	}
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err}, keysAndValues...)
	l.logger.Error(msg, args...)
}
