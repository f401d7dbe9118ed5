package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/events"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
	"github.com/taskflow/taskflow-api/internal/store"
)

// Sender delivers a reminder email for a task.
type Sender interface {
	SendTaskReminder(ctx context.Context, to string, task *domain.Task) error
}

// TaskSource is the slice of the task store the scanner needs.
// store.TaskStore satisfies it.
type TaskSource interface {
	FindDueReminders(ctx context.Context, now, windowEnd time.Time) ([]*domain.Task, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

// OwnerSource resolves task owners to their email addresses.
// store.UserStore satisfies it.
type OwnerSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// ScanStats summarizes one scan for logging and tests.
type ScanStats struct {
	Scanned   int
	Delivered int
	Skipped   int
	Failed    int
}

// Scanner finds due reminders and delivers them. One Scan call handles one
// window; failures on one task never stop delivery for the rest.
type Scanner struct {
	tasks       TaskSource
	owners      OwnerSource
	sender      Sender
	emitter     events.ReminderEmitter
	clock       Clock
	lookahead   time.Duration
	sendTimeout time.Duration
	logger      *slog.Logger
}

// NewScanner creates a Scanner. All dependencies are required except clock
// and log, which default to the system clock and the default logger.
func NewScanner(
	tasks TaskSource,
	owners OwnerSource,
	sender Sender,
	emitter events.ReminderEmitter,
	clock Clock,
	lookahead time.Duration,
	sendTimeout time.Duration,
	log *slog.Logger,
) (*Scanner, error) {
	if tasks == nil {
		return nil, errors.New("task source cannot be nil")
	}
	if owners == nil {
		return nil, errors.New("owner source cannot be nil")
	}
	if sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("emitter cannot be nil")
	}
	if lookahead <= 0 {
		return nil, errors.New("lookahead must be positive")
	}
	if sendTimeout <= 0 {
		return nil, errors.New("send timeout must be positive")
	}
	if clock == nil {
		clock = NewClock()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Scanner{
		tasks:       tasks,
		owners:      owners,
		sender:      sender,
		emitter:     emitter,
		clock:       clock,
		lookahead:   lookahead,
		sendTimeout: sendTimeout,
		logger:      log.With(slog.String("component", "reminder_scanner")),
	}, nil
}

// Scan runs one pass over the reminder window [now, now+lookahead].
// It returns an error only when the due-reminder query itself fails;
// per-task failures are reported through the event emitter and the stats.
func (s *Scanner) Scan(ctx context.Context) (ScanStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.clock.Now().UTC()
	windowEnd := now.Add(s.lookahead)

	due, err := s.tasks.FindDueReminders(ctx, now, windowEnd)
	if err != nil {
		log.Error("failed to query due reminders",
			slog.String("error", err.Error()),
			slog.Time("window_start", now),
			slog.Time("window_end", windowEnd))
		return ScanStats{}, fmt.Errorf("failed to query due reminders: %w", err)
	}

	stats := ScanStats{Scanned: len(due)}
	if len(due) == 0 {
		return stats, nil
	}

	log.Info("processing due reminders",
		slog.Int("count", len(due)),
		slog.Time("window_start", now),
		slog.Time("window_end", windowEnd))

	for _, task := range due {
		if ctx.Err() != nil {
			log.Warn("scan cancelled mid-window",
				slog.Int("remaining", stats.Scanned-stats.Delivered-stats.Skipped-stats.Failed))
			return stats, ctx.Err()
		}

		switch outcome := s.deliver(ctx, task); outcome {
		case events.ReminderDelivered:
			stats.Delivered++
		case events.ReminderSkippedNoRecipient:
			stats.Skipped++
		default:
			stats.Failed++
		}
	}

	log.Info("scan complete",
		slog.Int("scanned", stats.Scanned),
		slog.Int("delivered", stats.Delivered),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed))

	return stats, nil
}

// deliver handles a single task: resolve the owner, send the email, then
// mark the reminder sent. It emits one event describing the outcome.
func (s *Scanner) deliver(ctx context.Context, task *domain.Task) events.ReminderOutcome {
	event := events.ReminderEvent{
		TaskID:     task.ID,
		UserID:     task.OwnerID,
		OccurredAt: s.clock.Now().UTC(),
	}

	owner, err := s.owners.GetByID(ctx, task.OwnerID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			event.Outcome = events.ReminderSkippedNoRecipient
			event.Error = "task owner no longer exists"
		} else {
			event.Outcome = events.ReminderSendFailed
			event.Error = fmt.Sprintf("failed to resolve task owner: %v", err)
		}
		s.emitter.EmitReminderEvent(ctx, event)
		return event.Outcome
	}

	if owner.Email == "" {
		event.Outcome = events.ReminderSkippedNoRecipient
		event.Error = "task owner has no email address"
		s.emitter.EmitReminderEvent(ctx, event)
		return event.Outcome
	}
	event.Email = owner.Email

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	err = s.sender.SendTaskReminder(sendCtx, owner.Email, task)
	cancel()
	if err != nil {
		event.Outcome = events.ReminderSendFailed
		event.Error = err.Error()
		s.emitter.EmitReminderEvent(ctx, event)
		return event.Outcome
	}

	if err := s.tasks.MarkReminderSent(ctx, task.ID); err != nil {
		event.Outcome = events.ReminderMarkFailed
		event.Error = err.Error()
		s.emitter.EmitReminderEvent(ctx, event)
		return event.Outcome
	}

	event.Outcome = events.ReminderDelivered
	s.emitter.EmitReminderEvent(ctx, event)
	return event.Outcome
}
