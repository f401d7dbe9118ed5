package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the board or owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByBoard retrieves all tasks on the given board, newest first.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)

	// ListUpcoming retrieves the owner's pending tasks whose due date falls
	// in [from, until], ordered by due date ascending.
	ListUpcoming(ctx context.Context, ownerID uuid.UUID, from, until time.Time) ([]*domain.Task, error)

	// Update persists all mutable task fields, including the reminder
	// timestamp and the reminder-sent flag. Callers are responsible for
	// applying the domain's reminder-reset rule (Task.SetReminder) before
	// saving. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindDueReminders retrieves every pending task whose reminder has not
	// been sent and falls inside [now, windowEnd]. No ordering is guaranteed.
	FindDueReminders(ctx context.Context, now, windowEnd time.Time) ([]*domain.Task, error)

	// MarkReminderSent flips the reminder-sent flag for the given task.
	// The update is conditional on the flag still being false, so a
	// concurrent scan or task update cannot produce a double mark.
	// Returns ErrUpdateFailed if no row was updated.
	MarkReminderSent(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
