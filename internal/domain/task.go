package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the completion state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskPriority represents the urgency of a task
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskBoardID  = errors.New("task board ID cannot be empty")
	ErrEmptyTaskOwnerID  = errors.New("task owner ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
)

// Task is a unit of work on a board. It carries the optional due and
// reminder timestamps plus the reminder-sent flag that drives the
// background reminder scanner.
type Task struct {
	ID           uuid.UUID    `json:"id"`
	BoardID      uuid.UUID    `json:"board_id"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	ReminderAt   *time.Time   `json:"reminder_at,omitempty"`
	ReminderSent bool         `json:"reminder_sent"`
	Tags         []string     `json:"tags"`
	Notes        string       `json:"notes"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewTask creates a new pending, medium-priority Task on the given board.
// Returns an error if validation fails.
func NewTask(boardID, ownerID uuid.UUID, title, description string) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		BoardID:     boardID,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		Priority:    TaskPriorityMedium,
		Tags:        []string{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.BoardID == uuid.Nil {
		return ErrEmptyTaskBoardID
	}

	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwnerID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if !isValidTaskPriority(t.Priority) {
		return ErrInvalidPriority
	}

	return nil
}

// SetReminder assigns a new reminder target. A changed target always
// re-arms the reminder: ReminderSent is reset so the scanner delivers a
// fresh notification for the new time. Clearing the reminder also clears
// the flag.
func (t *Task) SetReminder(at *time.Time) {
	if equalTimePtr(t.ReminderAt, at) {
		return
	}
	t.ReminderAt = at
	t.ReminderSent = false
}

// isValidTaskStatus checks if the given status is one of the defined values.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// isValidTaskPriority checks if the given priority is one of the defined values.
func isValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
