package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReminderOutcome classifies the result of one reminder delivery attempt.
type ReminderOutcome string

// Possible reminder outcomes
const (
	// ReminderDelivered: the email was sent and the task marked sent.
	ReminderDelivered ReminderOutcome = "delivered"

	// ReminderSkippedNoRecipient: the owner is missing or has no email
	// address. The task is left untouched; this is a data gap, not a
	// transient fault, so no retry follows.
	ReminderSkippedNoRecipient ReminderOutcome = "skipped_no_recipient"

	// ReminderSendFailed: the mail transport returned an error or timed
	// out. The task stays eligible for the next scan.
	ReminderSendFailed ReminderOutcome = "send_failed"

	// ReminderMarkFailed: the email went out but persisting the sent flag
	// failed. The next scan re-sends, which is the accepted at-least-once
	// behavior; this outcome is kept distinct from send failures so the
	// duplicate-send risk is visible operationally.
	ReminderMarkFailed ReminderOutcome = "mark_failed"
)

// ReminderEvent records the outcome of a single reminder delivery attempt.
type ReminderEvent struct {
	// TaskID identifies the task the reminder belongs to.
	TaskID uuid.UUID `json:"task_id"`

	// UserID identifies the task owner, when resolved.
	UserID uuid.UUID `json:"user_id,omitempty"`

	// Email is the resolved recipient address, when any.
	Email string `json:"email,omitempty"`

	// Outcome classifies the attempt.
	Outcome ReminderOutcome `json:"outcome"`

	// Error carries the failure detail for failed outcomes.
	Error string `json:"error,omitempty"`

	// OccurredAt is the timestamp when the outcome was recorded.
	OccurredAt time.Time `json:"occurred_at"`
}

// ReminderHandler defines an interface for components that consume
// reminder delivery events.
type ReminderHandler interface {
	// HandleReminderEvent processes the given event within the provided
	// context. Returns an error if the event cannot be handled.
	HandleReminderEvent(ctx context.Context, event ReminderEvent) error
}

// ReminderEmitter defines an interface for components that publish
// reminder delivery events. This lets the scanner report outcomes without
// direct knowledge of handlers.
type ReminderEmitter interface {
	// EmitReminderEvent publishes the given event to all registered handlers.
	EmitReminderEvent(ctx context.Context, event ReminderEvent)
}
