package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// InMemoryReminderEmitter is a simple implementation of the ReminderEmitter
// interface that stores registered handlers in memory and dispatches events
// to them synchronously.
type InMemoryReminderEmitter struct {
	handlers []ReminderHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryReminderEmitter creates a new instance of InMemoryReminderEmitter.
func NewInMemoryReminderEmitter(logger *slog.Logger) *InMemoryReminderEmitter {
	return &InMemoryReminderEmitter{
		handlers: make([]ReminderHandler, 0),
		logger:   logger.With("component", "reminder_emitter"),
	}
}

// RegisterHandler adds a new handler to receive reminder events.
func (e *InMemoryReminderEmitter) RegisterHandler(handler ReminderHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered new reminder handler", "handler_count", len(e.handlers))
}

// EmitReminderEvent publishes the given event to all registered handlers.
// A failing handler never blocks the others or the emitting scan; handler
// errors are logged and swallowed.
func (e *InMemoryReminderEmitter) EmitReminderEvent(ctx context.Context, event ReminderEvent) {
	e.mu.RLock()
	handlers := make([]ReminderHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	for i, handler := range handlers {
		if err := handler.HandleReminderEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process reminder event",
				"error", err,
				"handler_index", i,
				"task_id", event.TaskID,
				"outcome", event.Outcome)
		}
	}
}

// LoggingReminderHandler is the default handler: it writes each delivery
// outcome to the structured log at a level matching its severity.
type LoggingReminderHandler struct {
	logger *slog.Logger
}

// NewLoggingReminderHandler creates a LoggingReminderHandler.
func NewLoggingReminderHandler(logger *slog.Logger) *LoggingReminderHandler {
	return &LoggingReminderHandler{
		logger: logger.With("component", "reminder_log"),
	}
}

// HandleReminderEvent implements ReminderHandler.
func (h *LoggingReminderHandler) HandleReminderEvent(ctx context.Context, event ReminderEvent) error {
	attrs := []any{
		"task_id", event.TaskID,
		"outcome", event.Outcome,
	}
	if event.UserID != uuid.Nil {
		attrs = append(attrs, "user_id", event.UserID)
	}
	if event.Error != "" {
		attrs = append(attrs, "error", event.Error)
	}

	switch event.Outcome {
	case ReminderDelivered:
		h.logger.InfoContext(ctx, "reminder delivered", attrs...)
	case ReminderSkippedNoRecipient:
		h.logger.WarnContext(ctx, "reminder skipped, no recipient", attrs...)
	case ReminderSendFailed:
		h.logger.ErrorContext(ctx, "reminder send failed", attrs...)
	case ReminderMarkFailed:
		h.logger.ErrorContext(ctx, "reminder sent but mark failed, duplicate send possible", attrs...)
	default:
		h.logger.InfoContext(ctx, "reminder event", attrs...)
	}

	return nil
}
