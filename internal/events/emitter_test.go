package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures every event it receives and can be configured
// to return an error.
type recordingHandler struct {
	mu         sync.Mutex
	events     []ReminderEvent
	handlerErr error
}

func (h *recordingHandler) HandleReminderEvent(_ context.Context, event ReminderEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.handlerErr
}

func (h *recordingHandler) Events() []ReminderEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ReminderEvent, len(h.events))
	copy(out, h.events)
	return out
}

func testEvent(outcome ReminderOutcome) ReminderEvent {
	return ReminderEvent{
		TaskID:     uuid.New(),
		UserID:     uuid.New(),
		Email:      "owner@example.com",
		Outcome:    outcome,
		OccurredAt: time.Now().UTC(),
	}
}

func TestInMemoryReminderEmitter_EmitReminderEvent(t *testing.T) {
	t.Parallel()

	t.Run("delivers event to all registered handlers", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryReminderEmitter(slog.Default())
		first := &recordingHandler{}
		second := &recordingHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event := testEvent(ReminderDelivered)
		emitter.EmitReminderEvent(context.Background(), event)

		require.Len(t, first.Events(), 1)
		require.Len(t, second.Events(), 1)
		assert.Equal(t, event.TaskID, first.Events()[0].TaskID)
		assert.Equal(t, ReminderDelivered, second.Events()[0].Outcome)
	})

	t.Run("handler error does not stop remaining handlers", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryReminderEmitter(slog.Default())
		failing := &recordingHandler{handlerErr: errors.New("handler boom")}
		healthy := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(healthy)

		emitter.EmitReminderEvent(context.Background(), testEvent(ReminderSendFailed))

		assert.Len(t, failing.Events(), 1)
		assert.Len(t, healthy.Events(), 1)
	})

	t.Run("no handlers is a no-op", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryReminderEmitter(slog.Default())
		emitter.EmitReminderEvent(context.Background(), testEvent(ReminderDelivered))
	})
}

func TestLoggingReminderHandler_HandleReminderEvent(t *testing.T) {
	t.Parallel()

	handler := NewLoggingReminderHandler(slog.Default())

	for _, outcome := range []ReminderOutcome{
		ReminderDelivered,
		ReminderSkippedNoRecipient,
		ReminderSendFailed,
		ReminderMarkFailed,
	} {
		event := testEvent(outcome)
		event.Error = "detail"
		err := handler.HandleReminderEvent(context.Background(), event)
		assert.NoError(t, err)
	}
}
