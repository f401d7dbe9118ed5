package reminder

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/config"
)

func newSchedulerScanner(t *testing.T) *Scanner {
	t.Helper()

	scanner, err := NewScanner(
		&fakeTaskSource{},
		&fakeOwnerSource{},
		&fakeSender{},
		&recordingEmitter{},
		nil,
		5*time.Minute,
		30*time.Second,
		slog.Default(),
	)
	require.NoError(t, err)
	return scanner
}

func TestNewScheduler(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		cfg := config.ReminderConfig{
			ScanIntervalSeconds: 60,
			LookaheadMinutes:    5,
			SendTimeoutSeconds:  30,
		}
		sched, err := NewScheduler(newSchedulerScanner(t), cfg, slog.Default())
		require.NoError(t, err)
		require.NotNil(t, sched)
	})

	t.Run("nil scanner", func(t *testing.T) {
		t.Parallel()

		cfg := config.ReminderConfig{
			ScanIntervalSeconds: 60,
			LookaheadMinutes:    5,
			SendTimeoutSeconds:  30,
		}
		_, err := NewScheduler(nil, cfg, slog.Default())
		assert.Error(t, err)
	})

	t.Run("lookahead shorter than cadence", func(t *testing.T) {
		t.Parallel()

		cfg := config.ReminderConfig{
			ScanIntervalSeconds: 600,
			LookaheadMinutes:    5,
			SendTimeoutSeconds:  30,
		}
		_, err := NewScheduler(newSchedulerScanner(t), cfg, slog.Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lookahead")
	})
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	cfg := config.ReminderConfig{
		ScanIntervalSeconds: 60,
		LookaheadMinutes:    5,
		SendTimeoutSeconds:  30,
	}
	sched, err := NewScheduler(newSchedulerScanner(t), cfg, slog.Default())
	require.NoError(t, err)

	sched.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, sched.Stop(ctx))
}
