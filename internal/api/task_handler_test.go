package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/domain"
)

func taskRoutes(h *TaskHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/api/tasks", h.CreateTask)
		r.Get("/api/boards/{boardId}/tasks", h.ListBoardTasks)
		r.Get("/api/tasks/upcoming", h.ListUpcomingTasks)
		r.Put("/api/tasks/{taskId}", h.UpdateTask)
		r.Delete("/api/tasks/{taskId}", h.DeleteTask)
	}
}

type taskFixture struct {
	handler *TaskHandler
	tasks   *fakeTaskStore
	boards  *fakeBoardStore
	owner   uuid.UUID
	board   *domain.Board
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	tasks := newFakeTaskStore()
	boards := newFakeBoardStore()
	owner := uuid.New()
	board := seedBoard(t, boards, owner, "Work")

	return &taskFixture{
		handler: NewTaskHandler(tasks, boards, nil),
		tasks:   tasks,
		boards:  boards,
		owner:   owner,
		board:   board,
	}
}

func (f *taskFixture) seedTask(t *testing.T, title string) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(f.board.ID, f.owner, title, "")
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(context.Background(), task))
	return task
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Parallel()

	t.Run("creates task on own board", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
		reminder := due.Add(-time.Hour)

		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodPost, "/api/tasks",
			CreateTaskRequest{
				BoardID:    f.board.ID,
				Title:      "Prepare slides",
				Priority:   "high",
				DueDate:    &due,
				ReminderAt: &reminder,
				Tags:       []string{"work", "talk"},
			})

		require.Equal(t, http.StatusCreated, w.Code)

		var task domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.False(t, task.ReminderSent)
		require.NotNil(t, task.ReminderAt)
		assert.True(t, task.ReminderAt.Equal(reminder))
	})

	t.Run("cannot create task on another user's board", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		w := serveAs(t, uuid.New(), taskRoutes(f.handler), http.MethodPost, "/api/tasks",
			CreateTaskRequest{BoardID: f.board.ID, Title: "Sneaky"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects unknown board", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodPost, "/api/tasks",
			CreateTaskRequest{BoardID: uuid.New(), Title: "Orphan"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects invalid priority", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodPost, "/api/tasks",
			CreateTaskRequest{BoardID: f.board.ID, Title: "Task", Priority: "urgent"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_ListBoardTasks(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	f.seedTask(t, "one")
	f.seedTask(t, "two")

	t.Run("owner sees board tasks", func(t *testing.T) {
		t.Parallel()

		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodGet,
			"/api/boards/"+f.board.ID.String()+"/tasks", nil)

		require.Equal(t, http.StatusOK, w.Code)

		var tasks []*domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
		assert.Len(t, tasks, 2)
	})

	t.Run("other user gets 404", func(t *testing.T) {
		t.Parallel()

		w := serveAs(t, uuid.New(), taskRoutes(f.handler), http.MethodGet,
			"/api/boards/"+f.board.ID.String()+"/tasks", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_ListUpcomingTasks(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)

	soon := f.seedTask(t, "due soon")
	dueSoon := time.Now().Add(24 * time.Hour).UTC()
	soon.DueDate = &dueSoon

	far := f.seedTask(t, "due far")
	dueFar := time.Now().Add(30 * 24 * time.Hour).UTC()
	far.DueDate = &dueFar

	done := f.seedTask(t, "completed")
	done.DueDate = &dueSoon
	done.Status = domain.TaskStatusCompleted

	w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodGet, "/api/tasks/upcoming", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var tasks []*domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "due soon", tasks[0].Title)
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Parallel()

	t.Run("rescheduling a sent reminder re-arms it", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "with reminder")
		oldReminder := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		task.SetReminder(&oldReminder)
		task.ReminderSent = true

		newReminder := oldReminder.Add(2 * time.Hour)
		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodPut, "/api/tasks/"+task.ID.String(),
			UpdateTaskRequest{Title: "with reminder", ReminderAt: &newReminder})

		require.Equal(t, http.StatusOK, w.Code)

		updated, err := f.tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.False(t, updated.ReminderSent, "reschedule must re-arm the reminder")
		require.NotNil(t, updated.ReminderAt)
		assert.True(t, updated.ReminderAt.Equal(newReminder))
	})

	t.Run("unchanged reminder keeps sent state", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "with reminder")
		reminder := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		task.SetReminder(&reminder)
		task.ReminderSent = true

		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodPut, "/api/tasks/"+task.ID.String(),
			UpdateTaskRequest{Title: "renamed", ReminderAt: &reminder})

		require.Equal(t, http.StatusOK, w.Code)

		updated, err := f.tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.True(t, updated.ReminderSent, "same reminder must not re-arm")
		assert.Equal(t, "renamed", updated.Title)
	})

	t.Run("marking completed", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "to finish")

		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodPut, "/api/tasks/"+task.ID.String(),
			UpdateTaskRequest{Title: "to finish", Status: "completed"})

		require.Equal(t, http.StatusOK, w.Code)

		updated, err := f.tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	})

	t.Run("other user's task responds 404", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "mine")

		w := serveAs(t, uuid.New(), taskRoutes(f.handler), http.MethodPut, "/api/tasks/"+task.ID.String(),
			UpdateTaskRequest{Title: "hijack"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes task", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "disposable")

		w := serveAs(t, f.owner, taskRoutes(f.handler), http.MethodDelete, "/api/tasks/"+task.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		_, err := f.tasks.GetByID(context.Background(), task.ID)
		assert.Error(t, err)
	})

	t.Run("other user's task responds 404", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "mine")

		w := serveAs(t, uuid.New(), taskRoutes(f.handler), http.MethodDelete, "/api/tasks/"+task.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		_, err := f.tasks.GetByID(context.Background(), task.ID)
		assert.NoError(t, err, "task must survive a failed delete")
	})
}
