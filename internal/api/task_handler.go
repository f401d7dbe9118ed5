package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/api/shared"
	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
	"github.com/taskflow/taskflow-api/internal/store"
)

// upcomingWindow is how far ahead the upcoming-tasks endpoint looks.
const upcomingWindow = 7 * 24 * time.Hour

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskStore  store.TaskStore
	boardStore store.BoardStore
	logger     *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, boardStore store.BoardStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskStore:  taskStore,
		boardStore: boardStore,
		logger:     log.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks. The target board must belong to the
// authenticated user.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if !h.boardOwnedBy(w, r, req.BoardID, userID) {
		return
	}

	task, err := domain.NewTask(req.BoardID, userID, req.Title, req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if req.Priority != "" {
		task.Priority = domain.TaskPriority(req.Priority)
	}
	task.DueDate = req.DueDate
	task.SetReminder(req.ReminderAt)
	task.Tags = req.Tags
	task.Notes = req.Notes

	if err := task.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// ListBoardTasks handles GET /api/boards/{boardId}/tasks.
func (h *TaskHandler) ListBoardTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, boardID, ok := handleUserIDAndPathUUID(w, r, "boardId", h.logger)
	if !ok {
		return
	}

	if !h.boardOwnedBy(w, r, boardID, userID) {
		return
	}

	tasks, err := h.taskStore.ListByBoard(r.Context(), boardID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// ListUpcomingTasks handles GET /api/tasks/upcoming: the user's pending
// tasks due within the next seven days, soonest first.
func (h *TaskHandler) ListUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	now := time.Now().UTC()
	tasks, err := h.taskStore.ListUpcoming(r.Context(), userID, now, now.Add(upcomingWindow))
	if err != nil {
		log.Error("failed to list upcoming tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateTask handles PUT /api/tasks/{taskId}. Rescheduling or clearing the
// reminder re-arms it for delivery; an unchanged reminder keeps its sent
// state.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskId", h.logger)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.fetchOwnedTask(w, r, userID, taskID)
	if err != nil {
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	if req.Status != "" {
		task.Status = domain.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = domain.TaskPriority(req.Priority)
	}
	task.DueDate = req.DueDate
	task.SetReminder(req.ReminderAt)
	task.Tags = req.Tags
	task.Notes = req.Notes

	if err := task.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{taskId}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskId", h.logger)
	if !ok {
		return
	}

	if _, err := h.fetchOwnedTask(w, r, userID, taskID); err != nil {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID); err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fetchOwnedTask loads the task and verifies ownership. Another user's task
// responds 404. On error a response has already been written.
func (h *TaskHandler) fetchOwnedTask(
	w http.ResponseWriter,
	r *http.Request,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, err
	}

	if task.OwnerID != userID {
		HandleAPIError(w, r, store.ErrTaskNotFound, "")
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// boardOwnedBy verifies the board exists and belongs to the user, writing a
// 404 response otherwise.
func (h *TaskHandler) boardOwnedBy(w http.ResponseWriter, r *http.Request, boardID, userID uuid.UUID) bool {
	board, err := h.boardStore.GetByID(r.Context(), boardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	if board.OwnerID != userID {
		HandleAPIError(w, r, store.ErrBoardNotFound, "")
		return false
	}
	return true
}
