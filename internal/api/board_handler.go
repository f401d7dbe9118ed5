package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/api/shared"
	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
	"github.com/taskflow/taskflow-api/internal/store"
)

// BoardHandler handles board-related API requests.
type BoardHandler struct {
	boardStore store.BoardStore
	logger     *slog.Logger
}

// NewBoardHandler creates a new BoardHandler with the given dependencies.
func NewBoardHandler(boardStore store.BoardStore, log *slog.Logger) *BoardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &BoardHandler{
		boardStore: boardStore,
		logger:     log.With(slog.String("component", "board_handler")),
	}
}

// CreateBoard handles POST /api/boards.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	board, err := domain.NewBoard(userID, req.Title, req.Description, req.Color)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid board data: "+err.Error())
		return
	}

	if err := h.boardStore.Create(r.Context(), board); err != nil {
		log.Error("failed to create board", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, board)
}

// ListBoards handles GET /api/boards. Boards come back with task counts.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	summaries, err := h.boardStore.ListByOwner(r.Context(), userID)
	if err != nil {
		log.Error("failed to list boards", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]BoardSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, BoardSummaryResponse{
			Board:          s.Board,
			TaskCount:      s.TaskCount,
			CompletedCount: s.CompletedCount,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetBoard handles GET /api/boards/{boardId}.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	userID, boardID, ok := handleUserIDAndPathUUID(w, r, "boardId", h.logger)
	if !ok {
		return
	}

	board, err := h.fetchOwnedBoard(w, r, userID, boardID)
	if err != nil {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, board)
}

// UpdateBoard handles PUT /api/boards/{boardId}.
func (h *BoardHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, boardID, ok := handleUserIDAndPathUUID(w, r, "boardId", h.logger)
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	board, err := h.fetchOwnedBoard(w, r, userID, boardID)
	if err != nil {
		return
	}

	board.Title = req.Title
	board.Description = req.Description
	if req.Color != "" {
		board.Color = req.Color
	}

	if err := h.boardStore.Update(r.Context(), board); err != nil {
		log.Error("failed to update board",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, board)
}

// DeleteBoard handles DELETE /api/boards/{boardId}. Deleting a board
// cascades to its tasks.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, boardID, ok := handleUserIDAndPathUUID(w, r, "boardId", h.logger)
	if !ok {
		return
	}

	if _, err := h.fetchOwnedBoard(w, r, userID, boardID); err != nil {
		return
	}

	if err := h.boardStore.Delete(r.Context(), boardID); err != nil {
		log.Error("failed to delete board",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fetchOwnedBoard loads the board and verifies ownership. A board owned by
// another user responds 404, not 403, so board IDs cannot be probed. On
// error a response has already been written.
func (h *BoardHandler) fetchOwnedBoard(
	w http.ResponseWriter,
	r *http.Request,
	userID, boardID uuid.UUID,
) (*domain.Board, error) {
	board, err := h.boardStore.GetByID(r.Context(), boardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, err
	}

	if board.OwnerID != userID {
		HandleAPIError(w, r, store.ErrBoardNotFound, "")
		return nil, store.ErrBoardNotFound
	}

	return board, nil
}
