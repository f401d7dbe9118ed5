package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/api/shared"
	"github.com/taskflow/taskflow-api/internal/domain"
)

// serveAs routes the request through a chi mux so URL params resolve, with
// the given user injected into the context as the auth middleware would.
func serveAs(t *testing.T, userID uuid.UUID, register func(chi.Router), method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		req = req.WithContext(ctx)
	}

	router := chi.NewRouter()
	register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func boardRoutes(h *BoardHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/api/boards", h.CreateBoard)
		r.Get("/api/boards", h.ListBoards)
		r.Get("/api/boards/{boardId}", h.GetBoard)
		r.Put("/api/boards/{boardId}", h.UpdateBoard)
		r.Delete("/api/boards/{boardId}", h.DeleteBoard)
	}
}

func seedBoard(t *testing.T, boards *fakeBoardStore, ownerID uuid.UUID, title string) *domain.Board {
	t.Helper()

	board, err := domain.NewBoard(ownerID, title, "", "")
	require.NoError(t, err)
	require.NoError(t, boards.Create(context.Background(), board))
	return board
}

func TestBoardHandler_CreateBoard(t *testing.T) {
	t.Parallel()

	t.Run("creates board with default color", func(t *testing.T) {
		t.Parallel()

		boards := newFakeBoardStore()
		h := NewBoardHandler(boards, nil)
		userID := uuid.New()

		w := serveAs(t, userID, boardRoutes(h), http.MethodPost, "/api/boards",
			CreateBoardRequest{Title: "Chores"})

		require.Equal(t, http.StatusCreated, w.Code)

		var board domain.Board
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
		assert.Equal(t, "Chores", board.Title)
		assert.Equal(t, userID, board.OwnerID)
		assert.Equal(t, domain.DefaultBoardColor, board.Color)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		t.Parallel()

		h := NewBoardHandler(newFakeBoardStore(), nil)

		w := serveAs(t, uuid.New(), boardRoutes(h), http.MethodPost, "/api/boards",
			CreateBoardRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		t.Parallel()

		h := NewBoardHandler(newFakeBoardStore(), nil)

		w := serveAs(t, uuid.Nil, boardRoutes(h), http.MethodPost, "/api/boards",
			CreateBoardRequest{Title: "Chores"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBoardHandler_ListBoards(t *testing.T) {
	t.Parallel()

	boards := newFakeBoardStore()
	owner := uuid.New()
	other := uuid.New()
	seedBoard(t, boards, owner, "Mine")
	seedBoard(t, boards, other, "Theirs")

	h := NewBoardHandler(boards, nil)

	w := serveAs(t, owner, boardRoutes(h), http.MethodGet, "/api/boards", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []BoardSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Mine", resp[0].Title)
}

func TestBoardHandler_GetBoard(t *testing.T) {
	t.Parallel()

	boards := newFakeBoardStore()
	owner := uuid.New()
	board := seedBoard(t, boards, owner, "Mine")
	h := NewBoardHandler(boards, nil)

	t.Run("owner can fetch", func(t *testing.T) {
		t.Parallel()

		w := serveAs(t, owner, boardRoutes(h), http.MethodGet, "/api/boards/"+board.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other user's board responds 404", func(t *testing.T) {
		t.Parallel()

		w := serveAs(t, uuid.New(), boardRoutes(h), http.MethodGet, "/api/boards/"+board.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown board responds 404", func(t *testing.T) {
		t.Parallel()

		w := serveAs(t, owner, boardRoutes(h), http.MethodGet, "/api/boards/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id responds 400", func(t *testing.T) {
		t.Parallel()

		w := serveAs(t, owner, boardRoutes(h), http.MethodGet, "/api/boards/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBoardHandler_UpdateBoard(t *testing.T) {
	t.Parallel()

	t.Run("owner updates title and color", func(t *testing.T) {
		t.Parallel()

		boards := newFakeBoardStore()
		owner := uuid.New()
		board := seedBoard(t, boards, owner, "Old title")
		h := NewBoardHandler(boards, nil)

		w := serveAs(t, owner, boardRoutes(h), http.MethodPut, "/api/boards/"+board.ID.String(),
			UpdateBoardRequest{Title: "New title", Color: "#112233"})

		require.Equal(t, http.StatusOK, w.Code)

		updated, err := boards.GetByID(context.Background(), board.ID)
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "#112233", updated.Color)
	})

	t.Run("other user cannot update", func(t *testing.T) {
		t.Parallel()

		boards := newFakeBoardStore()
		board := seedBoard(t, boards, uuid.New(), "Mine")
		h := NewBoardHandler(boards, nil)

		w := serveAs(t, uuid.New(), boardRoutes(h), http.MethodPut, "/api/boards/"+board.ID.String(),
			UpdateBoardRequest{Title: "Hijacked"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBoardHandler_DeleteBoard(t *testing.T) {
	t.Parallel()

	boards := newFakeBoardStore()
	owner := uuid.New()
	board := seedBoard(t, boards, owner, "Disposable")
	h := NewBoardHandler(boards, nil)

	w := serveAs(t, owner, boardRoutes(h), http.MethodDelete, "/api/boards/"+board.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := boards.GetByID(context.Background(), board.ID)
	assert.Error(t, err)
}
