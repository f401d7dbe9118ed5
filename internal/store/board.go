package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/domain"
)

// BoardSummary pairs a board with the task counts shown in board listings.
type BoardSummary struct {
	Board          domain.Board
	TaskCount      int
	CompletedCount int
}

// BoardStore defines the interface for board data persistence.
type BoardStore interface {
	// Create saves a new board to the store.
	// Returns validation errors from the domain Board if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, board *domain.Board) error

	// GetByID retrieves a board by its unique ID.
	// Returns ErrBoardNotFound if the board does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)

	// ListByOwner retrieves all boards belonging to the given user,
	// newest first, each with its total and completed task counts.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]BoardSummary, error)

	// Update modifies an existing board's title, description and color.
	// Returns ErrBoardNotFound if the board does not exist.
	Update(ctx context.Context, board *domain.Board) error

	// Delete removes a board and, via the schema's cascade, all its tasks.
	// Returns ErrBoardNotFound if the board does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new BoardStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) BoardStore
}
