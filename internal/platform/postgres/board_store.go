package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
	"github.com/taskflow/taskflow-api/internal/store"
)

// PostgresBoardStore implements the store.BoardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBoardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBoardStore creates a new PostgreSQL implementation of the
// BoardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBoardStore(db store.DBTX, logger *slog.Logger) *PostgresBoardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBoardStore{
		db:     db,
		logger: logger.With(slog.String("component", "board_store")),
	}
}

// Ensure PostgresBoardStore implements store.BoardStore interface
var _ store.BoardStore = (*PostgresBoardStore)(nil)

// Create implements store.BoardStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key violation).
func (s *PostgresBoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during create",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	query := `
		INSERT INTO boards (id, owner_id, title, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		board.ID,
		board.OwnerID,
		board.Title,
		board.Description,
		board.Color,
		board.CreatedAt,
		board.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during board creation",
				slog.String("board_id", board.ID.String()),
				slog.String("owner_id", board.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, board.OwnerID)
		}

		log.Error("failed to create board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	log.Info("board created successfully",
		slog.String("board_id", board.ID.String()),
		slog.String("owner_id", board.OwnerID.String()))
	return nil
}

// GetByID implements store.BoardStore.GetByID
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, color, created_at, updated_at
		FROM boards
		WHERE id = $1
	`

	var board domain.Board
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID,
		&board.OwnerID,
		&board.Title,
		&board.Description,
		&board.Color,
		&board.CreatedAt,
		&board.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("board not found", slog.String("board_id", id.String()))
			return nil, store.ErrBoardNotFound
		}
		log.Error("failed to get board by ID",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return nil, err
	}

	return &board, nil
}

// ListByOwner implements store.BoardStore.ListByOwner
// Boards come back newest first, each with its task counts, so the board
// overview needs a single query instead of one count query per board.
func (s *PostgresBoardStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]store.BoardSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT b.id, b.owner_id, b.title, b.description, b.color, b.created_at, b.updated_at,
		       COUNT(t.id) AS task_count,
		       COUNT(t.id) FILTER (WHERE t.status = 'completed') AS completed_count
		FROM boards b
		LEFT JOIN tasks t ON t.board_id = b.id
		WHERE b.owner_id = $1
		GROUP BY b.id
		ORDER BY b.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list boards by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var summaries []store.BoardSummary
	for rows.Next() {
		var summary store.BoardSummary
		err := rows.Scan(
			&summary.Board.ID,
			&summary.Board.OwnerID,
			&summary.Board.Title,
			&summary.Board.Description,
			&summary.Board.Color,
			&summary.Board.CreatedAt,
			&summary.Board.UpdatedAt,
			&summary.TaskCount,
			&summary.CompletedCount,
		)
		if err != nil {
			log.Error("failed to scan board row",
				slog.String("error", err.Error()))
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if summaries == nil {
		summaries = []store.BoardSummary{}
	}

	return summaries, nil
}

// Update implements store.BoardStore.Update
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) Update(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during update",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	board.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE boards
		SET title = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		board.Title,
		board.Description,
		board.Color,
		board.UpdatedAt,
		board.ID,
	)

	if err != nil {
		log.Error("failed to update board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("board not found for update",
			slog.String("board_id", board.ID.String()))
		return store.ErrBoardNotFound
	}

	log.Info("board updated successfully",
		slog.String("board_id", board.ID.String()))
	return nil
}

// Delete implements store.BoardStore.Delete
// The schema's ON DELETE CASCADE removes the board's tasks in the same
// statement. Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete board",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("board not found for delete",
			slog.String("board_id", id.String()))
		return store.ErrBoardNotFound
	}

	log.Info("board deleted successfully",
		slog.String("board_id", id.String()))
	return nil
}

// WithTx implements store.BoardStore.WithTx
func (s *PostgresBoardStore) WithTx(tx *sql.Tx) store.BoardStore {
	return &PostgresBoardStore{
		db:     tx,
		logger: s.logger,
	}
}
