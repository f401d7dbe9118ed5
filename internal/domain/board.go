package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultBoardColor is assigned when a board is created without an
// explicit color.
const DefaultBoardColor = "#7694b8"

// Common validation errors for Board
var (
	ErrEmptyBoardID      = errors.New("board ID cannot be empty")
	ErrEmptyBoardOwnerID = errors.New("board owner ID cannot be empty")
	ErrEmptyBoardTitle   = errors.New("board title cannot be empty")
)

// Board is a named container of tasks owned by a single user.
type Board struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBoard creates a new Board owned by the given user.
// An empty color falls back to DefaultBoardColor.
// Returns an error if validation fails.
func NewBoard(ownerID uuid.UUID, title, description, color string) (*Board, error) {
	if color == "" {
		color = DefaultBoardColor
	}

	board := &Board{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Validate checks if the Board has valid data.
// Returns an error if any field fails validation.
func (b *Board) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBoardID
	}

	if b.OwnerID == uuid.Nil {
		return ErrEmptyBoardOwnerID
	}

	if b.Title == "" {
		return ErrEmptyBoardTitle
	}

	return nil
}
