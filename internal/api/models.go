package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateBoardRequest defines the payload for creating a board.
type CreateBoardRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
}

// UpdateBoardRequest defines the payload for updating a board.
type UpdateBoardRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
}

// BoardSummaryResponse is a board with its task counts, as returned by the
// board list endpoint.
type BoardSummaryResponse struct {
	domain.Board
	TaskCount      int `json:"task_count"`
	CompletedCount int `json:"completed_count"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	BoardID     uuid.UUID  `json:"board_id"    validate:"required"`
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	ReminderAt  *time.Time `json:"reminder_at"`
	Tags        []string   `json:"tags"        validate:"max=20,dive,max=50"`
	Notes       string     `json:"notes"       validate:"max=5000"`
}

// UpdateTaskRequest defines the payload for updating a task. All fields are
// full replacements; omitting due_date or reminder_at clears them.
type UpdateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending completed"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	ReminderAt  *time.Time `json:"reminder_at"`
	Tags        []string   `json:"tags"        validate:"max=20,dive,max=50"`
	Notes       string     `json:"notes"       validate:"max=5000"`
}
