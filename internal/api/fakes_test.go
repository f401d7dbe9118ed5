package api

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/service/auth"
	"github.com/taskflow/taskflow-api/internal/store"
)

// In-memory store fakes for handler tests. They enforce the same sentinel
// error contracts as the postgres implementations.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	if user.Password != "" {
		user.HashedPassword = "hashed:" + user.Password
		user.Password = ""
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) WithTx(_ *sql.Tx) store.UserStore { return f }

type fakeBoardStore struct {
	mu     sync.Mutex
	boards map[uuid.UUID]*domain.Board
	err    error
}

func newFakeBoardStore() *fakeBoardStore {
	return &fakeBoardStore{boards: make(map[uuid.UUID]*domain.Board)}
}

func (f *fakeBoardStore) Create(_ context.Context, board *domain.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.boards[board.ID] = board
	return nil
}

func (f *fakeBoardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	board, ok := f.boards[id]
	if !ok {
		return nil, store.ErrBoardNotFound
	}
	copied := *board
	return &copied, nil
}

func (f *fakeBoardStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]store.BoardSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	summaries := []store.BoardSummary{}
	for _, board := range f.boards {
		if board.OwnerID == ownerID {
			summaries = append(summaries, store.BoardSummary{Board: *board})
		}
	}
	return summaries, nil
}

func (f *fakeBoardStore) Update(_ context.Context, board *domain.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.boards[board.ID]; !ok {
		return store.ErrBoardNotFound
	}
	f.boards[board.ID] = board
	return nil
}

func (f *fakeBoardStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.boards[id]; !ok {
		return store.ErrBoardNotFound
	}
	delete(f.boards, id)
	return nil
}

func (f *fakeBoardStore) WithTx(_ *sql.Tx) store.BoardStore { return f }

type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	err   error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (f *fakeTaskStore) Create(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskStore) ListByBoard(_ context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	tasks := []*domain.Task{}
	for _, task := range f.tasks {
		if task.BoardID == boardID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (f *fakeTaskStore) ListUpcoming(_ context.Context, ownerID uuid.UUID, from, until time.Time) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := []*domain.Task{}
	for _, task := range f.tasks {
		if task.OwnerID != ownerID || task.Status != domain.TaskStatusPending || task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(from) || task.DueDate.After(until) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) FindDueReminders(_ context.Context, now, windowEnd time.Time) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := []*domain.Task{}
	for _, task := range f.tasks {
		if task.Status != domain.TaskStatusPending || task.ReminderSent || task.ReminderAt == nil {
			continue
		}
		if task.ReminderAt.Before(now) || task.ReminderAt.After(windowEnd) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (f *fakeTaskStore) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok || task.ReminderSent {
		return store.ErrUpdateFailed
	}
	task.ReminderSent = true
	return nil
}

func (f *fakeTaskStore) WithTx(_ *sql.Tx) store.TaskStore { return f }

// stubJWTService issues predictable tokens keyed by user ID.
type stubJWTService struct {
	validateErr error
	refreshErr  error
	userID      uuid.UUID
}

func (s *stubJWTService) GenerateToken(_ context.Context, userID uuid.UUID) (string, error) {
	return "access-" + userID.String(), nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &auth.Claims{UserID: s.userID, TokenType: "access"}, nil
}

func (s *stubJWTService) GenerateRefreshToken(_ context.Context, userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}

func (s *stubJWTService) ValidateRefreshToken(_ context.Context, token string) (*auth.Claims, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &auth.Claims{UserID: s.userID, TokenType: "refresh"}, nil
}

// stubPasswordVerifier accepts a password when it matches "hashed:" + password.
type stubPasswordVerifier struct{}

func (stubPasswordVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}
