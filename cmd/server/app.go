package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/events"
	"github.com/taskflow/taskflow-api/internal/platform/mail"
	"github.com/taskflow/taskflow-api/internal/platform/postgres"
	"github.com/taskflow/taskflow-api/internal/reminder"
	"github.com/taskflow/taskflow-api/internal/service/auth"
	"github.com/taskflow/taskflow-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore  store.UserStore
	boardStore store.BoardStore
	taskStore  store.TaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	mailSender       *mail.SMTPSender

	// Reminder delivery
	reminderEmitter   *events.InMemoryReminderEmitter
	reminderScheduler *reminder.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized, including the reminder scanner wired to its scheduler.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.boardStore = postgres.NewPostgresBoardStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.mailSender, err = mail.NewSMTPSender(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mail sender: %w", err)
	}

	app.reminderEmitter = events.NewInMemoryReminderEmitter(logger)
	app.reminderEmitter.RegisterHandler(events.NewLoggingReminderHandler(logger))

	scanner, err := reminder.NewScanner(
		app.taskStore,
		app.userStore,
		app.mailSender,
		app.reminderEmitter,
		reminder.NewClock(),
		cfg.Reminder.Lookahead(),
		cfg.Reminder.SendTimeout(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder scanner: %w", err)
	}

	app.reminderScheduler, err = reminder.NewScheduler(scanner, cfg.Reminder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder scheduler: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the reminder scheduler and the HTTP server, handling lifecycle
// and cleanup.
func (app *application) Run(ctx context.Context) error {
	app.reminderScheduler.Start()

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.reminderScheduler != nil {
		if err := app.reminderScheduler.Stop(ctx); err != nil {
			app.logger.Error("Error stopping reminder scheduler", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
