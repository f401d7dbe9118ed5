package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/taskflow/taskflow-api/internal/config"
)

// migrationsDir is where the goose SQL migrations live, relative to the
// working directory of the server binary.
const migrationsDir = "migrations"

// runMigrations executes the given goose command (up, down, status) against
// the configured database and returns once it completes.
func runMigrations(cfg *config.Config, command string) error {
	migrationLogger := slog.Default().With(
		slog.String("component", "migrations"),
		slog.String("command", command))

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})

	if cfg.Database.URL == "" {
		return fmt.Errorf("database URL is empty: check your configuration")
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			migrationLogger.Error("failed to close database connection",
				slog.String("error", err.Error()))
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	migrationLogger.Info("running migration command")

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q (expected up, down, or status)", command)
	}

	if err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	migrationLogger.Info("migration command completed")
	return nil
}

// slogGooseLogger bridges goose's logger to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
