// Package postgres provides PostgreSQL-backed implementations of the
// persistence interfaces defined in internal/store. All implementations use
// hand-written SQL over database/sql with the pgx stdlib driver.
package postgres
