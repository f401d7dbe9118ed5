// Package store defines the persistence interfaces consumed by the rest of
// the application, together with the shared error vocabulary and transaction
// helpers. Concrete implementations live in internal/platform/postgres.
package store
