// Package store defines the persistence interfaces for accounts and tasks,
// the errors every implementation returns, and transaction helpers.
// Implementations live in internal/platform/postgres.
package store
