package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Implementations without transaction support treat Begin, Commit and
// Rollback as no-ops, so writes made before a failure stay written.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Rolling back after a commit is a no-op.
	Rollback(ctx context.Context) error

	// TripRepository returns a TripRepository bound to the current transaction.
	TripRepository() TripRepository

	// PackageRepository returns a PackageRepository bound to the current transaction.
	PackageRepository() PackageRepository
}
