// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup of a record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInUse is returned when deleting a record other records still reference.
	ErrInUse = errors.New("still referenced")
)

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip. ID and timestamps are populated by the store;
	// InviteCode must be set by the caller and be unique.
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	GetTripByInviteCode(ctx context.Context, code string) (*models.Trip, error)
	// InviteCodeExists reports whether any trip already uses code.
	InviteCodeExists(ctx context.Context, code string) (bool, error)
	ListTrips(ctx context.Context, offset, limit int) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, trip *models.Trip) error
	// DeleteTrip removes the trip with all its members, activities and expenses.
	DeleteTrip(ctx context.Context, tripID string) error

	CreateMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	ListMembersByTrip(ctx context.Context, tripID string) ([]*models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	// DeleteMember fails with ErrInUse while the member is the payer of any expense.
	DeleteMember(ctx context.Context, memberID string) error

	CreateActivity(ctx context.Context, activity *models.Activity) error
	GetActivity(ctx context.Context, activityID string) (*models.Activity, error)
	// ListActivitiesByTrip returns activities ordered by start time. A non-empty
	// day (YYYY-MM-DD, UTC) keeps only activities starting on that day.
	ListActivitiesByTrip(ctx context.Context, tripID, day string) ([]*models.Activity, error)
	UpdateActivity(ctx context.Context, activity *models.Activity) error
	// DeleteActivity untags the activity's expenses instead of deleting them.
	DeleteActivity(ctx context.Context, activityID string) error

	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	// ListExpenses returns matching expenses, newest expense date first.
	ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error

	// GetTripSnapshot reads a trip with all its members and expenses in a single
	// read transaction, so reports never mix two states of the trip.
	GetTripSnapshot(ctx context.Context, tripID string) (*models.TripSnapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
