// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// dayLayout is the calendar-day format accepted by the day filters.
const dayLayout = "2006-01-02"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so enable them in the DSN
	// for every connection in the pool.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetTripSnapshot reads the trip, its members and its expenses in one transaction.
func (s *SQLiteStore) GetTripSnapshot(ctx context.Context, tripID string) (*models.TripSnapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Read-only; rolling back just releases the snapshot.
	defer tx.Rollback()

	trip, err := getTrip(ctx, tx, "id", tripID)
	if err != nil {
		return nil, err
	}

	members, err := listMembers(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := listExpenses(ctx, tx, models.ExpenseFilter{TripID: tripID})
	if err != nil {
		return nil, err
	}

	return &models.TripSnapshot{
		Trip:     trip,
		Members:  members,
		Expenses: expenses,
	}, nil
}

// notFound wraps storage.ErrNotFound with the kind and id of the missing record.
func notFound(kind, id string) error {
	return fmt.Errorf("%s %w: %s", kind, storage.ErrNotFound, id)
}

// exists reports whether query returns a row.
func exists(ctx context.Context, q querier, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// dayRange returns the Unix bounds [start, end) of a YYYY-MM-DD day in UTC.
func dayRange(day string) (int64, int64, error) {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return t.Unix(), t.AddDate(0, 0, 1).Unix(), nil
}

// nullString stores empty strings as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullFloat stores nil pointers as NULL.
func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
