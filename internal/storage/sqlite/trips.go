package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
)

const tripColumns = `id, name, destination, departure_location, start_date, end_date,
	currency, child_factor, rounding_rule, invite_code, created_at, updated_at`

// CreateTrip persists a new trip to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if trip.CreatedAt == 0 {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = trip.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trips (`+tripColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Destination, nullString(trip.DepartureLocation),
		trip.StartDate, trip.EndDate, string(trip.Currency), trip.ChildFactor,
		trip.RoundingRule, trip.InviteCode, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return getTrip(ctx, s.db, "id", tripID)
}

// GetTripByInviteCode retrieves the trip that owns an invite code.
func (s *SQLiteStore) GetTripByInviteCode(ctx context.Context, code string) (*models.Trip, error) {
	return getTrip(ctx, s.db, "invite_code", code)
}

// InviteCodeExists reports whether an invite code is already taken.
func (s *SQLiteStore) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	found, err := exists(ctx, s.db, "SELECT 1 FROM trips WHERE invite_code = ?", code)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return found, nil
}

// ListTrips retrieves a page of trips, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context, offset, limit int) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return trips, nil
}

// UpdateTrip overwrites the mutable fields of an existing trip.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	trip.UpdatedAt = time.Now().Unix()

	result, err := s.db.ExecContext(ctx,
		`UPDATE trips SET name = ?, destination = ?, departure_location = ?, start_date = ?,
		 end_date = ?, currency = ?, child_factor = ?, rounding_rule = ?, updated_at = ?
		 WHERE id = ?`,
		trip.Name, trip.Destination, nullString(trip.DepartureLocation), trip.StartDate,
		trip.EndDate, string(trip.Currency), trip.ChildFactor, trip.RoundingRule, trip.UpdatedAt,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	return checkAffected(result, "trip", trip.ID)
}

// DeleteTrip removes a trip; members, activities and expenses cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	return checkAffected(result, "trip", tripID)
}

func getTrip(ctx context.Context, q querier, column, value string) (*models.Trip, error) {
	row := q.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE `+column+` = ?`, value)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("trip", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (*models.Trip, error) {
	trip := &models.Trip{}
	var departure sql.NullString
	var currency string
	err := row.Scan(&trip.ID, &trip.Name, &trip.Destination, &departure,
		&trip.StartDate, &trip.EndDate, &currency, &trip.ChildFactor,
		&trip.RoundingRule, &trip.InviteCode, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return nil, err
	}
	trip.DepartureLocation = departure.String
	trip.Currency = models.Currency(currency)
	return trip, nil
}

// checkAffected turns a zero-row UPDATE or DELETE into a not-found error.
func checkAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}
