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

const activityColumns = `id, trip_id, name, description, location, latitude, longitude,
	start_time, end_time, created_at, updated_at`

// CreateActivity adds an itinerary entry to a trip.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt == 0 {
		activity.CreatedAt = time.Now().Unix()
	}
	activity.UpdatedAt = activity.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (`+activityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.TripID, activity.Name, nullString(activity.Description),
		nullString(activity.Location), nullFloat(activity.Latitude), nullFloat(activity.Longitude),
		activity.StartTime, activity.EndTime, activity.CreatedAt, activity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

// GetActivity retrieves an activity by ID.
func (s *SQLiteStore) GetActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, activityID)
	activity, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("activity", activityID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return activity, nil
}

// ListActivitiesByTrip retrieves a trip's activities ordered by start time.
func (s *SQLiteStore) ListActivitiesByTrip(ctx context.Context, tripID, day string) ([]*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE trip_id = ?`
	args := []any{tripID}
	if day != "" {
		start, end, err := dayRange(day)
		if err != nil {
			return nil, err
		}
		query += " AND start_time >= ? AND start_time < ?"
		args = append(args, start, end)
	}
	query += " ORDER BY start_time ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}

// UpdateActivity overwrites the mutable fields of an activity.
func (s *SQLiteStore) UpdateActivity(ctx context.Context, activity *models.Activity) error {
	activity.UpdatedAt = time.Now().Unix()

	result, err := s.db.ExecContext(ctx,
		`UPDATE activities SET name = ?, description = ?, location = ?, latitude = ?, longitude = ?,
		 start_time = ?, end_time = ?, updated_at = ? WHERE id = ?`,
		activity.Name, nullString(activity.Description), nullString(activity.Location),
		nullFloat(activity.Latitude), nullFloat(activity.Longitude),
		activity.StartTime, activity.EndTime, activity.UpdatedAt, activity.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	return checkAffected(result, "activity", activity.ID)
}

// DeleteActivity removes an activity; its expenses stay, untagged.
func (s *SQLiteStore) DeleteActivity(ctx context.Context, activityID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM activities WHERE id = ?", activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	return checkAffected(result, "activity", activityID)
}

func scanActivity(row scanner) (*models.Activity, error) {
	activity := &models.Activity{}
	var description, location sql.NullString
	var lat, lng sql.NullFloat64
	err := row.Scan(&activity.ID, &activity.TripID, &activity.Name, &description, &location,
		&lat, &lng, &activity.StartTime, &activity.EndTime, &activity.CreatedAt, &activity.UpdatedAt)
	if err != nil {
		return nil, err
	}
	activity.Description = description.String
	activity.Location = location.String
	activity.Latitude = floatPtr(lat)
	activity.Longitude = floatPtr(lng)
	return activity, nil
}
