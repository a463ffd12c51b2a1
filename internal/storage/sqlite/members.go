package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateMember adds a member to a trip.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, trip_id, name, factor, is_child, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.TripID, member.Name, member.Factor, member.IsChild, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, trip_id, name, factor, is_child, created_at FROM members WHERE id = ?",
		memberID,
	).Scan(&member.ID, &member.TripID, &member.Name, &member.Factor, &member.IsChild, &member.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("member", memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// ListMembersByTrip retrieves all members of a trip in the order they joined.
func (s *SQLiteStore) ListMembersByTrip(ctx context.Context, tripID string) ([]*models.Member, error) {
	return listMembers(ctx, s.db, tripID)
}

// UpdateMember overwrites a member's name, factor and child flag.
// The trip a member belongs to never changes.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.Member) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE members SET name = ?, factor = ?, is_child = ? WHERE id = ?",
		member.Name, member.Factor, member.IsChild, member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	return checkAffected(result, "member", member.ID)
}

// DeleteMember removes a member who has not paid any expense.
func (s *SQLiteStore) DeleteMember(ctx context.Context, memberID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	paid, err := exists(ctx, tx, "SELECT 1 FROM expenses WHERE paid_by = ? LIMIT 1", memberID)
	if err != nil {
		return fmt.Errorf("failed to check member expenses: %w", err)
	}
	if paid {
		return fmt.Errorf("member %s paid expenses: %w", memberID, storage.ErrInUse)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM members WHERE id = ?", memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if err := checkAffected(result, "member", memberID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func listMembers(ctx context.Context, q querier, tripID string) ([]*models.Member, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, trip_id, name, factor, is_child, created_at FROM members
		 WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.TripID, &member.Name, &member.Factor,
			&member.IsChild, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
