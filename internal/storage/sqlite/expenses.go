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

const expenseColumns = `id, trip_id, activity_id, paid_by, description, amount, currency,
	exchange_rate, category, is_shared, expense_date, created_at, updated_at`

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.ExpenseDate == 0 {
		expense.ExpenseDate = now
	}
	expense.UpdatedAt = expense.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, nullString(expense.ActivityID), expense.PaidBy,
		expense.Description, expense.Amount, string(expense.Currency), expense.ExchangeRate,
		string(expense.Category), expense.IsShared, expense.ExpenseDate,
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// ListExpenses retrieves the expenses matching filter, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, filter)
}

// UpdateExpense overwrites the mutable fields of an expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET activity_id = ?, paid_by = ?, description = ?, amount = ?, currency = ?,
		 exchange_rate = ?, category = ?, is_shared = ?, expense_date = ?, updated_at = ?
		 WHERE id = ?`,
		nullString(expense.ActivityID), expense.PaidBy, expense.Description, expense.Amount,
		string(expense.Currency), expense.ExchangeRate, string(expense.Category), expense.IsShared,
		expense.ExpenseDate, expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return checkAffected(result, "expense", expense.ID)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return checkAffected(result, "expense", expenseID)
}

func listExpenses(ctx context.Context, q querier, filter models.ExpenseFilter) ([]*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE trip_id = ?`
	args := []any{filter.TripID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filter.Category))
	}
	if filter.PaidBy != "" {
		query += " AND paid_by = ?"
		args = append(args, filter.PaidBy)
	}
	if filter.Day != "" {
		start, end, err := dayRange(filter.Day)
		if err != nil {
			return nil, err
		}
		query += " AND expense_date >= ? AND expense_date < ?"
		args = append(args, start, end)
	}
	if filter.IsShared != nil {
		query += " AND is_shared = ?"
		args = append(args, *filter.IsShared)
	}

	query += " ORDER BY expense_date DESC, created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var activityID sql.NullString
	var currency, category string
	err := row.Scan(&expense.ID, &expense.TripID, &activityID, &expense.PaidBy,
		&expense.Description, &expense.Amount, &currency, &expense.ExchangeRate,
		&category, &expense.IsShared, &expense.ExpenseDate, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return nil, err
	}
	expense.ActivityID = activityID.String
	expense.Currency = models.Currency(currency)
	expense.Category = models.Category(category)
	return expense, nil
}
