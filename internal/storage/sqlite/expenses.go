package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

// CreateExpense appends an expense and its participant rows atomically.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, payer_id, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PayerID, string(expense.Split.Type), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, userID := range expense.ParticipantIDs {
		var percent interface{}
		if expense.Split.Type == models.SplitPercentage {
			percent = expense.Split.Percents[userID]
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id, percent) VALUES (?, ?, ?)",
			expense.ID, userID, percent,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpensesByGroup retrieves a group's full expense history in append
// order.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check group existence: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, payer_id, split_type, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return s.collectExpenses(ctx, rows)
}

// ListRecentExpenses retrieves the newest expenses across all groups.
func (s *SQLiteStore) ListRecentExpenses(ctx context.Context, limit int) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, payer_id, split_type, created_at
		 FROM expenses ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent expenses: %w", err)
	}
	return s.collectExpenses(ctx, rows)
}

// collectExpenses scans expense rows and attaches participants in canonical
// group order, restoring percentage weights for percentage splits.
func (s *SQLiteStore) collectExpenses(ctx context.Context, rows *sql.Rows) ([]*models.Expense, error) {
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var splitType string
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description,
			&expense.Amount, &expense.PayerID, &splitType, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Split.Type = models.SplitType(splitType)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		pRows, err := s.db.QueryContext(ctx,
			`SELECT ep.user_id, ep.percent FROM expense_participants ep
			 JOIN group_members gm ON gm.group_id = ? AND gm.user_id = ep.user_id
			 WHERE ep.expense_id = ? ORDER BY gm.position`,
			expense.GroupID, expense.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get expense participants: %w", err)
		}

		var percents map[string]int64
		for pRows.Next() {
			var userID string
			var percent sql.NullInt64
			if err := pRows.Scan(&userID, &percent); err != nil {
				pRows.Close()
				return nil, fmt.Errorf("failed to scan expense participant: %w", err)
			}
			expense.ParticipantIDs = append(expense.ParticipantIDs, userID)
			if percent.Valid {
				if percents == nil {
					percents = make(map[string]int64)
				}
				percents[userID] = percent.Int64
			}
		}
		pRows.Close()
		if err := pRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
		}
		expense.Split.Percents = percents
	}
	return expenses, nil
}
