package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mybudget/internal/domain"
	"mybudget/internal/model"
	"mybudget/pkg/metrics"
)

type ExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// CreateExpense inserts a new expense.
func (r *ExpenseRepository) CreateExpense(ctx context.Context, e *model.Expense) error {
	query := `
        INSERT INTO expenses (id, user_id, description, amount, date, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING created_at
    `
	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		e.ID, e.UserID, e.Description, e.Amount, e.Date, e.Status,
	).Scan(&e.CreatedAt)
	metrics.RecordDBQueryDuration("insert", "expenses", time.Since(start))
	return err
}

// FindByID returns the expense with the given id.
func (r *ExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	query := `
        SELECT id, user_id, description, amount, date, status, created_at
        FROM expenses
        WHERE id = $1
    `
	start := time.Now()
	var e model.Expense
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Date, &e.Status, &e.CreatedAt,
	)
	metrics.RecordDBQueryDuration("select", "expenses", time.Since(start))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %s", domain.ErrExpenseNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExpense persists amount, description and status of an existing expense.
func (r *ExpenseRepository) UpdateExpense(ctx context.Context, e *model.Expense) error {
	query := `
        UPDATE expenses
        SET description = $1, amount = $2, status = $3
        WHERE id = $4
    `
	start := time.Now()
	_, err := r.db.Exec(ctx, query, e.Description, e.Amount, e.Status, e.ID)
	metrics.RecordDBQueryDuration("update", "expenses", time.Since(start))
	return err
}

// DeleteExpense removes the expense with the given id.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	query := `
        DELETE FROM expenses
        WHERE id = $1
    `
	start := time.Now()
	_, err := r.db.Exec(ctx, query, id)
	metrics.RecordDBQueryDuration("delete", "expenses", time.Since(start))
	return err
}

// ListByUser returns all expenses owned by a user, oldest date first.
// The id tiebreak keeps the order stable for equal dates.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int64) ([]model.Expense, error) {
	query := `
        SELECT id, user_id, description, amount, date, status, created_at
        FROM expenses
        WHERE user_id = $1
        ORDER BY date ASC, created_at ASC, id ASC
    `
	start := time.Now()
	rows, err := r.db.Query(ctx, query, userID)
	metrics.RecordDBQueryDuration("select", "expenses", time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListByUserAndStatus returns a user's expenses with the given status, oldest date first.
func (r *ExpenseRepository) ListByUserAndStatus(ctx context.Context, userID int64, status model.Status) ([]model.Expense, error) {
	query := `
        SELECT id, user_id, description, amount, date, status, created_at
        FROM expenses
        WHERE user_id = $1 AND status = $2
        ORDER BY date ASC, created_at ASC, id ASC
    `
	start := time.Now()
	rows, err := r.db.Query(ctx, query, userID, status)
	metrics.RecordDBQueryDuration("select", "expenses", time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func scanExpenses(rows pgx.Rows) ([]model.Expense, error) {
	expenses := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Date, &e.Status, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}
