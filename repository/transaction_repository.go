package repository

import (
	"context"
	"fmt"
	"time"

	"finsight-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionRepository handles database operations for transactions.
// All reads and writes are scoped by the owning user.
type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction and fills in its generated ID and timestamp.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, description, amount, category, kind, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		tx.UserID,
		tx.Description,
		tx.Amount,
		tx.Category,
		tx.Kind,
		tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// GetByID retrieves a transaction only if both ID and owner match.
func (r *TransactionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error) {
	tx := &models.Transaction{}
	query := `
		SELECT id, user_id, description, amount, category, kind, date, created_at
		FROM transactions
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Description,
		&tx.Amount,
		&tx.Category,
		&tx.Kind,
		&tx.Date,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// ListByUserID retrieves all transactions for a user, newest date first.
// A limit of 0 means no limit.
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, description, amount, category, kind, date, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`

	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx := &models.Transaction{}
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Description,
			&tx.Amount,
			&tx.Category,
			&tx.Kind,
			&tx.Date,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// TransactionPatch is a partial update; nil fields are left unchanged.
type TransactionPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Kind        *models.TransactionKind
	Date        *time.Time
}

// Update applies a partial patch to a transaction owned by the user and
// returns the updated row, or pgx.ErrNoRows if it does not exist or belongs
// to someone else.
func (r *TransactionRepository) Update(ctx context.Context, id, userID uuid.UUID, patch TransactionPatch) (*models.Transaction, error) {
	sets := ""
	args := []interface{}{id, userID}
	argIndex := 3

	addSet := func(column string, value interface{}) {
		if sets != "" {
			sets += ", "
		}
		sets += fmt.Sprintf("%s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Amount != nil {
		addSet("amount", *patch.Amount)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}
	if patch.Kind != nil {
		addSet("kind", *patch.Kind)
	}
	if patch.Date != nil {
		addSet("date", *patch.Date)
	}

	if sets == "" {
		// Empty patch: return the current row (or not-found).
		return r.GetByID(ctx, id, userID)
	}

	query := fmt.Sprintf(`
		UPDATE transactions SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, description, amount, category, kind, date, created_at`, sets)

	tx := &models.Transaction{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Description,
		&tx.Amount,
		&tx.Category,
		&tx.Kind,
		&tx.Date,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// Delete removes a transaction owned by the user and reports whether a row
// was actually deleted.
func (r *TransactionRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
