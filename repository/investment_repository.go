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

// InvestmentRepository handles database operations for investments.
type InvestmentRepository struct {
	db *pgxpool.Pool
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create inserts a new investment and fills in its generated ID and timestamp.
func (r *InvestmentRepository) Create(ctx context.Context, inv *models.Investment) error {
	query := `
		INSERT INTO investments (user_id, symbol, name, kind, shares, purchase_price, current_price, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		inv.UserID,
		inv.Symbol,
		inv.Name,
		inv.Kind,
		inv.Shares,
		inv.PurchasePrice,
		inv.CurrentPrice,
		inv.PurchaseDate,
	).Scan(&inv.ID, &inv.CreatedAt)
}

// GetByID retrieves an investment only if both ID and owner match.
func (r *InvestmentRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Investment, error) {
	inv := &models.Investment{}
	query := `
		SELECT id, user_id, symbol, name, kind, shares, purchase_price, current_price, purchase_date, created_at
		FROM investments
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&inv.ID,
		&inv.UserID,
		&inv.Symbol,
		&inv.Name,
		&inv.Kind,
		&inv.Shares,
		&inv.PurchasePrice,
		&inv.CurrentPrice,
		&inv.PurchaseDate,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// ListByUserID retrieves all investments for a user, newest first.
// A limit of 0 means no limit.
func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Investment, error) {
	query := `
		SELECT id, user_id, symbol, name, kind, shares, purchase_price, current_price, purchase_date, created_at
		FROM investments
		WHERE user_id = $1
		ORDER BY created_at DESC`

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

	var investments []*models.Investment
	for rows.Next() {
		inv := &models.Investment{}
		err := rows.Scan(
			&inv.ID,
			&inv.UserID,
			&inv.Symbol,
			&inv.Name,
			&inv.Kind,
			&inv.Shares,
			&inv.PurchasePrice,
			&inv.CurrentPrice,
			&inv.PurchaseDate,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}

	return investments, rows.Err()
}

// InvestmentPatch is a partial update; nil fields are left unchanged.
type InvestmentPatch struct {
	Symbol        *string
	Name          *string
	Kind          *models.InvestmentKind
	Shares        *decimal.Decimal
	PurchasePrice *decimal.Decimal
	CurrentPrice  *decimal.Decimal
	PurchaseDate  *time.Time
}

// Update applies a partial patch to an investment owned by the user and
// returns the updated row, or pgx.ErrNoRows if it does not exist or belongs
// to someone else.
func (r *InvestmentRepository) Update(ctx context.Context, id, userID uuid.UUID, patch InvestmentPatch) (*models.Investment, error) {
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

	if patch.Symbol != nil {
		addSet("symbol", *patch.Symbol)
	}
	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Kind != nil {
		addSet("kind", *patch.Kind)
	}
	if patch.Shares != nil {
		addSet("shares", *patch.Shares)
	}
	if patch.PurchasePrice != nil {
		addSet("purchase_price", *patch.PurchasePrice)
	}
	if patch.CurrentPrice != nil {
		addSet("current_price", *patch.CurrentPrice)
	}
	if patch.PurchaseDate != nil {
		addSet("purchase_date", *patch.PurchaseDate)
	}

	if sets == "" {
		return r.GetByID(ctx, id, userID)
	}

	query := fmt.Sprintf(`
		UPDATE investments SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, symbol, name, kind, shares, purchase_price, current_price, purchase_date, created_at`, sets)

	inv := &models.Investment{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&inv.ID,
		&inv.UserID,
		&inv.Symbol,
		&inv.Name,
		&inv.Kind,
		&inv.Shares,
		&inv.PurchasePrice,
		&inv.CurrentPrice,
		&inv.PurchaseDate,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// Delete removes an investment owned by the user and reports whether a row
// was actually deleted.
func (r *InvestmentRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM investments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
