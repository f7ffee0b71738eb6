package repository

import (
	"context"
	"fmt"

	"finsight-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SavingsTipRepository handles database operations for savings tips. Tips are
// written verbatim as the analytics collaborator produced them.
type SavingsTipRepository struct {
	db *pgxpool.Pool
}

// NewSavingsTipRepository creates a new savings tip repository
func NewSavingsTipRepository(db *pgxpool.Pool) *SavingsTipRepository {
	return &SavingsTipRepository{db: db}
}

// Create inserts a new savings tip and fills in its generated ID and timestamp.
func (r *SavingsTipRepository) Create(ctx context.Context, tip *models.SavingsTip) error {
	query := `
		INSERT INTO savings_tips (user_id, category, recommendation, potential_savings, confidence, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		tip.UserID,
		tip.Category,
		tip.Recommendation,
		tip.PotentialSavings,
		tip.Confidence,
		tip.Active,
	).Scan(&tip.ID, &tip.CreatedAt)
}

// GetByID retrieves a savings tip only if both ID and owner match.
func (r *SavingsTipRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.SavingsTip, error) {
	tip := &models.SavingsTip{}
	query := `
		SELECT id, user_id, category, recommendation, potential_savings, confidence, active, created_at
		FROM savings_tips
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&tip.ID,
		&tip.UserID,
		&tip.Category,
		&tip.Recommendation,
		&tip.PotentialSavings,
		&tip.Confidence,
		&tip.Active,
		&tip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return tip, nil
}

// ListByUserID retrieves savings tips for a user, newest first. When
// activeOnly is set, dismissed tips are filtered out. A limit of 0 means no
// limit.
func (r *SavingsTipRepository) ListByUserID(ctx context.Context, userID uuid.UUID, activeOnly bool, limit int) ([]*models.SavingsTip, error) {
	query := `
		SELECT id, user_id, category, recommendation, potential_savings, confidence, active, created_at
		FROM savings_tips
		WHERE user_id = $1`

	if activeOnly {
		query += " AND active = true"
	}
	query += " ORDER BY created_at DESC"

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

	var tips []*models.SavingsTip
	for rows.Next() {
		tip := &models.SavingsTip{}
		err := rows.Scan(
			&tip.ID,
			&tip.UserID,
			&tip.Category,
			&tip.Recommendation,
			&tip.PotentialSavings,
			&tip.Confidence,
			&tip.Active,
			&tip.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}

	return tips, rows.Err()
}

// SavingsTipPatch is a partial update; nil fields are left unchanged.
type SavingsTipPatch struct {
	Active *bool
}

// Update applies a partial patch to a savings tip owned by the user and
// returns the updated row, or pgx.ErrNoRows if it does not exist or belongs
// to someone else.
func (r *SavingsTipRepository) Update(ctx context.Context, id, userID uuid.UUID, patch SavingsTipPatch) (*models.SavingsTip, error) {
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

	if patch.Active != nil {
		addSet("active", *patch.Active)
	}

	if sets == "" {
		return r.GetByID(ctx, id, userID)
	}

	query := fmt.Sprintf(`
		UPDATE savings_tips SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, category, recommendation, potential_savings, confidence, active, created_at`, sets)

	tip := &models.SavingsTip{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&tip.ID,
		&tip.UserID,
		&tip.Category,
		&tip.Recommendation,
		&tip.PotentialSavings,
		&tip.Confidence,
		&tip.Active,
		&tip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return tip, nil
}

// Delete removes a savings tip owned by the user and reports whether a row
// was actually deleted.
func (r *SavingsTipRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM savings_tips WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
