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

// GoalRepository handles database operations for savings goals.
type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new goal and fills in its generated ID and timestamp.
func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, title, description, target_amount, current_amount, target_date, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Category,
	).Scan(&goal.ID, &goal.CreatedAt)
}

// GetByID retrieves a goal only if both ID and owner match.
func (r *GoalRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Goal, error) {
	goal := &models.Goal{}
	query := `
		SELECT id, user_id, title, description, target_amount, current_amount, target_date, category, created_at
		FROM goals
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Description,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Category,
		&goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// ListByUserID retrieves all goals for a user, newest first.
// A limit of 0 means no limit.
func (r *GoalRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Goal, error) {
	query := `
		SELECT id, user_id, title, description, target_amount, current_amount, target_date, category, created_at
		FROM goals
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

	var goals []*models.Goal
	for rows.Next() {
		goal := &models.Goal{}
		err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Title,
			&goal.Description,
			&goal.TargetAmount,
			&goal.CurrentAmount,
			&goal.TargetDate,
			&goal.Category,
			&goal.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// GoalPatch is a partial update; nil fields are left unchanged.
type GoalPatch struct {
	Title         *string
	Description   *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	Category      *string
}

// Update applies a partial patch to a goal owned by the user and returns the
// updated row, or pgx.ErrNoRows if it does not exist or belongs to someone
// else.
func (r *GoalRepository) Update(ctx context.Context, id, userID uuid.UUID, patch GoalPatch) (*models.Goal, error) {
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

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.TargetAmount != nil {
		addSet("target_amount", *patch.TargetAmount)
	}
	if patch.CurrentAmount != nil {
		addSet("current_amount", *patch.CurrentAmount)
	}
	if patch.TargetDate != nil {
		addSet("target_date", *patch.TargetDate)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}

	if sets == "" {
		return r.GetByID(ctx, id, userID)
	}

	query := fmt.Sprintf(`
		UPDATE goals SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, description, target_amount, current_amount, target_date, category, created_at`, sets)

	goal := &models.Goal{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Description,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Category,
		&goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes a goal owned by the user and reports whether a row was
// actually deleted.
func (r *GoalRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
