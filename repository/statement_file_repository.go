package repository

import (
	"context"

	"finsight-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatementFileRepository handles database operations for archived statement
// uploads.
type StatementFileRepository struct {
	db *pgxpool.Pool
}

// NewStatementFileRepository creates a new statement file repository
func NewStatementFileRepository(db *pgxpool.Pool) *StatementFileRepository {
	return &StatementFileRepository{db: db}
}

// Create inserts a statement file record. The ID is assigned by the caller so
// it can double as the storage key.
func (r *StatementFileRepository) Create(ctx context.Context, file *models.StatementFile) error {
	query := `
		INSERT INTO statement_files (id, user_id, filename, size, storage_path, transactions_saved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		file.ID,
		file.UserID,
		file.Filename,
		file.Size,
		file.StoragePath,
		file.TransactionsSaved,
	).Scan(&file.CreatedAt)
}

// GetByID retrieves a statement file only if both ID and owner match.
func (r *StatementFileRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.StatementFile, error) {
	file := &models.StatementFile{}
	query := `
		SELECT id, user_id, filename, size, storage_path, transactions_saved, created_at
		FROM statement_files
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&file.ID,
		&file.UserID,
		&file.Filename,
		&file.Size,
		&file.StoragePath,
		&file.TransactionsSaved,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return file, nil
}

// ListByUserID retrieves all statement files for a user, newest first.
func (r *StatementFileRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.StatementFile, error) {
	query := `
		SELECT id, user_id, filename, size, storage_path, transactions_saved, created_at
		FROM statement_files
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

	var files []*models.StatementFile
	for rows.Next() {
		file := &models.StatementFile{}
		err := rows.Scan(
			&file.ID,
			&file.UserID,
			&file.Filename,
			&file.Size,
			&file.StoragePath,
			&file.TransactionsSaved,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}
