package models

import (
	"time"

	"github.com/google/uuid"
)

// StatementFile records an uploaded bank statement archived in file storage,
// along with how many transactions its ingestion produced.
type StatementFile struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Filename          string    `json:"filename"`
	Size              int64     `json:"size"`
	StoragePath       string    `json:"-"`
	TransactionsSaved int       `json:"transactions_saved"`
	CreatedAt         time.Time `json:"created_at"`
}
