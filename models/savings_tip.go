package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsTip is a recommendation produced by the analytics collaborator and
// persisted verbatim.
type SavingsTip struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	Category         string          `json:"category"`
	Recommendation   string          `json:"recommendation"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
	Confidence       float64         `json:"confidence"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TipSuggestion is the wire shape the analytics collaborator emits for a
// single tip, before it is persisted as a SavingsTip.
type TipSuggestion struct {
	Category         string          `json:"category"`
	Recommendation   string          `json:"recommendation"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
	Confidence       float64         `json:"confidence"`
}
