package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentKind is the asset class of a holding.
type InvestmentKind string

const (
	InvestmentStock      InvestmentKind = "stock"
	InvestmentMutualFund InvestmentKind = "mutual_fund"
	InvestmentBond       InvestmentKind = "bond"
	InvestmentETF        InvestmentKind = "etf"
)

// Valid reports whether the kind is one of the known values.
func (k InvestmentKind) Valid() bool {
	switch k {
	case InvestmentStock, InvestmentMutualFund, InvestmentBond, InvestmentETF:
		return true
	}
	return false
}

// Investment represents a holding owned by a user. Current value is never
// stored; it is always recomputed as shares * current price.
type Investment struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Kind          InvestmentKind  `json:"kind"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
