package metrics

import (
	"testing"
	"time"

	"finsight-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(kind models.TransactionKind, amount int64) *models.Transaction {
	return &models.Transaction{Kind: kind, Amount: decimal.NewFromInt(amount)}
}

func TestBalance(t *testing.T) {
	transactions := []*models.Transaction{
		tx(models.TransactionIncome, 1000),
		tx(models.TransactionExpense, 300),
		tx(models.TransactionExpense, 200),
	}

	assert.True(t, decimal.NewFromInt(500).Equal(Balance(transactions)))
	assert.True(t, decimal.NewFromInt(1000).Equal(IncomeTotal(transactions)))
	assert.True(t, decimal.NewFromInt(500).Equal(ExpenseTotal(transactions)))
}

func TestBalanceEmpty(t *testing.T) {
	assert.True(t, Balance(nil).IsZero())
}

func TestInvestmentValueAndGain(t *testing.T) {
	inv := &models.Investment{
		Shares:        decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(100),
		CurrentPrice:  decimal.NewFromInt(150),
	}

	assert.True(t, decimal.NewFromInt(1500).Equal(InvestmentValue(inv)))
	assert.True(t, decimal.NewFromInt(500).Equal(InvestmentGain(inv)))
}

func TestPortfolioTotals(t *testing.T) {
	investments := []*models.Investment{
		{
			Shares:        decimal.NewFromInt(10),
			PurchasePrice: decimal.NewFromInt(100),
			CurrentPrice:  decimal.NewFromInt(150),
		},
		{
			Shares:        decimal.NewFromInt(5),
			PurchasePrice: decimal.NewFromInt(50),
			CurrentPrice:  decimal.NewFromInt(40),
		},
	}

	// 1500 + 200, 500 + (-50)
	assert.True(t, decimal.NewFromInt(1700).Equal(PortfolioValue(investments)))
	assert.True(t, decimal.NewFromInt(450).Equal(PortfolioGain(investments)))
}

func TestGoalProgress(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(250),
	}

	assert.InDelta(t, 25.0, GoalProgress(goal), 0.0001)
	assert.True(t, decimal.NewFromInt(750).Equal(GoalRemaining(goal)))
}

func TestGoalProgressCappedAt100(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(1500),
	}

	assert.Equal(t, 100.0, GoalProgress(goal))
}

func TestGoalProgressZeroTarget(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  decimal.Zero,
		CurrentAmount: decimal.NewFromInt(10),
	}

	assert.Equal(t, 0.0, GoalProgress(goal))
}

func TestMonthlyNeeded(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	goal := &models.Goal{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(250),
		TargetDate:    now.AddDate(0, 0, 60),
	}

	needed, ok := MonthlyNeeded(goal, now)
	require.True(t, ok)
	// 750 remaining over 60/30 = 2 months.
	assert.True(t, decimal.NewFromInt(375).Equal(needed), "got %s", needed)
}

func TestMonthlyNeededUndefinedPastDate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, targetDate := range []time.Time{now, now.AddDate(0, 0, -10)} {
		goal := &models.Goal{
			TargetAmount:  decimal.NewFromInt(1000),
			CurrentAmount: decimal.NewFromInt(250),
			TargetDate:    targetDate,
		}

		_, ok := MonthlyNeeded(goal, now)
		assert.False(t, ok)
	}
}
