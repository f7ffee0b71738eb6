// Package metrics computes dashboard aggregates from already-fetched records.
// Everything here is pure and recomputed on every read; nothing is cached or
// persisted.
package metrics

import (
	"time"

	"finsight-backend/models"

	"github.com/shopspring/decimal"
)

// IncomeTotal sums the amounts of all income transactions.
func IncomeTotal(transactions []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Kind == models.TransactionIncome {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// ExpenseTotal sums the amounts of all expense transactions.
func ExpenseTotal(transactions []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Kind == models.TransactionExpense {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Balance is income minus expenses over a transaction set.
func Balance(transactions []*models.Transaction) decimal.Decimal {
	return IncomeTotal(transactions).Sub(ExpenseTotal(transactions))
}

// InvestmentValue is shares * current price for a single holding.
func InvestmentValue(inv *models.Investment) decimal.Decimal {
	return inv.Shares.Mul(inv.CurrentPrice)
}

// InvestmentGain is shares * (current price - purchase price) for a single
// holding.
func InvestmentGain(inv *models.Investment) decimal.Decimal {
	return inv.Shares.Mul(inv.CurrentPrice.Sub(inv.PurchasePrice))
}

// PortfolioValue sums the current value of all holdings.
func PortfolioValue(investments []*models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(InvestmentValue(inv))
	}
	return total
}

// PortfolioGain sums the unrealized gain of all holdings.
func PortfolioGain(investments []*models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(InvestmentGain(inv))
	}
	return total
}

// GoalProgress returns completion as a percentage, capped at 100. A goal with
// a zero target reports 0.
func GoalProgress(goal *models.Goal) float64 {
	if goal.TargetAmount.IsZero() {
		return 0
	}
	progress, _ := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if progress > 100 {
		return 100
	}
	return progress
}

// GoalRemaining is the amount still needed to reach the target.
func GoalRemaining(goal *models.Goal) decimal.Decimal {
	return goal.TargetAmount.Sub(goal.CurrentAmount)
}

// MonthlyNeeded is the amount to save per month to reach the target by its
// date, treating a month as 30 days. ok is false when the target date is
// today or in the past, where the metric is undefined.
func MonthlyNeeded(goal *models.Goal, now time.Time) (decimal.Decimal, bool) {
	daysRemaining := goal.TargetDate.Sub(now).Hours() / 24
	if daysRemaining <= 0 {
		return decimal.Zero, false
	}

	months := decimal.NewFromFloat(daysRemaining / 30)
	return GoalRemaining(goal).Div(months).Round(2), true
}
