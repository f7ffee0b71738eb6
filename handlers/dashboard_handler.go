package handlers

import (
	"net/http"
	"time"

	"finsight-backend/logger"
	"finsight-backend/metrics"
	"finsight-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the precomputed summary the dashboard page renders.
// Everything is derived from stored records on every request.
type DashboardHandler struct {
	transactions *repository.TransactionRepository
	investments  *repository.InvestmentRepository
	goals        *repository.GoalRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	transactions *repository.TransactionRepository,
	investments *repository.InvestmentRepository,
	goals *repository.GoalRepository,
) *DashboardHandler {
	return &DashboardHandler{
		transactions: transactions,
		investments:  investments,
		goals:        goals,
	}
}

// Summary handles GET /dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	transactions, err := h.transactions.ListByUserID(ctx, userID, 0)
	if err != nil {
		logger.Get().Error("failed to load transactions", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build summary")
		return
	}

	investments, err := h.investments.ListByUserID(ctx, userID, 0)
	if err != nil {
		logger.Get().Error("failed to load investments", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build summary")
		return
	}

	goals, err := h.goals.ListByUserID(ctx, userID, 0)
	if err != nil {
		logger.Get().Error("failed to load goals", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build summary")
		return
	}

	now := time.Now()
	goalViews := make([]goalView, 0, len(goals))
	for _, goal := range goals {
		goalViews = append(goalViews, goalViewOf(goal, now))
	}

	respondData(c, http.StatusOK, gin.H{
		"balance":         metrics.Balance(transactions),
		"income_total":    metrics.IncomeTotal(transactions),
		"expense_total":   metrics.ExpenseTotal(transactions),
		"portfolio_value": metrics.PortfolioValue(investments),
		"portfolio_gain":  metrics.PortfolioGain(investments),
		"goals":           goalViews,
	})
}
