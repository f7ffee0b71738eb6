package handlers

import (
	"net/http"
	"time"

	"finsight-backend/logger"
	"finsight-backend/metrics"
	"finsight-backend/models"
	"finsight-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GoalHandler handles HTTP requests for savings goals.
type GoalHandler struct {
	goals *repository.GoalRepository
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goals *repository.GoalRepository) *GoalHandler {
	return &GoalHandler{goals: goals}
}

type createGoalRequest struct {
	Title         string           `json:"title" binding:"required"`
	Description   *string          `json:"description"`
	TargetAmount  decimal.Decimal  `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	TargetDate    string           `json:"target_date" binding:"required"`
	Category      string           `json:"category" binding:"required"`
}

type updateGoalRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	TargetDate    *string          `json:"target_date"`
	Category      *string          `json:"category"`
}

// goalView decorates a goal with its derived progress figures.
type goalView struct {
	*models.Goal
	ProgressPercent float64          `json:"progress_percent"`
	Remaining       decimal.Decimal  `json:"remaining"`
	MonthlyNeeded   *decimal.Decimal `json:"monthly_needed,omitempty"`
}

func goalViewOf(goal *models.Goal, now time.Time) goalView {
	view := goalView{
		Goal:            goal,
		ProgressPercent: metrics.GoalProgress(goal),
		Remaining:       metrics.GoalRemaining(goal),
	}
	if needed, ok := metrics.MonthlyNeeded(goal, now); ok {
		view.MonthlyNeeded = &needed
	}
	return view
}

// List handles GET /goals
func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}

	goals, err := h.goals.ListByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Get().Error("failed to list goals", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list goals")
		return
	}

	now := time.Now()
	views := make([]goalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, goalViewOf(goal, now))
	}

	respondData(c, http.StatusOK, views)
}

// Create handles POST /goals
func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.TargetAmount.IsNegative() || (req.CurrentAmount != nil && req.CurrentAmount.IsNegative()) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amounts must be non-negative")
		return
	}
	targetDate, err := parseRequestDate(req.TargetDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "target_date must be YYYY-MM-DD")
		return
	}

	currentAmount := decimal.Zero
	if req.CurrentAmount != nil {
		currentAmount = *req.CurrentAmount
	}

	goal := &models.Goal{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
		Category:      req.Category,
	}

	if err := h.goals.Create(c.Request.Context(), goal); err != nil {
		logger.Get().Error("failed to create goal", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create goal")
		return
	}

	respondData(c, http.StatusCreated, goalViewOf(goal, time.Now()))
}

// Get handles GET /goals/:id
func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	goal, err := h.goals.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Goal not found")
			return
		}
		logger.Get().Error("failed to load goal", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load goal")
		return
	}

	respondData(c, http.StatusOK, goalViewOf(goal, time.Now()))
}

// Update handles PUT /goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	for _, amount := range []*decimal.Decimal{req.TargetAmount, req.CurrentAmount} {
		if amount != nil && amount.IsNegative() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amounts must be non-negative")
			return
		}
	}

	patch := repository.GoalPatch{
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Category:      req.Category,
	}
	if req.TargetDate != nil {
		targetDate, err := parseRequestDate(*req.TargetDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "target_date must be YYYY-MM-DD")
			return
		}
		patch.TargetDate = &targetDate
	}

	goal, err := h.goals.Update(c.Request.Context(), id, userID, patch)
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Goal not found")
			return
		}
		logger.Get().Error("failed to update goal", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update goal")
		return
	}

	respondData(c, http.StatusOK, goalViewOf(goal, time.Now()))
}

// Delete handles DELETE /goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.goals.Delete(c.Request.Context(), id, userID)
	if err != nil {
		logger.Get().Error("failed to delete goal", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete goal")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Goal not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
