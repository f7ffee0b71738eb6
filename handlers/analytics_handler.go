package handlers

import (
	"net/http"

	"finsight-backend/analytics"
	"finsight-backend/logger"
	"finsight-backend/models"
	"finsight-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyticsHandler relays the analytics collaborator's output and manages the
// savings tips it produces.
type AnalyticsHandler struct {
	provider analytics.Provider
	tips     *repository.SavingsTipRepository
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(provider analytics.Provider, tips *repository.SavingsTipRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		provider: provider,
		tips:     tips,
	}
}

// Spending handles GET /analytics/spending
func (h *AnalyticsHandler) Spending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.provider.AnalyzeSpending(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error("spending analysis failed", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "ANALYTICS_ERROR", "Spending analysis failed")
		return
	}

	respondData(c, http.StatusOK, result)
}

// Tips handles GET /analytics/tips: it consults the collaborator, persists
// each returned tip verbatim, and responds with the stored records.
func (h *AnalyticsHandler) Tips(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	suggestions, err := h.provider.GenerateTips(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error("tip generation failed", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "ANALYTICS_ERROR", "Tip generation failed")
		return
	}

	saved := make([]*models.SavingsTip, 0, len(suggestions))
	for _, suggestion := range suggestions {
		tip := &models.SavingsTip{
			UserID:           userID,
			Category:         suggestion.Category,
			Recommendation:   suggestion.Recommendation,
			PotentialSavings: suggestion.PotentialSavings,
			Confidence:       suggestion.Confidence,
			Active:           true,
		}
		if err := h.tips.Create(c.Request.Context(), tip); err != nil {
			logger.Get().Warn("failed to persist savings tip", zap.Error(err), zap.String("user_id", userID.String()))
			continue
		}
		saved = append(saved, tip)
	}

	respondData(c, http.StatusOK, saved)
}

// SavingsTips handles GET /analytics/savings-tips: the persisted active tips,
// newest first.
func (h *AnalyticsHandler) SavingsTips(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}

	tips, err := h.tips.ListByUserID(c.Request.Context(), userID, true, limit)
	if err != nil {
		logger.Get().Error("failed to list savings tips", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list savings tips")
		return
	}

	respondData(c, http.StatusOK, tips)
}

type updateSavingsTipRequest struct {
	Active *bool `json:"active"`
}

// UpdateSavingsTip handles PUT /analytics/savings-tips/:id, used to dismiss
// or restore a tip.
func (h *AnalyticsHandler) UpdateSavingsTip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateSavingsTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tip, err := h.tips.Update(c.Request.Context(), id, userID, repository.SavingsTipPatch{Active: req.Active})
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Savings tip not found")
			return
		}
		logger.Get().Error("failed to update savings tip", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update savings tip")
		return
	}

	respondData(c, http.StatusOK, tip)
}

// DeleteSavingsTip handles DELETE /analytics/savings-tips/:id
func (h *AnalyticsHandler) DeleteSavingsTip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.tips.Delete(c.Request.Context(), id, userID)
	if err != nil {
		logger.Get().Error("failed to delete savings tip", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete savings tip")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Savings tip not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
