package handlers

import (
	"net/http"

	"finsight-backend/logger"
	"finsight-backend/metrics"
	"finsight-backend/models"
	"finsight-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvestmentHandler handles HTTP requests for investments.
type InvestmentHandler struct {
	investments *repository.InvestmentRepository
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investments *repository.InvestmentRepository) *InvestmentHandler {
	return &InvestmentHandler{investments: investments}
}

type createInvestmentRequest struct {
	Symbol        string                `json:"symbol" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Kind          models.InvestmentKind `json:"kind" binding:"required"`
	Shares        decimal.Decimal       `json:"shares"`
	PurchasePrice decimal.Decimal       `json:"purchase_price"`
	CurrentPrice  decimal.Decimal       `json:"current_price"`
	PurchaseDate  string                `json:"purchase_date" binding:"required"`
}

type updateInvestmentRequest struct {
	Symbol        *string                `json:"symbol"`
	Name          *string                `json:"name"`
	Kind          *models.InvestmentKind `json:"kind"`
	Shares        *decimal.Decimal       `json:"shares"`
	PurchasePrice *decimal.Decimal       `json:"purchase_price"`
	CurrentPrice  *decimal.Decimal       `json:"current_price"`
	PurchaseDate  *string                `json:"purchase_date"`
}

// investmentView decorates an investment with its derived value and gain.
type investmentView struct {
	*models.Investment
	CurrentValue decimal.Decimal `json:"current_value"`
	Gain         decimal.Decimal `json:"gain"`
}

func viewOf(inv *models.Investment) investmentView {
	return investmentView{
		Investment:   inv,
		CurrentValue: metrics.InvestmentValue(inv),
		Gain:         metrics.InvestmentGain(inv),
	}
}

// List handles GET /investments
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}

	investments, err := h.investments.ListByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Get().Error("failed to list investments", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list investments")
		return
	}

	views := make([]investmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, viewOf(inv))
	}

	respondData(c, http.StatusOK, views)
}

// Create handles POST /investments
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !req.Kind.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "kind must be stock, mutual_fund, bond or etf")
		return
	}
	if req.Shares.IsNegative() || req.PurchasePrice.IsNegative() || req.CurrentPrice.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "shares and prices must be non-negative")
		return
	}
	purchaseDate, err := parseRequestDate(req.PurchaseDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "purchase_date must be YYYY-MM-DD")
		return
	}

	inv := &models.Investment{
		UserID:        userID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Kind:          req.Kind,
		Shares:        req.Shares,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		PurchaseDate:  purchaseDate,
	}

	if err := h.investments.Create(c.Request.Context(), inv); err != nil {
		logger.Get().Error("failed to create investment", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create investment")
		return
	}

	respondData(c, http.StatusCreated, viewOf(inv))
}

// Get handles GET /investments/:id
func (h *InvestmentHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.investments.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Investment not found")
			return
		}
		logger.Get().Error("failed to load investment", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load investment")
		return
	}

	respondData(c, http.StatusOK, viewOf(inv))
}

// Update handles PUT /investments/:id
func (h *InvestmentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Kind != nil && !req.Kind.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "kind must be stock, mutual_fund, bond or etf")
		return
	}
	for _, amount := range []*decimal.Decimal{req.Shares, req.PurchasePrice, req.CurrentPrice} {
		if amount != nil && amount.IsNegative() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "shares and prices must be non-negative")
			return
		}
	}

	patch := repository.InvestmentPatch{
		Symbol:        req.Symbol,
		Name:          req.Name,
		Kind:          req.Kind,
		Shares:        req.Shares,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := parseRequestDate(*req.PurchaseDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "purchase_date must be YYYY-MM-DD")
			return
		}
		patch.PurchaseDate = &purchaseDate
	}

	inv, err := h.investments.Update(c.Request.Context(), id, userID, patch)
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Investment not found")
			return
		}
		logger.Get().Error("failed to update investment", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update investment")
		return
	}

	respondData(c, http.StatusOK, viewOf(inv))
}

// Delete handles DELETE /investments/:id
func (h *InvestmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.investments.Delete(c.Request.Context(), id, userID)
	if err != nil {
		logger.Get().Error("failed to delete investment", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete investment")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Investment not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
