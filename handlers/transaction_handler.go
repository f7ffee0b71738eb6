package handlers

import (
	"net/http"

	"finsight-backend/logger"
	"finsight-backend/models"
	"finsight-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionHandler handles HTTP requests for transactions.
type TransactionHandler struct {
	transactions *repository.TransactionRepository
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions *repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type createTransactionRequest struct {
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category" binding:"required"`
	Kind        models.TransactionKind `json:"kind" binding:"required"`
	Date        string                 `json:"date" binding:"required"`
}

type updateTransactionRequest struct {
	Description *string                 `json:"description"`
	Amount      *decimal.Decimal        `json:"amount"`
	Category    *string                 `json:"category"`
	Kind        *models.TransactionKind `json:"kind"`
	Date        *string                 `json:"date"`
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}

	transactions, err := h.transactions.ListByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Get().Error("failed to list transactions", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list transactions")
		return
	}

	respondData(c, http.StatusOK, transactions)
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !req.Kind.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "kind must be income or expense")
		return
	}
	if req.Amount.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount must be non-negative")
		return
	}
	date, err := parseRequestDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	// Owner always comes from the token, never the payload.
	tx := &models.Transaction{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Kind:        req.Kind,
		Date:        date,
	}

	if err := h.transactions.Create(c.Request.Context(), tx); err != nil {
		logger.Get().Error("failed to create transaction", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create transaction")
		return
	}

	respondData(c, http.StatusCreated, tx)
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tx, err := h.transactions.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
			return
		}
		logger.Get().Error("failed to load transaction", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load transaction")
		return
	}

	respondData(c, http.StatusOK, tx)
}

// Update handles PUT /transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	patch := repository.TransactionPatch{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Kind:        req.Kind,
	}
	if req.Kind != nil && !req.Kind.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "kind must be income or expense")
		return
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount must be non-negative")
		return
	}
	if req.Date != nil {
		date, err := parseRequestDate(*req.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	tx, err := h.transactions.Update(c.Request.Context(), id, userID, patch)
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
			return
		}
		logger.Get().Error("failed to update transaction", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update transaction")
		return
	}

	respondData(c, http.StatusOK, tx)
}

// Delete handles DELETE /transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.transactions.Delete(c.Request.Context(), id, userID)
	if err != nil {
		logger.Get().Error("failed to delete transaction", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete transaction")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
