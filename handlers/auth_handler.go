package handlers

import (
	"errors"
	"net/http"

	"finsight-backend/auth"
	"finsight-backend/logger"
	"finsight-backend/models"
	"finsight-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login, and identity lookups.
type AuthHandler struct {
	users *repository.UserRepository
	auth  *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *repository.UserRepository, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		users: users,
		auth:  authService,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	digest, err := h.auth.HashPassword(req.Password)
	if err != nil {
		logger.Get().Error("failed to hash password", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed")
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: digest,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, "EMAIL_TAKEN", "Email is already registered")
			return
		}
		logger.Get().Error("failed to create user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed")
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		logger.Get().Error("failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if isNoRows(err) {
			// Same response as a bad password; don't leak which one it was.
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		logger.Get().Error("failed to look up user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	if !h.auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		logger.Get().Error("failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if isNoRows(err) {
			// Token outlived the account; treat as unauthenticated.
			respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Unknown user")
			return
		}
		logger.Get().Error("failed to load user", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}

	respondData(c, http.StatusOK, user)
}
