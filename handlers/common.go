package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finsight-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// respondError writes the standard error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondData writes the standard success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// currentUserID pulls the authenticated user out of the context set by the
// auth middleware, responding 401 itself when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
	}
	return userID, ok
}

// parseIDParam parses the :id path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parseLimitQuery parses the optional ?limit= query parameter, responding 400
// on failure. A missing parameter means no limit.
func parseLimitQuery(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondError(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}

// isNoRows reports whether err is the not-found sentinel from the
// persistence layer.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

var requestDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// parseRequestDate accepts dates as YYYY-MM-DD or RFC 3339.
func parseRequestDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range requestDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
