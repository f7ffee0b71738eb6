package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"finsight-backend/logger"
	"finsight-backend/models"
	"finsight-backend/repository"
	"finsight-backend/service"
	"finsight-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxStatementSize caps uploaded statement files at 5MB.
const maxStatementSize = 5 * 1024 * 1024

// StatementHandler handles statement uploads, ingestion, and the archive of
// past uploads.
type StatementHandler struct {
	ingest     *service.IngestService
	statements *repository.StatementFileRepository
	archive    storage.Storage
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(ingest *service.IngestService, statements *repository.StatementFileRepository, archive storage.Storage) *StatementHandler {
	return &StatementHandler{
		ingest:     ingest,
		statements: statements,
		archive:    archive,
	}
}

// Upload handles POST /transactions/upload
func (h *StatementHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}
	if fileHeader.Size > maxStatementSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", maxStatementSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded file")
		return
	}

	result, err := h.ingest.IngestCSV(c.Request.Context(), userID, bytes.NewReader(raw))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_STATEMENT", err.Error())
		return
	}

	// Archive the raw upload. Failure here doesn't undo the ingestion; the
	// transactions are already committed row by row.
	fileID := uuid.New()
	storagePath, err := h.archive.Upload(c.Request.Context(), fileID, fileHeader.Filename, bytes.NewReader(raw))
	if err != nil {
		logger.Get().Warn("failed to archive statement", zap.Error(err), zap.String("user_id", userID.String()))
	} else {
		record := &models.StatementFile{
			ID:                fileID,
			UserID:            userID,
			Filename:          fileHeader.Filename,
			Size:              fileHeader.Size,
			StoragePath:       storagePath,
			TransactionsSaved: result.TransactionsSaved,
		}
		if err := h.statements.Create(c.Request.Context(), record); err != nil {
			logger.Get().Warn("failed to record statement file", zap.Error(err), zap.String("user_id", userID.String()))
			h.archive.Delete(c.Request.Context(), storagePath)
		}
	}

	respondData(c, http.StatusOK, result)
}

// List handles GET /statements
func (h *StatementHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}

	files, err := h.statements.ListByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Get().Error("failed to list statements", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list statements")
		return
	}

	respondData(c, http.StatusOK, files)
}

// Download handles GET /statements/:id/download
func (h *StatementHandler) Download(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	record, err := h.statements.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		if isNoRows(err) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Statement not found")
			return
		}
		logger.Get().Error("failed to load statement", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load statement")
		return
	}

	reader, err := h.archive.Download(c.Request.Context(), record.StoragePath)
	if err != nil {
		logger.Get().Error("failed to download statement", zap.Error(err), zap.String("user_id", userID.String()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to download statement")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Filename))
	c.DataFromReader(http.StatusOK, record.Size, "text/csv", reader, nil)
}
