// Package analytics wraps the external analytics collaborator behind a
// capability interface so the out-of-process script can be swapped for an
// in-process implementation.
package analytics

import (
	"context"
	"encoding/json"

	"finsight-backend/models"

	"github.com/google/uuid"
)

// Provider is the analytics capability consulted by the API. Implementations
// are opaque: callers relay what comes back and never inspect internals.
type Provider interface {
	// AnalyzeSpending returns the collaborator's spending analysis for a
	// user as a single JSON document.
	AnalyzeSpending(ctx context.Context, userID uuid.UUID) (json.RawMessage, error)

	// GenerateTips returns personalized savings tips for a user.
	GenerateTips(ctx context.Context, userID uuid.UUID) ([]models.TipSuggestion, error)

	// CategorizeRows passes raw statement content through the collaborator's
	// categorization pass and returns its summary JSON.
	CategorizeRows(ctx context.Context, userID uuid.UUID, raw string) (json.RawMessage, error)
}
