package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"finsight-backend/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const geminiModel = "gemini-2.0-flash"

const tipsPromptHeader = `You are a personal finance assistant. Given the recent expense
transactions below, produce savings tips as a JSON array. Each element must
have exactly these fields: "category" (string), "recommendation" (string),
"potential_savings" (number, estimated monthly savings in dollars) and
"confidence" (number between 0 and 1). Respond with the JSON array only.

Transactions:
`

// TransactionLister is the subset of the transaction repository the Gemini
// provider needs to build its prompt.
type TransactionLister interface {
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transaction, error)
}

// GeminiProvider generates savings tips with Gemini instead of the analytics
// script. Spending analysis and CSV categorization are delegated to a
// fallback provider since the model adds nothing there.
type GeminiProvider struct {
	client       *genai.Client
	transactions TransactionLister
	fallback     Provider
	log          *zap.Logger
}

// NewGeminiProvider creates a Gemini-backed provider layered over fallback.
func NewGeminiProvider(client *genai.Client, transactions TransactionLister, fallback Provider, log *zap.Logger) *GeminiProvider {
	return &GeminiProvider{
		client:       client,
		transactions: transactions,
		fallback:     fallback,
		log:          log,
	}
}

// AnalyzeSpending delegates to the fallback provider.
func (p *GeminiProvider) AnalyzeSpending(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	return p.fallback.AnalyzeSpending(ctx, userID)
}

// CategorizeRows delegates to the fallback provider.
func (p *GeminiProvider) CategorizeRows(ctx context.Context, userID uuid.UUID, raw string) (json.RawMessage, error) {
	return p.fallback.CategorizeRows(ctx, userID, raw)
}

// GenerateTips prompts Gemini with the user's recent expenses and parses the
// JSON tips it returns.
func (p *GeminiProvider) GenerateTips(ctx context.Context, userID uuid.UUID) ([]models.TipSuggestion, error) {
	transactions, err := p.transactions.ListByUserID(ctx, userID, 200)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for tips: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(tipsPromptHeader)
	for _, tx := range transactions {
		if tx.Kind != models.TransactionExpense {
			continue
		}
		fmt.Fprintf(&sb, "- %s | %s | $%s | %s\n",
			tx.Date.Format("2006-01-02"), tx.Category, tx.Amount.StringFixed(2), tx.Description)
	}

	model := p.client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	raw := extractText(resp)
	if raw == "" {
		return nil, fmt.Errorf("gemini returned an empty response")
	}

	var tips []models.TipSuggestion
	if err := json.Unmarshal([]byte(raw), &tips); err != nil {
		p.log.Warn("gemini returned unparseable tips", zap.Error(err), zap.String("raw", raw))
		return nil, fmt.Errorf("gemini returned malformed tips: %w", err)
	}

	return tips, nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
