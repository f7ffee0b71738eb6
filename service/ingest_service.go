package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"finsight-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionStore is the subset of the transaction repository the ingestion
// path needs.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
}

// Column-name aliases recognized across bank export formats.
var columnAliases = map[string][]string{
	"description": {"description", "memo", "transaction", "details"},
	"amount":      {"amount", "debit", "credit", "value"},
	"date":        {"date", "transaction_date", "posted_date"},
}

// categoryKeywords maps a category to the substrings that select it. Matching
// is case-insensitive against the row description; first hit wins, in this
// order.
var categoryOrder = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Bills & Utilities",
	"Entertainment",
	"Healthcare",
	"Education",
}

var categoryKeywords = map[string][]string{
	"Food & Dining":     {"restaurant", "cafe", "starbucks", "mcdonald", "pizza", "food", "dining", "grocery", "supermarket"},
	"Transportation":    {"uber", "lyft", "gas", "fuel", "parking", "taxi", "metro", "bus", "train"},
	"Shopping":          {"amazon", "walmart", "target", "shopping", "store", "retail", "purchase"},
	"Bills & Utilities": {"electric", "water", "internet", "phone", "utility", "bill", "payment"},
	"Entertainment":     {"movie", "theater", "netflix", "spotify", "game", "entertainment"},
	"Healthcare":        {"doctor", "hospital", "pharmacy", "medical", "health", "clinic"},
	"Education":         {"tuition", "book", "school", "education", "course", "class"},
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	time.RFC3339,
}

// IngestService bulk-creates transactions from uploaded tabular statements.
// Rows are committed one at a time with no atomicity across the file;
// malformed rows are skipped silently.
type IngestService struct {
	store TransactionStore
	log   *zap.Logger
	now   func() time.Time
}

// IngestServiceOption is a functional option for IngestService
type IngestServiceOption func(*IngestService)

// IngestWithClock overrides the time source used for defaulted dates.
func IngestWithClock(now func() time.Time) IngestServiceOption {
	return func(s *IngestService) {
		s.now = now
	}
}

// NewIngestService creates a new ingest service
func NewIngestService(store TransactionStore, log *zap.Logger, opts ...IngestServiceOption) *IngestService {
	s := &IngestService{
		store: store,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestResult summarizes a single ingestion run.
type IngestResult struct {
	RowsTotal         int            `json:"rows_total"`
	TransactionsSaved int            `json:"transactions_saved"`
	Categories        map[string]int `json:"categories"`
}

// IngestCSV parses the uploaded statement and stores one transaction per
// parseable row, owned by userID. Rows without a usable amount are skipped
// and only reflected in RowsTotal.
func (s *IngestService) IngestCSV(ctx context.Context, userID uuid.UUID, raw io.Reader) (*IngestResult, error) {
	reader := csv.NewReader(raw)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("statement is empty or not valid CSV")
	}

	descIdx := findColumn(header, columnAliases["description"])
	amountIdx := findColumn(header, columnAliases["amount"])
	dateIdx := findColumn(header, columnAliases["date"])

	result := &IngestResult{Categories: make(map[string]int)}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line: count it and move on.
			result.RowsTotal++
			continue
		}
		result.RowsTotal++

		tx, ok := s.parseRow(row, descIdx, amountIdx, dateIdx)
		if !ok {
			continue
		}
		tx.UserID = userID

		if err := s.store.Create(ctx, tx); err != nil {
			s.log.Warn("failed to store ingested transaction",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("description", tx.Description))
			continue
		}

		result.TransactionsSaved++
		result.Categories[tx.Category]++
	}

	return result, nil
}

// parseRow turns one CSV record into a transaction. The kind is decided by
// the sign of the parsed amount before the absolute value is stored:
// positive amounts are bank debits and become expenses, everything else
// income. That ordering matches the historical ingestion behavior.
func (s *IngestService) parseRow(row []string, descIdx, amountIdx, dateIdx int) (*models.Transaction, bool) {
	if amountIdx < 0 || amountIdx >= len(row) {
		return nil, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row[amountIdx]))
	if err != nil {
		return nil, false
	}

	kind := models.TransactionIncome
	if amount.IsPositive() {
		kind = models.TransactionExpense
	}
	amount = amount.Abs()

	description := "Unknown"
	if descIdx >= 0 && descIdx < len(row) && strings.TrimSpace(row[descIdx]) != "" {
		description = strings.TrimSpace(row[descIdx])
	}

	date := s.now().Truncate(24 * time.Hour)
	if dateIdx >= 0 && dateIdx < len(row) {
		if parsed, ok := parseDate(strings.TrimSpace(row[dateIdx])); ok {
			date = parsed
		}
	}

	return &models.Transaction{
		Description: description,
		Amount:      amount,
		Category:    Categorize(description),
		Kind:        kind,
		Date:        date,
	}, true
}

// Categorize assigns a category by case-insensitive substring match against
// the description, defaulting to "Other".
func Categorize(description string) string {
	lower := strings.ToLower(description)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return "Other"
}

// findColumn returns the index of the first header cell matching any alias,
// or -1 when none does.
func findColumn(header []string, aliases []string) int {
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range aliases {
			if name == alias {
				return i
			}
		}
	}
	return -1
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
