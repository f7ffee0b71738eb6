package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finsight-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTransactionStore struct {
	created []*models.Transaction
	failOn  string
}

func (f *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	if f.failOn != "" && tx.Description == f.failOn {
		return errors.New("storage failure")
	}
	copied := *tx
	f.created = append(f.created, &copied)
	return nil
}

func newTestService(store *fakeTransactionStore) *IngestService {
	fixed := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return NewIngestService(store, zap.NewNop(), IngestWithClock(func() time.Time { return fixed }))
}

func TestIngestCSV(t *testing.T) {
	csvData := `Date,Description,Amount
2026-01-05,Starbucks Coffee,4.50
2026-01-06,Monthly Salary,-3000.00
2026-01-07,Uber ride,18.20
`

	store := &fakeTransactionStore{}
	svc := newTestService(store)
	userID := uuid.New()

	result, err := svc.IngestCSV(context.Background(), userID, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 3, result.RowsTotal)
	assert.Equal(t, 3, result.TransactionsSaved)
	require.Len(t, store.created, 3)

	coffee := store.created[0]
	assert.Equal(t, userID, coffee.UserID)
	assert.Equal(t, "Starbucks Coffee", coffee.Description)
	assert.Equal(t, models.TransactionExpense, coffee.Kind)
	assert.True(t, decimal.RequireFromString("4.50").Equal(coffee.Amount))
	assert.Equal(t, "Food & Dining", coffee.Category)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), coffee.Date)

	// Negative amounts are income; the stored amount is always positive.
	salary := store.created[1]
	assert.Equal(t, models.TransactionIncome, salary.Kind)
	assert.True(t, decimal.RequireFromString("3000.00").Equal(salary.Amount))

	assert.Equal(t, "Transportation", store.created[2].Category)
	assert.Equal(t, map[string]int{"Food & Dining": 1, "Transportation": 1, "Other": 1}, result.Categories)
}

func TestIngestCSVSkipsUnparseableAmounts(t *testing.T) {
	csvData := `date,description,amount
2026-01-05,Good row,10.00
2026-01-06,Bad row,not-a-number
2026-01-07,Another good row,20.00
`

	store := &fakeTransactionStore{}
	svc := newTestService(store)

	result, err := svc.IngestCSV(context.Background(), uuid.New(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 3, result.RowsTotal)
	assert.Equal(t, 2, result.TransactionsSaved)
	assert.Len(t, store.created, 2)
}

func TestIngestCSVColumnAliases(t *testing.T) {
	// Bank exports vary; memo/value/posted_date must resolve too.
	csvData := `posted_date,memo,value
2026-02-01,Netflix subscription,15.99
`

	store := &fakeTransactionStore{}
	svc := newTestService(store)

	result, err := svc.IngestCSV(context.Background(), uuid.New(), strings.NewReader(csvData))
	require.NoError(t, err)

	require.Equal(t, 1, result.TransactionsSaved)
	tx := store.created[0]
	assert.Equal(t, "Netflix subscription", tx.Description)
	assert.Equal(t, "Entertainment", tx.Category)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), tx.Date)
}

func TestIngestCSVDefaults(t *testing.T) {
	// No description or date columns: defaults kick in.
	csvData := `amount
42.00
`

	store := &fakeTransactionStore{}
	svc := newTestService(store)

	result, err := svc.IngestCSV(context.Background(), uuid.New(), strings.NewReader(csvData))
	require.NoError(t, err)

	require.Equal(t, 1, result.TransactionsSaved)
	tx := store.created[0]
	assert.Equal(t, "Unknown", tx.Description)
	assert.Equal(t, "Other", tx.Category)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), tx.Date)
}

func TestIngestCSVMissingAmountColumn(t *testing.T) {
	csvData := `date,description
2026-01-05,No amounts here
`

	store := &fakeTransactionStore{}
	svc := newTestService(store)

	result, err := svc.IngestCSV(context.Background(), uuid.New(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.RowsTotal)
	assert.Equal(t, 0, result.TransactionsSaved)
	assert.Empty(t, store.created)
}

func TestIngestCSVStorageFailureSkipsRow(t *testing.T) {
	csvData := `date,description,amount
2026-01-05,Keep me,10.00
2026-01-06,Drop me,20.00
`

	store := &fakeTransactionStore{failOn: "Drop me"}
	svc := newTestService(store)

	result, err := svc.IngestCSV(context.Background(), uuid.New(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.TransactionsSaved)
	require.Len(t, store.created, 1)
	assert.Equal(t, "Keep me", store.created[0].Description)
}

func TestIngestCSVEmptyInput(t *testing.T) {
	store := &fakeTransactionStore{}
	svc := newTestService(store)

	_, err := svc.IngestCSV(context.Background(), uuid.New(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"STARBUCKS #1234", "Food & Dining"},
		{"Shell Gas Station", "Transportation"},
		{"AMAZON MARKETPLACE", "Shopping"},
		{"City Water Utility", "Bills & Utilities"},
		{"AMC Theater", "Entertainment"},
		{"CVS Pharmacy", "Healthcare"},
		{"University tuition", "Education"},
		{"Mystery merchant", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.description), "description %q", tt.description)
	}
}
