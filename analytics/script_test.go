package analytics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeScript drops a shell script acting as the collaborator; the provider
// only cares about argv, stdout and the exit status.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analytics.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestScriptProviderRelaysJSON(t *testing.T) {
	script := writeScript(t, `echo '{"insights": [], "category_analysis": {"Food & Dining": 120.5}}'`)
	provider := NewScriptProvider("/bin/sh", script, zap.NewNop())

	out, err := provider.AnalyzeSpending(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.JSONEq(t, `{"insights": [], "category_analysis": {"Food & Dining": 120.5}}`, string(out))
}

func TestScriptProviderParsesTips(t *testing.T) {
	script := writeScript(t, `echo '[{"category":"Subscriptions","recommendation":"Cancel unused services.","potential_savings":24.0,"confidence":0.75}]'`)
	provider := NewScriptProvider("/bin/sh", script, zap.NewNop())

	tips, err := provider.GenerateTips(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, "Subscriptions", tips[0].Category)
	assert.Equal(t, 0.75, tips[0].Confidence)
}

func TestScriptProviderNonzeroExit(t *testing.T) {
	script := writeScript(t, `echo '{"error": "boom"}'; exit 1`)
	provider := NewScriptProvider("/bin/sh", script, zap.NewNop())

	_, err := provider.AnalyzeSpending(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestScriptProviderInvalidJSON(t *testing.T) {
	script := writeScript(t, `echo 'not json at all'`)
	provider := NewScriptProvider("/bin/sh", script, zap.NewNop())

	_, err := provider.AnalyzeSpending(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestScriptProviderPassesArguments(t *testing.T) {
	// The script echoes its argv back so we can check the contract.
	script := writeScript(t, `echo "{\"action\": \"$1\", \"user_id\": \"$2\"}"`)
	provider := NewScriptProvider("/bin/sh", script, zap.NewNop())

	userID := uuid.New()
	out, err := provider.AnalyzeSpending(context.Background(), userID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action": "analyze_spending", "user_id": "`+userID.String()+`"}`, string(out))
}
