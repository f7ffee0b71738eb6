package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"finsight-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Script actions understood by the collaborator.
const (
	actionAnalyzeSpending = "analyze_spending"
	actionGenerateTips    = "generate_tips"
	actionProcessCSV      = "process_csv"
)

// ScriptProvider invokes the analytics script as a child process. The
// contract: argv is (action, user ID, optional raw CSV), the script writes a
// single JSON document to stdout and exits 0 on success.
type ScriptProvider struct {
	interpreter string
	scriptPath  string
	log         *zap.Logger
}

// NewScriptProvider creates a provider running scriptPath with interpreter.
func NewScriptProvider(interpreter, scriptPath string, log *zap.Logger) *ScriptProvider {
	return &ScriptProvider{
		interpreter: interpreter,
		scriptPath:  scriptPath,
		log:         log,
	}
}

// NewScriptProviderFromEnv creates a provider from ANALYTICS_PYTHON and
// ANALYTICS_SCRIPT, with defaults suitable for development.
func NewScriptProviderFromEnv(log *zap.Logger) *ScriptProvider {
	interpreter := os.Getenv("ANALYTICS_PYTHON")
	if interpreter == "" {
		interpreter = "python3"
	}

	scriptPath := os.Getenv("ANALYTICS_SCRIPT")
	if scriptPath == "" {
		scriptPath = "./server/analytics.py"
	}

	return NewScriptProvider(interpreter, scriptPath, log)
}

// AnalyzeSpending relays the script's spending analysis.
func (p *ScriptProvider) AnalyzeSpending(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	return p.run(ctx, actionAnalyzeSpending, userID.String())
}

// GenerateTips relays the script's savings tips.
func (p *ScriptProvider) GenerateTips(ctx context.Context, userID uuid.UUID) ([]models.TipSuggestion, error) {
	out, err := p.run(ctx, actionGenerateTips, userID.String())
	if err != nil {
		return nil, err
	}

	var tips []models.TipSuggestion
	if err := json.Unmarshal(out, &tips); err != nil {
		return nil, fmt.Errorf("analytics script returned malformed tips: %w", err)
	}
	return tips, nil
}

// CategorizeRows relays the script's CSV processing summary.
func (p *ScriptProvider) CategorizeRows(ctx context.Context, userID uuid.UUID, raw string) (json.RawMessage, error) {
	return p.run(ctx, actionProcessCSV, userID.String(), raw)
}

func (p *ScriptProvider) run(ctx context.Context, args ...string) (json.RawMessage, error) {
	cmd := exec.CommandContext(ctx, p.interpreter, append([]string{p.scriptPath}, args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		p.log.Error("analytics script failed",
			zap.Error(err),
			zap.String("action", args[0]),
			zap.String("stderr", stderr.String()))
		return nil, fmt.Errorf("analytics script failed: %w", err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if !json.Valid(out) {
		return nil, fmt.Errorf("analytics script emitted invalid JSON")
	}

	return json.RawMessage(out), nil
}
