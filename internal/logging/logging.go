// Package logging sets up the structured slog logger used across
// toolguard: a colorized tint handler for the console, plus a
// decision-log helper that writes one structured line per engine
// decision, adapted from the teacher's plain-text logDecision.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

// ConfigDir is the directory toolguard stores its logs and daemon state
// under.
func ConfigDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "toolguard")
}

// New builds the console slog.Logger, colorized via tint.
func New(level slog.Level) *slog.Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	return slog.New(handler)
}

// DecisionLogPath is where structured decision records are appended.
func DecisionLogPath() string {
	return filepath.Join(ConfigDir(), "decisions.log")
}

var decisionLogger *slog.Logger

func decisionLoggerOnce() *slog.Logger {
	if decisionLogger != nil {
		return decisionLogger
	}
	os.MkdirAll(ConfigDir(), 0o755)
	f, err := os.OpenFile(DecisionLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		decisionLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		return decisionLogger
	}
	decisionLogger = slog.New(slog.NewJSONHandler(f, nil))
	return decisionLogger
}

// LogDecision appends one structured decision record, grouped by the
// same fields the teacher's logDecision recorded (tool, cwd, source,
// input, decision, reason) plus a correlation request id.
func LogDecision(requestID, toolName, toolInput, workDir, decision, source, reason string) {
	if len(toolInput) > 200 {
		toolInput = toolInput[:200] + "..."
	}
	decisionLoggerOnce().Info("decision",
		"request_id", requestID,
		"tool", toolName,
		"cwd", workDir,
		"source", source,
		"input", toolInput,
		"decision", decision,
		"reason", reason,
	)
}
