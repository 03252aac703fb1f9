package daemon

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/xiaoqinglee/toolguard/internal/permengine"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

// Evaluator is the interface the Daemon dispatches requests to. The
// deterministic Service below is the only implementation; the interface
// exists so tests can substitute a fake.
type Evaluator interface {
	Evaluate(ctx context.Context, req EvalRequest) (EvalResponse, error)
	Close() error
}

// Service holds one ruleset.Context and permengine.Evaluator shared
// across every request the daemon handles in its lifetime.
type Service struct {
	Permission *permengine.Evaluator
	Rules      *ruleset.Context
}

// Evaluate dispatches a request to the right CheckXPermissions entry
// point by tool name.
func (s *Service) Evaluate(_ context.Context, req EvalRequest) (EvalResponse, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	var decision ruleset.Decision
	switch req.ToolName {
	case "Bash":
		var input struct {
			Command string `json:"command"`
		}
		if err := json.Unmarshal(req.ToolInput, &input); err != nil {
			return EvalResponse{Behavior: "ask", Message: "failed to parse command"}, nil
		}
		decision = s.Permission.CheckBashPermissions(s.Rules, input.Command)
	case "Write", "Edit", "NotebookEdit":
		path, op, err := extractFileOpPath(req.ToolName, req.ToolInput)
		if err != nil {
			return EvalResponse{Behavior: "ask", Message: err.Error()}, nil
		}
		decision = s.Permission.CheckFilePermissions(s.Rules, req.ToolName, path, op)
	case "Read":
		var input struct {
			FilePath string `json:"file_path"`
		}
		if err := json.Unmarshal(req.ToolInput, &input); err != nil {
			return EvalResponse{Behavior: "ask", Message: "failed to parse file_path"}, nil
		}
		decision = s.Permission.CheckFilePermissions(s.Rules, "Read", input.FilePath, ruleset.OpRead)
	default:
		return EvalResponse{Behavior: "ask", Message: "unknown tool: " + req.ToolName}, nil
	}

	resp := EvalResponse{
		Behavior:    string(decision.Behavior),
		Message:     decision.Message,
		BlockedPath: decision.BlockedPath,
		Reason:      decision.DecisionReason.String(),
	}
	if decision.Behavior == ruleset.BehaviorPassthrough {
		resp.Behavior = string(ruleset.BehaviorAsk)
	}
	return resp, nil
}

func extractFileOpPath(toolName string, raw json.RawMessage) (string, ruleset.Op, error) {
	pathKey := "file_path"
	if toolName == "NotebookEdit" {
		pathKey = "notebook_path"
	}
	var input map[string]json.RawMessage
	if err := json.Unmarshal(raw, &input); err != nil {
		return "", "", fmt.Errorf("failed to parse %s input", toolName)
	}
	fieldRaw, ok := input[pathKey]
	if !ok {
		return "", "", fmt.Errorf("%s missing %s", toolName, pathKey)
	}
	var path string
	if err := json.Unmarshal(fieldRaw, &path); err != nil {
		return "", "", fmt.Errorf("failed to parse %s", pathKey)
	}
	op := ruleset.OpEdit
	if _, existed := input["old_string"]; !existed {
		if toolName == "Write" {
			op = ruleset.OpCreate
		}
	}
	return path, op, nil
}

// Close is a no-op: the Service holds no resources of its own beyond the
// in-memory rule context.
func (s *Service) Close() error { return nil }
