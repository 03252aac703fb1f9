// Package hook implements the PreToolUse/PermissionRequest hook wire
// format: reading one tool invocation from stdin, evaluating it, and
// writing a hook-protocol decision to stdout, or exiting silently to let
// the interactive approval UI take over. Adapted from the teacher's
// hook.go/client.go/main.go trio.
package hook

import (
	"encoding/json"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/xiaoqinglee/toolguard/internal/daemon"
	"github.com/xiaoqinglee/toolguard/internal/logging"
	"github.com/xiaoqinglee/toolguard/internal/permengine"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

// Input matches the hook's PermissionRequest input payload.
type Input struct {
	SessionID  string          `json:"session_id"`
	ToolName   string          `json:"tool_name"`
	ToolInput  json.RawMessage `json:"tool_input"`
	WorkingDir string          `json:"cwd"`
}

// Output is the PermissionRequest hookSpecificOutput envelope.
type Output struct {
	HookSpecificOutput *SpecificOutput `json:"hookSpecificOutput,omitempty"`
}

type SpecificOutput struct {
	HookEventName string        `json:"hookEventName"`
	Decision      *HookDecision `json:"decision,omitempty"`
}

type HookDecision struct {
	Behavior string `json:"behavior"` // "allow" or "deny"
	Message  string `json:"message,omitempty"`
}

// skipEvaluationTools are tools that never need security review: they
// are read-only, user-facing, or internal state tracking.
var skipEvaluationTools = map[string]bool{
	"ExitPlanMode": true, "EnterPlanMode": true,
	"AskUserQuestion": true,
	"TaskCreate":      true, "TaskUpdate": true, "TaskList": true,
	"TaskGet": true, "TaskStop": true, "TaskOutput": true,
	"Read": true, "Glob": true, "Grep": true, "WebFetch": true, "WebSearch": true,
	"Task": true, "Skill": true,
}

func shouldSkip(toolName string) bool {
	return skipEvaluationTools[toolName]
}

// ReadInput reads and parses a hook Input from stdin.
func ReadInput(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func writeAllow(w io.Writer) {
	out := Output{
		HookSpecificOutput: &SpecificOutput{
			HookEventName: "PermissionRequest",
			Decision:      &HookDecision{Behavior: "allow"},
		},
	}
	json.NewEncoder(w).Encode(out)
}

func writeDeny(w io.Writer, message string) {
	out := Output{
		HookSpecificOutput: &SpecificOutput{
			HookEventName: "PermissionRequest",
			Decision:      &HookDecision{Behavior: "deny", Message: message},
		},
	}
	json.NewEncoder(w).Encode(out)
}

// Run is the top-level `toolguard hook` entry point: it reads a hook
// Input, evaluates it in-process, falls back to the daemon when no
// rule settles the decision immediately, and writes the hook's
// decision. A zero exit status with no stdout means "fall through to
// the normal interactive prompt" (a passthrough/ask result).
func Run(eval *permengine.Evaluator, ctx *ruleset.Context) int {
	in, err := ReadInput(os.Stdin)
	if err != nil {
		return 0 // malformed input: fail open to the normal UI, never to deny
	}
	if in.ToolName == "" || shouldSkip(in.ToolName) {
		return 0
	}

	requestID := uuid.NewString()
	toolInputStr := string(in.ToolInput)

	var decision ruleset.Decision
	switch in.ToolName {
	case "Bash":
		var cmd struct {
			Command string `json:"command"`
		}
		json.Unmarshal(in.ToolInput, &cmd)
		decision = eval.CheckBashPermissions(ctx, cmd.Command)
	case "Write", "Edit", "NotebookEdit":
		path, op := filePathAndOp(in.ToolName, in.ToolInput)
		decision = eval.CheckFilePermissions(ctx, in.ToolName, path, op)
	default:
		decision = ruleset.Passthrough()
	}

	if decision.Behavior == ruleset.BehaviorAllow {
		logging.LogDecision(requestID, in.ToolName, toolInputStr, in.WorkingDir, "allow", "rules", decision.DecisionReason.String())
		writeAllow(os.Stdout)
		return 0
	}
	if decision.Behavior == ruleset.BehaviorDeny {
		logging.LogDecision(requestID, in.ToolName, toolInputStr, in.WorkingDir, "deny", "rules", decision.DecisionReason.String())
		writeDeny(os.Stdout, decision.Message)
		return 0
	}
	if decision.Behavior == ruleset.BehaviorAsk && ctx.Mode == ruleset.ModeDontAsk {
		// dontAsk never prompts: every ask is resolved to a deny here.
		logging.LogDecision(requestID, in.ToolName, toolInputStr, in.WorkingDir, "deny", "dontAsk", decision.DecisionReason.String())
		writeDeny(os.Stdout, decision.Message)
		return 0
	}
	if decision.Behavior == ruleset.BehaviorAsk {
		logging.LogDecision(requestID, in.ToolName, toolInputStr, in.WorkingDir, "ask", "rules", decision.DecisionReason.String())
		return 0
	}

	// Passthrough — ask the daemon, which serves the context it loaded
	// when it started.
	resp, err := daemon.Query(daemon.EvalRequest{
		RequestID: requestID,
		ToolName:  in.ToolName,
		ToolInput: in.ToolInput,
		WorkDir:   in.WorkingDir,
	})
	if err != nil {
		logging.LogDecision(requestID, in.ToolName, toolInputStr, in.WorkingDir, "ask", "fail-safe", err.Error())
		return 0
	}

	logging.LogDecision(requestID, in.ToolName, toolInputStr, in.WorkingDir, resp.Behavior, "daemon", resp.Reason)
	if resp.Behavior == "allow" {
		writeAllow(os.Stdout)
	} else if resp.Behavior == "deny" {
		writeDeny(os.Stdout, resp.Message)
	}
	return 0
}

func filePathAndOp(toolName string, raw json.RawMessage) (string, ruleset.Op) {
	pathKey := "file_path"
	if toolName == "NotebookEdit" {
		pathKey = "notebook_path"
	}
	var input map[string]json.RawMessage
	json.Unmarshal(raw, &input)
	var path string
	if fieldRaw, ok := input[pathKey]; ok {
		json.Unmarshal(fieldRaw, &path)
	}
	op := ruleset.OpEdit
	if toolName == "Write" {
		op = ruleset.OpCreate
	}
	return path, op
}
