// Package permengine implements the Path Permission Evaluator (spec
// §4.5) and the Engine Orchestrator (spec §4.7): the public entry points
// checkBashPermissions, checkFilePermissions, and checkPathPermission.
package permengine

import (
	"path/filepath"
	"strings"

	"github.com/xiaoqinglee/toolguard/internal/pathresolve"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

// ScratchPaths names the engine's own session-local areas that are
// readable unconditionally per spec §4.7's "Special allowances".
type ScratchPaths struct {
	PlanFile         string
	BashOutputDir    string
	ToolResultsDir   string
	TasksDir         string
	MemoryDir        string
}

func (s ScratchPaths) contains(path string) (string, bool) {
	for _, candidate := range []struct {
		path   string
		reason string
	}{
		{s.PlanFile, "session plan file"},
		{s.BashOutputDir, "session bash-output directory"},
		{s.ToolResultsDir, "session tool-results directory"},
		{s.TasksDir, "project tasks directory"},
		{s.MemoryDir, "memory directory"},
	} {
		if candidate.path == "" {
			continue
		}
		if path == candidate.path || strings.HasPrefix(path, candidate.path+string(filepath.Separator)) {
			return candidate.reason, true
		}
	}
	return "", false
}

// Evaluator holds the host configuration the engine needs beyond the
// rule context itself: scope roots for glob resolution and the
// session's scratch-path allowances.
type Evaluator struct {
	ProjectRoot  string // scope root for project/local/cli/session/command rules
	HomeRoot     string // scope root for user-scope rules
	Scratch      ScratchPaths
}

func scopeRootFor(scope ruleset.Scope, e *Evaluator) string {
	if scope == ruleset.ScopeUser {
		return e.HomeRoot
	}
	return e.ProjectRoot
}

// EvaluatePath implements spec §4.5's Path Permission Evaluator.
func (e *Evaluator) EvaluatePath(ctx *ruleset.Context, op ruleset.Op, rawPath string) ruleset.Decision {
	absPath, err := pathresolve.Resolve(rawPath, ctx.OriginalCwd)
	if err != nil {
		return ruleset.Ask("could not resolve path: "+err.Error(), ruleset.OtherReason(err.Error()), "", nil)
	}

	tool := "Edit"
	if op == ruleset.OpRead {
		tool = "Read"
	}

	// Step 1: deny-rule match, checked against both the original path and
	// any symlink-expanded realpath (all must pass for allow, but a deny
	// on any alias is sufficient to deny).
	for _, candidate := range pathresolve.ExpandSymlinks(absPath) {
		candidate = pathresolve.NormalizeMacPrivate(candidate)
		if r, ok := matchDenyAcrossScopes(ctx, tool, candidate, e); ok {
			return ruleset.Deny(denyMessage(tool, rawPath), ruleset.RuleReason(r))
		}
	}

	if reason, scratch := e.Scratch.contains(absPath); scratch {
		return ruleset.AllowReason(ruleset.OtherReason(reason))
	}

	// Step 2: write-safety, only for non-read operations.
	if op != ruleset.OpRead {
		if pathresolve.IsSuspicious(absPath) {
			return ruleset.Ask("path has a suspicious shape", ruleset.OtherReason("suspicious path"), absPath, nil)
		}
		if pathresolve.IsWriteProtected(absPath) {
			return ruleset.Ask("is a sensitive file", ruleset.OtherReason("is a sensitive file"), absPath, suggestAddRule(tool, absPath, e))
		}
		if pathresolve.IsSensitive(absPath) {
			return ruleset.Ask("path is sensitive", ruleset.OtherReason("sensitive path"), absPath, suggestAddRule(tool, absPath, e))
		}
	}

	// Step 3: workspace-boundary check.
	if isInsideWorkspace(ctx, absPath) {
		return ruleset.Allow()
	}

	// Step 4: allow-rule match.
	for _, candidate := range pathresolve.ExpandSymlinks(absPath) {
		candidate = pathresolve.NormalizeMacPrivate(candidate)
		if r, ok := matchAllowAcrossScopes(ctx, tool, candidate, e); ok {
			return ruleset.AllowReason(ruleset.RuleReason(r))
		}
	}

	// Step 5: ask with a suggestion.
	verb := "read"
	if op != ruleset.OpRead {
		verb = "modify"
	}
	msg := pathOutsideWorkspaceMessage(tool, absPath, verb, ctx)
	return ruleset.Ask(msg, ruleset.OtherReason("outside workspace"), absPath, suggestionsForMiss(tool, absPath, op, e))
}

func matchDenyAcrossScopes(ctx *ruleset.Context, tool, path string, e *Evaluator) (string, bool) {
	return matchScoped(ctx, ruleset.BehaviorDeny, tool, path, e)
}

func matchAllowAcrossScopes(ctx *ruleset.Context, tool, path string, e *Evaluator) (string, bool) {
	return matchScoped(ctx, ruleset.BehaviorAllow, tool, path, e)
}

func matchScoped(ctx *ruleset.Context, behavior ruleset.Behavior, tool, path string, e *Evaluator) (string, bool) {
	for _, scope := range []ruleset.Scope{
		ruleset.ScopeUser, ruleset.ScopeProject, ruleset.ScopeLocal,
		ruleset.ScopePolicy, ruleset.ScopeFlag, ruleset.ScopeCLIArg,
		ruleset.ScopeCommand, ruleset.ScopeSession,
	} {
		root := scopeRootFor(scope, e)
		if r, ok := ctx.MatchPath(behavior, tool, path, root); ok {
			return r.String(), true
		}
	}
	return "", false
}

// isInsideWorkspace reports whether absPath and, when it is a symlink,
// its realpath both lie inside a working directory.
func isInsideWorkspace(ctx *ruleset.Context, absPath string) bool {
	for _, candidate := range pathresolve.ExpandSymlinks(absPath) {
		if !insideAnyRoot(ctx, candidate) {
			return false
		}
	}
	return true
}

// insideAnyRoot matches a working directory by its own path or its realpath.
func insideAnyRoot(ctx *ruleset.Context, absPath string) bool {
	normalized := pathresolve.NormalizeMacPrivate(absPath)
	roots := []string{ctx.OriginalCwd}
	for dir := range ctx.AdditionalWorkingDirectories {
		roots = append(roots, dir)
	}
	for _, dir := range roots {
		if dir == "" {
			continue
		}
		for _, root := range pathresolve.ExpandSymlinks(filepath.Clean(dir)) {
			root = pathresolve.NormalizeMacPrivate(root)
			if normalized == root || strings.HasPrefix(normalized, root+string(filepath.Separator)) {
				return true
			}
		}
	}
	return false
}

func suggestAddRule(tool, absPath string, e *Evaluator) []ruleset.Update {
	return []ruleset.Update{ruleset.AddRules(ruleset.ScopeSession, ruleset.BehaviorAllow, tool+"("+absPath+")")}
}

func suggestionsForMiss(tool, absPath string, op ruleset.Op, e *Evaluator) []ruleset.Update {
	updates := []ruleset.Update{ruleset.AddRules(ruleset.ScopeSession, ruleset.BehaviorAllow, tool+"("+absPath+")")}
	if op != ruleset.OpRead {
		dir := filepath.Dir(absPath)
		updates = append(updates,
			ruleset.SetMode(ruleset.ScopeSession, ruleset.ModeAcceptEdits),
			ruleset.AddDirectories(ruleset.ScopeSession, dir),
		)
	}
	return updates
}
