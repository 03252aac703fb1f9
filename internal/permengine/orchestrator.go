package permengine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xiaoqinglee/toolguard/internal/extract"
	"github.com/xiaoqinglee/toolguard/internal/pathresolve"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
	"github.com/xiaoqinglee/toolguard/internal/screen"
	"github.com/xiaoqinglee/toolguard/internal/shellsyntax"
)

// ScreenerDisabled mirrors the environment toggle from spec §4.6 that
// disables the injection screener globally for safe-composed commands.
var ScreenerDisabled = false

func init() {
	if os.Getenv("TOOLGUARD_DISABLE_SCREENER") != "" {
		ScreenerDisabled = true
	}
}

// CheckBashPermissions is the public entry point for evaluating a shell
// command, per spec §4.7.
func (e *Evaluator) CheckBashPermissions(ctx *ruleset.Context, command string) ruleset.Decision {
	command = strings.TrimSpace(command)
	if command == "" {
		return ruleset.Ask("empty command", ruleset.OtherReason("empty command"), "", nil)
	}

	tokens, err := shellsyntax.Tokenize(command, shellsyntax.TokenizeOptions{PreserveNewlines: true})
	if err != nil {
		return ruleset.Ask("could not parse command: "+err.Error(), ruleset.OtherReason(err.Error()), "", nil)
	}

	safeComposed := shellsyntax.IsSafeComposed(tokens)
	if !safeComposed {
		v := screen.NewViews(command, baseCommandOf(command))
		if d := screen.Run(v); !d.IsPassthrough() {
			return d
		}
	}

	withoutRedir, _, _ := shellsyntax.ExtractRedirections(command)
	if b, r, ok := ctx.MatchBash(command); ok && b == ruleset.BehaviorDeny {
		return ruleset.Deny(denyMessage("Bash", command), ruleset.RuleReason(r.String()))
	}
	if b, r, ok := ctx.MatchBash(withoutRedir); ok && b == ruleset.BehaviorDeny {
		return ruleset.Deny(denyMessage("Bash", command), ruleset.RuleReason(r.String()))
	}

	subcommands := shellsyntax.Split(tokens)
	subcommands = excludeSolitaryCwdCd(subcommands, ctx.OriginalCwd)

	for i, sc := range subcommands {
		if i > 0 && screen.IsPipeToShell(baseCommandOf(sc)) {
			return ruleset.Ask("pipe to shell interpreter: "+sc, ruleset.OtherReason("pipe to shell"), "", nil)
		}
	}

	cdCount := 0
	for _, sc := range subcommands {
		if baseCommandOf(sc) == "cd" {
			cdCount++
		}
	}
	if cdCount > 1 {
		return ruleset.Ask("multiple cd invocations in one command", ruleset.OtherReason("multiple cd"), "", nil)
	}
	hasCdInCompound := cdCount > 0 && len(subcommands) > 1

	results := make(map[string]ruleset.Decision, len(subcommands))
	var worst ruleset.Decision
	worst = ruleset.Allow()
	anyNonAllow := false

	for _, sc := range subcommands {
		d := e.decideSubcommand(ctx, sc, hasCdInCompound)
		results[sc] = d
		switch d.Behavior {
		case ruleset.BehaviorDeny:
			return d
		case ruleset.BehaviorAsk:
			anyNonAllow = true
			if worst.Behavior != ruleset.BehaviorAsk {
				worst = d
			}
		case ruleset.BehaviorPassthrough:
			anyNonAllow = true
		}
	}

	if d := e.validateRedirectionsAndCd(ctx, command, hasCdInCompound); d.Behavior == ruleset.BehaviorDeny || d.Behavior == ruleset.BehaviorAsk {
		return d
	}

	if !anyNonAllow {
		return ruleset.Allow()
	}
	if worst.Behavior == ruleset.BehaviorAsk {
		return worst
	}

	return ruleset.Ask(
		askDefaultMessage("Bash"),
		ruleset.SubcommandsReason(results),
		"",
		[]ruleset.Update{ruleset.AddRules(ruleset.ScopeLocal, ruleset.BehaviorAllow, "Bash("+command+")")},
	)
}

func (e *Evaluator) decideSubcommand(ctx *ruleset.Context, sc string, hasCdInCompound bool) ruleset.Decision {
	sc = strings.TrimSpace(sc)
	if sc == "" {
		return ruleset.Allow()
	}

	if b, r, ok := ctx.MatchBash(sc); ok {
		switch b {
		case ruleset.BehaviorDeny:
			return ruleset.Deny(denyMessage("Bash", sc), ruleset.RuleReason(r.String()))
		case ruleset.BehaviorAllow:
			return ruleset.AllowReason(ruleset.RuleReason(r.String()))
		case ruleset.BehaviorAsk:
			return ruleset.Ask(askDefaultMessage("Bash"), ruleset.RuleReason(r.String()), "", nil)
		}
	}

	baseCmd := baseCommandOf(sc)
	args := argsOf(sc)

	withoutRedir, redirs, _ := shellsyntax.ExtractRedirections(sc)
	for _, redir := range redirs {
		d := e.EvaluatePath(ctx, ruleset.OpCreate, redir.Target)
		if d.Behavior == ruleset.BehaviorDeny || d.Behavior == ruleset.BehaviorAsk {
			return d
		}
	}
	pathsResolved := len(redirs) > 0

	ext := extract.Extract(baseCmd, args, ctx.OriginalCwd)
	if !ext.Unrestricted {
		op := classToOp(ext.Class)
		if baseCmd == "rm" || baseCmd == "rmdir" {
			if resolved, dangerous := extract.IsDangerousRemoval(ext.Paths, ctx.OriginalCwd); dangerous {
				return ruleset.Ask(dangerousRemovalMessage(baseCmd, resolved), ruleset.OtherReason("dangerous removal"), resolved, nil)
			}
		}
		if hasCdInCompound && op != ruleset.OpRead {
			return ruleset.Ask("cd in compound command with a write operation", ruleset.OtherReason("cd in compound with write"), "", nil)
		}
		pathsResolved = true
		for _, p := range ext.Paths {
			d := e.EvaluatePath(ctx, op, p)
			if d.Behavior == ruleset.BehaviorDeny || d.Behavior == ruleset.BehaviorAsk {
				return d
			}
		}
	}

	if ctx.Mode == ruleset.ModeAcceptEdits && isAcceptEditsAutoAllow(baseCmd) {
		if baseCmd == "sed" && !hasInPlaceFlag(args) {
			// read-only sed still needs the normal screen below
		} else {
			return ruleset.AllowReason(ruleset.OtherReason("auto-allowed by acceptEdits mode"))
		}
	}

	if !ScreenerDisabled {
		v := screen.NewViews(withoutRedir, baseCmd)
		if d := screen.Run(v); !d.IsPassthrough() {
			return d
		}
	}

	if pathsResolved {
		return ruleset.Allow()
	}

	return ruleset.Ask(
		askDefaultMessage("Bash"),
		ruleset.OtherReason("no matching rule"),
		"",
		[]ruleset.Update{ruleset.AddRules(ruleset.ScopeLocal, ruleset.BehaviorAllow, "Bash("+sc+")")},
	)
}

func (e *Evaluator) validateRedirectionsAndCd(ctx *ruleset.Context, command string, hasCdInCompound bool) ruleset.Decision {
	_, redirs, _ := shellsyntax.ExtractRedirections(command)
	if hasCdInCompound && len(redirs) > 0 {
		return ruleset.Ask("cd in compound command with a write operation", ruleset.OtherReason("cd in compound with write"), "", nil)
	}
	for _, redir := range redirs {
		d := e.EvaluatePath(ctx, ruleset.OpCreate, redir.Target)
		if d.Behavior == ruleset.BehaviorDeny || d.Behavior == ruleset.BehaviorAsk {
			return d
		}
	}
	return ruleset.Allow()
}

func classToOp(c extract.Class) ruleset.Op {
	switch c {
	case extract.ClassRead:
		return ruleset.OpRead
	case extract.ClassCreate:
		return ruleset.OpCreate
	default:
		return ruleset.OpEdit
	}
}

var acceptEditsAutoAllowCommands = map[string]bool{
	"mkdir": true, "touch": true, "rm": true, "rmdir": true, "mv": true, "cp": true, "sed": true,
}

func isAcceptEditsAutoAllow(cmd string) bool {
	return acceptEditsAutoAllowCommands[cmd]
}

func hasInPlaceFlag(args []string) bool {
	for _, a := range args {
		if a == "-i" || a == "--in-place" || strings.HasPrefix(a, "-i") {
			return true
		}
	}
	return false
}

func baseCommandOf(segment string) string {
	words := strings.Fields(segment)
	idx := 0
	for i, w := range words {
		if !strings.Contains(w, "=") || strings.HasPrefix(w, "-") {
			idx = i
			break
		}
		if i == len(words)-1 {
			return ""
		}
	}
	words = words[idx:]
	if len(words) == 0 {
		return ""
	}
	if words[0] == "env" {
		for _, w := range words[1:] {
			if !strings.Contains(w, "=") {
				return filepath.Base(w)
			}
		}
		return ""
	}
	return filepath.Base(words[0])
}

func argsOf(segment string) []string {
	words := strings.Fields(segment)
	idx := 0
	for i, w := range words {
		if !strings.Contains(w, "=") || strings.HasPrefix(w, "-") {
			idx = i
			break
		}
		if i == len(words)-1 {
			return nil
		}
	}
	words = words[idx:]
	if len(words) == 0 {
		return nil
	}
	if words[0] == "env" {
		for i, w := range words[1:] {
			if !strings.Contains(w, "=") {
				rest := words[1+i+1:]
				return rest
			}
		}
		return nil
	}
	if len(words) > 1 {
		return words[1:]
	}
	return nil
}

func excludeSolitaryCwdCd(subcommands []string, cwd string) []string {
	if len(subcommands) != 1 {
		return subcommands
	}
	sc := strings.TrimSpace(subcommands[0])
	if baseCommandOf(sc) != "cd" {
		return subcommands
	}
	args := argsOf(sc)
	if len(args) == 0 {
		return subcommands
	}
	target := extract.ResolveAbs(strings.Join(args, " "), cwd)
	if target == filepath.Clean(cwd) {
		return nil
	}
	return subcommands
}

// CheckFilePermissions is the public entry point for Read/Edit/Write/
// NotebookEdit tool invocations, per spec §4.7's file pipeline.
func (e *Evaluator) CheckFilePermissions(ctx *ruleset.Context, tool, path string, op ruleset.Op) ruleset.Decision {
	d := e.EvaluatePath(ctx, op, path)
	if d.Behavior != ruleset.BehaviorAsk || op == ruleset.OpRead {
		return d
	}
	abs, err := resolveForSuggestion(ctx, path)
	if err == nil {
		d.Suggestions = append(d.Suggestions,
			ruleset.SetMode(ruleset.ScopeSession, ruleset.ModeAcceptEdits),
		)
		if !isInsideWorkspace(ctx, abs) {
			d.Suggestions = append(d.Suggestions, ruleset.AddDirectories(ruleset.ScopeSession, filepath.Dir(abs)))
		}
	}
	return d
}

// CheckPathPermission is the lower-level entry point exposed alongside
// CheckBashPermissions/CheckFilePermissions for direct path queries.
func (e *Evaluator) CheckPathPermission(ctx *ruleset.Context, path string, op ruleset.Op) ruleset.Decision {
	return e.EvaluatePath(ctx, op, path)
}

func resolveForSuggestion(ctx *ruleset.Context, path string) (string, error) {
	return pathresolve.Resolve(path, ctx.OriginalCwd)
}
