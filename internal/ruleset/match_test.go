package ruleset

import "testing"

func TestMatchBashPrecedence(t *testing.T) {
	ctx := NewContext("/work/proj")
	ctx.AlwaysAllowRules[ScopeProject] = []string{"Bash(rm:*)"}
	ctx.AlwaysDenyRules[ScopeLocal] = []string{"Bash(rm -rf /:*)"}
	ctx.AlwaysAskRules[ScopeUser] = []string{"Bash(rm -rf:*)"}

	b, _, ok := ctx.MatchBash("rm -rf / --no-preserve-root")
	if !ok || b != BehaviorDeny {
		t.Errorf("deny should win over ask/allow, got %v ok=%v", b, ok)
	}

	b2, _, ok2 := ctx.MatchBash("rm -rf build/")
	if !ok2 || b2 != BehaviorAsk {
		t.Errorf("ask should win over allow, got %v ok=%v", b2, ok2)
	}

	b3, _, ok3 := ctx.MatchBash("rm file.txt")
	if !ok3 || b3 != BehaviorAllow {
		t.Errorf("expected allow, got %v ok=%v", b3, ok3)
	}
}

func TestApplyUpdatesAddRulesDedup(t *testing.T) {
	ctx := NewContext("/work/proj")
	next := ApplyUpdates(ctx, []Update{
		AddRules(ScopeSession, BehaviorAllow, "Bash(ls:*)"),
		AddRules(ScopeSession, BehaviorAllow, "Bash(ls:*)"),
	})
	rules := next.AlwaysAllowRules[ScopeSession]
	if len(rules) != 1 {
		t.Errorf("expected dedup to a single rule, got %v", rules)
	}
	if len(ctx.AlwaysAllowRules[ScopeSession]) != 0 {
		t.Error("original context must not be mutated")
	}
}

func TestApplyUpdatesRemoveRules(t *testing.T) {
	ctx := NewContext("/work/proj")
	ctx.AlwaysAllowRules[ScopeLocal] = []string{"Bash(ls:*)", "Bash(pwd)"}

	next := ApplyUpdates(ctx, []Update{RemoveRules(ScopeLocal, BehaviorAllow, "Bash(pwd)")})
	rules := next.AlwaysAllowRules[ScopeLocal]
	if len(rules) != 1 || rules[0] != "Bash(ls:*)" {
		t.Errorf("expected only Bash(ls:*) to remain, got %v", rules)
	}
}

func TestApplyUpdatesSetMode(t *testing.T) {
	ctx := NewContext("/work/proj")
	next := ApplyUpdates(ctx, []Update{SetMode(ScopeSession, ModeAcceptEdits)})
	if next.Mode != ModeAcceptEdits {
		t.Errorf("mode = %v, want acceptEdits", next.Mode)
	}
	if ctx.Mode != ModeDefault {
		t.Error("original context mode must be unchanged")
	}
}

func TestMoreSpecific(t *testing.T) {
	if !MoreSpecific(ScopeSession, ScopeUser) {
		t.Error("session should be more specific than user")
	}
	if MoreSpecific(ScopeUser, ScopeLocal) {
		t.Error("user should not be more specific than local")
	}
}
