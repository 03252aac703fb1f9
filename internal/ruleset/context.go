package ruleset

// Context is the process-scoped, per-session ToolPermissionContext.
// It is treated as copy-on-write: applyUpdates never mutates its receiver.
type Context struct {
	Mode                             Mode
	AlwaysAllowRules                 map[Scope][]string
	AlwaysDenyRules                  map[Scope][]string
	AlwaysAskRules                   map[Scope][]string
	AdditionalWorkingDirectories     map[string]Scope
	IsBypassPermissionsModeAvailable bool
	OriginalCwd                      string
}

// NewContext returns an empty context rooted at cwd, in default mode.
func NewContext(cwd string) *Context {
	return &Context{
		Mode:                         ModeDefault,
		AlwaysAllowRules:             map[Scope][]string{},
		AlwaysDenyRules:              map[Scope][]string{},
		AlwaysAskRules:               map[Scope][]string{},
		AdditionalWorkingDirectories: map[string]Scope{},
		OriginalCwd:                  cwd,
	}
}

func (c *Context) rulesFor(behavior Behavior) map[Scope][]string {
	switch behavior {
	case BehaviorAllow:
		return c.AlwaysAllowRules
	case BehaviorDeny:
		return c.AlwaysDenyRules
	case BehaviorAsk:
		return c.AlwaysAskRules
	default:
		return nil
	}
}

// AllRules returns every parsed rule for a behavior across all scopes, in
// scope order (user, project, local, policy, flag, cliArg, command,
// session).
func (c *Context) AllRules(behavior Behavior) []Rule {
	var out []Rule
	rules := c.rulesFor(behavior)
	for _, scope := range []Scope{
		ScopeUser, ScopeProject, ScopeLocal, ScopePolicy,
		ScopeFlag, ScopeCLIArg, ScopeCommand, ScopeSession,
	} {
		for _, rs := range rules[scope] {
			if r, ok := ParseRule(rs); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

// clone returns a deep copy of c, so applyUpdates never mutates the input.
func (c *Context) clone() *Context {
	n := &Context{
		Mode:                             c.Mode,
		IsBypassPermissionsModeAvailable: c.IsBypassPermissionsModeAvailable,
		OriginalCwd:                      c.OriginalCwd,
		AlwaysAllowRules:                 cloneScopeMap(c.AlwaysAllowRules),
		AlwaysDenyRules:                  cloneScopeMap(c.AlwaysDenyRules),
		AlwaysAskRules:                   cloneScopeMap(c.AlwaysAskRules),
		AdditionalWorkingDirectories:     make(map[string]Scope, len(c.AdditionalWorkingDirectories)),
	}
	for k, v := range c.AdditionalWorkingDirectories {
		n.AdditionalWorkingDirectories[k] = v
	}
	return n
}

func cloneScopeMap(m map[Scope][]string) map[Scope][]string {
	out := make(map[Scope][]string, len(m))
	for scope, rules := range m {
		cp := make([]string, len(rules))
		copy(cp, rules)
		out[scope] = cp
	}
	return out
}

// ApplyUpdates applies a sequence of updates to ctx and returns a new
// Context; ctx itself is never mutated.
func ApplyUpdates(ctx *Context, updates []Update) *Context {
	next := ctx.clone()
	for _, u := range updates {
		applyOne(next, u)
	}
	return next
}

func applyOne(c *Context, u Update) {
	switch u.Kind {
	case UpdateAddRules:
		target := c.rulesFor(u.Behavior)
		target[u.Destination] = addUnique(target[u.Destination], u.Rules)
	case UpdateReplaceRules:
		target := c.rulesFor(u.Behavior)
		target[u.Destination] = dedup(u.Rules)
	case UpdateRemoveRules:
		target := c.rulesFor(u.Behavior)
		target[u.Destination] = remove(target[u.Destination], u.Rules)
	case UpdateAddDirectories:
		for _, d := range u.Directories {
			c.AdditionalWorkingDirectories[d] = u.Destination
		}
	case UpdateRemoveDirectories:
		for _, d := range u.Directories {
			if c.AdditionalWorkingDirectories[d] == u.Destination {
				delete(c.AdditionalWorkingDirectories, d)
			}
		}
	case UpdateSetMode:
		c.Mode = u.Mode
	}
}

func addUnique(existing, additions []string) []string {
	seen := make(map[string]bool, len(existing))
	out := make([]string, len(existing))
	copy(out, existing)
	for _, r := range existing {
		seen[r] = true
	}
	for _, r := range additions {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func dedup(rules []string) []string {
	seen := make(map[string]bool, len(rules))
	var out []string
	for _, r := range rules {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func remove(existing, toRemove []string) []string {
	drop := make(map[string]bool, len(toRemove))
	for _, r := range toRemove {
		drop[r] = true
	}
	var out []string
	for _, r := range existing {
		if !drop[r] {
			out = append(out, r)
		}
	}
	return out
}
