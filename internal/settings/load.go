package settings

import (
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

// LoadOptions parameterizes LoadPermissionContext.
type LoadOptions struct {
	ProjectDir              string
	HomeDir                 string
	IncludeProjectOverrides bool
	BypassAvailable         bool
}

// LoadPermissionContext implements the public `loadPermissionContext`
// entry point of spec §6.1: it merges on-disk settings across the three
// persistable scopes into a fresh Context.
func LoadPermissionContext(opts LoadOptions) (*ruleset.Context, error) {
	ctx := ruleset.NewContext(opts.ProjectDir)
	ctx.IsBypassPermissionsModeAvailable = opts.BypassAvailable

	scopes := []ruleset.Scope{ruleset.ScopeUser}
	if opts.IncludeProjectOverrides {
		scopes = append(scopes, ruleset.ScopeProject, ruleset.ScopeLocal)
	}

	for _, scope := range scopes {
		paths := PathsForScope(scope, opts.ProjectDir, opts.HomeDir)
		f, err := Load(paths)
		if err != nil {
			return nil, err
		}
		allow, deny, ask, dirs := f.ToContextRules()
		ctx.AlwaysAllowRules[scope] = allow
		ctx.AlwaysDenyRules[scope] = deny
		ctx.AlwaysAskRules[scope] = ask
		for _, d := range dirs {
			ctx.AdditionalWorkingDirectories[d] = scope
		}
	}

	return ctx, nil
}

// PersistUpdate implements `persistUpdate`: it writes an update to its
// destination scope's on-disk settings file, if that scope is
// persistable. Non-persistable destinations (session, command, cliArg,
// flagSettings, policySettings) report persisted=false without error —
// they only ever exist in memory.
func PersistUpdate(update ruleset.Update, opts LoadOptions) (persisted bool, err error) {
	if !update.Destination.Persistable() {
		return false, nil
	}

	paths := PathsForScope(update.Destination, opts.ProjectDir, opts.HomeDir)
	f, err := Load(paths)
	if err != nil {
		return false, err
	}

	applyToFile(f, update)

	if err := Save(paths, f); err != nil {
		return false, err
	}
	return true, nil
}

func applyToFile(f *File, u ruleset.Update) {
	switch u.Kind {
	case ruleset.UpdateAddRules:
		*ruleListFor(f, u.Behavior) = mergeUnique(*ruleListFor(f, u.Behavior), u.Rules)
	case ruleset.UpdateReplaceRules:
		*ruleListFor(f, u.Behavior) = dedupStrings(u.Rules)
	case ruleset.UpdateRemoveRules:
		*ruleListFor(f, u.Behavior) = filterOut(*ruleListFor(f, u.Behavior), u.Rules)
	case ruleset.UpdateAddDirectories:
		f.Permissions.AdditionalDirectories = mergeUnique(f.Permissions.AdditionalDirectories, u.Directories)
	case ruleset.UpdateRemoveDirectories:
		f.Permissions.AdditionalDirectories = filterOut(f.Permissions.AdditionalDirectories, u.Directories)
	case ruleset.UpdateSetMode:
		// setMode has no on-disk representation in the permissions block;
		// persisting it is a caller-level concern (e.g. a top-level
		// "defaultMode" key), out of scope for the rule-store file.
	}
}

func ruleListFor(f *File, behavior ruleset.Behavior) *[]string {
	switch behavior {
	case ruleset.BehaviorAllow:
		return &f.Permissions.Allow
	case ruleset.BehaviorDeny:
		return &f.Permissions.Deny
	default:
		return &f.Permissions.Ask
	}
}

func mergeUnique(existing, additions []string) []string {
	seen := make(map[string]bool, len(existing))
	out := make([]string, len(existing))
	copy(out, existing)
	for _, s := range existing {
		seen[s] = true
	}
	for _, s := range additions {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func filterOut(existing, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, s := range remove {
		drop[s] = true
	}
	var out []string
	for _, s := range existing {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}
