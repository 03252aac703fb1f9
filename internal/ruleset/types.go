// Package ruleset implements the permission engine's data model: scopes,
// rule strings, the permission context, and the decision/update tagged
// unions that flow through the rest of the engine.
package ruleset

// Scope identifies where a rule or directory entry came from.
type Scope string

const (
	ScopeUser    Scope = "userSettings"
	ScopeProject Scope = "projectSettings"
	ScopeLocal   Scope = "localSettings"
	ScopePolicy  Scope = "policySettings"
	ScopeFlag    Scope = "flagSettings"
	ScopeCLIArg  Scope = "cliArg"
	ScopeCommand Scope = "command"
	ScopeSession Scope = "session"
)

// Persistable reports whether a scope's rules live on disk.
func (s Scope) Persistable() bool {
	switch s {
	case ScopeUser, ScopeProject, ScopeLocal:
		return true
	default:
		return false
	}
}

// scopeOrder ranks scopes from least to most specific; MoreSpecific
// compares by it. Rule matching does not consult it.
var scopeOrder = map[Scope]int{
	ScopeUser:    0,
	ScopeProject: 1,
	ScopeLocal:   2,
	ScopePolicy:  3,
	ScopeFlag:    4,
	ScopeCLIArg:  5,
	ScopeCommand: 6,
	ScopeSession: 7,
}

// MoreSpecific reports whether a is a more specific scope than b.
func MoreSpecific(a, b Scope) bool {
	return scopeOrder[a] > scopeOrder[b]
}

// Behavior is one of the three outcomes a rule can attach to.
type Behavior string

const (
	BehaviorAllow       Behavior = "allow"
	BehaviorDeny        Behavior = "deny"
	BehaviorAsk         Behavior = "ask"
	BehaviorPassthrough Behavior = "passthrough"
)

// Mode is the session-wide policy modifier.
type Mode string

const (
	ModeDefault           Mode = "default"
	ModeAcceptEdits       Mode = "acceptEdits"
	ModePlan              Mode = "plan"
	ModeDontAsk           Mode = "dontAsk"
	ModeBypassPermissions Mode = "bypassPermissions"
)

// Op is the class of a file-touching operation.
type Op string

const (
	OpRead   Op = "read"
	OpEdit   Op = "edit"
	OpCreate Op = "create"
)

// ReasonKind discriminates the Reason tagged union.
type ReasonKind int

const (
	ReasonNone ReasonKind = iota
	ReasonRule
	ReasonOther
	ReasonSubcommands
)

// Reason explains why a Decision came out the way it did.
type Reason struct {
	Kind          ReasonKind
	Rule          string
	Text          string
	Subcommands   map[string]Decision
}

func RuleReason(rule string) Reason { return Reason{Kind: ReasonRule, Rule: rule} }
func OtherReason(text string) Reason { return Reason{Kind: ReasonOther, Text: text} }
func SubcommandsReason(results map[string]Decision) Reason {
	return Reason{Kind: ReasonSubcommands, Subcommands: results}
}

func (r Reason) String() string {
	switch r.Kind {
	case ReasonRule:
		return r.Rule
	case ReasonOther:
		return r.Text
	case ReasonSubcommands:
		return "subcommand results"
	default:
		return ""
	}
}

// Decision is the result of running the engine on a single path or command.
type Decision struct {
	Behavior       Behavior
	Message        string
	DecisionReason Reason
	BlockedPath    string
	Suggestions    []Update
	UpdatedInput   any
}

func Allow() Decision { return Decision{Behavior: BehaviorAllow} }

func AllowReason(reason Reason) Decision {
	return Decision{Behavior: BehaviorAllow, DecisionReason: reason}
}

func Deny(message string, reason Reason) Decision {
	return Decision{Behavior: BehaviorDeny, Message: message, DecisionReason: reason}
}

func Ask(message string, reason Reason, blockedPath string, suggestions []Update) Decision {
	return Decision{
		Behavior:       BehaviorAsk,
		Message:        message,
		DecisionReason: reason,
		BlockedPath:    blockedPath,
		Suggestions:    suggestions,
	}
}

func Passthrough() Decision { return Decision{Behavior: BehaviorPassthrough} }

func (d Decision) IsPassthrough() bool { return d.Behavior == BehaviorPassthrough }

// UpdateKind discriminates the Update tagged union.
type UpdateKind int

const (
	UpdateAddRules UpdateKind = iota
	UpdateReplaceRules
	UpdateRemoveRules
	UpdateAddDirectories
	UpdateRemoveDirectories
	UpdateSetMode
)

// Update describes a mutation the user may accept to persist permission.
type Update struct {
	Kind        UpdateKind
	Destination Scope
	Behavior    Behavior // for rule updates
	Rules       []string
	Directories []string
	Mode        Mode // for setMode
}

func AddRules(dest Scope, behavior Behavior, rules ...string) Update {
	return Update{Kind: UpdateAddRules, Destination: dest, Behavior: behavior, Rules: rules}
}

func ReplaceRules(dest Scope, behavior Behavior, rules ...string) Update {
	return Update{Kind: UpdateReplaceRules, Destination: dest, Behavior: behavior, Rules: rules}
}

func RemoveRules(dest Scope, behavior Behavior, rules ...string) Update {
	return Update{Kind: UpdateRemoveRules, Destination: dest, Behavior: behavior, Rules: rules}
}

func AddDirectories(dest Scope, dirs ...string) Update {
	return Update{Kind: UpdateAddDirectories, Destination: dest, Directories: dirs}
}

func RemoveDirectories(dest Scope, dirs ...string) Update {
	return Update{Kind: UpdateRemoveDirectories, Destination: dest, Directories: dirs}
}

func SetMode(dest Scope, mode Mode) Update {
	return Update{Kind: UpdateSetMode, Destination: dest, Mode: mode}
}
