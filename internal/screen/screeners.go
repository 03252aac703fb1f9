package screen

import (
	"regexp"
	"strings"

	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

// Screener is a single pure predicate over a Views value.
type Screener func(Views) ruleset.Decision

// Screeners is the ordered list from spec §4.6. The first non-passthrough
// result is returned by Run.
var Screeners = []Screener{
	screenEmptyOrFragment,
	screenSafeHeredocSubstitution,
	screenSafeQuotedGitCommit,
	screenJq,
	screenObfuscatedFlags,
	screenMetacharacterSmuggling,
	screenDangerousVariables,
	screenMetacharacterExpansion,
	screenRedirections,
	screenNewlines,
	screenSedDeepInspection,
}

// Run executes every screener in order and returns the first ask.
func Run(v Views) ruleset.Decision {
	for _, s := range Screeners {
		d := s(v)
		if !d.IsPassthrough() {
			return d
		}
	}
	return ruleset.Passthrough()
}

func ask(msg string) ruleset.Decision {
	return ruleset.Ask(msg, ruleset.OtherReason(msg), "", nil)
}

// pipeToShellCommands mirrors the teacher's isPipeToShell classification:
// base commands that interpret stdin as a script.
var pipeToShellCommands = map[string]bool{
	"bash": true, "sh": true, "zsh": true, "fish": true,
	"python": true, "python3": true, "perl": true, "ruby": true, "node": true,
}

// IsPipeToShell reports whether a subcommand (the right side of a pipe)
// is a shell/interpreter that would execute piped-in content.
func IsPipeToShell(baseCommand string) bool {
	return pipeToShellCommands[baseCommand]
}

// 1. Empty / fragment.
func screenEmptyOrFragment(v Views) ruleset.Decision {
	s := v.Original
	if s == "" {
		return ruleset.Passthrough()
	}
	if strings.HasPrefix(s, "\t") {
		return ask("command begins with a tab character")
	}
	if strings.HasPrefix(strings.TrimLeft(s, " "), "-") {
		return ask("command begins with a bare flag, not a program name")
	}
	trimmed := strings.TrimLeft(s, " ")
	for _, op := range []string{"&&", "||", "|", ";"} {
		if strings.HasPrefix(trimmed, op) {
			return ask("command begins with an operator: " + op)
		}
	}
	return ruleset.Passthrough()
}

var safeHeredocPattern = regexp.MustCompile(`(?s)\$\(\s*cat\s+<<\s*['"\\]?(\w+)['"]?\s*\n(.*?)\n\s*\1\s*\n?\s*\)`)

// 2. Safe heredoc-in-substitution.
func screenSafeHeredocSubstitution(v Views) ruleset.Decision {
	if !strings.Contains(v.Original, "$(") {
		return ruleset.Passthrough()
	}
	if safeHeredocPattern.MatchString(v.Original) {
		return ruleset.Passthrough()
	}
	if strings.Contains(v.Original, "$(") {
		// Any other $(...) is deferred to screenMetacharacterExpansion.
		return ruleset.Passthrough()
	}
	return ruleset.Passthrough()
}

var gitCommitMsgDouble = regexp.MustCompile(`git\s+commit[^\n]*-m\s*"([^"]*)"`)
var gitCommitMsgSingle = regexp.MustCompile(`git\s+commit[^\n]*-m\s*'([^']*)'`)

// 3. Safe quoted git commit.
func screenSafeQuotedGitCommit(v Views) ruleset.Decision {
	if !strings.Contains(v.Original, "git") || !strings.Contains(v.Original, "commit") {
		return ruleset.Passthrough()
	}
	if gitCommitMsgSingle.MatchString(v.Original) {
		return ruleset.Passthrough()
	}
	if m := gitCommitMsgDouble.FindStringSubmatch(v.Original); m != nil {
		msg := m[1]
		if strings.Contains(msg, "$(") || strings.Contains(msg, "`") || strings.Contains(msg, "${") {
			return ask(`git commit message contains command substitution`)
		}
	}
	return ruleset.Passthrough()
}

// 4. jq.
func screenJq(v Views) ruleset.Decision {
	if v.BaseCommand != "jq" {
		return ruleset.Passthrough()
	}
	if strings.Contains(v.Original, "system(") {
		return ask("jq filter calls system()")
	}
	for _, flag := range []string{"-f", "--from-file", "--slurpfile", "--rawfile", "-L", "--library-path"} {
		if containsWord(v.Original, flag) {
			return ask("jq uses " + flag + ", which reads arbitrary files")
		}
	}
	return ruleset.Passthrough()
}

func containsWord(s, word string) bool {
	for _, f := range strings.Fields(s) {
		if f == word {
			return true
		}
	}
	return false
}

var obfuscatedFlagPattern = regexp.MustCompile(`-[A-Za-z]*['"][A-Za-z]*['"]`)

// 5. Obfuscated flags.
func screenObfuscatedFlags(v Views) ruleset.Decision {
	if v.BaseCommand == "cut" {
		return ruleset.Passthrough() // cut -d'x' is the documented exception
	}
	if obfuscatedFlagPattern.MatchString(v.Original) {
		return ask("flag contains embedded quote characters")
	}
	return ruleset.Passthrough()
}

var embeddedMetaInQuotes = regexp.MustCompile(`['"][^'"]*[;|&][^'"]*['"]`)

// 6. Metacharacter smuggling.
func screenMetacharacterSmuggling(v Views) ruleset.Decision {
	if v.BaseCommand != "find" && v.BaseCommand != "grep" && v.BaseCommand != "rg" {
		return ruleset.Passthrough()
	}
	if embeddedMetaInQuotes.MatchString(v.Original) {
		return ask(v.BaseCommand + " argument embeds a shell metacharacter inside quotes")
	}
	return ruleset.Passthrough()
}

var dangerousVarAdjacent = regexp.MustCompile(`\$\w+\s*[|<>]|[|<>]\s*\$\w+`)

// 7. Dangerous variables.
func screenDangerousVariables(v Views) ruleset.Decision {
	if strings.Contains(v.Original, "$IFS") {
		return ask("command uses $IFS, a common word-splitting obfuscation")
	}
	if dangerousVarAdjacent.MatchString(v.Original) {
		return ask("variable expansion adjacent to a redirection or pipe")
	}
	return ruleset.Passthrough()
}

// 8. Backticks / $(...) / ${...} / <(...) / >(...) / PowerShell comments / zsh glob-qualifiers / zsh parameter expansion.
func screenMetacharacterExpansion(v Views) ruleset.Decision {
	if strings.Contains(v.FullyUnquoted, "`") {
		return ask("command contains a backtick command substitution")
	}
	if strings.Contains(v.FullyUnquoted, "$(") {
		return ask("command contains a $(...) command substitution")
	}
	if strings.Contains(v.FullyUnquoted, "${") {
		return ask("command contains a ${...} parameter expansion")
	}
	if strings.Contains(v.FullyUnquoted, "<(") || strings.Contains(v.FullyUnquoted, ">(") {
		return ask("command contains process substitution")
	}
	if strings.Contains(v.FullyUnquoted, "<#") {
		return ask("command contains a PowerShell block comment opener")
	}
	if strings.Contains(v.FullyUnquoted, "(e:") {
		return ask("command contains a zsh glob qualifier")
	}
	if strings.Contains(v.FullyUnquoted, "~[") {
		return ask("command contains zsh parameter expansion syntax")
	}
	return ruleset.Passthrough()
}

// 9. Redirections outside a safe heredoc context.
func screenRedirections(v Views) ruleset.Decision {
	if safeHeredocPattern.MatchString(v.Original) {
		return ruleset.Passthrough()
	}
	unquoted := v.PartiallyUnquoted
	for i := 0; i < len(unquoted); i++ {
		if unquoted[i] == '<' || unquoted[i] == '>' {
			if i > 0 && unquoted[i-1] == '\\' {
				continue
			}
			if i+2 < len(unquoted) && unquoted[i:i+3] == "<<<" {
				i += 2
				continue
			}
			return ruleset.Passthrough() // legitimate redirections are handled by the redirection extractor, not denied here
		}
	}
	return ruleset.Passthrough()
}

// 10. Newlines.
func screenNewlines(v Views) ruleset.Decision {
	idx := strings.IndexByte(v.Original, '\n')
	for idx >= 0 {
		if idx+1 < len(v.Original) {
			next := v.Original[idx+1]
			if isCommandStart(next) {
				return ask("newline followed by what looks like a new command")
			}
		}
		rest := v.Original[idx+1:]
		next := strings.IndexByte(rest, '\n')
		if next < 0 {
			break
		}
		idx = idx + 1 + next
	}
	return ruleset.Passthrough()
}

func isCommandStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '/' || b == '.' || b == '~'
}

var sedUnsafeCommand = regexp.MustCompile(`[wWeE]\s*(;|$|\n)`)
var sedUnsafeCommandWithArg = regexp.MustCompile(`(^|[;\n}/\d$])\s*[wWeE]\s+\S`)
var sedBraces = regexp.MustCompile(`\{[^}]*\}`)
var sedAddress = regexp.MustCompile(`![a-zA-Z]`)
var sedTildeStep = regexp.MustCompile(`\d+~\d+`)
var sedSafePrint = regexp.MustCompile(`^-n\s+'[0-9,]+p'`)
var sedSingleSubst = regexp.MustCompile(`^s[/#|,].*[/#|,].*[/#|,][a-zA-Z]*$`)

// 11. sed deep inspection.
func screenSedDeepInspection(v Views) ruleset.Decision {
	if v.BaseCommand != "sed" {
		return ruleset.Passthrough()
	}
	script := extractSedScript(v.Original)
	if script == "" {
		return ruleset.Passthrough()
	}
	if sedSafePrint.MatchString(collapse(v.Original)) {
		return ruleset.Passthrough()
	}
	if containsNonASCII(script) {
		return ask("sed script contains non-ASCII characters")
	}
	if sedUnsafeCommand.MatchString(script) || sedUnsafeCommandWithArg.MatchString(script) {
		return ask("sed script uses a write/execute command (w/W/e/E)")
	}
	if sedBraces.MatchString(script) {
		return ask("sed script uses a { } block")
	}
	if sedAddress.MatchString(script) {
		return ask("sed script uses a negated address")
	}
	if sedTildeStep.MatchString(script) {
		return ask("sed script uses a step address")
	}
	if strings.Contains(script, "\n") {
		return ask("sed script embeds a newline")
	}
	if sedSingleSubst.MatchString(strings.TrimSpace(script)) {
		return ruleset.Passthrough()
	}
	return ruleset.Passthrough()
}

var sedScriptPattern = regexp.MustCompile(`sed\s+(?:-[a-zA-Z]+\s+)*['"]([^'"]*)['"]`)

func extractSedScript(cmd string) string {
	if m := sedScriptPattern.FindStringSubmatch(cmd); m != nil {
		return m[1]
	}
	return ""
}

func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}
