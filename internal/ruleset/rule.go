package ruleset

import "strings"

// Rule is a parsed `Tool` or `Tool(content)` rule string.
type Rule struct {
	Tool       string
	Content    string
	HasContent bool
}

// ParseRule parses a rule string per the grammar in the data model:
// `Tool` or `Tool(content)`.
func ParseRule(s string) (Rule, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return Rule{Tool: s}, s != ""
	}
	if !strings.HasSuffix(s, ")") {
		return Rule{}, false
	}
	tool := s[:open]
	content := s[open+1 : len(s)-1]
	if tool == "" {
		return Rule{}, false
	}
	return Rule{Tool: tool, Content: content, HasContent: true}, true
}

// String re-renders the rule in canonical form.
func (r Rule) String() string {
	if !r.HasContent {
		return r.Tool
	}
	return r.Tool + "(" + r.Content + ")"
}

// IsPrefix reports whether a Bash rule's content is a `prefix:*` form,
// optionally carrying the `[background]` marker.
func (r Rule) IsPrefix() (prefix string, background bool, ok bool) {
	content := r.Content
	background = strings.HasSuffix(content, "[background]")
	if background {
		content = strings.TrimSpace(strings.TrimSuffix(content, "[background]"))
	}
	if !strings.HasSuffix(content, ":*") {
		return "", false, false
	}
	return strings.TrimSuffix(content, ":*"), background, true
}

// MatchesBashExact reports whether rule r (tool Bash) matches command
// exactly or as a prefix.
func (r Rule) MatchesBashExact(command string) bool {
	if r.Tool != "Bash" {
		return false
	}
	if !r.HasContent {
		return false
	}
	if r.Content == command {
		return true
	}
	if prefix, _, ok := r.IsPrefix(); ok {
		return strings.HasPrefix(command, prefix)
	}
	return false
}
