// Package screen implements the injection/syntax screeners of spec §4.6:
// an ordered sequence of small pure predicates run over a single
// precomputed view of the command, each returning ask or passthrough.
// The first non-passthrough result wins.
package screen

import (
	"regexp"
	"strings"
)

// Views is the parsed {original, partiallyUnquoted, fullyUnquoted,
// baseCommand} view computed once and reused by every screener.
type Views struct {
	Original          string
	PartiallyUnquoted string
	FullyUnquoted     string
	BaseCommand       string
}

// NewViews builds a Views from a raw command segment and its extracted
// base command.
func NewViews(original, baseCommand string) Views {
	return Views{
		Original:          original,
		PartiallyUnquoted: partiallyUnquote(original),
		FullyUnquoted:     fullyUnquote(original),
		BaseCommand:       baseCommand,
	}
}

// partiallyUnquote strips single-quote markers only (the common case for
// shell obfuscation is hiding metacharacters inside single quotes since
// double quotes still allow $ expansion).
func partiallyUnquote(s string) string {
	return stripQuoteChar(s, '\'')
}

// fullyUnquote strips both single- and double-quote markers, revealing
// any metacharacter that was merely quoted rather than escaped.
func fullyUnquote(s string) string {
	return stripQuoteChar(stripQuoteChar(s, '\''), '"')
}

func stripQuoteChar(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == q {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

var wsCollapse = regexp.MustCompile(`\s+`)

func collapse(s string) string {
	return strings.TrimSpace(wsCollapse.ReplaceAllString(s, " "))
}
