package shellsyntax

import "strings"

// safeSeparators are the operators a "safe-composed" command may use
// between subcommands, per spec §4.3.
var safeSeparators = map[string]bool{
	OpAnd: true, OpOr: true, OpSemi: true, OpSemiSemi: true, OpPipe: true,
	OpNewline: true,
}

// Split walks the token stream and flushes a new subcommand at every safe
// separator outside of (…) / <(…) / >(…) depth. Each subcommand is
// re-emitted via Detokenize.
func Split(tokens []Token) []string {
	var out []string
	var cur []Token
	depth := 0

	flush := func() {
		if len(cur) > 0 {
			out = append(out, Detokenize(cur))
			cur = nil
		}
	}

	for _, t := range tokens {
		if t.Kind == TokOp {
			switch t.Text {
			case OpGroupOpen, OpProcIn, OpProcOut:
				depth++
				cur = append(cur, t)
				continue
			case OpGroupClose:
				depth--
				cur = append(cur, t)
				continue
			}
			if depth == 0 && safeSeparators[t.Text] {
				flush()
				continue
			}
		}
		cur = append(cur, t)
	}
	flush()
	return out
}

// IsSafeComposed reports whether cmd's only top-level operators between
// subcommands are the safe separators plus redirections. Anything else
// (backgrounding `&`, subshell grouping used as a whole-command wrapper
// outside of process substitution, stray parens) is an "unsafe compound"
// and must trigger a full-command injection screen.
func IsSafeComposed(tokens []Token) bool {
	depth := 0
	for _, t := range tokens {
		if t.Kind != TokOp {
			continue
		}
		switch t.Text {
		case OpGroupOpen:
			if depth == 0 {
				return false
			}
			depth++
		case OpProcIn, OpProcOut:
			depth++
		case OpGroupClose:
			depth--
		case OpAnd, OpOr, OpSemi, OpSemiSemi, OpPipe, OpNewline:
			// safe at any depth
		case OpRedirOut, OpAppend, OpRedirIn, OpHeredocS, OpDup:
			// redirections are always safe
		default:
			if depth == 0 {
				return false
			}
		}
	}
	// A bare trailing `&` (backgrounding) shows up as a word ending in
	// "&" that the tokenizer did not split — guard against it explicitly.
	for _, t := range tokens {
		if t.Kind == TokWord && strings.HasSuffix(t.Text, "&") && t.Text != "&&" {
			return false
		}
	}
	return true
}
