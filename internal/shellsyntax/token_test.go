package shellsyntax

import "testing"

func TestTokenizeDetokenizeRoundTrip(t *testing.T) {
	tests := []string{
		"ls -la",
		"cat foo.txt && echo done",
		"grep -rn 'TODO' src/ | wc -l",
		"echo hi > out.txt",
		"find . -name '*.go'",
	}
	for _, cmd := range tests {
		toks, err := Tokenize(cmd, TokenizeOptions{})
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", cmd, err)
		}
		got := Detokenize(toks)
		if got != cmd {
			t.Errorf("round trip mismatch: got %q, want %q", got, cmd)
		}
	}
}

func TestTokenizeUnbalancedQuote(t *testing.T) {
	if _, err := Tokenize(`echo "unterminated`, TokenizeOptions{}); err == nil {
		t.Error("expected error for unterminated quote")
	}
}

func TestTokenizeUnbalancedParen(t *testing.T) {
	if _, err := Tokenize(`echo $(echo foo`, TokenizeOptions{}); err == nil {
		t.Error("expected error for unbalanced paren")
	}
}

func TestSplitSafeComposed(t *testing.T) {
	toks, err := Tokenize("ls && pwd | wc -l; echo done", TokenizeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !IsSafeComposed(toks) {
		t.Error("expected safe-composed")
	}
	segs := Split(toks)
	want := []string{"ls", "pwd", "wc -l", "echo done"}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %v", len(segs), len(want), segs)
	}
	for i, s := range segs {
		if s != want[i] {
			t.Errorf("segment %d: got %q, want %q", i, s, want[i])
		}
	}
}
