package ruleset

import "testing"

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		wantOK  bool
		tool    string
		content string
		hasCont bool
	}{
		{"Bash(ls:*)", true, "Bash", "ls:*", true},
		{"Read(/etc/**)", true, "Read", "/etc/**", true},
		{"WebFetch", true, "WebFetch", "", false},
		{"Bash(ls:*", false, "", "", false},
		{"", false, "", "", false},
	}
	for _, tt := range tests {
		r, ok := ParseRule(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseRule(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if r.Tool != tt.tool || r.Content != tt.content || r.HasContent != tt.hasCont {
			t.Errorf("ParseRule(%q) = %+v, want tool=%q content=%q hasContent=%v", tt.in, r, tt.tool, tt.content, tt.hasCont)
		}
		if r.String() != tt.in {
			t.Errorf("String() round trip: got %q, want %q", r.String(), tt.in)
		}
	}
}

func TestRuleIsPrefix(t *testing.T) {
	r, _ := ParseRule("Bash(git push:*)")
	prefix, bg, ok := r.IsPrefix()
	if !ok || prefix != "git push" || bg {
		t.Errorf("IsPrefix() = %q, %v, %v", prefix, bg, ok)
	}

	r2, _ := ParseRule("Bash(npm run build:*[background])")
	prefix2, bg2, ok2 := r2.IsPrefix()
	if !ok2 || prefix2 != "npm run build" || !bg2 {
		t.Errorf("IsPrefix() background = %q, %v, %v", prefix2, bg2, ok2)
	}
}

func TestRuleMatchesBashExact(t *testing.T) {
	exact, _ := ParseRule("Bash(ls -la)")
	if !exact.MatchesBashExact("ls -la") {
		t.Error("expected exact match")
	}
	if exact.MatchesBashExact("ls -la /tmp") {
		t.Error("exact rule should not match a longer command")
	}

	prefix, _ := ParseRule("Bash(npm run:*)")
	if !prefix.MatchesBashExact("npm run build") {
		t.Error("expected prefix match")
	}
	if prefix.MatchesBashExact("npm test") {
		t.Error("prefix rule should not match unrelated command")
	}
}
