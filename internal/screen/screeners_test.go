package screen

import (
	"testing"

	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

func TestScreenBackticksAndSubstitution(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		base string
		ask  bool
	}{
		{"backtick", "echo `whoami`", "echo", true},
		{"dollar paren", "echo $(whoami)", "echo", true},
		{"dollar brace", "echo ${HOME}", "echo", true},
		{"process substitution", "diff <(ls a) <(ls b)", "diff", true},
		{"plain echo", "echo hello", "echo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViews(tt.cmd, tt.base)
			d := Run(v)
			isAsk := d.Behavior == ruleset.BehaviorAsk
			if isAsk != tt.ask {
				t.Errorf("Run(%q) ask=%v, want %v (decision=%+v)", tt.cmd, isAsk, tt.ask, d)
			}
		})
	}
}

func TestScreenGitCommitQuoting(t *testing.T) {
	v := NewViews(`git commit -m 'fix'`, "git")
	if d := Run(v); d.Behavior == ruleset.BehaviorAsk {
		t.Errorf("single-quoted commit message should not be screened: %+v", d)
	}

	v = NewViews(`git commit -m "fix $(whoami)"`, "git")
	if d := Run(v); d.Behavior != ruleset.BehaviorAsk {
		t.Errorf("double-quoted commit message with substitution should ask: %+v", d)
	}
}

func TestScreenPipeToShell(t *testing.T) {
	if !IsPipeToShell("bash") {
		t.Error("bash should be classified as pipe-to-shell")
	}
	if IsPipeToShell("cat") {
		t.Error("cat should not be classified as pipe-to-shell")
	}
}

func TestScreenJqSystemCall(t *testing.T) {
	v := NewViews(`jq 'system("rm -rf /")' data.json`, "jq")
	if d := Run(v); d.Behavior != ruleset.BehaviorAsk {
		t.Errorf("jq system() call should ask: %+v", d)
	}
}

func TestScreenSedSafePrint(t *testing.T) {
	v := NewViews(`sed -n '1,10p' a.txt`, "sed")
	if d := Run(v); d.Behavior == ruleset.BehaviorAsk {
		t.Errorf("safe-print sed should not ask: %+v", d)
	}
}

func TestScreenSedWriteCommand(t *testing.T) {
	v := NewViews(`sed '1,5w out.txt' a.txt`, "sed")
	if d := Run(v); d.Behavior != ruleset.BehaviorAsk {
		t.Errorf("sed with w command should ask: %+v", d)
	}
}
