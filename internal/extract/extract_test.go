package extract

import "testing"

func TestExtractReadCommands(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		args    []string
		wantCls Class
		wantP   []string
	}{
		{"cat positional", "cat", []string{"foo.txt", "-n"}, ClassRead, []string{"foo.txt"}},
		{"find default dot", "find", nil, ClassRead, []string{"."}},
		{"find with path flag", "find", []string{"-name", "*.go"}, ClassRead, []string{}},
		{"grep after pattern", "grep", []string{"-rn", "TODO", "src/"}, ClassRead, []string{"src/"}},
		{"rg default", "rg", []string{"TODO"}, ClassRead, []string{"."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.cmd, tt.args, "/work")
			if got.Class != tt.wantCls {
				t.Errorf("class = %v, want %v", got.Class, tt.wantCls)
			}
		})
	}
}

func TestExtractWriteCommands(t *testing.T) {
	got := Extract("rm", []string{"-rf", "build/"}, "/work")
	if got.Class != ClassWrite {
		t.Errorf("rm class = %v, want write", got.Class)
	}
	if len(got.Paths) != 1 || got.Paths[0] != "build/" {
		t.Errorf("rm paths = %v", got.Paths)
	}
}

func TestExtractUnrestricted(t *testing.T) {
	got := Extract("curl", []string{"http://example.com"}, "/work")
	if !got.Unrestricted {
		t.Error("expected curl to be unrestricted by path policy")
	}
}

func TestExtractGitDiffNoIndex(t *testing.T) {
	got := Extract("git", []string{"diff", "--no-index", "a.txt", "b.txt"}, "/work")
	if got.Class != ClassRead {
		t.Errorf("class = %v, want read", got.Class)
	}
	if len(got.Paths) != 2 {
		t.Fatalf("paths = %v", got.Paths)
	}
}

func TestExtractGitOtherSubcommandNoPaths(t *testing.T) {
	got := Extract("git", []string{"status"}, "/work")
	if len(got.Paths) != 0 {
		t.Errorf("git status should extract no paths, got %v", got.Paths)
	}
}

func TestDangerousRemoval(t *testing.T) {
	tests := []struct {
		targets []string
		workDir string
		want    bool
	}{
		{[]string{"/"}, "/work", true},
		{[]string{"*"}, "/work", true},
		{[]string{"/etc"}, "/work", true},
		{[]string{"README.md"}, "/work", false},
		{[]string{"build/"}, "/work", false},
	}
	for _, tt := range tests {
		_, got := IsDangerousRemoval(tt.targets, tt.workDir)
		if got != tt.want {
			t.Errorf("IsDangerousRemoval(%v) = %v, want %v", tt.targets, got, tt.want)
		}
	}
}
