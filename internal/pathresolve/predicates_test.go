package pathresolve

import "testing"

func TestIsSuspicious(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/work/proj/src/main.go", false},
		{`\\?\C:\Windows\System32`, true},
		{`C:\Users\dev\NUL`, true},
		{"/work/proj/file.   ", true},
		{`\\10.0.0.1\share`, true},
	}
	for _, tt := range tests {
		if got := IsSuspicious(tt.path); got != tt.want {
			t.Errorf("IsSuspicious(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsSensitive(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/work/proj/.git/config", true},
		{"/work/proj/.ssh/id_rsa", true},
		{"/home/dev/.bashrc", true},
		{"/work/proj/src/main.go", false},
		{"/work/proj/.claude/settings.json", true},
	}
	for _, tt := range tests {
		if got := IsSensitive(tt.path); got != tt.want {
			t.Errorf("IsSensitive(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsWriteProtected(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/work/proj/.claude/settings.json", true},
		{"/work/proj/.claude/settings.local.json", true},
		{"/work/proj/.claude/commands/deploy.md", true},
		{"/work/proj/.kode/skills/foo.md", true},
		{"/work/proj/.claude/README.md", false},
		{"/work/proj/src/main.go", false},
	}
	for _, tt := range tests {
		if got := IsWriteProtected(tt.path); got != tt.want {
			t.Errorf("IsWriteProtected(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
