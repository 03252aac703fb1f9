package ruleset

import "testing"

func TestMatchGlobPrefixForms(t *testing.T) {
	homeDirOverride = "/home/dev"
	defer func() { homeDirOverride = "" }()

	tests := []struct {
		pattern   string
		absPath   string
		scopeRoot string
		want      bool
	}{
		{"/etc/**", "/etc/passwd", "/work/proj", true},
		{"/etc/**", "/etc/nested/file", "/work/proj", true},
		{"~/.ssh/**", "/home/dev/.ssh/id_rsa", "/work/proj", true},
		{"src/**", "/work/proj/src/main.go", "/work/proj", true},
		{"src/**", "/work/proj/other/main.go", "/work/proj", false},
		{"*.go", "/work/proj/main.go", "/work/proj", true},
		{"*.go", "/work/proj/sub/main.go", "/work/proj", false},
	}
	for _, tt := range tests {
		got := MatchGlob(tt.pattern, tt.absPath, tt.scopeRoot)
		if got != tt.want {
			t.Errorf("MatchGlob(%q, %q, %q) = %v, want %v", tt.pattern, tt.absPath, tt.scopeRoot, got, tt.want)
		}
	}
}
