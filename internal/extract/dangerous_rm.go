package extract

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDangerousRemoval implements the dangerous-removal policy of spec
// §4.4: true if any resolved rm/rmdir target equals /, $HOME, a direct
// child of /, or is a bare `*`/`*/`. No rule may auto-allow a dangerous
// removal — the caller must always surface `ask`.
func IsDangerousRemoval(targets []string, workDir string) (string, bool) {
	home := os.Getenv("HOME")
	for _, raw := range targets {
		if raw == "*" || raw == "*/" {
			return raw, true
		}
		abs := ResolveAbs(raw, workDir)
		if abs == "/" {
			return abs, true
		}
		if home != "" && abs == filepath.Clean(home) {
			return abs, true
		}
		if isDirectChildOfRoot(abs) {
			return abs, true
		}
	}
	return "", false
}

func isDirectChildOfRoot(path string) bool {
	path = filepath.Clean(path)
	if path == "/" {
		return false
	}
	rest := strings.TrimPrefix(path, "/")
	return rest != "" && !strings.Contains(rest, "/")
}

// HasRecursiveFlag reports whether args contains an -r/-R/--recursive
// flag (a short-flag cluster containing r or R counts).
func HasRecursiveFlag(args []string) bool {
	for _, a := range args {
		if a == "--recursive" {
			return true
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") &&
			(strings.Contains(a, "r") || strings.Contains(a, "R")) {
			return true
		}
	}
	return false
}
