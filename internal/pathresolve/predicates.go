package pathresolve

import (
	"path/filepath"
	"regexp"
	"strings"
)

var reservedDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
}

func init() {
	for i := 1; i <= 9; i++ {
		reservedDeviceNames["COM"+string(rune('0'+i))] = true
		reservedDeviceNames["LPT"+string(rune('0'+i))] = true
	}
}

var uncSSLOrWebDAV = regexp.MustCompile(`(?i)@SSL(@\d+)?|DavWWWRoot`)
var uncNumericIP = regexp.MustCompile(`^\\\\\d+\.\d+\.\d+\.\d+\\`)
var uncIPv6Bracketed = regexp.MustCompile(`^\\\\\[[0-9a-fA-F:]+\]\\`)

// IsSuspicious implements the suspicion predicate from spec §4.1.
func IsSuspicious(path string) bool {
	if secondColonPastOne(path) {
		return true
	}
	if strings.Contains(path, "~") && shortNamePattern.MatchString(path) {
		return true
	}
	for _, prefix := range []string{`\\?\`, `\\.\`, `//?/`, `//./`} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	trimmed := strings.TrimRight(path, ". \t")
	if trimmed != path {
		return true
	}
	for _, seg := range splitSegments(path) {
		base := seg
		if i := strings.IndexByte(base, '.'); i >= 0 {
			base = base[:i]
		}
		if reservedDeviceNames[strings.ToUpper(base)] {
			return true
		}
		if strings.HasSuffix(seg, "...") {
			return true
		}
	}
	if uncSSLOrWebDAV.MatchString(path) || uncNumericIP.MatchString(path) || uncIPv6Bracketed.MatchString(path) {
		return true
	}
	return false
}

var shortNamePattern = regexp.MustCompile(`~\d`)

func secondColonPastOne(path string) bool {
	first := strings.IndexByte(path, ':')
	if first < 0 {
		return false
	}
	second := strings.IndexByte(path[first+1:], ':')
	return second >= 0 && first+1+second > 1
}

func splitSegments(path string) []string {
	p := strings.ReplaceAll(path, "\\", "/")
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

var sensitiveDirSegments = map[string]bool{
	".git": true, ".vscode": true, ".idea": true, ".ssh": true,
	".claude": true, ".kode": true,
}

var sensitiveBasenames = map[string]bool{
	".gitconfig": true, ".gitmodules": true, ".bashrc": true,
	".bash_profile": true, ".zshrc": true, ".zprofile": true,
	".profile": true, ".ripgreprc": true, ".mcp.json": true,
}

// IsSensitive implements the sensitive-path predicate from spec §4.1.
func IsSensitive(path string) bool {
	for _, seg := range splitSegments(path) {
		if sensitiveDirSegments[strings.ToLower(seg)] {
			return true
		}
	}
	if sensitiveBasenames[strings.ToLower(filepath.Base(path))] {
		return true
	}
	return strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
}

// settingsFileBasenames names the three persistable settings files plus
// their legacy aliases, used by IsWriteProtected.
var settingsFileBasenames = map[string]bool{
	"settings.json":        true,
	"settings.local.json":  true,
	".claude.json":         true, // legacy alias
}

// IsWriteProtected implements the write-protected predicate from §4.1:
// true for the agent's own settings files and for anything under
// .claude|.kode/{commands,agents,skills}/**.
func IsWriteProtected(path string) bool {
	if settingsFileBasenames[filepath.Base(path)] {
		return true
	}
	segs := splitSegments(path)
	for i, seg := range segs {
		lower := strings.ToLower(seg)
		if (lower == ".claude" || lower == ".kode") && i+1 < len(segs) {
			switch segs[i+1] {
			case "commands", "agents", "skills":
				return true
			}
		}
	}
	return false
}
