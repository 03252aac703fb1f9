package ruleset

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchGlob implements the path-glob semantics of spec §4.5: pattern
// rooting rules (/, ~/, //, ./, or scope-relative) plus gitignore-style
// `**` matching via doublestar, which Go's path.Match cannot express.
func MatchGlob(pattern, absPath, scopeRoot string) bool {
	rooted := rootPattern(pattern, scopeRoot)
	rooted = filepath.ToSlash(rooted)
	target := filepath.ToSlash(absPath)

	if runtime.GOOS == "windows" {
		rooted = strings.ToLower(rooted)
		target = strings.ToLower(target)
	}

	if strings.HasSuffix(rooted, "/**") {
		dir := strings.TrimSuffix(rooted, "/**")
		if target == dir || strings.HasPrefix(target, dir+"/") {
			return true
		}
	}

	ok, err := doublestar.Match(rooted, target)
	if err != nil {
		return false
	}
	return ok
}

// rootPattern resolves a rule's content to an absolute pattern per the
// prefix rules: `/` absolute, `~/` home-relative, `//` filesystem-root,
// `./` dotted-relative to the scope root, otherwise scope-root relative.
func rootPattern(pattern, scopeRoot string) string {
	switch {
	case strings.HasPrefix(pattern, "//"):
		return pattern[1:]
	case strings.HasPrefix(pattern, "~/"):
		return filepath.Join(homeDirForGlob(), pattern[2:])
	case strings.HasPrefix(pattern, "/"):
		return pattern
	case strings.HasPrefix(pattern, "./"):
		return filepath.Join(scopeRoot, pattern[2:])
	default:
		return filepath.Join(scopeRoot, pattern)
	}
}

// homeDirOverride lets tests pin the home directory used by `~/` patterns.
var homeDirOverride string

func homeDirForGlob() string {
	if homeDirOverride != "" {
		return homeDirOverride
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}
