// Package pathresolve normalizes and classifies filesystem paths for the
// permission engine: user-path expansion, symlink expansion for policy
// checks, and the suspicious/sensitive/write-protected predicates.
package pathresolve

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// ErrNullByte is returned by Resolve when the input path contains a NUL.
var ErrNullByte = errors.New("pathresolve: path contains a null byte")

// Resolve trims the input, expands a leading ~ or ~/, rewrites Windows
// /c/foo drive forms, and resolves relative paths against base.
func Resolve(input, base string) (string, error) {
	if strings.IndexByte(input, 0) >= 0 {
		return "", ErrNullByte
	}
	p := strings.TrimSpace(input)

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			if p == "~" {
				p = home
			} else {
				p = filepath.Join(home, p[2:])
			}
		}
	}

	if runtime.GOOS == "windows" {
		if m := winDriveSlash.FindStringSubmatch(p); m != nil {
			p = strings.ToUpper(m[1]) + ":\\" + filepath.FromSlash(m[2])
		}
	}

	if !filepath.IsAbs(p) {
		if base == "" {
			base, _ = os.Getwd()
		}
		p = filepath.Join(base, p)
	}

	return filepath.Clean(p), nil
}

var winDriveSlash = regexp.MustCompile(`^/([a-zA-Z])/(.*)$`)

// ExpandSymlinks returns [input] if the path does not exist, or
// [input, realpath] if it resolves to a different location. Callers must
// run the full policy on every returned element and require all to pass.
func ExpandSymlinks(path string) []string {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return []string{path}
	}
	real = NormalizeMacPrivate(real)
	if real == NormalizeMacPrivate(path) {
		return []string{path}
	}
	return []string{path, real}
}

// NormalizeMacPrivate maps macOS's /private/var, /private/etc and
// /private/tmp aliases back to their canonical un-prefixed form so that
// /private/var/foo and /var/foo compare equal under workspace-boundary
// and sensitivity checks.
func NormalizeMacPrivate(path string) string {
	for _, prefix := range []string{"/private/var", "/private/etc", "/private/tmp"} {
		if path == prefix {
			return strings.TrimPrefix(path, "/private")
		}
		if strings.HasPrefix(path, prefix+"/") {
			return strings.TrimPrefix(path, "/private")
		}
	}
	return path
}
