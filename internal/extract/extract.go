// Package extract implements the per-utility argument extractors: a
// closed table mapping a base command to the set of path arguments it
// touches and a read/write/create classification, per spec §4.4. The
// table itself is grounded in the teacher's rules.go dispatch switch,
// generalized from verdicts into explicit path classes.
package extract

import (
	"os"
	"path/filepath"
	"strings"
)

// Class is the read/write/create classification of a path argument.
type Class string

const (
	ClassRead   Class = "read"
	ClassWrite  Class = "write"
	ClassCreate Class = "create"
)

// Extraction is the result of running a command's extractor.
type Extraction struct {
	Paths []string
	Class Class
	// Unrestricted is true when the base command has no table entry — it
	// is not subject to path policy, only to rule/injection checks.
	Unrestricted bool
}

type extractFunc func(args []string, workDir string) []string

type tableEntry struct {
	extract extractFunc
	class   Class
}

var table map[string]tableEntry

func init() {
	table = map[string]tableEntry{
		"cd":     {extractCd, ClassRead},
		"mkdir":  {positionalArgs, ClassCreate},
		"touch":  {positionalArgs, ClassCreate},
		"rm":     {positionalArgs, ClassWrite},
		"rmdir":  {positionalArgs, ClassWrite},
		"mv":     {positionalArgs, ClassWrite},
		"cp":     {positionalArgs, ClassWrite},
		"tee":    {positionalArgs, ClassWrite},
		"grep":   {extractAfterPatternFlags, ClassRead},
		"rg":     {extractRg, ClassRead},
		"jq":     {extractJq, ClassRead},
		"sed":    {extractSed, ClassWrite},
		"find":   {extractFind, ClassRead},
		"git":    {extractGitDiffNoIndex, ClassRead},
	}
	for _, cmd := range []string{
		"ls", "cat", "head", "tail", "sort", "uniq", "wc", "cut", "paste",
		"column", "file", "stat", "diff", "awk", "strings", "hexdump",
		"od", "base64", "nl", "sha1sum", "sha256sum", "md5sum", "tr",
	} {
		table[cmd] = tableEntry{positionalArgsDefaultDot, ClassRead}
	}
}

// Extract runs the per-utility extractor for baseCmd. If baseCmd has no
// table entry, it returns Unrestricted=true: the command is not subject
// to path policy, only to rule/injection checks, per spec §4.4.
func Extract(baseCmd string, args []string, workDir string) Extraction {
	entry, ok := table[baseCmd]
	if !ok {
		return Extraction{Unrestricted: true}
	}
	return Extraction{Paths: entry.extract(args, workDir), Class: entry.class}
}

func positionalArgs(args []string, _ string) []string {
	var out []string
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
		}
	}
	return out
}

func positionalArgsDefaultDot(args []string, _ string) []string {
	out := positionalArgs(args, "")
	if len(out) == 0 {
		return []string{"."}
	}
	return out
}

func extractCd(args []string, _ string) []string {
	pos := positionalArgs(args, "")
	if len(pos) == 0 {
		home, _ := os.UserHomeDir()
		return []string{home}
	}
	return []string{strings.Join(pos, " ")}
}

// findValueFlags are find(1) flags whose value is itself a path to read.
var findValueFlags = map[string]bool{
	"-newer": true, "-newerBt": true, "-newerat": true, "-newerct": true,
	"-newermt": true, "-path": true, "-wholename": true, "-samefile": true,
}

func extractFind(args []string, _ string) []string {
	var out []string
	skipNext := false
	for _, a := range args {
		if skipNext {
			out = append(out, a)
			skipNext = false
			continue
		}
		if findValueFlags[a] {
			skipNext = true
			continue
		}
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return []string{"."}
	}
	return out
}

// grepLikeFlagsWithValue are flags that consume the following argument,
// so the positional paths only start after them.
var grepLikeFlagsWithValue = map[string]bool{
	"-e": true, "--regexp": true, "-f": true, "--file": true,
	"-m": true, "--max-count": true,
}

func extractAfterPatternFlags(args []string, _ string) []string {
	var out []string
	sawPattern := false
	skipNext := false
	for _, a := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(a, "-") {
			if grepLikeFlagsWithValue[a] {
				skipNext = true
				if a != "-m" && a != "--max-count" {
					sawPattern = true // -e/-f/--regexp supplies the pattern
				}
			}
			continue
		}
		if !sawPattern {
			sawPattern = true // this positional is the pattern itself
			continue
		}
		out = append(out, a)
	}
	return out
}

func extractRg(args []string, workDir string) []string {
	out := extractAfterPatternFlags(args, workDir)
	if len(out) == 0 {
		return []string{"."}
	}
	return out
}

// jqValueFlags consume the next argument without it being a target path
// to read. The value of -f/--from-file is a path too, but it names a
// script file, not a data target, so it is left out of the positional
// scan; the jq screener asks whenever -f is present.
var jqValueFlags = map[string]bool{
	"-f": true, "--from-file": true, "--slurpfile": true, "--rawfile": true,
	"-L": true, "--library-path": true, "--arg": true, "--argjson": true,
	"--jsonargs": true,
}

func extractJq(args []string, _ string) []string {
	var out []string
	sawFilter := false
	skipNext := false
	for _, a := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if jqValueFlags[a] {
			skipNext = true
			continue
		}
		if strings.HasPrefix(a, "-") {
			continue
		}
		if !sawFilter {
			sawFilter = true
			continue
		}
		out = append(out, a)
	}
	return out
}

func extractSed(args []string, _ string) []string {
	var out []string
	skipNext := false
	sawScript := false
	for _, a := range args {
		if skipNext {
			skipNext = false
			continue
		}
		switch {
		case a == "-e" || a == "--expression" || a == "-f" || a == "--file":
			skipNext = true
			sawScript = true
		case strings.HasPrefix(a, "-"):
			continue
		case !sawScript:
			sawScript = true
		default:
			out = append(out, a)
		}
	}
	return out
}

// extractGitDiffNoIndex implements the single spec-named git path case:
// only `git diff --no-index A B` extracts path arguments.
func extractGitDiffNoIndex(args []string, _ string) []string {
	if len(args) < 2 || args[0] != "diff" {
		return nil
	}
	hasNoIndex := false
	var positional []string
	for _, a := range args[1:] {
		if a == "--no-index" {
			hasNoIndex = true
			continue
		}
		if !strings.HasPrefix(a, "-") {
			positional = append(positional, a)
		}
	}
	if hasNoIndex && len(positional) >= 2 {
		return positional[:2]
	}
	return nil
}

// ResolveAbs joins a path argument against workDir when relative.
func ResolveAbs(path, workDir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(workDir, path))
}
