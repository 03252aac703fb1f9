package permengine

import (
	"fmt"
	"strings"

	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

// ProductName is substituted into the stable UX message templates of
// spec §6.3.
var ProductName = "toolguard"

func denyMessage(tool, command string) string {
	return fmt.Sprintf("Permission to use %s with command %s has been denied.", tool, command)
}

func askDefaultMessage(tool string) string {
	return fmt.Sprintf("%s requested permissions to use %s, but you haven't granted it yet.", ProductName, tool)
}

func pathOutsideWorkspaceMessage(tool, resolved, verb string, ctx *ruleset.Context) string {
	dirs := []string{ctx.OriginalCwd}
	for d := range ctx.AdditionalWorkingDirectories {
		dirs = append(dirs, d)
	}
	quoted := make([]string, len(dirs))
	for i, d := range dirs {
		quoted[i] = "'" + d + "'"
	}
	return fmt.Sprintf(
		"%s in '%s' was blocked. For security, %s may only %s the allowed working directories for this session: %s.",
		tool, resolved, ProductName, verb, strings.Join(quoted, ", "),
	)
}

func dangerousRemovalMessage(verb, resolved string) string {
	return fmt.Sprintf(
		"Dangerous %s operation detected: '%s'\n\nThis command would remove a critical system directory.",
		verb, resolved,
	)
}
