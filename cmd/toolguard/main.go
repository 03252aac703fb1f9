// Command toolguard mediates LLM-driven tool invocations against a
// user's workstation: it is the CLI surface for the permission engine in
// internal/permengine, wired as a PreToolUse/PermissionRequest hook, a
// persistent evaluation daemon, and a handful of direct inspection
// subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "toolguard",
		Short: "Deterministic tool permission engine",
		// Reading stdin with no subcommand keeps drop-in compatibility with
		// a hook wired to invoke the bare binary.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHookCmd(cmd, args)
		},
	}

	root.AddCommand(newHookCmd())
	root.AddCommand(newDaemonCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newCheckCmd())

	return root
}
