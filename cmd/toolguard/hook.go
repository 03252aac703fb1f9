package main

import (
	"github.com/spf13/cobra"
	"github.com/xiaoqinglee/toolguard/internal/hook"
)

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Evaluate a single tool invocation read from stdin as a PermissionRequest hook",
		RunE:  runHookCmd,
	}
}

func runHookCmd(cmd *cobra.Command, args []string) error {
	eval, ctx, err := buildContext()
	if err != nil {
		return err
	}
	hook.Run(eval, ctx)
	return nil
}
