package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

func newCheckCmd() *cobra.Command {
	var bashCommand string
	var path string
	var op string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "One-shot evaluation of a bash command or a path operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			eval, ctx, err := buildContext()
			if err != nil {
				return err
			}

			var decision ruleset.Decision
			switch {
			case bashCommand != "":
				decision = eval.CheckBashPermissions(ctx, bashCommand)
			case path != "":
				decision = eval.CheckPathPermission(ctx, path, ruleset.Op(op))
			default:
				return fmt.Errorf("one of --bash or --path is required")
			}

			if asJSON {
				data, _ := json.MarshalIndent(decision, "", "  ")
				fmt.Println(string(data))
				return nil
			}
			printDecision(decision)
			return nil
		},
	}

	cmd.Flags().StringVar(&bashCommand, "bash", "", "bash command to evaluate")
	cmd.Flags().StringVar(&path, "path", "", "path to evaluate")
	cmd.Flags().StringVar(&op, "op", "read", "operation for --path: read|edit|create")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the decision as JSON")

	return cmd
}

func printDecision(d ruleset.Decision) {
	var c *color.Color
	switch d.Behavior {
	case ruleset.BehaviorAllow:
		c = color.New(color.FgGreen, color.Bold)
	case ruleset.BehaviorDeny:
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgYellow, color.Bold)
	}
	c.Printf("%s\n", d.Behavior)
	if d.Message != "" {
		fmt.Println(d.Message)
	}
	if d.BlockedPath != "" {
		fmt.Println("blocked path:", d.BlockedPath)
	}
	for _, s := range d.Suggestions {
		fmt.Printf("suggestion: %+v\n", s)
	}
}
