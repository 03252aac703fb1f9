package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
	"github.com/xiaoqinglee/toolguard/internal/settings"
)

func newRulesCmd() *cobra.Command {
	var scopeFlag string
	var behaviorFlag string

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and mutate persisted permission rules",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List rules across every persistable scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesList()
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <rule>",
		Short: "Add a rule to a scope's settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesMutate(ruleset.UpdateAddRules, scopeFlag, behaviorFlag, args[0])
		},
	}
	addCmd.Flags().StringVar(&scopeFlag, "scope", string(ruleset.ScopeLocal), "destination scope: userSettings|projectSettings|localSettings")
	addCmd.Flags().StringVar(&behaviorFlag, "behavior", string(ruleset.BehaviorAllow), "allow|deny|ask")

	removeCmd := &cobra.Command{
		Use:   "remove <rule>",
		Short: "Remove a rule from a scope's settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesMutate(ruleset.UpdateRemoveRules, scopeFlag, behaviorFlag, args[0])
		},
	}
	removeCmd.Flags().StringVar(&scopeFlag, "scope", string(ruleset.ScopeLocal), "destination scope: userSettings|projectSettings|localSettings")
	removeCmd.Flags().StringVar(&behaviorFlag, "behavior", string(ruleset.BehaviorAllow), "allow|deny|ask")

	rulesCmd.AddCommand(listCmd, addCmd, removeCmd)
	return rulesCmd
}

func runRulesList() error {
	_, ctx, err := buildContext()
	if err != nil {
		return err
	}

	print := func(label string, behavior ruleset.Behavior, c *color.Color) {
		for _, r := range ctx.AllRules(behavior) {
			c.Printf("%-6s %s\n", label, r.String())
		}
	}
	print("DENY", ruleset.BehaviorDeny, color.New(color.FgRed))
	print("ASK", ruleset.BehaviorAsk, color.New(color.FgYellow))
	print("ALLOW", ruleset.BehaviorAllow, color.New(color.FgGreen))
	return nil
}

func runRulesMutate(kind ruleset.UpdateKind, scope, behavior, rule string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	home, _ := os.UserHomeDir()

	update := ruleset.Update{
		Kind:        kind,
		Destination: ruleset.Scope(scope),
		Behavior:    ruleset.Behavior(behavior),
		Rules:       []string{rule},
	}

	persisted, err := settings.PersistUpdate(update, settings.LoadOptions{ProjectDir: cwd, HomeDir: home})
	if err != nil {
		return err
	}
	if !persisted {
		fmt.Fprintf(os.Stderr, "scope %q is not persistable; rule only applies in-memory for this process\n", scope)
		return nil
	}
	fmt.Printf("updated %s rules in %s\n", behavior, scope)
	return nil
}
