package main

import (
	"os"
	"path/filepath"

	"github.com/xiaoqinglee/toolguard/internal/permengine"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
	"github.com/xiaoqinglee/toolguard/internal/settings"
)

// buildContext loads the merged permission context for the current
// working directory and wires a permengine.Evaluator with the
// standard scratch-path allowances.
func buildContext() (*permengine.Evaluator, *ruleset.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	ctx, err := settings.LoadPermissionContext(settings.LoadOptions{
		ProjectDir:              cwd,
		HomeDir:                 home,
		IncludeProjectOverrides: true,
		BypassAvailable:         false,
	})
	if err != nil {
		return nil, nil, err
	}

	sessionScratch := filepath.Join(home, ".config", "toolguard", "session")
	eval := &permengine.Evaluator{
		ProjectRoot: cwd,
		HomeRoot:    home,
		Scratch: permengine.ScratchPaths{
			PlanFile:       filepath.Join(sessionScratch, "plan.md"),
			BashOutputDir:  filepath.Join(sessionScratch, "bash-output"),
			ToolResultsDir: filepath.Join(sessionScratch, "tool-results"),
			TasksDir:       filepath.Join(cwd, ".claude", "tasks"),
			MemoryDir:      filepath.Join(home, ".claude", "memory"),
		},
	}

	return eval, ctx, nil
}
