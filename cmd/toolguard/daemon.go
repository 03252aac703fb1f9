package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xiaoqinglee/toolguard/internal/daemon"
)

func newDaemonCmd() *cobra.Command {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the long-lived permission evaluation daemon",
	}

	daemonCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground (normally started automatically)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemonForeground()
		},
	})
	daemonCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the daemon is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := daemon.Status()
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	})
	daemonCmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := daemon.Stop()
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	})
	daemonCmd.AddCommand(&cobra.Command{
		Use:   "restart",
		Short: "Restart the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := daemon.Restart()
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	})

	return daemonCmd
}

func runDaemonForeground() error {
	eval, ctx, err := buildContext()
	if err != nil {
		return err
	}

	svc := &daemon.Service{Permission: eval, Rules: ctx}
	d := daemon.New(svc, daemon.Config{IdleTimeout: 5 * time.Minute})
	return d.Run()
}
