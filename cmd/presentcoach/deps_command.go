package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"presentcoach/internal/deps"
	"presentcoach/internal/notifications"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	depsCmd := &cobra.Command{
		Use:   "deps",
		Short: "Inspect external tools",
	}
	depsCmd.AddCommand(newDepsCheckCommand(ctx))
	depsCmd.AddCommand(newTestNotifyCommand(ctx))
	return depsCmd
}

func newDepsCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that required binaries and disk space are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := deps.Check(cfg)
			satisfied := deps.Satisfied(results)
			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Dependencies", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, result := range results {
					fmt.Fprintln(out, renderStatusLine(result.Name, depKind(result), depMessage(result), colorize))
				}
			}
			if !satisfied {
				return errors.New("required dependencies are missing")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}

func depKind(status deps.Status) statusKind {
	switch {
	case status.Available:
		return statusOK
	case status.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func depMessage(status deps.Status) string {
	if status.Available {
		if status.Command != "" {
			return status.Command
		}
		return status.Detail
	}
	if status.Detail != "" {
		return status.Detail
	}
	return "unavailable"
}

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Notifications.NtfyTopic == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Notification not sent: [notifications] ntfy_topic is empty")
				return nil
			}
			if err := notifications.NewService(cfg).Publish(cmd.Context(), notifications.EventTest, nil); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
