package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
	"gitlite.dev/gitlite/internal/repo"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change project settings",
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the project configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			state, err := c.Service.State(cmd.Context(), c.ProjectID)
			if err != nil {
				return err
			}

			splog := output.NewSplog()
			if state == nil {
				splog.Info("Project %s is not tracked", c.ProjectID)
				return nil
			}

			cfg := state.Config
			splog.Info("user.name: %s", cfg.UserName)
			splog.Info("user.email: %s", cfg.UserEmail)
			splog.Info("remote.url: %s", cfg.RemoteURL)
			splog.Info("branch: %s", cfg.Branch)
			splog.Info("autocommit: %t", cfg.AutoCommit)
			splog.Info("message.template: %s", cfg.CommitMessageTemplate)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one project configuration key",
		Long: `Set one project configuration key.

Keys: user.name, user.email, remote.url, branch, autocommit, message.template`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			state, err := c.Service.Init(ctx, c.ProjectID, repo.Config{})
			if err != nil {
				return err
			}

			cfg := state.Config
			key, value := args[0], args[1]
			switch key {
			case "user.name":
				cfg.UserName = value
			case "user.email":
				cfg.UserEmail = value
			case "remote.url":
				cfg.RemoteURL = value
			case "branch":
				cfg.Branch = value
			case "autocommit":
				enabled, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("autocommit must be true or false")
				}
				cfg.AutoCommit = enabled
			case "message.template":
				cfg.CommitMessageTemplate = value
			default:
				return fmt.Errorf("unknown config key: %s", key)
			}

			if err := c.Service.SetConfig(ctx, c.ProjectID, cfg); err != nil {
				return err
			}

			output.NewSplog().Info("Set %s", key)
			return nil
		},
	}
}
