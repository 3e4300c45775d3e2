package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List configured Google accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, settings, err := loadSettings()
			if err != nil {
				return err
			}

			if len(settings.Accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts configured. Run \"jots auth <name>\" to add one.")
				return nil
			}

			for _, a := range settings.Accounts {
				state := "authorized"
				if strings.TrimSpace(a.Token) == "" {
					state = "no token"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", a.Name, state)
			}
			return nil
		},
	}

	cmd.AddCommand(newAccountsRemoveCmd())
	return cmd
}

func newAccountsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account-name>",
		Short: "Remove an account and its stored token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, settings, err := loadSettings()
			if err != nil {
				return err
			}

			if !settings.RemoveAccount(args[0]) {
				return fmt.Errorf("no account named %q", args[0])
			}
			if err := manager.Save(settings); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account %q removed.\n", args[0])
			return nil
		},
	}
}
