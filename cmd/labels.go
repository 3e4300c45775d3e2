package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpfieber/jots-google-importer/internal/gmail"
	"github.com/jpfieber/jots-google-importer/internal/google"
)

func newLabelsCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List Gmail labels for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			_, settings, err := loadSettings()
			if err != nil {
				return err
			}

			token, ok := settings.TokenForAccount(account)
			if !ok {
				return fmt.Errorf("no account named %q; run \"jots auth %s\" first", account, account)
			}

			ctx := cmd.Context()
			httpClient, err := google.ClientFromToken(ctx, settings.Credentials(), token)
			if err != nil {
				return err
			}

			client, err := gmail.NewClient(ctx, httpClient, logger)
			if err != nil {
				return err
			}

			labels := client.Labels()
			if len(labels) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No labels found.")
				return nil
			}
			for _, l := range labels {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.ID, l.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "account name to query")
	return cmd
}
