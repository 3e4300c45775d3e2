package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpfieber/jots-google-importer/internal/gmail"
	"github.com/jpfieber/jots-google-importer/internal/google"
	"github.com/jpfieber/jots-google-importer/internal/importer"
	"github.com/jpfieber/jots-google-importer/internal/inline"
	"github.com/jpfieber/jots-google-importer/internal/logging"
	"github.com/jpfieber/jots-google-importer/internal/vault"
)

func newProcessCmd() *cobra.Command {
	var label string
	var vaultPath string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Import labeled Gmail messages into the vault",
		Long: `Query every configured account for messages carrying the given label and
write each one into the vault as a dated HTML note, with remote images
inlined as data URIs. Failures are reported per message; the run continues
past them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.WithOperation(newLogger(), "process")

			_, settings, err := loadSettings()
			if err != nil {
				return err
			}
			if len(settings.Accounts) == 0 {
				return fmt.Errorf("no accounts configured; run \"jots auth <name>\" first")
			}

			root, err := resolveVaultRoot(settings, vaultPath)
			if err != nil {
				return err
			}

			creds := settings.Credentials()
			factory := func(ctx context.Context, token string) (importer.MailClient, error) {
				httpClient, err := google.ClientFromToken(ctx, creds, token)
				if err != nil {
					return nil, err
				}
				return gmail.NewClient(ctx, httpClient, logger)
			}

			runner := importer.NewRunner(
				vault.NewDirVault(root, logger),
				inline.New(logger),
				factory,
				importer.Config{
					Label:             label,
					StorageFolder:     settings.EmailStorageFolder,
					SubfolderTemplate: settings.SubfolderStructure,
				},
				logger,
			)

			stats := runner.Run(cmd.Context(), settings.Accounts)

			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d accounts (%d skipped): %d messages, %d imported, %d failed\n",
				stats.Accounts, stats.SkippedAccounts, stats.Messages, stats.Imported, stats.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "JotsProcess", "Gmail label selecting messages to import")
	cmd.Flags().StringVar(&vaultPath, "vault", "", "vault root directory (overrides vault_path from the config)")
	return cmd
}
