package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jpfieber/jots-google-importer/internal/contacts"
	"github.com/jpfieber/jots-google-importer/internal/google"
	"github.com/jpfieber/jots-google-importer/internal/logging"
	"github.com/jpfieber/jots-google-importer/internal/template"
	"github.com/jpfieber/jots-google-importer/internal/vault"
)

func newContactCmd() *cobra.Command {
	var account string
	var vaultPath string
	var renameFrom string
	var limit int

	cmd := &cobra.Command{
		Use:   "contact <query>",
		Short: "Look up a contact and write a person note",
		Long: `Search the account's contacts (personal, other, and directory) for the
query and render the first match through the person template into the
configured people folder. With --rename-from, an existing note is moved to
the contact's canonical location instead of writing a new one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			logger := logging.WithOperation(newLogger(), "contact")

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

			client, err := contacts.NewClient(ctx, httpClient)
			if err != nil {
				return err
			}

			found, err := client.SearchContacts(query, limit)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return fmt.Errorf("no contacts match %q", query)
			}

			root, err := resolveVaultRoot(settings, vaultPath)
			if err != nil {
				return err
			}
			v := vault.NewDirVault(root, logger)

			noteCfg := template.PersonNoteConfig{
				TemplateFile:   settings.TemplateFilePerson,
				Folder:         settings.FolderPerson,
				FilenameFormat: settings.PersonFilenameFormat,
			}

			contact := found[0]
			if len(found) > 1 {
				logger.Info("multiple matches, using the first",
					slog.Int("matches", len(found)))
			}

			if renameFrom != "" && settings.RenamePersonFile {
				newPath, err := template.RenamePersonNote(v, noteCfg, contact, renameFrom)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s -> %s\n", renameFrom, newPath)
				return nil
			}

			path, err := template.WritePersonNote(v, noteCfg, contact)
			if err != nil {
				return err
			}

			logger.Info("person note written", logging.Path(path),
				logging.Status(logging.StatusSuccess))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "account name to query")
	cmd.Flags().StringVar(&vaultPath, "vault", "", "vault root directory (overrides vault_path from the config)")
	cmd.Flags().StringVar(&renameFrom, "rename-from", "", "existing note to move to the contact's location (requires rename_person_file)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of matches to consider")
	return cmd
}
