package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpfieber/jots-google-importer/internal/calendar"
	"github.com/jpfieber/jots-google-importer/internal/google"
	"github.com/jpfieber/jots-google-importer/internal/logging"
	"github.com/jpfieber/jots-google-importer/internal/template"
	"github.com/jpfieber/jots-google-importer/internal/vault"
)

func newEventCmd() *cobra.Command {
	var account string
	var vaultPath string
	var day string
	var eventID string

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Render calendar events through the event template",
		Long: `List the primary calendar's events for a day and print each one rendered
through the event template. With --id, only that event is rendered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.WithOperation(newLogger(), "event")

			_, settings, err := loadSettings()
			if err != nil {
				return err
			}
			if settings.TemplateFileEvent == "" {
				return fmt.Errorf("template_file_event is not configured")
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

			client, err := calendar.NewClient(ctx, httpClient)
			if err != nil {
				return err
			}

			root, err := resolveVaultRoot(settings, vaultPath)
			if err != nil {
				return err
			}
			v := vault.NewDirVault(root, logger)

			var events []calendar.EventSummary
			if eventID != "" {
				event, err := client.Event(eventID)
				if err != nil {
					return err
				}
				events = []calendar.EventSummary{*event}
			} else {
				when := time.Now()
				if day != "" {
					when, err = time.ParseInLocation("2006-01-02", day, time.Local)
					if err != nil {
						return fmt.Errorf("invalid --day %q, want YYYY-MM-DD: %w", day, err)
					}
				}
				events, err = client.EventsOn(when)
				if err != nil {
					return err
				}
			}

			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events found.")
				return nil
			}

			for i := range events {
				note, err := template.RenderEventNote(v, settings.TemplateFileEvent, settings.EventDateFormat, &events[i])
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), note)
			}

			logger.Info("events rendered", logging.Status(logging.StatusSuccess))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "account name to query")
	cmd.Flags().StringVar(&vaultPath, "vault", "", "vault root directory (overrides vault_path from the config)")
	cmd.Flags().StringVar(&day, "day", "", "day to list events for (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&eventID, "id", "", "render a single event by its identifier")
	return cmd
}
