package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpfieber/jots-google-importer/internal/google"
	"github.com/jpfieber/jots-google-importer/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "auth <account-name>",
		Short: "Authorize a Google account and store its token",
		Long: `Start the OAuth flow for a Google account. The authorization URL is
printed for you to open in a browser; a local listener on the configured
redirect port captures the authorization code, exchanges it for a token,
and stores the token in the config file under the given account name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := args[0]
			logger := logging.WithOperation(newLogger(), "auth")

			manager, settings, err := loadSettings()
			if err != nil {
				return err
			}
			if err := requireCredentials(settings); err != nil {
				return err
			}
			creds := settings.Credentials()

			listener, err := google.NewCodeListener(creds.RedirectPort)
			if err != nil {
				return fmt.Errorf("failed to start redirect listener: %w", err)
			}
			defer listener.Close()

			authURL, err := google.AuthURL(creds)
			if err != nil {
				return err
			}
			logger.Info("authorization URL generated", logging.Account(account))
			fmt.Fprintf(cmd.OutOrStdout(), "Open this URL in your browser to authorize %q:\n\n%s\n\nWaiting for the redirect on %s ...\n", account, authURL, listener.Addr())

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			code, err := listener.Wait(ctx)
			if err != nil {
				return fmt.Errorf("authorization not completed: %w", err)
			}

			token, err := google.ExchangeCode(ctx, creds, code)
			if err != nil {
				return fmt.Errorf("failed to exchange authorization code: %w", err)
			}
			logger.Debug("token received",
				logging.Account(account), "token", logging.SanitizeToken(token))

			client, err := google.ClientFromToken(ctx, creds, token)
			if err == nil {
				valid, verr := google.ValidateTokenScopes(ctx, client)
				if verr != nil {
					logger.Warn("could not verify granted scopes", logging.Err(verr))
				} else if !valid {
					logger.Warn("token is missing required scopes; some commands may fail",
						logging.Account(account))
				}
			}

			settings.SetAccount(account, token)
			if err := manager.Save(settings); err != nil {
				return err
			}

			logger.Info("account authorized",
				logging.Account(account), logging.Status(logging.StatusSuccess))
			fmt.Fprintf(cmd.OutOrStdout(), "Account %q authorized and saved.\n", account)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the browser redirect")
	return cmd
}
