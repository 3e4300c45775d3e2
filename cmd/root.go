package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpfieber/jots-google-importer/internal/config"
)

var (
	configPath string
	verbose    bool
)

// rootCmd represents the base command for the jots application
var rootCmd = &cobra.Command{
	Use:   "jots",
	Short: "Imports Gmail messages, contacts and calendar events into a note vault",
	Long: `jots pulls data from your Google account into a local note vault:

  - labeled Gmail messages become dated HTML notes with images inlined
  - contacts become person notes rendered from a template
  - calendar events become event notes rendered from a template

Accounts are authorized once with "jots auth" and stored in the config file.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "jots version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newContactCmd())
	rootCmd.AddCommand(newEventCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// newLogger creates the process logger. Log output goes to stderr so that
// command output on stdout stays machine-readable.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the config file selected by the --config flag.
func loadSettings() (*config.Manager, *config.Settings, error) {
	manager := config.NewManager(configPath)
	settings, err := manager.Load()
	if err != nil {
		return nil, nil, err
	}
	return manager, settings, nil
}

// requireCredentials fails with a setup hint when the OAuth client
// credentials are not configured.
func requireCredentials(settings *config.Settings) error {
	if settings.ClientID == "" || settings.ClientSecret == "" {
		return fmt.Errorf("client_id and client_secret are not configured; add them to %s", config.NewManager(configPath).Path())
	}
	return nil
}

// resolveVaultRoot picks the vault root from the flag override or the
// config, failing when neither is set.
func resolveVaultRoot(settings *config.Settings, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if settings.VaultPath != "" {
		return settings.VaultPath, nil
	}
	return "", fmt.Errorf("vault path is not set; use --vault or set vault_path in the config")
}
