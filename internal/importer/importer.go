package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpfieber/jots-google-importer/internal/config"
	"github.com/jpfieber/jots-google-importer/internal/gmail"
	"github.com/jpfieber/jots-google-importer/internal/inline"
	"github.com/jpfieber/jots-google-importer/internal/logging"
	"github.com/jpfieber/jots-google-importer/internal/vault"
)

// MailClient is what the processing run needs from the mail query client.
type MailClient interface {
	ListLabelMessages(label string) []gmail.MessageRef
	FetchContent(id string) (*gmail.EmailContent, error)
}

// ClientFactory builds an authenticated mail client from an account's
// serialized token.
type ClientFactory func(ctx context.Context, token string) (MailClient, error)

// BodyPreparer rewrites remote images in a prepared HTML body.
type BodyPreparer interface {
	InlineImages(html string) string
}

// Config holds the settings a processing run uses.
type Config struct {
	Label             string
	StorageFolder     string
	SubfolderTemplate string
}

// Stats summarizes a processing run.
type Stats struct {
	Accounts        int
	SkippedAccounts int
	Messages        int
	Imported        int
	Failed          int
}

// Runner drives the email ingestion pipeline: for each account, query
// labeled messages, then fetch, prepare and place each message as a note.
type Runner struct {
	vault   vault.Vault
	inliner BodyPreparer
	factory ClientFactory
	cfg     Config
	logger  *slog.Logger
}

// NewRunner creates a Runner. The accounts collection is passed to Run
// explicitly; the Runner holds no account state itself.
func NewRunner(v vault.Vault, inliner BodyPreparer, factory ClientFactory, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		vault:   v,
		inliner: inliner,
		factory: factory,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run processes every account sequentially. A missing token, a failed
// client construction, or a failed message is logged, surfaced as a notice,
// and skipped; it never aborts the rest of the run.
func (r *Runner) Run(ctx context.Context, accounts []config.Account) Stats {
	var stats Stats

	for _, account := range accounts {
		if ctx.Err() != nil {
			break
		}
		stats.Accounts++

		logger := logging.WithAccount(r.logger, account.Name)

		if strings.TrimSpace(account.Token) == "" {
			logger.Warn("no token stored, skipping account",
				logging.Status(logging.StatusSkipped))
			r.vault.ShowNotice(fmt.Sprintf("Account %q has no token; re-authorize it.", account.Name))
			stats.SkippedAccounts++
			continue
		}

		client, err := r.factory(ctx, account.Token)
		if err != nil {
			logger.Error("failed to create mail client",
				logging.Status(logging.StatusError), logging.Err(err))
			r.vault.ShowNotice(fmt.Sprintf("Account %q: %v", account.Name, err))
			stats.SkippedAccounts++
			continue
		}

		refs := client.ListLabelMessages(r.cfg.Label)
		logger.Info("label query complete",
			logging.Label(r.cfg.Label), slog.Int("messages", len(refs)))

		for _, ref := range refs {
			stats.Messages++

			path, err := r.processMessage(client, ref)
			if err != nil {
				logger.Error("failed to import message",
					logging.MessageID(ref.ID), logging.Status(logging.StatusError),
					logging.Err(err))
				r.vault.ShowNotice(fmt.Sprintf("Failed to import %q: %v", ref.Subject, err))
				stats.Failed++
				continue
			}

			logger.Info("imported message",
				logging.MessageID(ref.ID), logging.Path(path),
				logging.Status(logging.StatusSuccess))
			stats.Imported++
		}
	}

	return stats
}

// processMessage drives one message through fetch, filename construction,
// body preparation, and placement.
func (r *Runner) processMessage(client MailClient, ref gmail.MessageRef) (string, error) {
	content, err := client.FetchContent(ref.ID)
	if err != nil {
		return "", err
	}

	filename := vault.EmailFilename(content.Date, content.Sender, ref.Subject)

	body := inline.PrepareBody(content.HTML, content.Text)
	body = r.inliner.InlineImages(body)

	return vault.PlaceEmailFile(r.vault, r.cfg.StorageFolder, r.cfg.SubfolderTemplate, filename, body)
}
