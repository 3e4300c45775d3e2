package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jpfieber/jots-google-importer/internal/logging"
)

// Client wraps the Gmail Users service for a single authenticated account.
type Client struct {
	svc    *gmail.UsersService
	logger *slog.Logger
}

// NewClient creates a Gmail client from an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{svc: svc.Users, logger: logger}, nil
}

// ListLabelMessages issues a label-filtered list query and fetches the
// subject for each matching message. A list failure degrades to an empty
// result rather than propagating; a single message's metadata failure is
// logged and skipped without aborting the batch.
func (c *Client) ListLabelMessages(label string) []MessageRef {
	res, err := c.svc.Messages.List("me").Q("label:" + label).Do()
	if err != nil {
		c.logger.Warn("label query failed", logging.Label(label), logging.Err(err))
		return nil
	}

	var refs []MessageRef
	for _, m := range res.Messages {
		meta, err := c.svc.Messages.Get("me", m.Id).
			Format("metadata").
			MetadataHeaders("Subject").
			Do()
		if err != nil {
			c.logger.Warn("failed to fetch message metadata",
				logging.MessageID(m.Id), logging.Err(err))
			continue
		}
		refs = append(refs, MessageRef{
			ID:      m.Id,
			Subject: headerValue(meta, "Subject"),
		})
	}

	return refs
}

// Labels returns id/name pairs for all labels in the account, or an empty
// list on failure.
func (c *Client) Labels() []Label {
	res, err := c.svc.Labels.List("me").Do()
	if err != nil {
		c.logger.Warn("failed to list labels", logging.Err(err))
		return nil
	}

	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, Label{ID: l.Id, Name: l.Name})
	}
	return labels
}

// FetchContent retrieves the full message representation and extracts
// sender, date and body. Unlike the list and metadata calls, a fetch
// failure here propagates to the caller; it is fatal to processing that
// one message.
func (c *Client) FetchContent(id string) (*EmailContent, error) {
	msg, err := c.svc.Messages.Get("me", id).Format("full").Do()
	if err != nil {
		c.logger.Error("failed to fetch message content",
			logging.MessageID(id), logging.Err(err))
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	content := contentFromMessage(msg)
	c.logger.Debug("fetched message content",
		logging.MessageID(id), logging.Sender(content.Sender))
	return content, nil
}

// headerValue returns the value of the named header, or "" if absent.
func headerValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}
