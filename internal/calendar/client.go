package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar service for a single authenticated
// account, read-only.
type Client struct {
	svc *calendar.Service
}

// NewClient creates a Calendar client from an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// EventsOn lists the primary calendar's events on the given day, expanded
// to single events and ordered by start time.
func (c *Client) EventsOn(day time.Time) ([]EventSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	events, err := c.svc.Events.List("primary").
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	summaries := make([]EventSummary, 0, len(events.Items))
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	return summaries, nil
}

// Event retrieves a specific event from the primary calendar by ID.
func (c *Client) Event(eventID string) (*EventSummary, error) {
	event, err := c.svc.Events.Get("primary", eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	summary := toEventSummary(event)
	return &summary, nil
}
