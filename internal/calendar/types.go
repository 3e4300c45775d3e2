package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// EventSummary is the simplified view of a calendar event used by the
// event note template.
type EventSummary struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Organizer   string
	Status      string
	Attendees   []AttendeeInfo
}

// AttendeeInfo describes an event attendee.
type AttendeeInfo struct {
	Email          string
	DisplayName    string
	ResponseStatus string // "needsAction", "declined", "tentative", "accepted"
	Optional       bool
	Organizer      bool
}

// toEventSummary converts a Google Calendar event to an EventSummary.
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				summary.Start = t
			}
		} else if event.Start.Date != "" {
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				summary.Start = t
				summary.AllDay = true
			}
		}
	}

	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				summary.End = t
			}
		} else if event.End.Date != "" {
			if t, err := time.Parse("2006-01-02", event.End.Date); err == nil {
				summary.End = t
			}
		}
	}

	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}

	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
			Optional:       att.Optional,
			Organizer:      att.Organizer,
		})
	}

	return summary
}
