package google

import (
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
	people "google.golang.org/api/people/v1"
)

// RequiredScopes are the Google OAuth scopes the importer needs. A token is
// only considered valid when every one of these scopes was granted; a
// partial-scope token is treated as fully invalid.
//
// The scopes provide access to:
//   - Contacts: read-only (including other contacts and directory)
//   - Calendar: read-only (calendar list and events)
//   - User profile: read-only
//   - Gmail: read, modify, labels
var RequiredScopes = []string{
	people.ContactsReadonlyScope,
	people.ContactsOtherReadonlyScope,
	people.DirectoryReadonlyScope,
	calendar.CalendarReadonlyScope,
	calendar.CalendarEventsReadonlyScope,
	people.UserinfoProfileScope,
	gmail.GmailReadonlyScope,
	gmail.GmailModifyScope,
	gmail.GmailLabelsScope,
}
