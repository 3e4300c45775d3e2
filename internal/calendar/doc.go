// Package calendar provides read-only access to Google Calendar events for
// the event note command.
package calendar
