// Package template substitutes contact and calendar event data into
// user-defined note templates using {{key}} tokens.
package template
