// Package contacts looks up Google contacts across personal, other, and
// directory sources for the contact note command.
package contacts
