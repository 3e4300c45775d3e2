// Package google implements OAuth2 authentication against Google APIs.
//
// It builds the authorization URL for the fixed set of scopes the importer
// requires, runs a loopback listener to capture the authorization code
// redirect, exchanges codes for tokens, and reconstructs authenticated HTTP
// clients from serialized tokens stored in the account settings.
//
// Tokens are validated with an all-or-nothing scope check: a token missing
// any required scope is treated as invalid.
package google
