// Package importer orchestrates the email ingestion pipeline across all
// configured accounts: query labeled messages, fetch and extract content,
// inline remote images, and place the result as a dated note in the vault.
//
// Failures are isolated per message and per account; one account's missing
// token or one message's malformed content never stops the rest of the run.
package importer
