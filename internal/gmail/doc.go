// Package gmail provides the mail query client and content extractor for
// the email ingestion pipeline.
//
// The client wraps the Gmail Users service for one authenticated account.
// It lists messages matching a label filter, fetches per-message subject
// metadata, and retrieves full message content including the recursive MIME
// part tree.
//
// Failure handling is deliberately asymmetric: list and metadata queries
// degrade to empty results on error, while full content fetches propagate
// their error to the caller. The orchestrator isolates the latter per
// message.
package gmail
