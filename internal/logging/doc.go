// Package logging provides structured logging helpers built on log/slog.
//
// It defines the attribute keys used consistently across the importer
// (operation, account, message_id, label, path, status, error) together
// with small constructors for them, plus helpers to keep PII and OAuth
// token material out of log output.
package logging
