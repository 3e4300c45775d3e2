package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyAccount   = "account"
	KeyMessageID = "message_id"
	KeyLabel     = "label"
	KeyPath      = "path"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithAccount returns a logger with the account attribute set.
func WithAccount(logger *slog.Logger, account string) *slog.Logger {
	return logger.With(slog.String(KeyAccount, account))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Account returns a slog attribute for the account name.
func Account(account string) slog.Attr {
	return slog.String(KeyAccount, account)
}

// MessageID returns a slog attribute for a Gmail message identifier.
func MessageID(id string) slog.Attr {
	return slog.String(KeyMessageID, id)
}

// Label returns a slog attribute for a Gmail label name or query.
func Label(label string) slog.Attr {
	return slog.String(KeyLabel, label)
}

// Path returns a slog attribute for a vault-relative file path.
func Path(path string) slog.Attr {
	return slog.String(KeyPath, path)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		// Return an empty Group that slog will omit from output
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of an email for logging purposes.
// This allows correlation of log entries without exposing PII.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// Sender returns a slog attribute with the anonymized sender address.
func Sender(email string) slog.Attr {
	return slog.String("sender_hash", AnonymizeEmail(email))
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content,
// as even partial token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
