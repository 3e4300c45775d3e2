// Package inline converts remote image references in an email's HTML body
// into self-contained base64 data URIs, so the written note renders without
// network access. Images that cannot be fetched are dropped, not retried.
package inline
