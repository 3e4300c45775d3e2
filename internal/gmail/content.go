package gmail

import (
	"encoding/base64"
	"regexp"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

var (
	// angleAddrPattern prefers the angle-bracketed address in headers
	// like `Name <a@b.com>`.
	angleAddrPattern = regexp.MustCompile(`<([^<>\s]+@[^<>\s]+)>`)
	// bareAddrPattern matches a bare address token as fallback.
	bareAddrPattern = regexp.MustCompile(`[^\s<>"',;]+@[^\s<>"',;]+`)
)

// dateFormats are tried in order when parsing the Date header. Real-world
// senders use a surprising variety of near-RFC formats.
var dateFormats = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	time.RFC822Z,
}

// contentFromMessage extracts sender, date and body from a full message.
//
// The body is a recursive tree of parts. A depth-first search prefers
// text/html; only if no HTML part exists anywhere in the tree is a second
// search made for text/plain. The first matching part wins; sibling or
// nested parts of the same type are not merged. A non-multipart message is
// the degenerate single-node case of the same walk.
func contentFromMessage(msg *gmail.Message) *EmailContent {
	content := &EmailContent{
		Sender: senderFromHeader(headerValue(msg, "From")),
		Date:   parseDateHeader(headerValue(msg, "Date")),
	}

	if msg == nil || msg.Payload == nil {
		return content
	}

	if part := findPart(msg.Payload, "text/html"); part != nil {
		content.HTML = decodePartData(part.Body.Data)
	} else if part := findPart(msg.Payload, "text/plain"); part != nil {
		content.Text = decodePartData(part.Body.Data)
	}

	return content
}

// findPart returns the first part in depth-first order whose MIME type
// matches and which carries inline data.
func findPart(part *gmail.MessagePart, mimeType string) *gmail.MessagePart {
	if part == nil {
		return nil
	}
	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		return part
	}
	for _, sub := range part.Parts {
		if found := findPart(sub, mimeType); found != nil {
			return found
		}
	}
	return nil
}

// decodePartData decodes base64url-encoded part data (Gmail API uses
// RFC 4648 base64url). Falls back to standard base64 for the occasional
// nonconforming message. Undecodable data yields an empty string.
func decodePartData(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}

// senderFromHeader extracts the sender address from a From header,
// preferring an angle-bracketed address and falling back to a bare address
// token. An unmatched header yields "unknown".
func senderFromHeader(from string) string {
	if m := angleAddrPattern.FindStringSubmatch(from); m != nil {
		return m[1]
	}
	if m := bareAddrPattern.FindString(from); m != "" {
		return m
	}
	return "unknown"
}

// parseDateHeader parses the Date header into a timestamp. An absent or
// unparsable header yields the zero time; downstream file placement falls
// back to the current time in that case.
func parseDateHeader(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	// Some senders append a parenthesized zone name that the layouts above
	// don't cover. Strip it and retry.
	if open := strings.LastIndex(value, " ("); open != -1 {
		if closing := strings.LastIndex(value, ")"); closing > open {
			stripped := strings.TrimSpace(value[:open] + value[closing+1:])
			for _, layout := range dateFormats {
				if t, err := time.Parse(layout, stripped); err == nil {
					return t
				}
			}
		}
	}

	return time.Time{}
}
