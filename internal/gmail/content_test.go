package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestSenderFromHeader(t *testing.T) {
	tests := []struct {
		name string
		from string
		want string
	}{
		{
			name: "name with angle-bracketed address",
			from: `Jane Doe <a@b.com>`,
			want: "a@b.com",
		},
		{
			name: "quoted name with angle-bracketed address",
			from: `"Doe, Jane" <jane.doe@example.org>`,
			want: "jane.doe@example.org",
		},
		{
			name: "bare address",
			from: "a@b.com",
			want: "a@b.com",
		},
		{
			name: "angle address preferred over bare token",
			from: "a@b.com <c@d.com>",
			want: "c@d.com",
		},
		{
			name: "no address at all",
			from: "Mailer Daemon",
			want: "unknown",
		},
		{
			name: "empty header",
			from: "",
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := senderFromHeader(tt.from); got != tt.want {
				t.Errorf("senderFromHeader(%q) = %q, want %q", tt.from, got, tt.want)
			}
		})
	}
}

func TestParseDateHeader(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantZero bool
		want     time.Time
	}{
		{
			name:  "RFC 1123Z",
			value: "Fri, 15 Mar 2024 09:30:00 +0100",
			want:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.FixedZone("", 3600)),
		},
		{
			name:  "numeric zone with parenthesized name",
			value: "Fri, 15 Mar 2024 09:30:00 +0000 (UTC)",
			want:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "single-digit day",
			value: "Mon, 1 Apr 2024 18:05:42 -0700",
			want:  time.Date(2024, 4, 1, 18, 5, 42, 0, time.FixedZone("", -7*3600)),
		},
		{
			name:     "absent header",
			value:    "",
			wantZero: true,
		},
		{
			name:     "garbage",
			value:    "sometime last week",
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDateHeader(tt.value)

			if tt.wantZero {
				if !got.IsZero() {
					t.Errorf("parseDateHeader(%q) = %v, want zero time", tt.value, got)
				}
				return
			}

			if !got.Equal(tt.want) {
				t.Errorf("parseDateHeader(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestContentFromMessageBodySelection(t *testing.T) {
	tests := []struct {
		name     string
		payload  *gmail.MessagePart
		wantHTML string
		wantText string
	}{
		{
			name: "multipart with html and plain prefers html",
			payload: &gmail.MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmail.MessagePartBody{Data: b64("plain body")},
					},
					{
						MimeType: "text/html",
						Body:     &gmail.MessagePartBody{Data: b64("<p>html body</p>")},
					},
				},
			},
			wantHTML: "<p>html body</p>",
		},
		{
			name: "plain only yields empty html and non-empty text",
			payload: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmail.MessagePartBody{Data: b64("just text")},
					},
				},
			},
			wantText: "just text",
		},
		{
			name: "first html wins over later siblings",
			payload: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/html",
						Body:     &gmail.MessagePartBody{Data: b64("<p>first</p>")},
					},
					{
						MimeType: "text/html",
						Body:     &gmail.MessagePartBody{Data: b64("<p>second</p>")},
					},
				},
			},
			wantHTML: "<p>first</p>",
		},
		{
			name: "html nested two levels deep is found",
			payload: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*gmail.MessagePart{
							{
								MimeType: "text/plain",
								Body:     &gmail.MessagePartBody{Data: b64("nested plain")},
							},
							{
								MimeType: "text/html",
								Body:     &gmail.MessagePartBody{Data: b64("<p>nested html</p>")},
							},
						},
					},
				},
			},
			wantHTML: "<p>nested html</p>",
		},
		{
			name: "non-multipart message is the degenerate single node",
			payload: &gmail.MessagePart{
				MimeType: "text/html",
				Body:     &gmail.MessagePartBody{Data: b64("<p>flat</p>")},
			},
			wantHTML: "<p>flat</p>",
		},
		{
			name:    "nil payload",
			payload: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &gmail.Message{Payload: tt.payload}

			got := contentFromMessage(msg)

			if got.HTML != tt.wantHTML {
				t.Errorf("HTML = %q, want %q", got.HTML, tt.wantHTML)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestContentFromMessageHeaders(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "Jane Doe <a@b.com>"},
				{Name: "Date", Value: "Fri, 15 Mar 2024 09:30:00 +0000"},
			},
			Body: &gmail.MessagePartBody{Data: b64("hello")},
		},
	}

	got := contentFromMessage(msg)

	if got.Sender != "a@b.com" {
		t.Errorf("Sender = %q, want a@b.com", got.Sender)
	}
	want := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", got.Date, want)
	}
}

func TestDecodePartData(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "base64url",
			data: base64.URLEncoding.EncodeToString([]byte("body?>text")),
			want: "body?>text",
		},
		{
			name: "standard base64 fallback",
			data: base64.StdEncoding.EncodeToString([]byte("body?>text")),
			want: "body?>text",
		},
		{
			name: "undecodable",
			data: "!!! not base64 !!!",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodePartData(tt.data); got != tt.want {
				t.Errorf("decodePartData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "sender@example.com"},
				{Name: "Subject", Value: "Test Subject"},
			},
		},
	}

	if got := headerValue(msg, "Subject"); got != "Test Subject" {
		t.Errorf("headerValue(Subject) = %q, want %q", got, "Test Subject")
	}
	if got := headerValue(msg, "Cc"); got != "" {
		t.Errorf("headerValue(Cc) = %q, want empty", got)
	}
	if got := headerValue(&gmail.Message{}, "From"); got != "" {
		t.Errorf("headerValue with nil payload = %q, want empty", got)
	}
}
