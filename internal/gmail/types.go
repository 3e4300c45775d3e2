package gmail

import (
	"time"
)

// MessageRef is a (subject, message identifier) pair produced by a label
// query. It is consumed once per processing run.
type MessageRef struct {
	ID      string
	Subject string
}

// Label is a Gmail label id/name pair.
type Label struct {
	ID   string
	Name string
}

// EmailContent holds the fields extracted from a single message: sender
// address, sent date, and the message body. HTML is preferred; Text is only
// populated when no HTML part exists anywhere in the part tree.
type EmailContent struct {
	Sender string
	Date   time.Time
	HTML   string
	Text   string
}
