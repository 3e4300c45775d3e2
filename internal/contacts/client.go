package contacts

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
)

const readMask = "names,emailAddresses,phoneNumbers,birthdays,organizations"

// Contact is a simplified contact entry with the fields the person note
// template can render.
type Contact struct {
	ResourceName string
	DisplayName  string
	EmailAddress string
	PhoneNumber  string
	Birthday     string
	Organization string
}

// Client wraps the People service for a single authenticated account.
type Client struct {
	svc *people.Service
}

// NewClient creates a People client from an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	svc, err := people.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// SearchContacts searches personal, other, and directory contacts for the
// query and returns up to pageSize results, deduplicated by email address.
// A single source failing does not fail the search; directory lookup in
// particular only works for Workspace accounts.
func (c *Client) SearchContacts(query string, pageSize int) ([]*Contact, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	var results []*Contact
	seen := make(map[string]bool)
	queryLower := strings.ToLower(query)

	add := func(contact *Contact) {
		if contact == nil || contact.EmailAddress == "" || seen[contact.EmailAddress] {
			return
		}
		seen[contact.EmailAddress] = true
		results = append(results, contact)
	}

	// Personal contacts support server-side search.
	resp, err := c.svc.People.SearchContacts().
		Query(query).
		ReadMask(readMask).
		PageSize(int64(pageSize)).
		Do()
	if err == nil {
		for _, result := range resp.Results {
			add(extractContact(result.Person))
		}
	}

	// Other contacts (interaction history) have no search query; page
	// through and filter client-side.
	pageToken := ""
	for page := 0; page < 10 && len(results) < pageSize*5; page++ {
		call := c.svc.OtherContacts.List().ReadMask(readMask).PageSize(100)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		otherResp, err := call.Do()
		if err != nil {
			break
		}

		for _, person := range otherResp.OtherContacts {
			if contact := extractContact(person); matchesQuery(contact, queryLower) {
				add(contact)
			}
		}

		pageToken = otherResp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	// Directory contacts only exist for Workspace accounts; failure is fine.
	dirResp, err := c.svc.People.SearchDirectoryPeople().
		Query(query).
		ReadMask(readMask).
		PageSize(int64(pageSize)).
		Do()
	if err == nil {
		for _, person := range dirResp.People {
			add(extractContact(person))
		}
	}

	if len(results) > pageSize {
		results = results[:pageSize]
	}

	return results, nil
}

// extractContact pulls the template-relevant fields out of a Person.
// Returns nil for entries without any useful information.
func extractContact(person *people.Person) *Contact {
	if person == nil {
		return nil
	}

	contact := &Contact{ResourceName: person.ResourceName}

	if len(person.Names) > 0 {
		contact.DisplayName = person.Names[0].DisplayName
	}
	if len(person.EmailAddresses) > 0 {
		contact.EmailAddress = person.EmailAddresses[0].Value
	}
	if len(person.PhoneNumbers) > 0 {
		contact.PhoneNumber = person.PhoneNumbers[0].Value
	}
	if len(person.Birthdays) > 0 {
		contact.Birthday = formatBirthday(person.Birthdays[0])
	}
	if len(person.Organizations) > 0 {
		contact.Organization = person.Organizations[0].Name
	}

	if contact.DisplayName == "" && contact.EmailAddress == "" && contact.PhoneNumber == "" {
		return nil
	}

	return contact
}

// formatBirthday renders a birthday as YYYY-MM-DD, or MM-DD when the year
// is unknown (contacts often omit it).
func formatBirthday(b *people.Birthday) string {
	if b == nil || b.Date == nil {
		return ""
	}
	if b.Date.Year != 0 {
		return fmt.Sprintf("%04d-%02d-%02d", b.Date.Year, b.Date.Month, b.Date.Day)
	}
	return fmt.Sprintf("%02d-%02d", b.Date.Month, b.Date.Day)
}

// matchesQuery checks a contact against the lowercased query string.
func matchesQuery(contact *Contact, queryLower string) bool {
	if contact == nil {
		return false
	}
	if queryLower == "" {
		return true
	}
	if strings.Contains(strings.ToLower(contact.DisplayName), queryLower) {
		return true
	}
	if strings.Contains(strings.ToLower(contact.EmailAddress), queryLower) {
		return true
	}
	return strings.Contains(contact.PhoneNumber, queryLower)
}
