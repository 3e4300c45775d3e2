package contacts

import (
	"testing"

	people "google.golang.org/api/people/v1"
)

func TestExtractContact(t *testing.T) {
	tests := []struct {
		name   string
		person *people.Person
		want   *Contact
	}{
		{
			name:   "nil person",
			person: nil,
			want:   nil,
		},
		{
			name: "full contact",
			person: &people.Person{
				ResourceName:   "people/c1",
				Names:          []*people.Name{{DisplayName: "Jane Doe"}},
				EmailAddresses: []*people.EmailAddress{{Value: "jane@example.com"}},
				PhoneNumbers:   []*people.PhoneNumber{{Value: "+1 555 0100"}},
				Birthdays: []*people.Birthday{
					{Date: &people.Date{Year: 1985, Month: 6, Day: 2}},
				},
				Organizations: []*people.Organization{{Name: "Acme"}},
			},
			want: &Contact{
				ResourceName: "people/c1",
				DisplayName:  "Jane Doe",
				EmailAddress: "jane@example.com",
				PhoneNumber:  "+1 555 0100",
				Birthday:     "1985-06-02",
				Organization: "Acme",
			},
		},
		{
			name: "birthday without year",
			person: &people.Person{
				Names:     []*people.Name{{DisplayName: "Bob"}},
				Birthdays: []*people.Birthday{{Date: &people.Date{Month: 12, Day: 24}}},
			},
			want: &Contact{DisplayName: "Bob", Birthday: "12-24"},
		},
		{
			name:   "no useful fields",
			person: &people.Person{ResourceName: "people/empty"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractContact(tt.person)

			if (got == nil) != (tt.want == nil) {
				t.Fatalf("extractContact() = %v, want %v", got, tt.want)
			}
			if got == nil {
				return
			}
			if *got != *tt.want {
				t.Errorf("extractContact() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatchesQuery(t *testing.T) {
	contact := &Contact{
		DisplayName:  "Jane Doe",
		EmailAddress: "jane@example.com",
		PhoneNumber:  "+1 555 0100",
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query matches", query: "", want: true},
		{name: "name match case-insensitive", query: "jane d", want: true},
		{name: "email match", query: "example.com", want: true},
		{name: "phone match", query: "555", want: true},
		{name: "no match", query: "smith", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesQuery(contact, tt.query); got != tt.want {
				t.Errorf("matchesQuery(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}

	if matchesQuery(nil, "x") {
		t.Error("matchesQuery(nil) should be false")
	}
}
