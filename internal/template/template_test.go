package template

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jpfieber/jots-google-importer/internal/calendar"
	"github.com/jpfieber/jots-google-importer/internal/contacts"
)

// fakeVault is an in-memory Vault for template tests.
type fakeVault struct {
	templates map[string]string
	writes    map[string]string
	renames   map[string]string
	notices   []string
}

func newFakeVault() *fakeVault {
	return &fakeVault{
		templates: make(map[string]string),
		writes:    make(map[string]string),
		renames:   make(map[string]string),
	}
}

func (v *fakeVault) ReadTemplate(path string) (string, error) {
	tpl, ok := v.templates[path]
	if !ok {
		return "", errors.New("template not found: " + path)
	}
	return tpl, nil
}

func (v *fakeVault) WriteFile(path string, content string) error {
	v.writes[path] = content
	return nil
}

func (v *fakeVault) RenameFile(oldPath, newPath string) error {
	v.renames[oldPath] = newPath
	return nil
}

func (v *fakeVault) ShowNotice(message string) {
	v.notices = append(v.notices, message)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		values map[string]string
		want   string
	}{
		{
			name:   "single token",
			text:   "# {{name}}",
			values: map[string]string{"name": "Jane"},
			want:   "# Jane",
		},
		{
			name:   "repeated token",
			text:   "{{name}} and {{name}}",
			values: map[string]string{"name": "Jane"},
			want:   "Jane and Jane",
		},
		{
			name:   "unknown token left in place",
			text:   "{{name}} {{nickname}}",
			values: map[string]string{"name": "Jane"},
			want:   "Jane {{nickname}}",
		},
		{
			name:   "empty value erases token",
			text:   "phone: {{phone}}",
			values: map[string]string{"phone": ""},
			want:   "phone: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.text, tt.values); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWritePersonNote(t *testing.T) {
	v := newFakeVault()
	v.templates["templates/person.md"] = "# {{name}}\nemail: {{email}}\norg: {{organization}}"

	contact := &contacts.Contact{
		DisplayName:  "Jane Doe",
		EmailAddress: "jane@example.com",
		Organization: "Acme",
	}

	cfg := PersonNoteConfig{
		TemplateFile:   "templates/person.md",
		Folder:         "People",
		FilenameFormat: "{{name}}",
	}

	path, err := WritePersonNote(v, cfg, contact)
	if err != nil {
		t.Fatalf("WritePersonNote() error = %v", err)
	}

	if path != "People/Jane Doe.md" {
		t.Errorf("path = %q, want People/Jane Doe.md", path)
	}

	content := v.writes[path]
	if !strings.Contains(content, "# Jane Doe") {
		t.Errorf("content missing rendered name: %q", content)
	}
	if !strings.Contains(content, "email: jane@example.com") {
		t.Errorf("content missing rendered email: %q", content)
	}
}

func TestWritePersonNoteMissingTemplate(t *testing.T) {
	v := newFakeVault()

	_, err := WritePersonNote(v, PersonNoteConfig{TemplateFile: "absent.md"}, &contacts.Contact{})
	if err == nil {
		t.Fatal("WritePersonNote() should fail when the template is missing")
	}
	if len(v.writes) != 0 {
		t.Errorf("nothing should be written on template failure, got %v", v.writes)
	}
}

func TestRenamePersonNote(t *testing.T) {
	v := newFakeVault()

	cfg := PersonNoteConfig{Folder: "People", FilenameFormat: "{{name}}"}
	contact := &contacts.Contact{DisplayName: "Jane Doe"}

	newPath, err := RenamePersonNote(v, cfg, contact, "Inbox/Untitled.md")
	if err != nil {
		t.Fatalf("RenamePersonNote() error = %v", err)
	}

	if newPath != "People/Jane Doe.md" {
		t.Errorf("newPath = %q", newPath)
	}
	if v.renames["Inbox/Untitled.md"] != "People/Jane Doe.md" {
		t.Errorf("renames = %v", v.renames)
	}
}

func TestRenderEventNote(t *testing.T) {
	v := newFakeVault()
	v.templates["templates/event.md"] = "## {{summary}}\n{{date}} {{start_time}}-{{end_time}}\nwith: {{attendees}}"

	event := &calendar.EventSummary{
		Summary: "Standup",
		Start:   time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		End:     time.Date(2024, 3, 15, 9, 45, 0, 0, time.UTC),
		Attendees: []calendar.AttendeeInfo{
			{DisplayName: "Jane"},
			{Email: "bob@example.com"},
		},
	}

	got, err := RenderEventNote(v, "templates/event.md", "2006-01-02", event)
	if err != nil {
		t.Fatalf("RenderEventNote() error = %v", err)
	}

	want := "## Standup\n2024-03-15 09:30-09:45\nwith: Jane, bob@example.com"
	if got != want {
		t.Errorf("RenderEventNote() = %q, want %q", got, want)
	}
}

func TestEventValuesAllDay(t *testing.T) {
	event := &calendar.EventSummary{
		Summary: "Conference",
		Start:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		AllDay:  true,
	}

	values := EventValues(event, "")

	if values["start_time"] != "all day" {
		t.Errorf("start_time = %q, want all day", values["start_time"])
	}
	if values["date"] != "2024-03-15" {
		t.Errorf("date = %q, want 2024-03-15", values["date"])
	}
}
