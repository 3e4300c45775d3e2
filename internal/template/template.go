package template

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/jpfieber/jots-google-importer/internal/calendar"
	"github.com/jpfieber/jots-google-importer/internal/contacts"
	"github.com/jpfieber/jots-google-importer/internal/vault"
)

// Render substitutes {{key}} tokens in the template text with the given
// values. Unknown tokens are left in place so a typo in a template is
// visible in the output rather than silently erased.
func Render(text string, values map[string]string) string {
	for k, v := range values {
		text = strings.ReplaceAll(text, "{{"+k+"}}", v)
	}
	return text
}

// PersonValues returns the substitution values for a contact.
func PersonValues(c *contacts.Contact) map[string]string {
	if c == nil {
		return map[string]string{}
	}
	return map[string]string{
		"name":         c.DisplayName,
		"email":        c.EmailAddress,
		"phone":        c.PhoneNumber,
		"birthday":     c.Birthday,
		"organization": c.Organization,
		"date":         time.Now().Format("2006-01-02"),
	}
}

// EventValues returns the substitution values for a calendar event.
// dateFormat is the Go time layout used for the event date.
func EventValues(e *calendar.EventSummary, dateFormat string) map[string]string {
	if e == nil {
		return map[string]string{}
	}
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}

	attendees := make([]string, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		if a.DisplayName != "" {
			attendees = append(attendees, a.DisplayName)
		} else {
			attendees = append(attendees, a.Email)
		}
	}

	values := map[string]string{
		"summary":     e.Summary,
		"description": e.Description,
		"location":    e.Location,
		"organizer":   e.Organizer,
		"status":      e.Status,
		"date":        e.Start.Format(dateFormat),
		"attendees":   strings.Join(attendees, ", "),
	}

	if e.AllDay {
		values["start_time"] = "all day"
		values["end_time"] = "all day"
	} else {
		values["start_time"] = e.Start.Format("15:04")
		values["end_time"] = e.End.Format("15:04")
	}

	return values
}

// PersonNoteConfig carries the settings for writing a person note.
type PersonNoteConfig struct {
	TemplateFile   string
	Folder         string
	FilenameFormat string
}

// WritePersonNote renders the person template for a contact and writes it
// into the configured folder. Returns the vault-relative path written.
func WritePersonNote(v vault.Vault, cfg PersonNoteConfig, c *contacts.Contact) (string, error) {
	tpl, err := v.ReadTemplate(cfg.TemplateFile)
	if err != nil {
		return "", err
	}

	values := PersonValues(c)
	target := personNotePath(cfg, values)

	if err := v.WriteFile(target, Render(tpl, values)); err != nil {
		return "", err
	}

	return target, nil
}

// RenamePersonNote moves an existing note to the configured location and
// filename for the contact.
func RenamePersonNote(v vault.Vault, cfg PersonNoteConfig, c *contacts.Contact, oldPath string) (string, error) {
	target := personNotePath(cfg, PersonValues(c))

	if err := v.RenameFile(oldPath, target); err != nil {
		return "", err
	}

	return target, nil
}

func personNotePath(cfg PersonNoteConfig, values map[string]string) string {
	format := cfg.FilenameFormat
	if format == "" {
		format = "{{name}}"
	}
	filename := vault.SanitizeName(Render(format, values))
	if filename == "" {
		filename = "Unnamed"
	}
	return path.Join(cfg.Folder, filename+".md")
}

// RenderEventNote renders the event template for a calendar event and
// returns the note content.
func RenderEventNote(v vault.Vault, templateFile, dateFormat string, e *calendar.EventSummary) (string, error) {
	tpl, err := v.ReadTemplate(templateFile)
	if err != nil {
		return "", fmt.Errorf("failed to read event template: %w", err)
	}
	return Render(tpl, EventValues(e, dateFormat)), nil
}
