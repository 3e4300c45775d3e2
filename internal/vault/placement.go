package vault

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

// chronologicalPrefix is the fixed prefix under which all imported email
// notes are nested, ahead of the user-configured subfolder template.
const chronologicalPrefix = "Chronological"

// DefaultStorageFolder is the default base folder name for email notes.
const DefaultStorageFolder = "Email"

var datePrefixPattern = regexp.MustCompile(`^\d{8}`)

// nameSanitizer strips path separators and filesystem-reserved characters
// from filename components.
var nameSanitizer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "-",
	"|", "-",
	"*", "",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
	"\r", "",
	"\n", " ",
	"\t", " ",
)

// SanitizeName makes a header value safe for use in a filename.
func SanitizeName(s string) string {
	return strings.TrimSpace(nameSanitizer.Replace(s))
}

// EmailFilename builds the output filename for a message:
//
//	YYYYMMDD_HHMMSS - <sanitized sender> -- <sanitized subject>.htm
//
// A zero date falls back to the current time.
func EmailFilename(date time.Time, sender, subject string) string {
	if date.IsZero() {
		date = time.Now()
	}
	return fmt.Sprintf("%s - %s -- %s.htm",
		date.Format("20060102_150405"), SanitizeName(sender), SanitizeName(subject))
}

// ResolveSubfolder substitutes the date into the subfolder template's
// literal YYYY and YYYY-MM tokens and nests the result under the fixed
// chronological prefix and the storage folder. YYYY-MM is substituted
// before YYYY so the year token inside it is not consumed first.
func ResolveSubfolder(storageFolder, template string, date time.Time) string {
	if storageFolder == "" {
		storageFolder = DefaultStorageFolder
	}
	resolved := strings.ReplaceAll(template, "YYYY-MM", date.Format("2006-01"))
	resolved = strings.ReplaceAll(resolved, "YYYY", date.Format("2006"))
	return path.Join(chronologicalPrefix, storageFolder, resolved)
}

// PlaceEmailFile writes prepared content into the dated subfolder derived
// from the filename's date prefix. The filename must begin with an 8-digit
// YYYYMMDD date; otherwise placement fails before any directory is created
// or file written. Returns the vault-relative path written.
func PlaceEmailFile(v Vault, storageFolder, subfolderTemplate, filename, content string) (string, error) {
	prefix := datePrefixPattern.FindString(filename)
	if prefix == "" {
		return "", fmt.Errorf("filename %q lacks a YYYYMMDD date prefix", filename)
	}

	date, err := time.Parse("20060102", prefix)
	if err != nil {
		return "", fmt.Errorf("filename %q has an unparseable date prefix: %w", filename, err)
	}

	target := path.Join(ResolveSubfolder(storageFolder, subfolderTemplate, date), filename)
	if err := v.WriteFile(target, content); err != nil {
		return "", err
	}

	return target, nil
}
