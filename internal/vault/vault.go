package vault

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jpfieber/jots-google-importer/internal/logging"
)

// Vault abstracts the note vault the importer reads templates from and
// writes notes into. The pipeline only ever depends on these capabilities,
// never on a concrete host.
type Vault interface {
	// ReadTemplate reads a template file by vault-relative path.
	ReadTemplate(path string) (string, error)

	// WriteFile writes content to a vault-relative path, creating parent
	// directories as needed.
	WriteFile(path string, content string) error

	// RenameFile moves a note to a new vault-relative path.
	RenameFile(oldPath, newPath string) error

	// ShowNotice surfaces a transient message to the user.
	ShowNotice(message string)
}

// DirVault is a filesystem-backed Vault rooted at a directory.
type DirVault struct {
	root   string
	logger *slog.Logger
}

// NewDirVault creates a Vault rooted at the given directory.
func NewDirVault(root string, logger *slog.Logger) *DirVault {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirVault{root: root, logger: logger}
}

// Root returns the vault root directory.
func (v *DirVault) Root() string {
	return v.root
}

func (v *DirVault) abs(path string) string {
	return filepath.Join(v.root, filepath.FromSlash(path))
}

// ReadTemplate reads a template file by vault-relative path.
func (v *DirVault) ReadTemplate(path string) (string, error) {
	data, err := os.ReadFile(v.abs(path))
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes content UTF-8 encoded to a vault-relative path, creating
// the directory recursively if missing. Write failures are logged and
// propagated.
func (v *DirVault) WriteFile(path string, content string) error {
	target := v.abs(path)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		v.logger.Error("failed to create note folder", logging.Path(path), logging.Err(err))
		return fmt.Errorf("failed to create folder for %s: %w", path, err)
	}

	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		v.logger.Error("failed to write note", logging.Path(path), logging.Err(err))
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// RenameFile moves a note to a new vault-relative path, creating the target
// directory if needed.
func (v *DirVault) RenameFile(oldPath, newPath string) error {
	target := v.abs(newPath)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", newPath, err)
	}

	if err := os.Rename(v.abs(oldPath), target); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", oldPath, newPath, err)
	}

	return nil
}

// ShowNotice logs the notice. A host with a real UI would display it.
func (v *DirVault) ShowNotice(message string) {
	v.logger.Info("notice", slog.String("message", message))
}
