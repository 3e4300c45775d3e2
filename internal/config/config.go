package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jpfieber/jots-google-importer/internal/google"
)

// Setting keys as persisted in the config file.
const (
	keyVaultPath            = "vault_path"
	keyEmailStorageFolder   = "emailStorageFolder"
	keySubfolderStructure   = "subfolderStructure"
	keyClientID             = "client_id"
	keyClientSecret         = "client_secret"
	keyClientRedirectPort   = "client_redirect_uri_port"
	keyTemplateFilePerson   = "template_file_person"
	keyFolderPerson         = "folder_person"
	keyPersonFilenameFormat = "person_filename_format"
	keyTemplateFileEvent    = "template_file_event"
	keyEventDateFormat      = "event_date_format"
	keyRenamePersonFile     = "rename_person_file"
	keyAccounts             = "accounts"
)

// Account identifies a distinct Google identity: a display name and the
// opaque serialized OAuth token for it.
type Account struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Token string `mapstructure:"token" yaml:"token"`
}

// Settings is the process-wide configuration. Accounts are an explicit
// collection owned by the caller; nothing reads them through globals.
type Settings struct {
	VaultPath            string    `mapstructure:"vault_path"`
	EmailStorageFolder   string    `mapstructure:"emailStorageFolder"`
	SubfolderStructure   string    `mapstructure:"subfolderStructure"`
	ClientID             string    `mapstructure:"client_id"`
	ClientSecret         string    `mapstructure:"client_secret"`
	ClientRedirectPort   int       `mapstructure:"client_redirect_uri_port"`
	TemplateFilePerson   string    `mapstructure:"template_file_person"`
	FolderPerson         string    `mapstructure:"folder_person"`
	PersonFilenameFormat string    `mapstructure:"person_filename_format"`
	TemplateFileEvent    string    `mapstructure:"template_file_event"`
	EventDateFormat      string    `mapstructure:"event_date_format"`
	RenamePersonFile     bool      `mapstructure:"rename_person_file"`
	Accounts             []Account `mapstructure:"accounts"`
}

// Credentials returns the OAuth client configuration shared by all accounts.
func (s *Settings) Credentials() google.Credentials {
	return google.Credentials{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		RedirectPort: s.ClientRedirectPort,
	}
}

// TokenForAccount returns the serialized token for a named account.
func (s *Settings) TokenForAccount(name string) (string, bool) {
	for _, a := range s.Accounts {
		if a.Name == name {
			return a.Token, true
		}
	}
	return "", false
}

// SetAccount adds an account or replaces the token of an existing one.
func (s *Settings) SetAccount(name, token string) {
	for i, a := range s.Accounts {
		if a.Name == name {
			s.Accounts[i].Token = token
			return
		}
	}
	s.Accounts = append(s.Accounts, Account{Name: name, Token: token})
}

// RemoveAccount removes an account by name. Returns whether it existed.
func (s *Settings) RemoveAccount(name string) bool {
	for i, a := range s.Accounts {
		if a.Name == name {
			s.Accounts = append(s.Accounts[:i], s.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Manager loads and saves settings through viper.
type Manager struct {
	v    *viper.Viper
	path string
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "jots", "config.yaml")
}

// NewManager creates a settings manager for the given config file path.
// An empty path selects the default location.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault(keyEmailStorageFolder, "Email")
	v.SetDefault(keySubfolderStructure, "YYYY/YYYY-MM")
	v.SetDefault(keyClientRedirectPort, 42813)
	v.SetDefault(keyFolderPerson, "People")
	v.SetDefault(keyPersonFilenameFormat, "{{name}}")
	v.SetDefault(keyEventDateFormat, "2006-01-02")
	v.SetDefault(keyRenamePersonFile, false)

	v.SetEnvPrefix("JOTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env values through Unmarshal for
	// keys that have no default; each scalar key needs an explicit binding.
	for _, key := range []string{
		keyVaultPath,
		keyEmailStorageFolder,
		keySubfolderStructure,
		keyClientID,
		keyClientSecret,
		keyClientRedirectPort,
		keyTemplateFilePerson,
		keyFolderPerson,
		keyPersonFilenameFormat,
		keyTemplateFileEvent,
		keyEventDateFormat,
		keyRenamePersonFile,
	} {
		_ = v.BindEnv(key)
	}

	return &Manager{v: v, path: path}
}

// Path returns the config file path the manager reads and writes.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the config file and returns the settings. A missing file is
// not an error; defaults and environment overrides still apply.
func (m *Manager) Load() (*Settings, error) {
	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", m.path, err)
		}
	}

	var s Settings
	if err := m.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", m.path, err)
	}

	return &s, nil
}

// Save persists the settings back to the config file, creating the
// directory if needed.
func (m *Manager) Save(s *Settings) error {
	m.v.Set(keyVaultPath, s.VaultPath)
	m.v.Set(keyEmailStorageFolder, s.EmailStorageFolder)
	m.v.Set(keySubfolderStructure, s.SubfolderStructure)
	m.v.Set(keyClientID, s.ClientID)
	m.v.Set(keyClientSecret, s.ClientSecret)
	m.v.Set(keyClientRedirectPort, s.ClientRedirectPort)
	m.v.Set(keyTemplateFilePerson, s.TemplateFilePerson)
	m.v.Set(keyFolderPerson, s.FolderPerson)
	m.v.Set(keyPersonFilenameFormat, s.PersonFilenameFormat)
	m.v.Set(keyTemplateFileEvent, s.TemplateFileEvent)
	m.v.Set(keyEventDateFormat, s.EventDateFormat)
	m.v.Set(keyRenamePersonFile, s.RenamePersonFile)

	accounts := make([]map[string]string, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		accounts = append(accounts, map[string]string{"name": a.Name, "token": a.Token})
	}
	m.v.Set(keyAccounts, accounts)

	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", m.path, err)
	}

	return nil
}
