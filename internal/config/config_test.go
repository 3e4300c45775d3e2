package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "config.yaml"))

	s, err := m.Load()
	require.NoError(t, err, "missing config file should not be an error")

	assert.Equal(t, "Email", s.EmailStorageFolder)
	assert.Equal(t, "YYYY/YYYY-MM", s.SubfolderStructure)
	assert.Equal(t, 42813, s.ClientRedirectPort)
	assert.Equal(t, "People", s.FolderPerson)
	assert.False(t, s.RenamePersonFile)
	assert.Empty(t, s.Accounts)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := NewManager(path)
	s, err := m.Load()
	require.NoError(t, err)

	s.VaultPath = "/home/user/vault"
	s.ClientID = "id.apps.googleusercontent.com"
	s.ClientSecret = "secret"
	s.SetAccount("work", `{"access_token":"ya29.x"}`)
	s.SetAccount("home", `{"access_token":"ya29.y"}`)
	require.NoError(t, m.Save(s))

	reloaded, err := NewManager(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/home/user/vault", reloaded.VaultPath)
	assert.Equal(t, "id.apps.googleusercontent.com", reloaded.ClientID)
	require.Len(t, reloaded.Accounts, 2)

	tok, ok := reloaded.TokenForAccount("work")
	require.True(t, ok)
	assert.Equal(t, `{"access_token":"ya29.x"}`, tok)
}

func TestAccountMutation(t *testing.T) {
	s := &Settings{}

	s.SetAccount("work", "tok1")
	s.SetAccount("work", "tok2")
	require.Len(t, s.Accounts, 1, "SetAccount should replace, not duplicate")

	tok, ok := s.TokenForAccount("work")
	require.True(t, ok)
	assert.Equal(t, "tok2", tok)

	_, ok = s.TokenForAccount("absent")
	assert.False(t, ok)

	assert.True(t, s.RemoveAccount("work"))
	assert.False(t, s.RemoveAccount("work"), "second removal should report absence")
	assert.Empty(t, s.Accounts)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JOTS_CLIENT_ID", "env-client-id")
	t.Setenv("JOTS_VAULT_PATH", "/env/vault")
	t.Setenv("JOTS_EMAILSTORAGEFOLDER", "EnvMail")

	m := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	s, err := m.Load()
	require.NoError(t, err)

	assert.Equal(t, "env-client-id", s.ClientID, "keys without defaults should honor env overrides")
	assert.Equal(t, "/env/vault", s.VaultPath)
	assert.Equal(t, "EnvMail", s.EmailStorageFolder, "keys with defaults should honor env overrides too")
}

func TestCredentials(t *testing.T) {
	s := &Settings{
		ClientID:           "id",
		ClientSecret:       "secret",
		ClientRedirectPort: 9999,
	}

	creds := s.Credentials()
	assert.Equal(t, "id", creds.ClientID)
	assert.Equal(t, "secret", creds.ClientSecret)
	assert.Equal(t, "http://127.0.0.1:9999/", creds.RedirectURL())
}
