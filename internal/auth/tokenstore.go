// ABOUTME: Durable credential storage for the session token and cached user
// ABOUTME: Stores a single JSON file in the XDG config directory

package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TokenStore is the durable home of the credential, the cached profile,
// and session-scoped hints. The Session keeps an in-memory mirror that
// every mutation writes through, so the two views never diverge.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	User() (*UserProfile, error)
	SetUser(user *UserProfile) error
	Hints() (map[string]string, error)
	SetHints(hints map[string]string) error
	Clear() error
}

// credentials is the on-disk shape. There is no schema versioning; readers
// must treat anything they cannot decode as absent.
type credentials struct {
	Token string            `json:"token"`
	User  *UserProfile      `json:"user,omitempty"`
	Hints map[string]string `json:"hints,omitempty"`
}

// FileStore persists credentials as a JSON file under a config directory.
type FileStore struct {
	configDir string
}

// NewFileStore creates a file-backed token store rooted at configDir.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ryze")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ryze")
}

// credsFile returns the path to the credentials JSON.
func (fs *FileStore) credsFile() string {
	return filepath.Join(fs.configDir, "credentials.json")
}

// load reads the credentials file, treating missing or corrupt data as empty.
func (fs *FileStore) load() (credentials, error) {
	data, err := os.ReadFile(fs.credsFile())
	if os.IsNotExist(err) {
		return credentials{}, nil
	}
	if err != nil {
		return credentials{}, err
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// Corrupt or schema-drifted file, start fresh
		return credentials{}, nil
	}
	return creds, nil
}

// save writes the credentials file with owner-only permissions.
func (fs *FileStore) save(creds credentials) error {
	if err := os.MkdirAll(fs.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.credsFile(), data, 0o600)
}

// Token returns the persisted token, or empty if none is stored.
func (fs *FileStore) Token() (string, error) {
	creds, err := fs.load()
	if err != nil {
		return "", err
	}
	return creds.Token, nil
}

// SetToken persists the token, keeping any cached user.
func (fs *FileStore) SetToken(token string) error {
	creds, err := fs.load()
	if err != nil {
		return err
	}
	creds.Token = token
	return fs.save(creds)
}

// User returns the cached user profile, or nil if none is stored.
func (fs *FileStore) User() (*UserProfile, error) {
	creds, err := fs.load()
	if err != nil {
		return nil, err
	}
	return creds.User, nil
}

// SetUser persists the cached user profile.
func (fs *FileStore) SetUser(user *UserProfile) error {
	creds, err := fs.load()
	if err != nil {
		return err
	}
	creds.User = user
	return fs.save(creds)
}

// Hints returns the persisted session hints, or nil if none are stored.
func (fs *FileStore) Hints() (map[string]string, error) {
	creds, err := fs.load()
	if err != nil {
		return nil, err
	}
	return creds.Hints, nil
}

// SetHints persists the session hints, keeping the token and cached user.
func (fs *FileStore) SetHints(hints map[string]string) error {
	creds, err := fs.load()
	if err != nil {
		return err
	}
	creds.Hints = hints
	return fs.save(creds)
}

// Clear removes the credentials file entirely.
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.credsFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemStore is an in-memory TokenStore for tests and ephemeral sessions.
type MemStore struct {
	token string
	user  *UserProfile
	hints map[string]string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (ms *MemStore) Token() (string, error) { return ms.token, nil }

func (ms *MemStore) SetToken(token string) error {
	ms.token = token
	return nil
}

func (ms *MemStore) User() (*UserProfile, error) { return ms.user, nil }

func (ms *MemStore) SetUser(user *UserProfile) error {
	ms.user = user
	return nil
}

func (ms *MemStore) Hints() (map[string]string, error) { return ms.hints, nil }

func (ms *MemStore) SetHints(hints map[string]string) error {
	ms.hints = hints
	return nil
}

func (ms *MemStore) Clear() error {
	ms.token = ""
	ms.user = nil
	ms.hints = nil
	return nil
}
