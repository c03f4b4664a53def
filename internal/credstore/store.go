// Package credstore persists the bearer credential between runs.
package credstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// credentialAAD binds sealed credentials to their purpose so a sealed
// blob cannot be replayed into some other slot.
const credentialAAD = "custrack-credential-v1"

// Store is the single persisted credential slot.
//
// Load returns the empty string when no credential is stored; that is
// the logged-out state, not an error.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the credential in a sealed file under dir.
type FileStore struct {
	credPath string
	keyPath  string
}

// DefaultDir returns the default credential directory (~/.custrack).
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".custrack")
}

// NewFileStore creates a file-backed credential store rooted at dir.
// An empty dir selects DefaultDir().
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultDir()
	}
	return &FileStore{
		credPath: filepath.Join(dir, "credentials"),
		keyPath:  filepath.Join(dir, "credentials.key"),
	}
}

// Load reads and unseals the stored token.
// A missing slot or an unusable key file reads as logged out.
func (s *FileStore) Load() (string, error) {
	sealed, err := os.ReadFile(s.credPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}

	key, err := os.ReadFile(s.keyPath)
	if errors.Is(err, fs.ErrNotExist) {
		// Credential without its key cannot be recovered; treat as
		// logged out rather than erroring on every command.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read sealing key: %w", err)
	}

	c, err := newCipher(key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	plain, err := c.Open(sealed, []byte(credentialAAD))
	if err != nil {
		// Tampered or corrupted slot; the caller re-authenticates.
		return "", nil
	}
	return string(plain), nil
}

// Save seals the token and writes it to the slot, creating the
// directory and sealing key on first use.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.credPath), 0700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	key, err := s.loadOrCreateKey()
	if err != nil {
		return err
	}

	c, err := newCipher(key)
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	sealed, err := c.Seal([]byte(token), []byte(credentialAAD))
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}

	if err := os.WriteFile(s.credPath, sealed, 0600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Clear removes the stored credential. Clearing an empty slot is a
// no-op; the sealing key is kept for the next login.
func (s *FileStore) Clear() error {
	err := os.Remove(s.credPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}

func (s *FileStore) loadOrCreateKey() ([]byte, error) {
	key, err := os.ReadFile(s.keyPath)
	if err == nil && len(key) == KeySize {
		return key, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read sealing key: %w", err)
	}

	key, err = generateKey()
	if err != nil {
		return nil, fmt.Errorf("generate sealing key: %w", err)
	}
	if err := os.WriteFile(s.keyPath, key, 0600); err != nil {
		return nil, fmt.Errorf("write sealing key: %w", err)
	}
	return key, nil
}
