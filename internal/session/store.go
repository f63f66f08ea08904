package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFile  = "token"
	userIDFile = "user_id"
)

// Stored is what survives between runs.
type Stored struct {
	Token  string
	UserID string
}

// Store persists the session's two keys.
type Store interface {
	Load() (Stored, error)
	SaveToken(token string) error
	SaveUserID(id string) error
	Clear() error
}

// FileStore keeps each key in its own file under dir.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads both keys. Missing files are empty values, not errors.
func (s *FileStore) Load() (Stored, error) {
	tok, err := s.read(tokenFile)
	if err != nil {
		return Stored{}, err
	}
	uid, err := s.read(userIDFile)
	if err != nil {
		return Stored{}, err
	}
	return Stored{Token: tok, UserID: uid}, nil
}

// SaveToken writes the token.
func (s *FileStore) SaveToken(token string) error {
	return s.write(tokenFile, token)
}

// SaveUserID writes the user identifier.
func (s *FileStore) SaveUserID(id string) error {
	return s.write(userIDFile, id)
}

// Clear removes both keys. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	var errs []error
	for _, name := range []string{tokenFile, userIDFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *FileStore) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) write(name, value string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(value), 0600); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
