package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persists the bearer token between runs. It holds exactly one
// token string and nothing else.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a single file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns the stored token, or "" when none is saved.
func (f *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save writes the token with owner-only permissions.
func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := writeFileAtomic(f.Path, []byte(token)); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the token file.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryStore keeps the token in memory. Used by tests and by sessions that
// must not touch disk.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// KeyedFileStore keeps one token per key (a Discord user id) in a JSON file.
type KeyedFileStore struct {
	path string
	mu   sync.Mutex
}

// NewKeyedFileStore returns a keyed store backed by path.
func NewKeyedFileStore(path string) *KeyedFileStore {
	return &KeyedFileStore{path: path}
}

// For returns the TokenStore of key.
func (k *KeyedFileStore) For(key string) TokenStore {
	return &keyedStore{parent: k, key: key}
}

func (k *KeyedFileStore) read() (map[string]string, error) {
	tokens := make(map[string]string)
	raw, err := os.ReadFile(k.path)
	if errors.Is(err, fs.ErrNotExist) {
		return tokens, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	if len(raw) == 0 {
		return tokens, nil
	}
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return tokens, nil
}

func (k *KeyedFileStore) update(fn func(map[string]string)) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	tokens, err := k.read()
	if err != nil {
		return err
	}
	fn(tokens)

	raw, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	return writeFileAtomic(k.path, raw)
}

type keyedStore struct {
	parent *KeyedFileStore
	key    string
}

func (s *keyedStore) Load() (string, error) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	tokens, err := s.parent.read()
	if err != nil {
		return "", err
	}
	return tokens[s.key], nil
}

func (s *keyedStore) Save(token string) error {
	return s.parent.update(func(tokens map[string]string) {
		tokens[s.key] = token
	})
}

func (s *keyedStore) Clear() error {
	return s.parent.update(func(tokens map[string]string) {
		delete(tokens, s.key)
	})
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".token-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
