// Package tokenstore is the single durable slot for the bearer token.
// Exactly four session operations touch it: login success, SetToken,
// logout and FetchCurrentUser failure. No other code may write here.
package tokenstore

import (
	"errors"
	"os"
	"sync"
)

var ErrNoToken = errors.New("tokenstore: no token persisted")

// Store is the narrow persistence capability injected into the session
// store so the side effect stays mockable.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// FileStore keeps the token in a single file, mode 0600.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Get() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoToken
	}
	return string(data), nil
}

func (f *FileStore) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemStore is the in-memory variant used by tests.
type MemStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *MemStore) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
