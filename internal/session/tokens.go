package session

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/uplift-force/coordinator-svc/internal/data"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// TokenStore persists the access/refresh pair between runs. Writes are
// last-writer-wins: they only happen at login, refresh and logout, which are
// user-serialized by nature.
type TokenStore interface {
	Get() data.Tokens
	Set(data.Tokens) error
	Clear() error

	// Access satisfies gateway.TokenSource.
	Access() string
}

// fileStore keeps the pair in a mode-0600 JSON file, the headless-client
// analogue of browser local storage. The historical revisions alternated
// between cookies and local storage; a single mechanism is normalized here.
type fileStore struct {
	mu     sync.RWMutex
	path   string
	cached data.Tokens
}

func NewFileStore(path string) (TokenStore, error) {
	s := &fileStore{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read token file")
	}
	if err = json.Unmarshal(raw, &s.cached); err != nil {
		return nil, errors.Wrap(err, "failed to parse token file")
	}
	return s, nil
}

func (s *fileStore) Get() data.Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

func (s *fileStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached.AccessToken
}

func (s *fileStore) Set(t data.Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "failed to marshal tokens")
	}
	if err = os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Wrap(err, "failed to write token file")
	}
	s.cached = t
	return nil
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = data.Tokens{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove token file")
	}
	return nil
}

// memoryStore is the in-process store used by tests.
type memoryStore struct {
	mu     sync.RWMutex
	cached data.Tokens
}

func NewMemoryStore() TokenStore {
	return &memoryStore{}
}

func (s *memoryStore) Get() data.Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

func (s *memoryStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached.AccessToken
}

func (s *memoryStore) Set(t data.Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = t
	return nil
}

func (s *memoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = data.Tokens{}
	return nil
}
