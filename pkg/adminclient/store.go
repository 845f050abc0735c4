package adminclient

import "sync"

// Fixed storage keys for the persisted session state. A browser-style
// implementation would map these onto local storage; MemoryStore keeps them
// in-process.
const (
	TokenKey = "admin_token"
	EmailKey = "admin_email"
)

// TokenStore holds the client-local session state: the bearer token string
// and the display email. Clear removes both, always together.
type TokenStore interface {
	Load() (token, email string)
	Save(token, email string)
	Clear()
}

// MemoryStore is an in-process TokenStore, safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Load() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[TokenKey], s.values[EmailKey]
}

func (s *MemoryStore) Save(token, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[TokenKey] = token
	s.values[EmailKey] = email
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, TokenKey)
	delete(s.values, EmailKey)
}
