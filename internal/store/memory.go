// internal/store/memory.go
//
// In-memory store for server-side solving sessions.
// Sessions are ephemeral by nature (a game lasts six rounds), so a
// RWMutex-guarded map is the only implementation; the interface keeps
// the HTTP layer testable and leaves room for a shared backend.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/robalobadob/pyatibukv/internal/session"
)

// ErrNotFound is returned when a session id is unknown (or expired).
var ErrNotFound = errors.New("store: session not found")

// Store is the persistence interface for solving sessions.
type Store interface {
	// Save persists a session under a fresh id and returns the id.
	Save(ctx context.Context, s *session.Session) (string, error)

	// Get retrieves a session by id.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete removes a finished session. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

func (m *memory) Save(ctx context.Context, s *session.Session) (string, error) {
	id := newID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return id, nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// newID returns a compact 16-hex-char identifier.
func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
