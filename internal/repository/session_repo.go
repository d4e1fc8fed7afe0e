package repository

import (
	"fmt"
	"sync"

	"leafdoctor/internal/models"
)

// SessionRepository keeps token -> username in memory. Sessions never expire.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]string)}
}

var _ SessionRepo = (*SessionRepository)(nil)

func (r *SessionRepository) Save(s models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.Token]; ok {
		return fmt.Errorf("save session: %w", ErrDuplicateToken)
	}
	r.sessions[s.Token] = s.Username
	return nil
}

func (r *SessionRepository) Get(token string) (models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username, ok := r.sessions[token]
	if !ok {
		return models.Session{}, false
	}
	return models.Session{Token: token, Username: username}, true
}

// Delete is a no-op for unknown tokens.
func (r *SessionRepository) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
