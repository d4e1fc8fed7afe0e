package repository

import (
	"fmt"
	"sync"

	"leafdoctor/internal/models"
)

// UserRepository keeps username -> password hash in memory.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]string)}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

// Create inserts a new user. The existence check and the insert happen under
// one lock, so concurrent sign-ups for the same name cannot both succeed.
func (r *UserRepository) Create(username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return fmt.Errorf("insert user %q: %w", username, ErrDuplicateUsername)
	}
	r.users[username] = passwordHash
	return nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hash, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &models.User{Username: username, PasswordHash: hash}, nil
}
